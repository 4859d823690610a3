package api

import (
	"net/url"
	"strconv"
)

const (
	pathLogin    = "/api/auth/login"
	pathRegister = "/api/auth/register"

	pathUsers   = "/api/users"
	pathMe      = "/api/users/me"
	pathMeImage = "/api/users/me/image"

	pathProjects   = "/api/projects"
	pathMyProjects = "/api/projects/me"

	pathAdvisories = "/api/advisories"

	pathSchedules = "/api/schedules"

	pathProfiles    = "/api/profiles"
	pathMyProfile   = "/api/profiles/me"
	pathAllProfiles = "/api/profiles/all"
)

func idPath(base string, id int64) string {
	return base + "/" + strconv.FormatInt(id, 10)
}

func withQuery(path, key, value string) string {
	return path + "?" + url.Values{key: {value}}.Encode()
}

func userPath(id string) string                  { return pathUsers + "/" + url.PathEscape(id) }
func userRolePath(id string) string              { return userPath(id) + "/role" }
func projectPath(id int64) string                { return idPath(pathProjects, id) }
func projectsByUserPath(userID int64) string     { return idPath(pathProjects+"/user", userID) }
func advisoryStatusPath(id int64) string         { return idPath(pathAdvisories, id) + "/status" }
func advisoriesByProgrammerPath(id int64) string { return idPath(pathAdvisories+"/programmer", id) }
func advisoriesByUserPath(id int64) string       { return idPath(pathAdvisories+"/user", id) }
func programmerStatsPath(id int64) string        { return idPath(pathAdvisories+"/stats/programmer", id) }
func schedulePath(id int64) string               { return idPath(pathSchedules, id) }
func schedulesByProgrammerPath(id int64) string  { return idPath(pathSchedules+"/programmer", id) }
func profileByUserPath(userID int64) string      { return idPath(pathProfiles+"/user", userID) }
