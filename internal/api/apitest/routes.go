package apitest

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

func (b *Backend) routes() {
	api := b.Echo.Group("/api")

	api.POST("/auth/login", b.login)
	api.POST("/auth/register", b.register)

	api.GET("/users", b.listUsers)
	api.GET("/users/me", b.getMe)
	api.PUT("/users/me", b.updateMe)
	api.POST("/users/me/image", b.uploadImage)
	api.PUT("/users/:id/role", b.updateRole)
	api.DELETE("/users/:id", b.deleteUser)

	api.GET("/projects", b.listProjects)
	api.GET("/projects/me", b.myProjects)
	api.GET("/projects/user/:id", b.userProjects)
	api.GET("/projects/:id", b.getProject)
	api.POST("/projects", b.createProject)
	api.PUT("/projects/:id", b.updateProject)
	api.DELETE("/projects/:id", b.deleteProject)

	api.POST("/advisories", b.createAdvisory)
	api.GET("/advisories/programmer/:id", b.advisoriesByField("programmerId"))
	api.GET("/advisories/user/:id", b.advisoriesByField("userId"))
	api.PUT("/advisories/:id/status", b.updateAdvisoryStatus)
	api.GET("/advisories/stats/programmer/:id", b.programmerStats)

	api.GET("/schedules", b.listSchedules)
	api.GET("/schedules/programmer/:id", b.schedulesByProgrammer)
	api.POST("/schedules", b.createSchedule)
	api.DELETE("/schedules/:id", b.deleteSchedule)

	api.GET("/profiles/me", b.myProfile)
	api.GET("/profiles/user/:id", b.profileByUser)
	api.GET("/profiles/all", b.allProfiles)
	api.POST("/profiles", b.saveProfile)
	api.DELETE("/profiles", b.deleteProfile)
}

type credentials struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (b *Backend) authPayload(acct *Account) map[string]any {
	token := b.TokenFor(acct.ID, acct.Role)
	b.mu.Lock()
	b.lastToken = token
	b.mu.Unlock()

	return map[string]any{
		"id":    acct.ID,
		"name":  acct.Name,
		"email": acct.Email,
		"role":  acct.Role,
		"token": token,
	}
}

func (b *Backend) login(c echo.Context) error {
	var in credentials
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	b.mu.Lock()
	var found *Account
	for _, acct := range b.accounts {
		if acct.Email == in.Email && acct.password == in.Password {
			found = acct
			break
		}
	}
	b.mu.Unlock()

	if found == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "bad credentials")
	}
	return c.JSON(http.StatusOK, b.authPayload(found))
}

func (b *Backend) register(c echo.Context) error {
	var in credentials
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if in.Name == "" || in.Email == "" || len(in.Password) < 6 {
		return echo.NewHTTPError(http.StatusBadRequest, "name, email and a 6 character password are required")
	}

	b.mu.Lock()
	for _, acct := range b.accounts {
		if acct.Email == in.Email {
			b.mu.Unlock()
			return echo.NewHTTPError(http.StatusConflict, "email already registered")
		}
	}
	acct := b.addAccountLocked(in.Name, in.Email, in.Password, "USER")
	b.mu.Unlock()

	return c.JSON(http.StatusCreated, b.authPayload(acct))
}

func (b *Backend) listUsers(c echo.Context) error {
	if err := b.requireAdmin(c); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	out := []Account{}
	for _, acct := range b.accounts {
		out = append(out, *acct)
	}
	return c.JSON(http.StatusOK, out)
}

func (b *Backend) getMe(c echo.Context) error {
	id, err := requireUser(c)
	if err != nil {
		return err
	}
	acct, ok := b.Account(id)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "user not found")
	}
	return c.JSON(http.StatusOK, acct)
}

func (b *Backend) updateMe(c echo.Context) error {
	id, err := requireUser(c)
	if err != nil {
		return err
	}
	var in struct {
		Name            string `json:"name"`
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	acct, ok := b.accounts[id]
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "user not found")
	}
	if in.NewPassword != "" {
		if in.CurrentPassword != acct.password {
			return echo.NewHTTPError(http.StatusBadRequest, "current password is incorrect")
		}
		acct.password = in.NewPassword
	}
	if in.Name != "" {
		acct.Name = in.Name
	}
	acct.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	return c.JSON(http.StatusOK, acct)
}

func (b *Backend) uploadImage(c echo.Context) error {
	id, err := requireUser(c)
	if err != nil {
		return err
	}
	url, err := b.storeUpload(c)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	acct, ok := b.accounts[id]
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "user not found")
	}
	acct.ImageURL = url
	return c.JSON(http.StatusOK, acct)
}

func (b *Backend) updateRole(c echo.Context) error {
	if err := b.requireAdmin(c); err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	role := c.QueryParam("role")
	switch role {
	case "USER", "PROGRAMMER", "ADMIN":
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "unknown role")
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	acct, ok := b.accounts[id]
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "user not found")
	}
	acct.Role = role
	return c.JSON(http.StatusOK, acct)
}

func (b *Backend) deleteUser(c echo.Context) error {
	if err := b.requireAdmin(c); err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.accounts[id]; !ok {
		return echo.NewHTTPError(http.StatusNotFound, "user not found")
	}
	delete(b.accounts, id)
	return c.NoContent(http.StatusNoContent)
}

func (b *Backend) listProjects(c echo.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return c.JSON(http.StatusOK, sorted(b.projects, nil))
}

func (b *Backend) myProjects(c echo.Context) error {
	id, err := requireUser(c)
	if err != nil {
		return err
	}
	return b.projectsOf(c, id)
}

func (b *Backend) userProjects(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	return b.projectsOf(c, id)
}

func (b *Backend) projectsOf(c echo.Context, userID int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return c.JSON(http.StatusOK, sorted(b.projects, func(p map[string]any) bool {
		return int64Field(p, "userId") == userID
	}))
}

func (b *Backend) getProject(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	p, ok := b.projects[id]
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "project not found")
	}
	return c.JSON(http.StatusOK, p)
}

func (b *Backend) createProject(c echo.Context) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	in, err := decodeBody(c)
	if err != nil {
		return err
	}
	if name, _ := in["name"].(string); strings.TrimSpace(name) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.newIDLocked()
	in["id"] = id
	in["userId"] = userID
	in["createdAt"] = time.Now().UTC().Format(time.RFC3339)
	b.projects[id] = in
	return c.JSON(http.StatusCreated, in)
}

func (b *Backend) updateProject(c echo.Context) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	in, err := decodeBody(c)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	p, ok := b.projects[id]
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "project not found")
	}
	if int64Field(p, "userId") != userID {
		return echo.NewHTTPError(http.StatusForbidden, "not your project")
	}
	for k, v := range in {
		if k == "id" || k == "userId" {
			continue
		}
		p[k] = v
	}
	p["updatedAt"] = time.Now().UTC().Format(time.RFC3339)
	return c.JSON(http.StatusOK, p)
}

func (b *Backend) deleteProject(c echo.Context) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	p, ok := b.projects[id]
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "project not found")
	}
	if int64Field(p, "userId") != userID {
		return echo.NewHTTPError(http.StatusForbidden, "not your project")
	}
	delete(b.projects, id)
	return c.NoContent(http.StatusNoContent)
}

func (b *Backend) createAdvisory(c echo.Context) error {
	in, err := decodeBody(c)
	if err != nil {
		return err
	}
	if int64Field(in, "programmerId") == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "programmerId is required")
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if userID, ok := c.Get(userIDKey).(int64); ok && int64Field(in, "userId") == 0 {
		in["userId"] = userID
	}
	if acct, ok := b.accounts[int64Field(in, "programmerId")]; ok {
		in["programmerName"] = acct.Name
	}
	if acct, ok := b.accounts[int64Field(in, "userId")]; ok {
		in["userName"] = acct.Name
	}
	id := b.newIDLocked()
	in["id"] = id
	in["status"] = "PENDING"
	b.advisories[id] = in
	return c.JSON(http.StatusCreated, in)
}

func (b *Backend) advisoriesByField(field string) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := pathID(c, "id")
		if err != nil {
			return err
		}
		b.mu.Lock()
		defer b.mu.Unlock()
		return c.JSON(http.StatusOK, sorted(b.advisories, func(a map[string]any) bool {
			return int64Field(a, field) == id
		}))
	}
}

func (b *Backend) updateAdvisoryStatus(c echo.Context) error {
	if _, err := requireUser(c); err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	status := c.QueryParam("status")
	switch status {
	case "PENDING", "ACCEPTED", "REJECTED", "COMPLETED":
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "unknown status")
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	a, ok := b.advisories[id]
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "advisory not found")
	}
	a["status"] = status
	return c.JSON(http.StatusOK, a)
}

func (b *Backend) programmerStats(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	stats := map[string]int64{}
	for _, a := range b.advisories {
		if int64Field(a, "programmerId") != id {
			continue
		}
		stats["total"]++
		if status, ok := a["status"].(string); ok {
			stats[strings.ToLower(status)]++
		}
		if modality, ok := a["modality"].(string); ok {
			stats[strings.ToLower(modality)]++
		}
	}
	for _, key := range []string{"total", "pending", "accepted", "rejected", "completed", "virtual", "presencial"} {
		stats[key] += 0
	}
	return c.JSON(http.StatusOK, stats)
}

func (b *Backend) listSchedules(c echo.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return c.JSON(http.StatusOK, sorted(b.schedules, nil))
}

func (b *Backend) schedulesByProgrammer(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return c.JSON(http.StatusOK, sorted(b.schedules, func(s map[string]any) bool {
		return int64Field(s, "programmerId") == id
	}))
}

func (b *Backend) createSchedule(c echo.Context) error {
	if _, err := requireUser(c); err != nil {
		return err
	}
	in, err := decodeBody(c)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if acct, ok := b.accounts[int64Field(in, "programmerId")]; ok {
		in["programmerName"] = acct.Name
	}
	id := b.newIDLocked()
	in["id"] = id
	in["status"] = "AVAILABLE"
	b.schedules[id] = in
	return c.JSON(http.StatusCreated, in)
}

func (b *Backend) deleteSchedule(c echo.Context) error {
	if _, err := requireUser(c); err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.schedules[id]; !ok {
		return echo.NewHTTPError(http.StatusNotFound, "schedule not found")
	}
	delete(b.schedules, id)
	return c.NoContent(http.StatusNoContent)
}

func (b *Backend) myProfile(c echo.Context) error {
	id, err := requireUser(c)
	if err != nil {
		return err
	}
	return b.profileOf(c, id)
}

func (b *Backend) profileByUser(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	return b.profileOf(c, id)
}

func (b *Backend) profileOf(c echo.Context, userID int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	p, ok := b.profiles[userID]
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "profile not found")
	}
	return c.JSON(http.StatusOK, p)
}

func (b *Backend) allProfiles(c echo.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return c.JSON(http.StatusOK, sorted(b.profiles, nil))
}

func (b *Backend) saveProfile(c echo.Context) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	in, err := decodeBody(c)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	p, ok := b.profiles[userID]
	if !ok {
		p = map[string]any{"id": b.newIDLocked(), "userId": userID}
		if acct, found := b.accounts[userID]; found {
			p["userName"] = acct.Name
			p["userEmail"] = acct.Email
		}
		b.profiles[userID] = p
	}
	for k, v := range in {
		if k == "id" || k == "userId" {
			continue
		}
		p[k] = v
	}
	return c.JSON(http.StatusOK, p)
}

func (b *Backend) deleteProfile(c echo.Context) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.profiles[userID]; !ok {
		return echo.NewHTTPError(http.StatusNotFound, "profile not found")
	}
	delete(b.profiles, userID)
	return c.NoContent(http.StatusNoContent)
}

// decodeBody reads a JSON object body without echo's path-param binding.
func decodeBody(c echo.Context) (map[string]any, error) {
	in := map[string]any{}
	if err := json.NewDecoder(c.Request().Body).Decode(&in); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	return in, nil
}
