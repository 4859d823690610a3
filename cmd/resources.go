package main

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/loganlanou/ciber-client/internal/api"
	"github.com/loganlanou/ciber-client/internal/utils"
)

// projectFlags are the editable project fields shared by create and update.
type projectFlags struct {
	name, description, kind, techs, repo, deploy, image *string
}

func addProjectFlags(fs *flag.FlagSet) projectFlags {
	return projectFlags{
		name:        fs.String("name", "", "project name"),
		description: fs.String("description", "", "project description"),
		kind:        fs.String("type", "Profesional", "Profesional or Académico"),
		techs:       fs.String("techs", "", "comma separated technologies"),
		repo:        fs.String("repo", "", "repository URL"),
		deploy:      fs.String("deploy", "", "deployment URL"),
		image:       fs.String("image", "", "image URL"),
	}
}

func (p projectFlags) validate(set map[string]bool, creating bool) error {
	if (creating || set["name"]) && !utils.ValidateRequired(*p.name) {
		return errors.New("-name is required")
	}
	if (creating || set["techs"]) && !utils.ValidateTechList(*p.techs) {
		return errors.New("-techs needs at least one technology")
	}
	for flagName, value := range map[string]string{"repo": *p.repo, "deploy": *p.deploy, "image": *p.image} {
		if value != "" && !utils.ValidateURL(value) {
			return fmt.Errorf("-%s must be an absolute URL", flagName)
		}
	}
	return nil
}

func runProjects(ctx context.Context, a *app, args []string) error {
	return dispatch(ctx, a, "projects", map[string]action{
		"all": func(ctx context.Context, a *app, _ []string) error {
			projects, err := a.svc.API.ListProjects(ctx)
			if err != nil {
				return err
			}
			return a.print(projects)
		},
		"mine": func(ctx context.Context, a *app, _ []string) error {
			projects, err := a.svc.API.GetMyProjects(ctx)
			if err != nil {
				return err
			}
			return a.print(projects)
		},
		"user": func(ctx context.Context, a *app, args []string) error {
			fs := newFlagSet("projects user")
			id := fs.Int64("id", 0, "user id")
			if err := fs.Parse(args); err != nil {
				return err
			}
			if err := requireID("id", *id); err != nil {
				return err
			}
			projects, err := a.svc.API.GetProjectsByUser(ctx, *id)
			if err != nil {
				return err
			}
			return a.print(projects)
		},
		"get": func(ctx context.Context, a *app, args []string) error {
			fs := newFlagSet("projects get")
			id := fs.Int64("id", 0, "project id")
			if err := fs.Parse(args); err != nil {
				return err
			}
			if err := requireID("id", *id); err != nil {
				return err
			}
			project, err := a.svc.API.GetProject(ctx, *id)
			if err != nil {
				return err
			}
			return a.print(project)
		},
		"create": func(ctx context.Context, a *app, args []string) error {
			fs := newFlagSet("projects create")
			p := addProjectFlags(fs)
			if err := fs.Parse(args); err != nil {
				return err
			}
			if err := p.validate(visited(fs), true); err != nil {
				return err
			}
			project, err := a.svc.API.CreateProject(ctx, api.CreateProjectData{
				Name:        *p.name,
				Description: *p.description,
				Type:        *p.kind,
				Techs:       utils.SplitTechList(*p.techs),
				RepoURL:     *p.repo,
				DeployURL:   *p.deploy,
				ImageURL:    *p.image,
			})
			if err != nil {
				return err
			}
			return a.print(project)
		},
		"update": func(ctx context.Context, a *app, args []string) error {
			fs := newFlagSet("projects update")
			id := fs.Int64("id", 0, "project id")
			p := addProjectFlags(fs)
			if err := fs.Parse(args); err != nil {
				return err
			}
			if err := requireID("id", *id); err != nil {
				return err
			}
			set := visited(fs)
			if err := p.validate(set, false); err != nil {
				return err
			}

			var patch api.ProjectPatch
			if set["name"] {
				patch.Name = p.name
			}
			if set["description"] {
				patch.Description = p.description
			}
			if set["type"] {
				patch.Type = p.kind
			}
			if set["techs"] {
				patch.Techs = utils.SplitTechList(*p.techs)
			}
			if set["repo"] {
				patch.RepoURL = p.repo
			}
			if set["deploy"] {
				patch.DeployURL = p.deploy
			}
			if set["image"] {
				patch.ImageURL = p.image
			}

			project, err := a.svc.API.UpdateProject(ctx, *id, patch)
			if err != nil {
				return err
			}
			return a.print(project)
		},
		"delete": func(ctx context.Context, a *app, args []string) error {
			fs := newFlagSet("projects delete")
			id := fs.Int64("id", 0, "project id")
			if err := fs.Parse(args); err != nil {
				return err
			}
			if err := requireID("id", *id); err != nil {
				return err
			}
			if err := a.svc.API.DeleteProject(ctx, *id); err != nil {
				return err
			}
			return a.print(map[string]int64{"deleted": *id})
		},
	}, args)
}

func runProfiles(ctx context.Context, a *app, args []string) error {
	return dispatch(ctx, a, "profiles", map[string]action{
		"all": func(ctx context.Context, a *app, _ []string) error {
			profiles, err := a.svc.API.ListProfiles(ctx)
			if err != nil {
				return err
			}
			return a.print(profiles)
		},
		"me": func(ctx context.Context, a *app, _ []string) error {
			profile, err := a.svc.API.GetMyProfile(ctx)
			if errors.Is(err, api.ErrProfileNotFound) {
				return errors.New("no profile yet, create one with \"profiles save\"")
			}
			if err != nil {
				return err
			}
			return a.print(profile)
		},
		"user": func(ctx context.Context, a *app, args []string) error {
			fs := newFlagSet("profiles user")
			id := fs.Int64("id", 0, "user id")
			if err := fs.Parse(args); err != nil {
				return err
			}
			if err := requireID("id", *id); err != nil {
				return err
			}
			profile, err := a.svc.API.GetProfileByUser(ctx, *id)
			if err != nil {
				return err
			}
			return a.print(profile)
		},
		"save": func(ctx context.Context, a *app, args []string) error {
			fs := newFlagSet("profiles save")
			jobTitle := fs.String("job-title", "", "job title")
			bio := fs.String("bio", "", "short biography")
			skills := fs.String("skills", "", "comma separated skills")
			image := fs.String("image", "", "image URL")
			github := fs.String("github", "", "GitHub URL")
			linkedin := fs.String("linkedin", "", "LinkedIn URL")
			instagram := fs.String("instagram", "", "Instagram URL")
			whatsapp := fs.String("whatsapp", "", "WhatsApp URL")
			years := fs.Int("years", -1, "years of experience")
			if err := fs.Parse(args); err != nil {
				return err
			}

			for flagName, value := range map[string]string{
				"image": *image, "github": *github, "linkedin": *linkedin,
				"instagram": *instagram, "whatsapp": *whatsapp,
			} {
				if value != "" && !utils.ValidateURL(value) {
					return fmt.Errorf("-%s must be an absolute URL", flagName)
				}
			}

			data := api.UpdateProfileData{
				JobTitle:     *jobTitle,
				Bio:          *bio,
				ImageURL:     *image,
				GithubURL:    *github,
				LinkedinURL:  *linkedin,
				InstagramURL: *instagram,
				WhatsappURL:  *whatsapp,
			}
			if *skills != "" {
				data.Skills = utils.SplitTechList(*skills)
			}
			if *years >= 0 {
				data.YearsExperience = years
			}

			profile, err := a.svc.API.SaveProfile(ctx, data)
			if err != nil {
				return err
			}
			return a.print(profile)
		},
		"delete": func(ctx context.Context, a *app, _ []string) error {
			if err := a.svc.API.DeleteProfile(ctx); err != nil {
				return err
			}
			return a.print(map[string]bool{"deleted": true})
		},
	}, args)
}

func runSchedules(ctx context.Context, a *app, args []string) error {
	return dispatch(ctx, a, "schedules", map[string]action{
		"all": func(ctx context.Context, a *app, _ []string) error {
			schedules, err := a.svc.API.ListSchedules(ctx)
			if err != nil {
				return err
			}
			return a.print(schedules)
		},
		"programmer": func(ctx context.Context, a *app, args []string) error {
			fs := newFlagSet("schedules programmer")
			id := fs.Int64("id", 0, "programmer id")
			if err := fs.Parse(args); err != nil {
				return err
			}
			if err := requireID("id", *id); err != nil {
				return err
			}
			schedules, err := a.svc.API.GetSchedulesByProgrammer(ctx, *id)
			if err != nil {
				return err
			}
			return a.print(schedules)
		},
		"create": func(ctx context.Context, a *app, args []string) error {
			fs := newFlagSet("schedules create")
			programmer := fs.Int64("programmer", 0, "programmer id, defaults to the session user")
			date := fs.String("date", "", "date, YYYY-MM-DD")
			at := fs.String("time", "", "time, HH:MM")
			modality := fs.String("modality", "VIRTUAL", "VIRTUAL or PRESENCIAL")
			if err := fs.Parse(args); err != nil {
				return err
			}
			if *programmer == 0 {
				id, err := a.sessionID(ctx)
				if err != nil {
					return err
				}
				*programmer = id
			}
			if !utils.ValidateRequired(*date) || !utils.ValidateRequired(*at) {
				return errors.New("-date and -time are required")
			}

			schedule, err := a.svc.API.CreateSchedule(ctx, api.CreateScheduleRequest{
				ProgrammerID: *programmer,
				Date:         *date,
				Time:         *at,
				Modality:     parseModality(*modality),
			})
			if err != nil {
				return err
			}
			return a.print(schedule)
		},
		"delete": func(ctx context.Context, a *app, args []string) error {
			fs := newFlagSet("schedules delete")
			id := fs.Int64("id", 0, "schedule id")
			if err := fs.Parse(args); err != nil {
				return err
			}
			if err := requireID("id", *id); err != nil {
				return err
			}
			if err := a.svc.API.DeleteSchedule(ctx, *id); err != nil {
				return err
			}
			return a.print(map[string]int64{"deleted": *id})
		},
	}, args)
}

func runAdvisories(ctx context.Context, a *app, args []string) error {
	byID := func(name string, fetch func(context.Context, int64) ([]api.Advisory, error)) action {
		return func(ctx context.Context, a *app, args []string) error {
			fs := newFlagSet("advisories " + name)
			id := fs.Int64("id", 0, name+" id, defaults to the session user")
			if err := fs.Parse(args); err != nil {
				return err
			}
			if *id == 0 {
				sid, err := a.sessionID(ctx)
				if err != nil {
					return err
				}
				*id = sid
			}
			advisories, err := fetch(ctx, *id)
			if err != nil {
				return err
			}
			return a.print(advisories)
		}
	}

	return dispatch(ctx, a, "advisories", map[string]action{
		"programmer": byID("programmer", a.svc.API.GetAdvisoriesByProgrammer),
		"user":       byID("user", a.svc.API.GetAdvisoriesByUser),
		"create": func(ctx context.Context, a *app, args []string) error {
			fs := newFlagSet("advisories create")
			programmer := fs.Int64("programmer", 0, "programmer id")
			message := fs.String("message", "", "what the advisory is about")
			date := fs.String("date", "", "date, YYYY-MM-DD")
			at := fs.String("time", "", "time, HH:MM")
			modality := fs.String("modality", "VIRTUAL", "VIRTUAL or PRESENCIAL")
			if err := fs.Parse(args); err != nil {
				return err
			}
			if err := requireID("programmer", *programmer); err != nil {
				return err
			}

			advisory, err := a.svc.API.CreateAdvisory(ctx, api.CreateAdvisoryRequest{
				ProgrammerID: *programmer,
				Message:      *message,
				Date:         *date,
				Time:         *at,
				Modality:     parseModality(*modality),
			})
			if err != nil {
				return err
			}
			return a.print(advisory)
		},
		"status": func(ctx context.Context, a *app, args []string) error {
			fs := newFlagSet("advisories status")
			id := fs.Int64("id", 0, "advisory id")
			status := fs.String("status", "", "ACCEPTED, REJECTED or COMPLETED")
			if err := fs.Parse(args); err != nil {
				return err
			}
			if err := requireID("id", *id); err != nil {
				return err
			}
			if !utils.ValidateRequired(*status) {
				return errors.New("-status is required")
			}

			advisory, err := a.svc.API.UpdateAdvisoryStatus(ctx, *id, api.AdvisoryStatus(*status))
			if err != nil {
				return err
			}
			return a.print(advisory)
		},
		"stats": func(ctx context.Context, a *app, args []string) error {
			fs := newFlagSet("advisories stats")
			id := fs.Int64("id", 0, "programmer id, defaults to the session user")
			if err := fs.Parse(args); err != nil {
				return err
			}
			if *id == 0 {
				sid, err := a.sessionID(ctx)
				if err != nil {
					return err
				}
				*id = sid
			}
			stats, err := a.svc.API.GetProgrammerStats(ctx, *id)
			if err != nil {
				return err
			}
			return a.print(stats)
		},
	}, args)
}

func runDashboard(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("dashboard")
	id := fs.Int64("id", 0, "programmer id, defaults to the session user")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == 0 {
		sid, err := a.sessionID(ctx)
		if err != nil {
			return err
		}
		*id = sid
	}

	d, err := a.svc.ProgrammerDashboard(ctx, *id)
	if err != nil {
		return err
	}
	return a.print(d)
}
