package main

import (
	"context"
	"errors"

	"github.com/loganlanou/ciber-client/internal/demo"
	"github.com/loganlanou/ciber-client/internal/utils"
)

// runDemoProjects works on the locally stored demo projects, no backend
// involved.
func runDemoProjects(ctx context.Context, a *app, args []string) error {
	store := a.svc.Projects

	return dispatch(ctx, a, "demo-projects", map[string]action{
		"list": func(ctx context.Context, a *app, _ []string) error {
			projects, err := store.List(ctx)
			if err != nil {
				return err
			}
			return a.print(projects)
		},
		"mine": func(ctx context.Context, a *app, _ []string) error {
			s, err := a.svc.API.CurrentUser(ctx)
			if err != nil {
				return err
			}
			if s == nil {
				return demo.ErrNotLoggedIn
			}
			projects, err := store.ListByOwner(ctx, s.ID)
			if err != nil {
				return err
			}
			return a.print(projects)
		},
		"add": func(ctx context.Context, a *app, args []string) error {
			fs := newFlagSet("demo-projects add")
			p := addProjectFlags(fs)
			if err := fs.Parse(args); err != nil {
				return err
			}
			if err := p.validate(visited(fs), true); err != nil {
				return err
			}

			project, err := store.Create(ctx, demo.ProjectForm{
				Name:        *p.name,
				Description: *p.description,
				Type:        demo.ProjectType(*p.kind),
				Techs:       utils.SplitTechList(*p.techs),
				ImageURL:    *p.image,
				RepoURL:     *p.repo,
				DeployURL:   *p.deploy,
			})
			if err != nil {
				return err
			}
			return a.print(project)
		},
		"update": func(ctx context.Context, a *app, args []string) error {
			fs := newFlagSet("demo-projects update")
			id := fs.String("id", "", "project id")
			p := addProjectFlags(fs)
			if err := fs.Parse(args); err != nil {
				return err
			}
			if !utils.ValidateRequired(*id) {
				return errors.New("-id is required")
			}
			set := visited(fs)
			if err := p.validate(set, false); err != nil {
				return err
			}

			var patch demo.ProjectPatch
			if set["name"] {
				patch.Name = p.name
			}
			if set["description"] {
				patch.Description = p.description
			}
			if set["type"] {
				kind := demo.ProjectType(*p.kind)
				patch.Type = &kind
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

			project, err := store.Update(ctx, *id, patch)
			if err != nil {
				return err
			}
			return a.print(project)
		},
		"delete": func(ctx context.Context, a *app, args []string) error {
			fs := newFlagSet("demo-projects delete")
			id := fs.String("id", "", "project id")
			if err := fs.Parse(args); err != nil {
				return err
			}
			if !utils.ValidateRequired(*id) {
				return errors.New("-id is required")
			}
			if err := store.Delete(ctx, *id); err != nil {
				return err
			}
			return a.print(map[string]string{"deleted": *id})
		},
	}, args)
}
