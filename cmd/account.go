package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/loganlanou/ciber-client/internal/api"
	"github.com/loganlanou/ciber-client/internal/auth"
	"github.com/loganlanou/ciber-client/internal/session"
	"github.com/loganlanou/ciber-client/internal/utils"
	"github.com/loganlanou/ciber-client/views/helpers"
)

// sessionView is a session without its token.
type sessionView struct {
	ID       session.ID   `json:"id"`
	Name     string       `json:"name"`
	Email    string       `json:"email"`
	Role     session.Role `json:"role"`
	ImageURL string       `json:"imageUrl,omitempty"`
}

func viewOf(s *session.Session) sessionView {
	return sessionView{ID: s.ID, Name: s.Name, Email: s.Email, Role: s.Role, ImageURL: s.ImageURL}
}

func runLogin(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("login")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if !utils.ValidateEmail(*email) {
		return errors.New("a valid -email is required")
	}
	if !utils.ValidateRequired(*password) {
		return errors.New("-password is required")
	}

	s, err := a.svc.API.Login(ctx, api.LoginCredentials{Email: *email, Password: *password})
	if err != nil {
		if api.IsInvalidCredentials(err) {
			return errors.New("credenciales inválidas")
		}
		return err
	}
	return a.print(viewOf(s))
}

func runRegister(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("register")
	name := fs.String("name", "", "display name")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	switch {
	case !utils.ValidateRequired(*name):
		return errors.New("-name is required")
	case !utils.ValidateEmail(*email):
		return errors.New("a valid -email is required")
	case !utils.ValidatePassword(*password):
		return fmt.Errorf("-password must be at least %d characters", utils.MinPasswordLength)
	}

	s, err := a.svc.API.Register(ctx, api.RegisterData{Name: *name, Email: *email, Password: *password})
	if err != nil {
		return err
	}
	return a.print(viewOf(s))
}

func runLogout(ctx context.Context, a *app, _ []string) error {
	if err := a.svc.API.Logout(ctx); err != nil {
		return err
	}
	return a.print(map[string]bool{"authenticated": false})
}

func runWhoami(ctx context.Context, a *app, _ []string) error {
	s, err := a.svc.API.CurrentUser(ctx)
	if err != nil {
		return err
	}
	if s == nil {
		return a.print(map[string]bool{"authenticated": false})
	}

	out := struct {
		Authenticated bool        `json:"authenticated"`
		User          sessionView `json:"user"`
		IssuedAgo     string      `json:"issued,omitempty"`
		ExpiresOn     string      `json:"expiresOn,omitempty"`
		Expired       bool        `json:"expired"`
	}{Authenticated: true, User: viewOf(s)}

	if info, err := auth.InspectToken(s.Token); err == nil {
		now := time.Now()
		if info.IssuedAt != nil {
			out.IssuedAgo = helpers.FormatRelativeTime(*info.IssuedAt, now)
		}
		if info.ExpiresAt != nil {
			out.ExpiresOn = helpers.FormatDate(*info.ExpiresAt)
		}
		out.Expired = info.Expired(now)
	}
	return a.print(out)
}

func runMe(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("me")
	name := fs.String("name", "", "new display name")
	current := fs.String("current-password", "", "current password")
	next := fs.String("new-password", "", "new password")
	image := fs.String("image", "", "profile image file to upload")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var (
		s   *session.Session
		err error
	)
	switch {
	case *image != "":
		f, openErr := os.Open(*image)
		if openErr != nil {
			return fmt.Errorf("open image: %w", openErr)
		}
		defer f.Close()
		s, err = a.svc.API.UpdateProfileImage(ctx, filepath.Base(*image), f)
	case *name != "" || *next != "":
		if *next != "" && !utils.ValidatePassword(*next) {
			return fmt.Errorf("-new-password must be at least %d characters", utils.MinPasswordLength)
		}
		s, err = a.svc.API.UpdateUser(ctx, api.UpdateUserData{Name: *name, CurrentPassword: *current, NewPassword: *next})
	default:
		s, err = a.svc.API.GetMyUser(ctx)
	}
	if err != nil {
		return err
	}
	return a.print(viewOf(s))
}

func runUsers(ctx context.Context, a *app, args []string) error {
	return dispatch(ctx, a, "users", map[string]action{
		"list": func(ctx context.Context, a *app, _ []string) error {
			users, err := a.svc.API.ListUsers(ctx)
			if err != nil {
				return err
			}
			return a.print(users)
		},
		"role": func(ctx context.Context, a *app, args []string) error {
			fs := newFlagSet("users role")
			id := fs.String("id", "", "user id")
			role := fs.String("role", "", "user, programmer or admin")
			if err := fs.Parse(args); err != nil {
				return err
			}
			if !utils.ValidateRequired(*id) || !utils.ValidateRequired(*role) {
				return errors.New("-id and -role are required")
			}
			user, err := a.svc.API.UpdateUserRole(ctx, *id, *role)
			if err != nil {
				return err
			}
			return a.print(user)
		},
		"delete": func(ctx context.Context, a *app, args []string) error {
			fs := newFlagSet("users delete")
			id := fs.String("id", "", "user id")
			if err := fs.Parse(args); err != nil {
				return err
			}
			if !utils.ValidateRequired(*id) {
				return errors.New("-id is required")
			}
			if err := a.svc.API.DeleteUser(ctx, *id); err != nil {
				return err
			}
			return a.print(map[string]string{"deleted": *id})
		},
	}, args)
}
