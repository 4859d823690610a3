package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/loganlanou/ciber-client/internal/auth"
	"github.com/loganlanou/ciber-client/internal/session"
)

type LoginCredentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterData struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// authResponse is what /auth/login and /auth/register return.
type authResponse struct {
	ID    session.ID `json:"id"`
	Name  string     `json:"name"`
	Email string     `json:"email"`
	Role  string     `json:"role"`
	Token string     `json:"token"`
}

func (r authResponse) session() *session.Session {
	return &session.Session{
		ID:    r.ID,
		Name:  r.Name,
		Email: r.Email,
		Role:  session.ParseRole(r.Role),
		Token: r.Token,
	}
}

// Login authenticates against the backend and replaces whatever session is
// stored, corrupt or not. The request never carries a previous token.
func (c *Client) Login(ctx context.Context, creds LoginCredentials) (*session.Session, error) {
	var resp authResponse
	err := c.sendAnonymous(ctx, "login", http.MethodPost, pathLogin, creds, &resp, func(e *Error) {
		if e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden {
			e.Kind = ErrInvalidCredentials
		}
	})
	if err != nil {
		slog.Warn("login failed", "email", creds.Email, "error", err)
		return nil, err
	}

	return c.persist(ctx, "login", resp)
}

// Register creates an account and stores the resulting session.
func (c *Client) Register(ctx context.Context, data RegisterData) (*session.Session, error) {
	var resp authResponse
	err := c.sendAnonymous(ctx, "register", http.MethodPost, pathRegister, data, &resp, func(e *Error) {
		switch e.StatusCode {
		case http.StatusBadRequest:
			if e.Message == "" {
				e.Message = "invalid data"
			}
		case http.StatusConflict:
			e.Kind = ErrEmailTaken
		}
	})
	if err != nil {
		slog.Warn("register failed", "email", data.Email, "error", err)
		return nil, err
	}

	return c.persist(ctx, "register", resp)
}

func (c *Client) persist(ctx context.Context, op string, resp authResponse) (*session.Session, error) {
	s := resp.session()
	if err := c.sessions.Write(ctx, s); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	slog.Info("session started", "op", op, "user_id", s.ID, "role", s.Role)
	return s, nil
}

// Logout drops the local session. Tokens are stateless JWTs so the backend
// is not called.
func (c *Client) Logout(ctx context.Context) error {
	return c.sessions.Clear(ctx)
}

// CurrentUser returns the stored session, nil when anonymous.
func (c *Client) CurrentUser(ctx context.Context) (*session.Session, error) {
	return c.sessions.Read(ctx)
}

func (c *Client) IsAuthenticated(ctx context.Context) (bool, error) {
	s, err := c.sessions.Read(ctx)
	if err != nil {
		return false, err
	}
	return auth.IsAuthenticated(s), nil
}

func (c *Client) HasRole(ctx context.Context, role session.Role) (bool, error) {
	s, err := c.sessions.Read(ctx)
	if err != nil {
		return false, err
	}
	return auth.HasRole(s, role), nil
}

// IsInvalidCredentials reports whether err is a rejected login.
func IsInvalidCredentials(err error) bool {
	return errors.Is(err, ErrInvalidCredentials)
}
