package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"

	"github.com/loganlanou/ciber-client/internal/auth"
	"github.com/loganlanou/ciber-client/internal/session"
)

// User is an account as the backend lists it.
type User struct {
	ID        session.ID `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	ImageURL  string     `json:"imageUrl,omitempty"`
	CreatedAt string     `json:"createdAt,omitempty"`
	UpdatedAt string     `json:"updatedAt,omitempty"`
}

type UpdateUserData struct {
	Name            string `json:"name,omitempty"`
	CurrentPassword string `json:"currentPassword,omitempty"`
	NewPassword     string `json:"newPassword,omitempty"`
}

// GetMyUser fetches the full account of the session holder and refreshes
// the stored session with it.
func (c *Client) GetMyUser(ctx context.Context) (*session.Session, error) {
	const op = "get current user"
	if _, err := c.requireSession(ctx, op); err != nil {
		return nil, err
	}

	var fresh session.Update
	if err := c.send(ctx, op, http.MethodGet, pathMe, nil, &fresh, nil); err != nil {
		return nil, err
	}
	return c.refresh(ctx, op, fresh)
}

// UpdateUser changes the name and/or password of the session holder.
func (c *Client) UpdateUser(ctx context.Context, data UpdateUserData) (*session.Session, error) {
	const op = "update user"
	if _, err := c.requireSession(ctx, op); err != nil {
		return nil, err
	}

	var fresh session.Update
	err := c.send(ctx, op, http.MethodPut, pathMe, data, &fresh, func(e *Error) {
		if e.Message == "" {
			e.Message = "failed to update profile"
		}
	})
	if err != nil {
		return nil, err
	}
	return c.refresh(ctx, op, fresh)
}

// UpdateProfileImage uploads a new avatar as multipart field "file".
func (c *Client) UpdateProfileImage(ctx context.Context, filename string, image io.Reader) (*session.Session, error) {
	const op = "upload profile image"
	if _, err := c.requireSession(ctx, op); err != nil {
		return nil, err
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filepath.Base(filename))
	if err != nil {
		return nil, fmt.Errorf("%s: create form file: %w", op, err)
	}
	if _, err := io.Copy(part, image); err != nil {
		return nil, fmt.Errorf("%s: copy file content: %w", op, err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("%s: close multipart writer: %w", op, err)
	}

	resp, err := c.doRequest(ctx, http.MethodPost, pathMeImage, &body, auth.MultipartBody, writer.FormDataContentType())
	if err != nil {
		return nil, wrapOp(op, err)
	}
	defer resp.Body.Close()

	var fresh session.Update
	if err := c.handle(op, resp, &fresh, nil); err != nil {
		return nil, err
	}
	return c.refresh(ctx, op, fresh)
}

func (c *Client) refresh(ctx context.Context, op string, fresh session.Update) (*session.Session, error) {
	s, err := c.sessions.Refresh(ctx, fresh)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return s, nil
}
