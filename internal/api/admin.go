package api

import (
	"context"
	"net/http"
	"strings"
)

// ListUsers returns every account. Admin only.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	const op = "list users"
	if _, err := c.requireSession(ctx, op); err != nil {
		return nil, err
	}
	return list[User](ctx, c, op, pathUsers)
}

// UpdateUserRole sets the role of account id. The backend expects the role
// upper-cased.
func (c *Client) UpdateUserRole(ctx context.Context, id, role string) (*User, error) {
	const op = "update user role"
	if _, err := c.requireSession(ctx, op); err != nil {
		return nil, err
	}

	var user User
	path := withQuery(userRolePath(id), "role", strings.ToUpper(role))
	if err := c.send(ctx, op, http.MethodPut, path, nil, &user, nil); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	const op = "delete user"
	if _, err := c.requireSession(ctx, op); err != nil {
		return err
	}
	return c.send(ctx, op, http.MethodDelete, userPath(id), nil, nil, nil)
}
