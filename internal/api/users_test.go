package api

import (
	"context"
	"strconv"
	"strings"
	"testing"

	"github.com/loganlanou/ciber-client/internal/auth"
	"github.com/loganlanou/ciber-client/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetMyUser_RefreshesSessionKeepingToken(t *testing.T) {
	client, backend, _ := setupTestClient(t)
	ctx := context.Background()
	acct := loginAs(t, client, backend, "PROGRAMMER")
	before, err := client.CurrentUser(ctx)
	require.NoError(t, err)

	s, err := client.GetMyUser(ctx)
	require.NoError(t, err)

	assert.Equal(t, before.Token, s.Token)
	assert.Equal(t, acct.CreatedAt, s.CreatedAt, "refresh adds fields missing from the login response")
	assert.Equal(t, session.RoleProgrammer, s.Role)

	req := backend.LastRequest()
	assert.Equal(t, "/api/users/me", req.Path)
	assert.Equal(t, "Bearer "+before.Token, req.Authorization)

	stored, err := client.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, *s, *stored)
}

func TestGetMyUser_NotAuthenticated(t *testing.T) {
	client, backend, _ := setupTestClient(t)

	_, err := client.GetMyUser(context.Background())

	assert.ErrorIs(t, err, auth.ErrNotAuthenticated)
	assert.Empty(t, backend.Requests(), "no request without a token")
}

func TestUpdateUser(t *testing.T) {
	client, backend, _ := setupTestClient(t)
	ctx := context.Background()
	acct := loginAs(t, client, backend, "USER")

	s, err := client.UpdateUser(ctx, UpdateUserData{Name: "Nuevo Nombre"})
	require.NoError(t, err)
	assert.Equal(t, "Nuevo Nombre", s.Name)

	_, err = client.UpdateUser(ctx, UpdateUserData{CurrentPassword: "wrong", NewPassword: "another1"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "current password is incorrect")

	_, err = client.UpdateUser(ctx, UpdateUserData{CurrentPassword: acct.Password, NewPassword: "another1"})
	require.NoError(t, err)
}

func TestUpdateProfileImage(t *testing.T) {
	client, backend, _ := setupTestClient(t)
	ctx := context.Background()
	loginAs(t, client, backend, "PROGRAMMER")
	before, err := client.CurrentUser(ctx)
	require.NoError(t, err)

	s, err := client.UpdateProfileImage(ctx, "/tmp/avatar.png", strings.NewReader("png-bytes"))
	require.NoError(t, err)

	assert.NotEmpty(t, s.ImageURL)
	assert.Equal(t, before.Token, s.Token)
	data, ok := backend.Upload(s.ImageURL)
	require.True(t, ok)
	assert.Equal(t, "png-bytes", string(data))
	assert.True(t, strings.HasSuffix(s.ImageURL, "-avatar.png"))

	req := backend.LastRequest()
	assert.True(t, strings.HasPrefix(req.ContentType, "multipart/form-data; boundary="))
	assert.Equal(t, "Bearer "+before.Token, req.Authorization)
}

func TestAdmin_UserManagement(t *testing.T) {
	client, backend, _ := setupTestClient(t)
	ctx := context.Background()
	loginAs(t, client, backend, "ADMIN")
	target := createTestAccount(t, backend, "USER")
	id := session.ID(strconv.FormatInt(target.ID, 10))

	users, err := client.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	updated, err := client.UpdateUserRole(ctx, id.String(), "programmer")
	require.NoError(t, err)
	assert.Equal(t, "PROGRAMMER", updated.Role)
	assert.Equal(t, "role=PROGRAMMER", backend.LastRequest().Query)

	require.NoError(t, client.DeleteUser(ctx, id.String()))
	_, exists := backend.Account(target.ID)
	assert.False(t, exists)

	err = client.DeleteUser(ctx, id.String())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAdmin_ForbiddenForUsers(t *testing.T) {
	client, backend, _ := setupTestClient(t)
	ctx := context.Background()
	loginAs(t, client, backend, "USER")

	_, err := client.UpdateUserRole(ctx, "1", "admin")

	assert.ErrorIs(t, err, ErrUnauthorized)
}
