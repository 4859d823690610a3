package api

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/loganlanou/ciber-client/internal/auth"
	"github.com/loganlanou/ciber-client/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListOperations_DegradeToEmpty(t *testing.T) {
	lists := []struct {
		name  string
		fetch func(ctx context.Context, c *Client) (int, error)
	}{
		{"list_profiles", func(ctx context.Context, c *Client) (int, error) {
			items, err := c.ListProfiles(ctx)
			return lenNonNil(items), err
		}},
		{"schedules_by_programmer", func(ctx context.Context, c *Client) (int, error) {
			items, err := c.GetSchedulesByProgrammer(ctx, 1)
			return lenNonNil(items), err
		}},
		{"list_schedules", func(ctx context.Context, c *Client) (int, error) {
			items, err := c.ListSchedules(ctx)
			return lenNonNil(items), err
		}},
		{"advisories_by_programmer", func(ctx context.Context, c *Client) (int, error) {
			items, err := c.GetAdvisoriesByProgrammer(ctx, 1)
			return lenNonNil(items), err
		}},
		{"advisories_by_user", func(ctx context.Context, c *Client) (int, error) {
			items, err := c.GetAdvisoriesByUser(ctx, 1)
			return lenNonNil(items), err
		}},
		{"projects_by_user", func(ctx context.Context, c *Client) (int, error) {
			items, err := c.GetProjectsByUser(ctx, 1)
			return lenNonNil(items), err
		}},
		{"list_projects", func(ctx context.Context, c *Client) (int, error) {
			items, err := c.ListProjects(ctx)
			return lenNonNil(items), err
		}},
		{"my_projects", func(ctx context.Context, c *Client) (int, error) {
			items, err := c.GetMyProjects(ctx)
			return lenNonNil(items), err
		}},
		{"list_users", func(ctx context.Context, c *Client) (int, error) {
			items, err := c.ListUsers(ctx)
			return lenNonNil(items), err
		}},
	}

	statuses := []int{http.StatusInternalServerError, http.StatusNotFound, http.StatusUnauthorized}

	for _, tt := range lists {
		for _, status := range statuses {
			t.Run(tt.name+"_"+http.StatusText(status), func(t *testing.T) {
				client, backend, _ := setupTestClient(t)
				loginAs(t, client, backend, "ADMIN")
				backend.Fail(status)

				n, err := tt.fetch(context.Background(), client)

				assert.NoError(t, err)
				assert.Equal(t, 0, n)
			})
		}
	}
}

// lenNonNil returns -1 for a nil slice so callers can tell empty from nil.
func lenNonNil[T any](items []T) int {
	if items == nil {
		return -1
	}
	return len(items)
}

func TestListOperations_DegradeOnConnectionFailure(t *testing.T) {
	client, backend, _ := setupTestClient(t)
	backend.Server.Close()

	profiles, err := client.ListProfiles(context.Background())

	assert.NoError(t, err)
	assert.NotNil(t, profiles)
	assert.Empty(t, profiles)
}

func TestProgrammerStats_ZeroOnFailure(t *testing.T) {
	client, backend, _ := setupTestClient(t)
	backend.Fail(http.StatusBadGateway)

	stats, err := client.GetProgrammerStats(context.Background(), 5)

	require.NoError(t, err)
	assert.Equal(t, AdvisoryStats{}, *stats)
}

func TestMutatingOperations_FailLoudly(t *testing.T) {
	ops := []struct {
		name string
		call func(ctx context.Context, c *Client) error
	}{
		{"create_project", func(ctx context.Context, c *Client) error {
			p, err := c.CreateProject(ctx, CreateProjectData{Name: "x"})
			assert.Nil(t, p)
			return err
		}},
		{"update_project", func(ctx context.Context, c *Client) error {
			p, err := c.UpdateProject(ctx, 1, ProjectPatch{Name: strPtr("y")})
			assert.Nil(t, p)
			return err
		}},
		{"delete_project", func(ctx context.Context, c *Client) error {
			return c.DeleteProject(ctx, 1)
		}},
		{"create_advisory", func(ctx context.Context, c *Client) error {
			a, err := c.CreateAdvisory(ctx, CreateAdvisoryRequest{ProgrammerID: 1})
			assert.Nil(t, a)
			return err
		}},
		{"update_advisory_status", func(ctx context.Context, c *Client) error {
			a, err := c.UpdateAdvisoryStatus(ctx, 1, AdvisoryRejected)
			assert.Nil(t, a)
			return err
		}},
		{"create_schedule", func(ctx context.Context, c *Client) error {
			s, err := c.CreateSchedule(ctx, CreateScheduleRequest{ProgrammerID: 1})
			assert.Nil(t, s)
			return err
		}},
		{"delete_schedule", func(ctx context.Context, c *Client) error {
			return c.DeleteSchedule(ctx, 1)
		}},
		{"save_profile", func(ctx context.Context, c *Client) error {
			p, err := c.SaveProfile(ctx, UpdateProfileData{Bio: "x"})
			assert.Nil(t, p)
			return err
		}},
		{"delete_profile", func(ctx context.Context, c *Client) error {
			return c.DeleteProfile(ctx)
		}},
		{"update_user", func(ctx context.Context, c *Client) error {
			s, err := c.UpdateUser(ctx, UpdateUserData{Name: "x"})
			assert.Nil(t, s)
			return err
		}},
		{"delete_user", func(ctx context.Context, c *Client) error {
			return c.DeleteUser(ctx, "1")
		}},
		{"update_user_role", func(ctx context.Context, c *Client) error {
			u, err := c.UpdateUserRole(ctx, "1", "admin")
			assert.Nil(t, u)
			return err
		}},
	}

	for _, tt := range ops {
		t.Run(tt.name, func(t *testing.T) {
			client, backend, _ := setupTestClient(t)
			loginAs(t, client, backend, "ADMIN")
			backend.Fail(http.StatusInternalServerError)

			err := tt.call(context.Background(), client)

			require.Error(t, err)
			assert.ErrorIs(t, err, ErrServer)
			assert.Equal(t, http.StatusInternalServerError, StatusCode(err))
			assert.Contains(t, err.Error(), "simulated failure")
		})
	}
}

func TestRequests_CarryBearerOnlyWithSession(t *testing.T) {
	client, backend, _ := setupTestClient(t)
	ctx := context.Background()

	_, err := client.ListSchedules(ctx)
	require.NoError(t, err)
	assert.Empty(t, backend.LastRequest().Authorization)

	loginAs(t, client, backend, "USER")
	s, err := client.CurrentUser(ctx)
	require.NoError(t, err)

	_, err = client.ListSchedules(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Bearer "+s.Token, backend.LastRequest().Authorization)
}

func TestRequests_CorruptSessionIsNotSwallowed(t *testing.T) {
	client, backend, store := setupTestClient(t)
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, session.SessionKey, "not-json"))

	items, err := client.ListProfiles(ctx)

	assert.Nil(t, items)
	assert.ErrorIs(t, err, session.ErrCorruptSession)
	assert.Empty(t, backend.Requests())
}

func TestAuthenticatedOperations_RequireSession(t *testing.T) {
	client, backend, _ := setupTestClient(t)
	ctx := context.Background()

	_, err := client.GetMyProjects(ctx)
	assert.ErrorIs(t, err, auth.ErrNotAuthenticated)
	_, err = client.GetMyProfile(ctx)
	assert.ErrorIs(t, err, auth.ErrNotAuthenticated)
	assert.ErrorIs(t, client.DeleteProfile(ctx), auth.ErrNotAuthenticated)
	_, err = client.CreateProject(ctx, CreateProjectData{Name: "x"})
	assert.ErrorIs(t, err, auth.ErrNotAuthenticated)

	assert.Empty(t, backend.Requests())
}

func TestListOperations_CancelledContext(t *testing.T) {
	client, _, _ := setupTestClient(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.ListProfiles(ctx)

	assert.True(t, errors.Is(err, context.Canceled))
}

func TestNewClient_Defaults(t *testing.T) {
	client := NewClient(Config{}, session.NewManager(nil))

	assert.Equal(t, DefaultBaseURL, client.GetBaseURL())
	assert.Equal(t, defaultTimeout, client.httpClient.Timeout)

	custom := NewClient(Config{BaseURL: "http://localhost:8080/", Timeout: 5 * time.Second}, session.NewManager(nil))
	assert.Equal(t, "http://localhost:8080", custom.GetBaseURL())
	assert.Equal(t, 5*time.Second, custom.httpClient.Timeout)
}

func TestError_Message(t *testing.T) {
	err := &Error{Op: "get profile", StatusCode: http.StatusNotFound, Kind: ErrProfileNotFound}

	assert.Equal(t, "get profile: profile not found (API error 404: Not Found)", err.Error())
	assert.ErrorIs(t, err, ErrProfileNotFound)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrServer)
}
