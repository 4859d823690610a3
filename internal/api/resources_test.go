package api

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestProjects_Lifecycle(t *testing.T) {
	client, backend, _ := setupTestClient(t)
	ctx := context.Background()
	acct := loginAs(t, client, backend, "PROGRAMMER")

	created, err := client.CreateProject(ctx, CreateProjectData{
		Name:        "Portfolio",
		Description: "Personal site",
		Type:        "Profesional",
		Techs:       []string{"Go", "Astro"},
		RepoURL:     "https://github.com/ana/portfolio",
		DeployURL:   "https://ana.dev",
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, acct.ID, created.UserID)
	assert.Equal(t, []string{"Go", "Astro"}, created.Techs)

	mine, err := client.GetMyProjects(ctx)
	require.NoError(t, err)
	require.Len(t, mine, 1)

	public, err := client.GetProjectsByUser(ctx, acct.ID)
	require.NoError(t, err)
	assert.Equal(t, mine, public)

	updated, err := client.UpdateProject(ctx, created.ID, ProjectPatch{Description: strPtr("Rebuilt in Go")})
	require.NoError(t, err)
	assert.Equal(t, "Rebuilt in Go", updated.Description)
	assert.Equal(t, "Portfolio", updated.Name, "fields absent from the patch are kept")

	fetched, err := client.GetProject(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rebuilt in Go", fetched.Description)

	require.NoError(t, client.DeleteProject(ctx, created.ID))

	_, err = client.GetProject(ctx, created.ID)
	assert.True(t, IsNotFound(err))

	all, err := client.ListProjects(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
	assert.NotNil(t, all)
}

func TestAdvisories_Lifecycle(t *testing.T) {
	client, backend, _ := setupTestClient(t)
	ctx := context.Background()
	programmer := createTestAccount(t, backend, "PROGRAMMER")
	user := loginAs(t, client, backend, "USER")

	advisory, err := client.CreateAdvisory(ctx, CreateAdvisoryRequest{
		ProgrammerID: programmer.ID,
		Message:      "Need help with goroutines",
		Date:         "2026-10-20",
		Time:         "10:00",
		Modality:     ModalityVirtual,
	})
	require.NoError(t, err)
	assert.Equal(t, AdvisoryPending, advisory.Status)
	assert.Equal(t, user.ID, advisory.UserID, "backend fills the user from the token")
	assert.Equal(t, programmer.Name, advisory.ProgrammerName)

	byProgrammer, err := client.GetAdvisoriesByProgrammer(ctx, programmer.ID)
	require.NoError(t, err)
	require.Len(t, byProgrammer, 1)

	byUser, err := client.GetAdvisoriesByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, byProgrammer, byUser)

	accepted, err := client.UpdateAdvisoryStatus(ctx, advisory.ID, AdvisoryAccepted)
	require.NoError(t, err)
	assert.Equal(t, AdvisoryAccepted, accepted.Status)
	assert.Equal(t, "status=ACCEPTED", backend.LastRequest().Query)

	stats, err := client.GetProgrammerStats(ctx, programmer.ID)
	require.NoError(t, err)
	assert.Equal(t, AdvisoryStats{Total: 1, Accepted: 1, Virtual: 1}, *stats)
}

func TestSchedules_Lifecycle(t *testing.T) {
	client, backend, _ := setupTestClient(t)
	ctx := context.Background()
	programmer := loginAs(t, client, backend, "PROGRAMMER")

	created, err := client.CreateSchedule(ctx, CreateScheduleRequest{
		ProgrammerID: programmer.ID,
		Date:         "2026-10-21",
		Time:         "15:30",
		Modality:     ModalityPresencial,
	})
	require.NoError(t, err)
	assert.Equal(t, programmer.Name, created.ProgrammerName)
	assert.Equal(t, ModalityPresencial, created.Modality)

	all, err := client.ListSchedules(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	mine, err := client.GetSchedulesByProgrammer(ctx, programmer.ID)
	require.NoError(t, err)
	assert.Equal(t, all, mine)

	require.NoError(t, client.DeleteSchedule(ctx, created.ID))
	assert.ErrorIs(t, client.DeleteSchedule(ctx, created.ID), ErrNotFound)
}

func TestProfiles_Lifecycle(t *testing.T) {
	client, backend, _ := setupTestClient(t)
	ctx := context.Background()
	acct := loginAs(t, client, backend, "PROGRAMMER")

	_, err := client.GetMyProfile(ctx)
	assert.ErrorIs(t, err, ErrProfileNotFound)
	assert.ErrorIs(t, err, ErrNotFound)

	years := 4
	saved, err := client.SaveProfile(ctx, UpdateProfileData{
		JobTitle:        "Backend Developer",
		Skills:          []string{"Go", "PostgreSQL"},
		YearsExperience: &years,
	})
	require.NoError(t, err)
	assert.Equal(t, acct.ID, saved.UserID)
	assert.Equal(t, acct.Email, saved.UserEmail)

	updated, err := client.UpdateProfile(ctx, UpdateProfileData{Bio: "Gopher"})
	require.NoError(t, err)
	assert.Equal(t, saved.ID, updated.ID, "second save updates the same profile")
	assert.Equal(t, "Backend Developer", updated.JobTitle)
	require.NotNil(t, updated.YearsExperience)
	assert.Equal(t, 4, *updated.YearsExperience)

	mine, err := client.GetMyProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Gopher", mine.Bio)

	public, err := client.GetProfileByUser(ctx, acct.ID)
	require.NoError(t, err)
	assert.Equal(t, mine, public)

	all, err := client.ListProfiles(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, client.DeleteProfile(ctx))
	_, err = client.GetProfileByUser(ctx, acct.ID)
	assert.ErrorIs(t, err, ErrProfileNotFound)
}
