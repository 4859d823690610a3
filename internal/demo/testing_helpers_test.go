package demo

import (
	"context"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/loganlanou/ciber-client/internal/session"
	"github.com/loganlanou/ciber-client/storage"
	"github.com/stretchr/testify/require"
)

func newTestSessions(t *testing.T) *session.Manager {
	t.Helper()

	store, cleanup, err := storage.NewTestDB()
	require.NoError(t, err)
	t.Cleanup(cleanup)

	return session.NewManager(store)
}

func loginAs(t *testing.T, m *session.Manager, id string, role session.Role) *session.Session {
	t.Helper()

	s := &session.Session{
		ID:    session.ID(id),
		Name:  gofakeit.Name(),
		Email: gofakeit.Email(),
		Role:  role,
		Token: gofakeit.LetterN(32),
	}
	require.NoError(t, m.Write(context.Background(), s))
	return s
}

func fakeForm() ProjectForm {
	return ProjectForm{
		Name:        gofakeit.AppName(),
		Description: gofakeit.Sentence(8),
		Type:        ProjectProfessional,
		Techs:       []string{"Go", "SQLite"},
		RepoURL:     gofakeit.URL(),
	}
}
