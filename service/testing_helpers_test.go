package service

import (
	"context"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/require"

	"github.com/loganlanou/ciber-client/internal/api"
	"github.com/loganlanou/ciber-client/internal/api/apitest"
	"github.com/loganlanou/ciber-client/storage"
)

// setupTestService creates a service against a fake backend and an
// in-memory database.
func setupTestService(t *testing.T) (*Service, *apitest.Backend) {
	t.Helper()

	store, cleanup, err := storage.NewTestDB()
	require.NoError(t, err)
	t.Cleanup(cleanup)

	backend := apitest.New(t)
	svc := New(&Config{
		Environment: "test",
		BaseURL:     backend.URL(),
		APITimeout:  5 * time.Second,
	}, store)
	return svc, backend
}

func loginAs(t *testing.T, svc *Service, backend *apitest.Backend, role string) *apitest.Account {
	t.Helper()

	password := gofakeit.Password(true, true, true, false, false, 10)
	acct := backend.AddAccount(gofakeit.Name(), gofakeit.Email(), password, role)
	_, err := svc.API.Login(context.Background(), api.LoginCredentials{Email: acct.Email, Password: password})
	require.NoError(t, err)
	return acct
}
