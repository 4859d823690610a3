package api

import (
	"context"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/loganlanou/ciber-client/internal/api/apitest"
	"github.com/loganlanou/ciber-client/internal/session"
	"github.com/loganlanou/ciber-client/storage"
	"github.com/stretchr/testify/require"
)

// setupTestClient wires a client to a fresh fake backend and an in-memory
// session store.
func setupTestClient(t *testing.T) (*Client, *apitest.Backend, *storage.Storage) {
	t.Helper()

	store, cleanup, err := storage.NewTestDB()
	require.NoError(t, err)
	t.Cleanup(cleanup)

	backend := apitest.New(t)
	client := NewClient(Config{BaseURL: backend.URL() + "/"}, session.NewManager(store))
	return client, backend, store
}

type testAccount struct {
	*apitest.Account
	Password string
}

func createTestAccount(t *testing.T, backend *apitest.Backend, role string) testAccount {
	t.Helper()

	password := gofakeit.Password(true, true, true, false, false, 10)
	acct := backend.AddAccount(gofakeit.Name(), gofakeit.Email(), password, role)
	return testAccount{Account: acct, Password: password}
}

// loginAs creates an account with role and logs the client in as it.
func loginAs(t *testing.T, client *Client, backend *apitest.Backend, role string) testAccount {
	t.Helper()

	acct := createTestAccount(t, backend, role)
	_, err := client.Login(context.Background(), LoginCredentials{Email: acct.Email, Password: acct.Password})
	require.NoError(t, err)
	return acct
}
