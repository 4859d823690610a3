package session

import (
	"context"
	"errors"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/loganlanou/ciber-client/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) (*Manager, *storage.Storage) {
	t.Helper()

	store, cleanup, err := storage.NewTestDB()
	require.NoError(t, err)
	t.Cleanup(cleanup)

	return NewManager(store), store
}

func fakeSession() *Session {
	return &Session{
		ID:        ID(gofakeit.DigitN(4)),
		Name:      gofakeit.Name(),
		Email:     gofakeit.Email(),
		Role:      RoleProgrammer,
		Token:     gofakeit.LetterN(40),
		ImageURL:  gofakeit.URL(),
		CreatedAt: "2025-01-02T10:00:00Z",
		UpdatedAt: "2025-02-03T11:00:00Z",
	}
}

func TestRead_NothingStored(t *testing.T) {
	m, _ := newTestManager(t)

	s, err := m.Read(context.Background())

	assert.NoError(t, err)
	assert.Nil(t, s)
}

func TestWriteRead_RoundTrip(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()
	want := fakeSession()

	require.NoError(t, m.Write(ctx, want))
	got, err := m.Read(ctx)

	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, *want, *got)
}

func TestWrite_ReplacesPrevious(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	require.NoError(t, m.Write(ctx, fakeSession()))
	second := fakeSession()
	require.NoError(t, m.Write(ctx, second))

	got, err := m.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, second.Token, got.Token)
}

func TestClear_AlwaysAnonymous(t *testing.T) {
	tests := []struct {
		name  string
		setup func(ctx context.Context, m *Manager, store *storage.Storage)
	}{
		{name: "empty_store", setup: func(context.Context, *Manager, *storage.Storage) {}},
		{name: "valid_session", setup: func(ctx context.Context, m *Manager, _ *storage.Storage) {
			_ = m.Write(ctx, fakeSession())
		}},
		{name: "corrupt_session", setup: func(ctx context.Context, _ *Manager, store *storage.Storage) {
			_ = store.Set(ctx, SessionKey, "{not json")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, store := newTestManager(t)
			ctx := context.Background()
			tt.setup(ctx, m, store)

			require.NoError(t, m.Clear(ctx))
			require.NoError(t, m.Clear(ctx))

			s, err := m.Read(ctx)
			assert.NoError(t, err)
			assert.Nil(t, s)
		})
	}
}

func TestRead_CorruptFailsLoudly(t *testing.T) {
	m, store := newTestManager(t)
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, SessionKey, `{"id": "1", "token": `))

	s, err := m.Read(ctx)

	assert.Nil(t, s)
	assert.True(t, errors.Is(err, ErrCorruptSession))
}

func TestRead_PartialAccepted(t *testing.T) {
	m, store := newTestManager(t)
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, SessionKey, `{"token":"abc"}`))

	s, err := m.Read(ctx)

	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, "abc", s.Token)
	assert.Empty(t, s.ID)
	assert.Empty(t, s.Role)
}

func TestRead_NumericID(t *testing.T) {
	m, store := newTestManager(t)
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, SessionKey, `{"id":42,"name":"Ana","role":"user","token":"t"}`))

	s, err := m.Read(ctx)

	require.NoError(t, err)
	assert.Equal(t, ID("42"), s.ID)
}

func TestUnavailableStore(t *testing.T) {
	m := NewManager(nil)
	ctx := context.Background()

	assert.False(t, m.Available())
	assert.NoError(t, m.Write(ctx, fakeSession()))
	assert.NoError(t, m.Clear(ctx))

	s, err := m.Read(ctx)
	assert.NoError(t, err)
	assert.Nil(t, s)
}

func TestRefresh_PreservesToken(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()
	original := fakeSession()
	require.NoError(t, m.Write(ctx, original))

	merged, err := m.Refresh(ctx, Update{
		Name:      "Renamed",
		Role:      "ADMIN",
		UpdatedAt: "2026-01-01T00:00:00Z",
	})
	require.NoError(t, err)

	assert.Equal(t, original.Token, merged.Token)
	assert.Equal(t, "Renamed", merged.Name)
	assert.Equal(t, RoleAdmin, merged.Role)
	assert.Equal(t, original.Email, merged.Email)
	assert.Equal(t, "2026-01-01T00:00:00Z", merged.UpdatedAt)

	stored, err := m.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, *merged, *stored)
}

func TestRefresh_KeepsRoleWhenMissing(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()
	require.NoError(t, m.Write(ctx, fakeSession()))

	merged, err := m.Refresh(ctx, Update{Email: "new@example.com"})

	require.NoError(t, err)
	assert.Equal(t, RoleProgrammer, merged.Role)
	assert.Equal(t, "new@example.com", merged.Email)
}

func TestRefresh_NoSession(t *testing.T) {
	m, _ := newTestManager(t)

	_, err := m.Refresh(context.Background(), Update{Name: "x"})

	assert.ErrorIs(t, err, ErrNoSession)
}

func TestParseRole(t *testing.T) {
	assert.Equal(t, RoleProgrammer, ParseRole("PROGRAMMER"))
	assert.Equal(t, RoleAdmin, ParseRole(" Admin "))
	assert.Equal(t, RoleUser, ParseRole("user"))
}
