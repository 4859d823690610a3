package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
)

const (
	// SessionKey holds the serialized Session.
	SessionKey = "ciber_user"
	// ProjectsKey holds the serialized demo project list.
	ProjectsKey = "ciber_projects"
)

// Store is the persistent key/value storage a Manager writes through.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Manager owns the single persisted session. A Manager built over a nil
// Store behaves as if persistent storage is unavailable: reads are anonymous
// and writes are dropped.
type Manager struct {
	store Store
}

// NewManager creates a new session manager
func NewManager(store Store) *Manager {
	return &Manager{store: store}
}

// Available reports whether a persistent store backs the manager.
func (m *Manager) Available() bool {
	return m != nil && m.store != nil
}

// Store returns the backing key/value store, nil when unavailable.
func (m *Manager) Store() Store {
	if !m.Available() {
		return nil
	}
	return m.store
}

// Read returns the stored session, or nil when there is none.
// Malformed JSON yields ErrCorruptSession; missing fields are accepted.
func (m *Manager) Read(ctx context.Context) (*Session, error) {
	if !m.Available() {
		return nil, nil
	}

	raw, ok, err := m.store.Get(ctx, SessionKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	if !ok || raw == "" || raw == "null" {
		return nil, nil
	}

	var s Session
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSession, err)
	}
	return &s, nil
}

// Write replaces the stored session.
func (m *Manager) Write(ctx context.Context, s *Session) error {
	if !m.Available() {
		return nil
	}
	if s == nil {
		return m.Clear(ctx)
	}

	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := m.store.Set(ctx, SessionKey, string(data)); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	slog.Debug("session saved", "user_id", s.ID, "role", s.Role)
	return nil
}

// Clear removes the stored session. Clearing an empty store is a no-op.
func (m *Manager) Clear(ctx context.Context) error {
	if !m.Available() {
		return nil
	}
	if err := m.store.Delete(ctx, SessionKey); err != nil {
		return fmt.Errorf("failed to destroy session: %w", err)
	}
	return nil
}

// Refresh merges u into the stored session and persists the result.
func (m *Manager) Refresh(ctx context.Context, u Update) (*Session, error) {
	current, err := m.Read(ctx)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, ErrNoSession
	}

	merged := current.Merge(u)
	if err := m.Write(ctx, &merged); err != nil {
		return nil, err
	}
	return &merged, nil
}
