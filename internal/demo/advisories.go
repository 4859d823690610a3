package demo

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/loganlanou/ciber-client/internal/auth"
	"github.com/loganlanou/ciber-client/internal/session"
	"github.com/loganlanou/ciber-client/internal/utils"
)

type AdvisoryStatus string

const (
	StatusPending  AdvisoryStatus = "pending"
	StatusAccepted AdvisoryStatus = "accepted"
	StatusRejected AdvisoryStatus = "rejected"
)

type Advisory struct {
	ID             string         `json:"id"`
	ProgrammerID   session.ID     `json:"programmerId"`
	UserID         session.ID     `json:"userId"`
	UserName       string         `json:"userName"`
	ProgrammerName string         `json:"programmerName"`
	Status         AdvisoryStatus `json:"status"`
	Message        string         `json:"message,omitempty"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      *time.Time     `json:"updatedAt,omitempty"`
}

type AdvisoryRequest struct {
	ProgrammerID   session.ID
	ProgrammerName string
	Message        string
}

// AdvisoryBoard is an in-process advisory list. Nothing is persisted.
type AdvisoryBoard struct {
	sessions   *session.Manager
	now        func() time.Time
	mu         sync.RWMutex
	advisories []Advisory
}

func NewAdvisoryBoard(sessions *session.Manager) *AdvisoryBoard {
	return &AdvisoryBoard{sessions: sessions, now: time.Now}
}

// Create files a pending advisory from the current session.
func (b *AdvisoryBoard) Create(ctx context.Context, req AdvisoryRequest) (*Advisory, error) {
	current, err := b.current(ctx)
	if err != nil {
		return nil, err
	}

	advisory := Advisory{
		ID:             utils.GenerateID(),
		ProgrammerID:   req.ProgrammerID,
		UserID:         current.ID,
		UserName:       current.Name,
		ProgrammerName: req.ProgrammerName,
		Status:         StatusPending,
		Message:        req.Message,
		CreatedAt:      b.now(),
	}

	b.mu.Lock()
	b.advisories = append(b.advisories, advisory)
	b.mu.Unlock()

	return &advisory, nil
}

// ListAll returns every advisory. Admin only.
func (b *AdvisoryBoard) ListAll(ctx context.Context) ([]Advisory, error) {
	current, err := b.current(ctx)
	if err != nil {
		return nil, err
	}
	if !auth.IsAdmin(current) {
		return nil, ErrForbidden
	}

	return b.filter(func(Advisory) bool { return true }), nil
}

// ListMine returns advisories the current session requested or received.
func (b *AdvisoryBoard) ListMine(ctx context.Context) ([]Advisory, error) {
	current, err := b.current(ctx)
	if err != nil {
		return nil, err
	}

	return b.filter(func(a Advisory) bool {
		return a.UserID == current.ID || a.ProgrammerID == current.ID
	}), nil
}

// UpdateStatus accepts or rejects an advisory. Only the receiving programmer
// or an admin may do so.
func (b *AdvisoryBoard) UpdateStatus(ctx context.Context, id string, status AdvisoryStatus) (*Advisory, error) {
	if status != StatusAccepted && status != StatusRejected {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	current, err := b.current(ctx)
	if err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for i := range b.advisories {
		a := &b.advisories[i]
		if a.ID != id {
			continue
		}
		if !auth.CanManage(current, a.ProgrammerID) {
			return nil, fmt.Errorf("advisory %s: %w", id, ErrForbidden)
		}

		now := b.now()
		a.Status = status
		a.UpdatedAt = &now

		updated := *a
		return &updated, nil
	}
	return nil, fmt.Errorf("advisory %s: %w", id, ErrNotFound)
}

func (b *AdvisoryBoard) filter(keep func(Advisory) bool) []Advisory {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]Advisory, 0, len(b.advisories))
	for _, a := range b.advisories {
		if keep(a) {
			out = append(out, a)
		}
	}
	return out
}

func (b *AdvisoryBoard) current(ctx context.Context) (*session.Session, error) {
	current, err := b.sessions.Read(ctx)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, ErrNotLoggedIn
	}
	return current, nil
}
