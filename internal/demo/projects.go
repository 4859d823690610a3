package demo

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/loganlanou/ciber-client/internal/auth"
	"github.com/loganlanou/ciber-client/internal/session"
	"github.com/loganlanou/ciber-client/internal/utils"
)

type ProjectType string

const (
	ProjectProfessional ProjectType = "Profesional"
	ProjectAcademic     ProjectType = "Académico"
)

// Project is a locally stored portfolio entry.
type Project struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Type        ProjectType `json:"type"`
	Techs       []string    `json:"techs"`
	ImageURL    string      `json:"imageUrl,omitempty"`
	RepoURL     string      `json:"repoUrl,omitempty"`
	DeployURL   string      `json:"deployUrl,omitempty"`
	OwnerID     session.ID  `json:"ownerId"`
}

type ProjectForm struct {
	Name        string
	Description string
	Type        ProjectType
	Techs       []string
	ImageURL    string
	RepoURL     string
	DeployURL   string
}

// ProjectPatch carries the fields to change; nil fields are left alone.
type ProjectPatch struct {
	Name        *string
	Description *string
	Type        *ProjectType
	Techs       []string
	ImageURL    *string
	RepoURL     *string
	DeployURL   *string
}

func (p ProjectPatch) apply(project *Project) {
	if p.Name != nil {
		project.Name = *p.Name
	}
	if p.Description != nil {
		project.Description = *p.Description
	}
	if p.Type != nil {
		project.Type = *p.Type
	}
	if p.Techs != nil {
		project.Techs = append([]string(nil), p.Techs...)
	}
	if p.ImageURL != nil {
		project.ImageURL = *p.ImageURL
	}
	if p.RepoURL != nil {
		project.RepoURL = *p.RepoURL
	}
	if p.DeployURL != nil {
		project.DeployURL = *p.DeployURL
	}
}

// ProjectStore keeps demo projects under session.ProjectsKey in the same
// key/value store as the session.
type ProjectStore struct {
	sessions *session.Manager
	mu       sync.Mutex
}

func NewProjectStore(sessions *session.Manager) *ProjectStore {
	return &ProjectStore{sessions: sessions}
}

// List returns every stored project.
func (s *ProjectStore) List(ctx context.Context) ([]Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// Get returns the project with id, or nil when there is none.
func (s *ProjectStore) Get(ctx context.Context, id string) (*Project, error) {
	projects, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range projects {
		if projects[i].ID == id {
			return &projects[i], nil
		}
	}
	return nil, nil
}

func (s *ProjectStore) ListByOwner(ctx context.Context, ownerID session.ID) ([]Project, error) {
	projects, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	owned := make([]Project, 0, len(projects))
	for _, p := range projects {
		if p.OwnerID == ownerID {
			owned = append(owned, p)
		}
	}
	return owned, nil
}

// Create stores a new project owned by the current session.
func (s *ProjectStore) Create(ctx context.Context, form ProjectForm) (*Project, error) {
	current, err := s.current(ctx)
	if err != nil {
		return nil, err
	}

	project := Project{
		ID:          utils.GenerateID(),
		Name:        form.Name,
		Description: form.Description,
		Type:        form.Type,
		Techs:       append([]string(nil), form.Techs...),
		ImageURL:    form.ImageURL,
		RepoURL:     form.RepoURL,
		DeployURL:   form.DeployURL,
		OwnerID:     current.ID,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	projects, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.save(ctx, append(projects, project)); err != nil {
		return nil, err
	}

	slog.Debug("demo project created", "id", project.ID, "owner", project.OwnerID)
	return &project, nil
}

// Update applies patch to the project. Only its owner or an admin may do so.
func (s *ProjectStore) Update(ctx context.Context, id string, patch ProjectPatch) (*Project, error) {
	current, err := s.current(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	projects, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	i, err := findManaged(projects, id, current)
	if err != nil {
		return nil, err
	}

	patch.apply(&projects[i])
	if err := s.save(ctx, projects); err != nil {
		return nil, err
	}

	updated := projects[i]
	return &updated, nil
}

// Delete removes the project. Only its owner or an admin may do so.
func (s *ProjectStore) Delete(ctx context.Context, id string) error {
	current, err := s.current(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	projects, err := s.load(ctx)
	if err != nil {
		return err
	}
	i, err := findManaged(projects, id, current)
	if err != nil {
		return err
	}

	return s.save(ctx, append(projects[:i], projects[i+1:]...))
}

func findManaged(projects []Project, id string, current *session.Session) (int, error) {
	for i := range projects {
		if projects[i].ID != id {
			continue
		}
		if !auth.CanManage(current, projects[i].OwnerID) {
			return 0, fmt.Errorf("project %s: %w", id, ErrForbidden)
		}
		return i, nil
	}
	return 0, fmt.Errorf("project %s: %w", id, ErrNotFound)
}

func (s *ProjectStore) current(ctx context.Context) (*session.Session, error) {
	current, err := s.sessions.Read(ctx)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, ErrNotLoggedIn
	}
	return current, nil
}

func (s *ProjectStore) load(ctx context.Context) ([]Project, error) {
	store := s.sessions.Store()
	if store == nil {
		return []Project{}, nil
	}

	raw, ok, err := store.Get(ctx, session.ProjectsKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read projects: %w", err)
	}
	if !ok || raw == "" || raw == "null" {
		return []Project{}, nil
	}

	var projects []Project
	if err := json.Unmarshal([]byte(raw), &projects); err != nil {
		return nil, fmt.Errorf("failed to decode projects: %w", err)
	}
	return projects, nil
}

func (s *ProjectStore) save(ctx context.Context, projects []Project) error {
	store := s.sessions.Store()
	if store == nil {
		return nil
	}

	data, err := json.Marshal(projects)
	if err != nil {
		return fmt.Errorf("failed to encode projects: %w", err)
	}
	if err := store.Set(ctx, session.ProjectsKey, string(data)); err != nil {
		return fmt.Errorf("failed to save projects: %w", err)
	}
	return nil
}
