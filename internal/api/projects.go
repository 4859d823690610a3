package api

import (
	"context"
	"net/http"
)

type Project struct {
	ID          int64    `json:"id"`
	UserID      int64    `json:"userId"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Type        string   `json:"type"`
	Techs       []string `json:"techs"`
	RepoURL     string   `json:"repoUrl"`
	DeployURL   string   `json:"deployUrl"`
	ImageURL    string   `json:"imageUrl,omitempty"`
	Role        string   `json:"role,omitempty"`
	CreatedAt   string   `json:"createdAt,omitempty"`
	UpdatedAt   string   `json:"updatedAt,omitempty"`
}

type CreateProjectData struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Type        string   `json:"type"`
	Techs       []string `json:"techs"`
	RepoURL     string   `json:"repoUrl"`
	DeployURL   string   `json:"deployUrl"`
	ImageURL    string   `json:"imageUrl,omitempty"`
	Role        string   `json:"role,omitempty"`
}

// ProjectPatch is a partial update; nil fields are not sent.
type ProjectPatch struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Type        *string  `json:"type,omitempty"`
	Techs       []string `json:"techs,omitempty"`
	RepoURL     *string  `json:"repoUrl,omitempty"`
	DeployURL   *string  `json:"deployUrl,omitempty"`
	ImageURL    *string  `json:"imageUrl,omitempty"`
	Role        *string  `json:"role,omitempty"`
}

// GetMyProjects lists the projects of the session holder.
func (c *Client) GetMyProjects(ctx context.Context) ([]Project, error) {
	const op = "get my projects"
	if _, err := c.requireSession(ctx, op); err != nil {
		return nil, err
	}
	return list[Project](ctx, c, op, pathMyProjects)
}

func (c *Client) ListProjects(ctx context.Context) ([]Project, error) {
	return list[Project](ctx, c, "list projects", pathProjects)
}

func (c *Client) GetProjectsByUser(ctx context.Context, userID int64) ([]Project, error) {
	return list[Project](ctx, c, "get user projects", projectsByUserPath(userID))
}

func (c *Client) GetProject(ctx context.Context, id int64) (*Project, error) {
	var project Project
	if err := c.send(ctx, "get project", http.MethodGet, projectPath(id), nil, &project, nil); err != nil {
		return nil, err
	}
	return &project, nil
}

func (c *Client) CreateProject(ctx context.Context, data CreateProjectData) (*Project, error) {
	const op = "create project"
	if _, err := c.requireSession(ctx, op); err != nil {
		return nil, err
	}

	var project Project
	if err := c.send(ctx, op, http.MethodPost, pathProjects, data, &project, nil); err != nil {
		return nil, err
	}
	return &project, nil
}

func (c *Client) UpdateProject(ctx context.Context, id int64, patch ProjectPatch) (*Project, error) {
	const op = "update project"
	if _, err := c.requireSession(ctx, op); err != nil {
		return nil, err
	}

	var project Project
	if err := c.send(ctx, op, http.MethodPut, projectPath(id), patch, &project, nil); err != nil {
		return nil, err
	}
	return &project, nil
}

func (c *Client) DeleteProject(ctx context.Context, id int64) error {
	const op = "delete project"
	if _, err := c.requireSession(ctx, op); err != nil {
		return err
	}
	return c.send(ctx, op, http.MethodDelete, projectPath(id), nil, nil, nil)
}
