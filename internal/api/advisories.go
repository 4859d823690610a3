package api

import (
	"context"
	"log/slog"
	"net/http"
)

type AdvisoryStatus string

const (
	AdvisoryPending   AdvisoryStatus = "PENDING"
	AdvisoryAccepted  AdvisoryStatus = "ACCEPTED"
	AdvisoryRejected  AdvisoryStatus = "REJECTED"
	AdvisoryCompleted AdvisoryStatus = "COMPLETED"
)

type Modality string

const (
	ModalityVirtual    Modality = "VIRTUAL"
	ModalityPresencial Modality = "PRESENCIAL"
)

type Advisory struct {
	ID             int64          `json:"id,omitempty"`
	ProgrammerID   int64          `json:"programmerId"`
	ProgrammerName string         `json:"programmerName,omitempty"`
	UserID         int64          `json:"userId"`
	UserName       string         `json:"userName,omitempty"`
	Status         AdvisoryStatus `json:"status"`
	Message        string         `json:"message"`
	Date           string         `json:"date"`
	Time           string         `json:"time"`
	Modality       Modality       `json:"modality"`
}

// CreateAdvisoryRequest books an advisory with a programmer. Zero fields
// are left for the backend to fill.
type CreateAdvisoryRequest struct {
	ProgrammerID int64    `json:"programmerId"`
	UserID       int64    `json:"userId,omitempty"`
	Message      string   `json:"message,omitempty"`
	Date         string   `json:"date,omitempty"`
	Time         string   `json:"time,omitempty"`
	Modality     Modality `json:"modality,omitempty"`
}

type AdvisoryStats struct {
	Total      int64 `json:"total"`
	Pending    int64 `json:"pending"`
	Accepted   int64 `json:"accepted"`
	Rejected   int64 `json:"rejected"`
	Completed  int64 `json:"completed"`
	Virtual    int64 `json:"virtual"`
	Presencial int64 `json:"presencial"`
}

// CreateAdvisory sends the session token when there is one.
func (c *Client) CreateAdvisory(ctx context.Context, req CreateAdvisoryRequest) (*Advisory, error) {
	var advisory Advisory
	if err := c.send(ctx, "create advisory", http.MethodPost, pathAdvisories, req, &advisory, nil); err != nil {
		return nil, err
	}
	return &advisory, nil
}

func (c *Client) GetAdvisoriesByProgrammer(ctx context.Context, programmerID int64) ([]Advisory, error) {
	return list[Advisory](ctx, c, "get programmer advisories", advisoriesByProgrammerPath(programmerID))
}

func (c *Client) GetAdvisoriesByUser(ctx context.Context, userID int64) ([]Advisory, error) {
	return list[Advisory](ctx, c, "get user advisories", advisoriesByUserPath(userID))
}

func (c *Client) UpdateAdvisoryStatus(ctx context.Context, id int64, status AdvisoryStatus) (*Advisory, error) {
	var advisory Advisory
	path := withQuery(advisoryStatusPath(id), "status", string(status))
	if err := c.send(ctx, "update advisory status", http.MethodPut, path, nil, &advisory, nil); err != nil {
		return nil, err
	}
	return &advisory, nil
}

// GetProgrammerStats feeds the programmer dashboard. Failures yield zero
// counts, like the list operations.
func (c *Client) GetProgrammerStats(ctx context.Context, programmerID int64) (*AdvisoryStats, error) {
	const op = "get programmer stats"

	var stats AdvisoryStats
	err := c.send(ctx, op, http.MethodGet, programmerStatsPath(programmerID), nil, &stats, nil)
	if err == nil {
		return &stats, nil
	}
	if isLocal(err) || ctx.Err() != nil {
		return nil, err
	}

	slog.Warn("stats request failed, returning zero stats", "op", op, "programmer_id", programmerID, "error", err)
	return &AdvisoryStats{}, nil
}
