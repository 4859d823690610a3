package api

import (
	"context"
	"net/http"
)

type Schedule struct {
	ID             int64    `json:"id"`
	ProgrammerID   int64    `json:"programmerId"`
	ProgrammerName string   `json:"programmerName"`
	Date           string   `json:"date"`
	Time           string   `json:"time"`
	Status         string   `json:"status"`
	Modality       Modality `json:"modality"`
}

type CreateScheduleRequest struct {
	ProgrammerID int64    `json:"programmerId"`
	Date         string   `json:"date"`
	Time         string   `json:"time"`
	Modality     Modality `json:"modality"`
}

func (c *Client) ListSchedules(ctx context.Context) ([]Schedule, error) {
	return list[Schedule](ctx, c, "list schedules", pathSchedules)
}

func (c *Client) GetSchedulesByProgrammer(ctx context.Context, programmerID int64) ([]Schedule, error) {
	return list[Schedule](ctx, c, "get programmer schedules", schedulesByProgrammerPath(programmerID))
}

func (c *Client) CreateSchedule(ctx context.Context, req CreateScheduleRequest) (*Schedule, error) {
	var schedule Schedule
	if err := c.send(ctx, "create schedule", http.MethodPost, pathSchedules, req, &schedule, nil); err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (c *Client) DeleteSchedule(ctx context.Context, id int64) error {
	return c.send(ctx, "delete schedule", http.MethodDelete, schedulePath(id), nil, nil, nil)
}
