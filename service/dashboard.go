package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/loganlanou/ciber-client/internal/api"
)

// Dashboard is everything the programmer panel shows.
type Dashboard struct {
	ProgrammerID int64                  `json:"programmerId"`
	Stats        api.AdvisoryStats      `json:"stats"`
	Advisories   []api.Advisory         `json:"advisories"`
	Schedules    []api.Schedule         `json:"schedules"`
	Profile      *api.ProgrammerProfile `json:"profile,omitempty"`
}

// ProgrammerDashboard loads the panel for programmerID concurrently. Lists and
// stats come back empty when the backend fails; a missing profile is nil. Any
// other profile failure fails the whole dashboard.
func (s *Service) ProgrammerDashboard(ctx context.Context, programmerID int64) (*Dashboard, error) {
	d := &Dashboard{ProgrammerID: programmerID}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		stats, err := s.API.GetProgrammerStats(ctx, programmerID)
		if err != nil {
			return err
		}
		d.Stats = *stats
		return nil
	})

	g.Go(func() error {
		advisories, err := s.API.GetAdvisoriesByProgrammer(ctx, programmerID)
		d.Advisories = advisories
		return err
	})

	g.Go(func() error {
		schedules, err := s.API.GetSchedulesByProgrammer(ctx, programmerID)
		d.Schedules = schedules
		return err
	})

	g.Go(func() error {
		profile, err := s.API.GetProfileByUser(ctx, programmerID)
		if err != nil {
			if api.IsNotFound(err) || errors.Is(err, api.ErrProfileNotFound) {
				return nil
			}
			return err
		}
		d.Profile = profile
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("programmer dashboard %d: %w", programmerID, err)
	}

	slog.Debug("dashboard loaded",
		"programmer_id", programmerID,
		"advisories", len(d.Advisories),
		"schedules", len(d.Schedules),
		"has_profile", d.Profile != nil,
	)
	return d, nil
}
