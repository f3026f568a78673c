// MoviePulse - TMDB Discovery and Favorites Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviepulse

package services

import (
	"context"
	"time"

	"github.com/tomtom215/moviepulse/internal/announcer"
	"github.com/tomtom215/moviepulse/internal/logging"
)

// AnnouncerRunner is satisfied by *announcer.Announcer.
type AnnouncerRunner interface {
	Run(ctx context.Context) (announcer.Summary, error)
}

// AnnouncerService runs the announcer once at start and then every interval.
// A failed run is logged and retried at the next tick; it does not restart
// the service.
type AnnouncerService struct {
	runner   AnnouncerRunner
	interval time.Duration
	name     string
}

// NewAnnouncerService creates the scheduled service. interval must be positive.
func NewAnnouncerService(runner AnnouncerRunner, interval time.Duration) *AnnouncerService {
	return &AnnouncerService{runner: runner, interval: interval, name: "announcer-scheduler"}
}

// Serve implements suture.Service.
func (s *AnnouncerService) Serve(ctx context.Context) error {
	log := logging.WithComponent(s.name)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		summary, err := s.runner.Run(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Error().Err(err).Msg("Announcer run failed")
		} else {
			log.Debug().Int("sent", summary.Sent).Int("failed", summary.Failed).Msg("Announcer run finished")
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// String names the service in supervisor logs.
func (s *AnnouncerService) String() string {
	return s.name
}
