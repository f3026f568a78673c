// MoviePulse - TMDB Discovery and Favorites Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviepulse

package services

import (
	"context"
	"time"

	"github.com/tomtom215/moviepulse/internal/logging"
)

// GarbageCollector is implemented by cache backends that need periodic
// compaction (*cache.Badger).
type GarbageCollector interface {
	RunGC() error
}

// CacheGCService runs value-log GC on a fixed interval. Expired entries are
// dropped by the backend; this reclaims their disk space.
type CacheGCService struct {
	gc       GarbageCollector
	interval time.Duration
}

// NewCacheGCService creates the service. A non-positive interval means 10m.
func NewCacheGCService(gc GarbageCollector, interval time.Duration) *CacheGCService {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &CacheGCService{gc: gc, interval: interval}
}

// Serve implements suture.Service.
func (s *CacheGCService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			start := time.Now()
			if err := s.gc.RunGC(); err != nil {
				logging.Error().Err(err).Msg("Cache GC failed")
				continue
			}
			logging.Debug().Dur("duration", time.Since(start)).Msg("Cache GC complete")
		}
	}
}

// String names the service in supervisor logs.
func (s *CacheGCService) String() string {
	return "cache-gc"
}
