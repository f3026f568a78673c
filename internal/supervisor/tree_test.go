// MoviePulse - TMDB Discovery and Favorites Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviepulse

package supervisor

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"
)

type flakyService struct {
	starts atomic.Int32
	failN  int32
}

func (s *flakyService) Serve(ctx context.Context) error {
	n := s.starts.Add(1)
	if n <= s.failN {
		return errors.New("boom")
	}
	<-ctx.Done()
	return ctx.Err()
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func TestNewTree_Defaults(t *testing.T) {
	t.Parallel()
	tree := NewTree(testLogger(), TreeConfig{})
	if tree.config != DefaultTreeConfig() {
		t.Errorf("config = %+v, want defaults", tree.config)
	}
}

func TestTree_RestartsFailedService(t *testing.T) {
	t.Parallel()
	tree := NewTree(testLogger(), TreeConfig{FailureBackoff: 10 * time.Millisecond, ShutdownTimeout: time.Second})
	job := &flakyService{failN: 2}
	api := &flakyService{}
	tree.AddBackgroundService(job)
	tree.AddAPIService(api)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := tree.ServeBackground(ctx)

	deadline := time.After(2 * time.Second)
	for job.starts.Load() < 3 || api.starts.Load() < 1 {
		select {
		case <-deadline:
			t.Fatalf("job starts = %d, api starts = %d", job.starts.Load(), api.starts.Load())
		case <-time.After(5 * time.Millisecond):
		}
	}
	if api.starts.Load() != 1 {
		t.Errorf("api restarted %d times by a failing job", api.starts.Load()-1)
	}

	cancel()
	select {
	case <-errCh:
	case <-time.After(2 * time.Second):
		t.Fatal("tree did not stop")
	}
}
