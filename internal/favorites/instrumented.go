// MoviePulse - TMDB Discovery and Favorites Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviepulse

package favorites

import (
	"context"
	"errors"

	"github.com/tomtom215/moviepulse/internal/metrics"
)

type instrumented struct {
	Store
}

// Instrument wraps store with operation metrics.
func Instrument(store Store) Store {
	if _, ok := store.(*instrumented); ok {
		return store
	}
	return &instrumented{Store: store}
}

func (s *instrumented) List(ctx context.Context, username string) ([]Favorite, error) {
	favs, err := s.Store.List(ctx, username)
	metrics.RecordFavoriteOperation("list", resultLabel(err))
	return favs, err
}

func (s *instrumented) Add(ctx context.Context, fav Favorite) (Favorite, error) {
	out, err := s.Store.Add(ctx, fav)
	metrics.RecordFavoriteOperation("add", resultLabel(err))
	return out, err
}

func (s *instrumented) Remove(ctx context.Context, fav Favorite) error {
	err := s.Store.Remove(ctx, fav)
	metrics.RecordFavoriteOperation("remove", resultLabel(err))
	return err
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrDuplicate):
		return "duplicate"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}
