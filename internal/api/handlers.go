// MoviePulse - TMDB Discovery and Favorites Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviepulse

package api

import (
	"context"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/moviepulse/internal/favorites"
	"github.com/tomtom215/moviepulse/internal/tmdb"
)

// Catalog is the TMDB surface the handlers need. *tmdb.Client implements it.
type Catalog interface {
	Search(ctx context.Context, query string) ([]json.RawMessage, error)
	MovieGenres(ctx context.Context) (json.RawMessage, error)
	Languages(ctx context.Context) (json.RawMessage, error)
	Countries(ctx context.Context) (json.RawMessage, error)
	MovieCertifications(ctx context.Context) (json.RawMessage, error)
	TrendingMovies(ctx context.Context, window string) ([]json.RawMessage, error)
	TrendingTV(ctx context.Context, window string) ([]json.RawMessage, error)
	MovieDetail(ctx context.Context, id int) (json.RawMessage, error)
	MovieCredits(ctx context.Context, id int) (json.RawMessage, error)
	MovieVideos(ctx context.Context, id int) (json.RawMessage, error)
	TVDetail(ctx context.Context, id int) (json.RawMessage, error)
	TVCredits(ctx context.Context, id int) (json.RawMessage, error)
	Upcoming(ctx context.Context) ([]json.RawMessage, error)
	Popular(ctx context.Context, f tmdb.Filters) ([]json.RawMessage, error)
	TopRated(ctx context.Context, f tmdb.Filters) ([]json.RawMessage, error)
	FamilyAnimation(ctx context.Context) ([]json.RawMessage, error)
	Horror(ctx context.Context) ([]json.RawMessage, error)
}

var _ Catalog = (*tmdb.Client)(nil)

// Handler contains dependencies for API handlers.
//
// Handler methods are split across files:
//   - handlers_tmdb.go: catalogue, trending, detail and discover endpoints
//   - handlers_favorites.go: favorites CRUD
//   - handlers_health.go: liveness and readiness
type Handler struct {
	catalog   Catalog
	favorites favorites.Store
	// username owns every favorite until accounts exist.
	username  string
	startTime time.Time
}

// NewHandler creates a Handler.
func NewHandler(catalog Catalog, store favorites.Store, username string) *Handler {
	if username == "" {
		username = "guest"
	}
	return &Handler{
		catalog:   catalog,
		favorites: store,
		username:  username,
		startTime: time.Now(),
	}
}
