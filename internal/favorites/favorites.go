// MoviePulse - TMDB Discovery and Favorites Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviepulse

// Package favorites persists per-user favorite movies and TV series.
//
// A favorite is the triple (username, tmdb_id, media_type); every driver
// enforces its uniqueness in the schema.
package favorites

import (
	"context"
	"errors"
)

// Media types accepted for a favorite.
const (
	MediaMovie = "movie"
	MediaTV    = "tv"
)

var (
	// ErrDuplicate is returned by Add when the triple already exists.
	ErrDuplicate = errors.New("favorite already exists")
	// ErrNotFound is returned by Remove when the triple does not exist.
	ErrNotFound = errors.New("favorite not found")
)

// Favorite is one saved title.
type Favorite struct {
	ID        int64  `json:"-"`
	Username  string `json:"-"`
	TMDBID    int    `json:"tmdb_id"`
	MediaType string `json:"media_type"`
}

// Store is the favorites persistence interface.
type Store interface {
	// List returns the user's favorites in insertion order.
	List(ctx context.Context, username string) ([]Favorite, error)
	Add(ctx context.Context, fav Favorite) (Favorite, error)
	Remove(ctx context.Context, fav Favorite) error
	Ping(ctx context.Context) error
	Close() error
}
