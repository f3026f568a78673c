// MoviePulse - TMDB Discovery and Favorites Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviepulse

package favorites

import (
	"context"
	"fmt"

	"github.com/tomtom215/moviepulse/internal/config"
)

const defaultMongoDatabase = "moviepulse"

// New opens the configured driver. The returned store records metrics.
func New(ctx context.Context, cfg config.FavoritesConfig) (Store, error) {
	var (
		store Store
		err   error
	)

	switch cfg.Driver {
	case config.FavoritesDriverMemory:
		store = NewMemory()

	case config.FavoritesDriverSQLite:
		if cfg.SQLitePath == "" {
			return nil, fmt.Errorf("sqlite path is required")
		}
		store, err = NewSQLite(ctx, cfg.SQLitePath)

	case config.FavoritesDriverPostgres:
		if cfg.PostgresDSN == "" {
			return nil, fmt.Errorf("postgres DSN is required")
		}
		store, err = NewPostgres(ctx, cfg.PostgresDSN)

	case config.FavoritesDriverDuckDB:
		if cfg.DuckDBPath == "" {
			return nil, fmt.Errorf("duckdb path is required")
		}
		store, err = NewDuckDB(ctx, cfg.DuckDBPath)

	case config.FavoritesDriverMongoDB:
		if cfg.MongoDBURI == "" {
			return nil, fmt.Errorf("mongodb URI is required")
		}
		if cfg.MongoDBDatabase == "" {
			cfg.MongoDBDatabase = defaultMongoDatabase
		}
		store, err = NewMongoDB(ctx, cfg.MongoDBURI, cfg.MongoDBDatabase)

	default:
		return nil, fmt.Errorf("unknown favorites driver: %s", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}
	return Instrument(store), nil
}
