// MoviePulse - TMDB Discovery and Favorites Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviepulse

package favorites

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres implements Store on a pgx connection pool.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres connects to dsn and creates the schema.
func NewPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	p := &Postgres{pool: pool}
	if err := p.initSchema(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return p, nil
}

func (p *Postgres) initSchema(ctx context.Context) error {
	schema := `
		CREATE TABLE IF NOT EXISTS favorites (
			id BIGSERIAL PRIMARY KEY,
			username TEXT NOT NULL,
			tmdb_id INTEGER NOT NULL,
			media_type TEXT NOT NULL CHECK(media_type IN ('movie', 'tv')),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			CONSTRAINT favorites_username_media_uc UNIQUE (username, tmdb_id, media_type)
		);

		CREATE INDEX IF NOT EXISTS idx_favorites_username ON favorites(username);
	`
	_, err := p.pool.Exec(ctx, schema)
	return err
}

// List implements Store.
func (p *Postgres) List(ctx context.Context, username string) ([]Favorite, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT id, username, tmdb_id, media_type FROM favorites WHERE username = $1 ORDER BY id`,
		username,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	defer rows.Close()

	out := make([]Favorite, 0)
	for rows.Next() {
		var f Favorite
		if err := rows.Scan(&f.ID, &f.Username, &f.TMDBID, &f.MediaType); err != nil {
			return nil, fmt.Errorf("failed to scan favorite: %w", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// Add implements Store.
func (p *Postgres) Add(ctx context.Context, fav Favorite) (Favorite, error) {
	err := p.pool.QueryRow(ctx,
		`INSERT INTO favorites (username, tmdb_id, media_type)
		 VALUES ($1, $2, $3)
		 ON CONFLICT ON CONSTRAINT favorites_username_media_uc DO NOTHING
		 RETURNING id`,
		fav.Username, fav.TMDBID, fav.MediaType,
	).Scan(&fav.ID)
	if errors.Is(err, pgx.ErrNoRows) {
		return Favorite{}, ErrDuplicate
	}
	if err != nil {
		return Favorite{}, fmt.Errorf("failed to insert favorite: %w", err)
	}
	return fav, nil
}

// Remove implements Store.
func (p *Postgres) Remove(ctx context.Context, fav Favorite) error {
	tag, err := p.pool.Exec(ctx,
		`DELETE FROM favorites WHERE username = $1 AND tmdb_id = $2 AND media_type = $3`,
		fav.Username, fav.TMDBID, fav.MediaType,
	)
	if err != nil {
		return fmt.Errorf("failed to delete favorite: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Ping implements Store.
func (p *Postgres) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

// Close releases the underlying connection.
func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}
