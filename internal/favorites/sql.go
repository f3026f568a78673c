// MoviePulse - TMDB Discovery and Favorites Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviepulse

package favorites

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/duckdb/duckdb-go/v2"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `
	CREATE TABLE IF NOT EXISTS favorites (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL,
		tmdb_id INTEGER NOT NULL,
		media_type TEXT NOT NULL CHECK(media_type IN ('movie', 'tv')),
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (username, tmdb_id, media_type)
	);
	CREATE INDEX IF NOT EXISTS idx_favorites_username ON favorites(username);
`

var duckdbSchema = []string{
	`CREATE SEQUENCE IF NOT EXISTS favorites_id_seq START 1`,
	`CREATE TABLE IF NOT EXISTS favorites (
		id BIGINT PRIMARY KEY DEFAULT nextval('favorites_id_seq'),
		username VARCHAR NOT NULL,
		tmdb_id INTEGER NOT NULL,
		media_type VARCHAR NOT NULL CHECK(media_type IN ('movie', 'tv')),
		created_at TIMESTAMP NOT NULL DEFAULT current_timestamp,
		UNIQUE (username, tmdb_id, media_type)
	)`,
}

// SQL is a Store over database/sql. It backs both the sqlite and duckdb
// drivers; the statements are portable between them.
type SQL struct {
	conn   *sql.DB
	driver string
}

// NewSQLite opens (or creates) a SQLite database at path. ":memory:" is
// accepted.
func NewSQLite(ctx context.Context, path string) (*SQL, error) {
	if err := ensureDir(path); err != nil {
		return nil, err
	}
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// A single writer avoids SQLITE_BUSY and keeps ":memory:" to one database.
	conn.SetMaxOpenConns(1)

	s := &SQL{conn: conn, driver: "sqlite"}
	if err := s.init(ctx, []string{sqliteSchema}); err != nil {
		conn.Close()
		return nil, err
	}
	return s, nil
}

// NewDuckDB opens (or creates) a DuckDB database at path. An empty path or
// ":memory:" gives an in-memory database.
func NewDuckDB(ctx context.Context, path string) (*SQL, error) {
	if path == ":memory:" {
		path = ""
	}
	if err := ensureDir(path); err != nil {
		return nil, err
	}
	conn, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open duckdb database: %w", err)
	}
	conn.SetMaxOpenConns(1)

	s := &SQL{conn: conn, driver: "duckdb"}
	if err := s.init(ctx, duckdbSchema); err != nil {
		conn.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQL) init(ctx context.Context, statements []string) error {
	if err := s.conn.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping %s: %w", s.driver, err)
	}
	for _, stmt := range statements {
		if _, err := s.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to initialize %s schema: %w", s.driver, err)
		}
	}
	return nil
}

// List implements Store.
func (s *SQL) List(ctx context.Context, username string) ([]Favorite, error) {
	rows, err := s.conn.QueryContext(ctx,
		`SELECT id, username, tmdb_id, media_type FROM favorites WHERE username = ? ORDER BY id`,
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
func (s *SQL) Add(ctx context.Context, fav Favorite) (Favorite, error) {
	res, err := s.conn.ExecContext(ctx,
		`INSERT INTO favorites (username, tmdb_id, media_type) VALUES (?, ?, ?)
		 ON CONFLICT (username, tmdb_id, media_type) DO NOTHING`,
		fav.Username, fav.TMDBID, fav.MediaType,
	)
	if err != nil {
		return Favorite{}, fmt.Errorf("failed to insert favorite: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return Favorite{}, fmt.Errorf("failed to insert favorite: %w", err)
	}
	if n == 0 {
		return Favorite{}, ErrDuplicate
	}

	err = s.conn.QueryRowContext(ctx,
		`SELECT id FROM favorites WHERE username = ? AND tmdb_id = ? AND media_type = ?`,
		fav.Username, fav.TMDBID, fav.MediaType,
	).Scan(&fav.ID)
	if err != nil {
		return Favorite{}, fmt.Errorf("failed to read favorite id: %w", err)
	}
	return fav, nil
}

// Remove implements Store.
func (s *SQL) Remove(ctx context.Context, fav Favorite) error {
	res, err := s.conn.ExecContext(ctx,
		`DELETE FROM favorites WHERE username = ? AND tmdb_id = ? AND media_type = ?`,
		fav.Username, fav.TMDBID, fav.MediaType,
	)
	if err != nil {
		return fmt.Errorf("failed to delete favorite: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete favorite: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Ping implements Store.
func (s *SQL) Ping(ctx context.Context) error {
	return s.conn.PingContext(ctx)
}

// Close releases the underlying connection.
func (s *SQL) Close() error {
	return s.conn.Close()
}

func ensureDir(path string) error {
	if path == "" || path == ":memory:" || strings.HasPrefix(path, "file:") {
		return nil
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create database directory %s: %w", dir, err)
	}
	return nil
}
