// MoviePulse - TMDB Discovery and Favorites Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviepulse

package favorites

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomtom215/moviepulse/internal/config"
)

// runStoreSuite exercises the Store contract; every driver must pass it.
func runStoreSuite(t *testing.T, open func(t *testing.T) Store) {
	t.Run("empty list", func(t *testing.T) {
		s := open(t)
		favs, err := s.List(context.Background(), "guest")
		require.NoError(t, err)
		assert.NotNil(t, favs)
		assert.Empty(t, favs)
	})

	t.Run("add then list in insertion order", func(t *testing.T) {
		s := open(t)
		ctx := context.Background()

		for _, f := range []Favorite{
			{Username: "guest", TMDBID: 550, MediaType: MediaMovie},
			{Username: "guest", TMDBID: 1399, MediaType: MediaTV},
			{Username: "guest", TMDBID: 13, MediaType: MediaMovie},
		} {
			added, err := s.Add(ctx, f)
			require.NoError(t, err)
			assert.Equal(t, f.TMDBID, added.TMDBID)
			assert.NotZero(t, added.ID)
		}

		favs, err := s.List(ctx, "guest")
		require.NoError(t, err)
		require.Len(t, favs, 3)
		assert.Equal(t, []int{550, 1399, 13}, tmdbIDs(favs))
		assert.Equal(t, MediaTV, favs[1].MediaType)
	})

	t.Run("duplicate triple", func(t *testing.T) {
		s := open(t)
		ctx := context.Background()
		f := Favorite{Username: "guest", TMDBID: 550, MediaType: MediaMovie}

		_, err := s.Add(ctx, f)
		require.NoError(t, err)
		_, err = s.Add(ctx, f)
		assert.ErrorIs(t, err, ErrDuplicate)

		// same id, other media type, is a different favorite
		_, err = s.Add(ctx, Favorite{Username: "guest", TMDBID: 550, MediaType: MediaTV})
		assert.NoError(t, err)

		favs, err := s.List(ctx, "guest")
		require.NoError(t, err)
		assert.Len(t, favs, 2)
	})

	t.Run("users are isolated", func(t *testing.T) {
		s := open(t)
		ctx := context.Background()

		_, err := s.Add(ctx, Favorite{Username: "alice", TMDBID: 1, MediaType: MediaMovie})
		require.NoError(t, err)
		_, err = s.Add(ctx, Favorite{Username: "bob", TMDBID: 1, MediaType: MediaMovie})
		require.NoError(t, err)

		favs, err := s.List(ctx, "alice")
		require.NoError(t, err)
		assert.Len(t, favs, 1)
		assert.Equal(t, "alice", favs[0].Username)
	})

	t.Run("remove", func(t *testing.T) {
		s := open(t)
		ctx := context.Background()
		f := Favorite{Username: "guest", TMDBID: 99, MediaType: MediaTV}

		assert.ErrorIs(t, s.Remove(ctx, f), ErrNotFound)

		_, err := s.Add(ctx, f)
		require.NoError(t, err)
		require.NoError(t, s.Remove(ctx, f))
		assert.ErrorIs(t, s.Remove(ctx, f), ErrNotFound)

		favs, err := s.List(ctx, "guest")
		require.NoError(t, err)
		assert.Empty(t, favs)

		_, err = s.Add(ctx, f)
		assert.NoError(t, err, "removed favorite can be added again")
	})

	t.Run("ping", func(t *testing.T) {
		assert.NoError(t, open(t).Ping(context.Background()))
	})
}

func tmdbIDs(favs []Favorite) []int {
	out := make([]int, len(favs))
	for i, f := range favs {
		out[i] = f.TMDBID
	}
	return out
}

func closeOnCleanup(t *testing.T, s Store) Store {
	t.Helper()
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestMemoryStore(t *testing.T) {
	runStoreSuite(t, func(t *testing.T) Store {
		return closeOnCleanup(t, NewMemory())
	})
}

func TestSQLiteStore(t *testing.T) {
	runStoreSuite(t, func(t *testing.T) Store {
		s, err := NewSQLite(context.Background(), filepath.Join(t.TempDir(), "data", "favorites.db"))
		require.NoError(t, err)
		return closeOnCleanup(t, s)
	})
}

func TestSQLiteStore_InMemory(t *testing.T) {
	runStoreSuite(t, func(t *testing.T) Store {
		s, err := NewSQLite(context.Background(), ":memory:")
		require.NoError(t, err)
		return closeOnCleanup(t, s)
	})
}

func TestDuckDBStore(t *testing.T) {
	runStoreSuite(t, func(t *testing.T) Store {
		s, err := NewDuckDB(context.Background(), filepath.Join(t.TempDir(), "favorites.duckdb"))
		require.NoError(t, err)
		return closeOnCleanup(t, s)
	})
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "favorites.db")

	s, err := NewSQLite(ctx, path)
	require.NoError(t, err)
	_, err = s.Add(ctx, Favorite{Username: "guest", TMDBID: 550, MediaType: MediaMovie})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = NewSQLite(ctx, path)
	require.NoError(t, err)
	defer s.Close()

	favs, err := s.List(ctx, "guest")
	require.NoError(t, err)
	assert.Equal(t, []int{550}, tmdbIDs(favs))
}

func TestMemoryStore_Concurrent(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Add(ctx, Favorite{Username: "guest", TMDBID: 7, MediaType: MediaMovie})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var ok, dup int
	for err := range errs {
		switch err {
		case nil:
			ok++
		case ErrDuplicate:
			dup++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 19, dup)
}

func TestNew_Factory(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		cfg     config.FavoritesConfig
		wantErr string
	}{
		{name: "memory", cfg: config.FavoritesConfig{Driver: config.FavoritesDriverMemory}},
		{name: "sqlite", cfg: config.FavoritesConfig{Driver: config.FavoritesDriverSQLite, SQLitePath: filepath.Join(t.TempDir(), "f.db")}},
		{name: "sqlite without path", cfg: config.FavoritesConfig{Driver: config.FavoritesDriverSQLite}, wantErr: "sqlite path is required"},
		{name: "postgres without dsn", cfg: config.FavoritesConfig{Driver: config.FavoritesDriverPostgres}, wantErr: "postgres DSN is required"},
		{name: "duckdb without path", cfg: config.FavoritesConfig{Driver: config.FavoritesDriverDuckDB}, wantErr: "duckdb path is required"},
		{name: "mongodb without uri", cfg: config.FavoritesConfig{Driver: config.FavoritesDriverMongoDB}, wantErr: "mongodb URI is required"},
		{name: "unknown", cfg: config.FavoritesConfig{Driver: "oracle"}, wantErr: "unknown favorites driver: oracle"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(ctx, tt.cfg)
			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			defer s.Close()
			_, isInstrumented := s.(*instrumented)
			assert.True(t, isInstrumented)
		})
	}
}

func TestResultLabel(t *testing.T) {
	assert.Equal(t, "ok", resultLabel(nil))
	assert.Equal(t, "duplicate", resultLabel(ErrDuplicate))
	assert.Equal(t, "not_found", resultLabel(ErrNotFound))
	assert.Equal(t, "error", resultLabel(assert.AnError))
}

func TestInstrument_Idempotent(t *testing.T) {
	s := Instrument(NewMemory())
	assert.Same(t, s, Instrument(s))
}
