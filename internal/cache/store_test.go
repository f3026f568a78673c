// MoviePulse - TMDB Discovery and Favorites Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviepulse

package cache

import (
	"context"
	"net/url"
	"testing"

	"github.com/tomtom215/moviepulse/internal/config"
)

func TestGenerateKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		op     string
		params url.Values
		want   string
	}{
		{"no params", "movie_genres", nil, "movie_genres"},
		{"empty params", "countries", url.Values{}, "countries"},
		{
			"sorted keys",
			"discover_movies",
			url.Values{"sort_by": {"popularity.desc"}, "include_adult": {"false"}, "release_date.gte": {"2026-01-01"}},
			"discover_movies?include_adult=false&release_date.gte=2026-01-01&sort_by=popularity.desc",
		},
		{
			"escaped values",
			"discover_movies",
			url.Values{"with_release_type": {"2|3"}},
			"discover_movies?with_release_type=2%7C3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GenerateKey(tt.op, tt.params); got != tt.want {
				t.Errorf("GenerateKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGenerateKey_Distinct(t *testing.T) {
	t.Parallel()

	keys := map[string]bool{}
	inputs := []struct {
		op     string
		params url.Values
	}{
		{"trending_movies", url.Values{"time_window": {"day"}}},
		{"trending_movies", url.Values{"time_window": {"week"}}},
		{"trending_tv", url.Values{"time_window": {"day"}}},
		{"movie_detail", url.Values{"id": {"550"}}},
		{"movie_credits", url.Values{"id": {"550"}}},
		{"movie_detail", url.Values{"id": {"55"}, "language": {"0en-US"}}},
		{"movie_detail", url.Values{"id": {"550"}, "language": {"en-US"}}},
	}
	for _, in := range inputs {
		k := GenerateKey(in.op, in.params)
		if keys[k] {
			t.Errorf("duplicate key %q", k)
		}
		keys[k] = true
	}
}

func TestNew(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	s, err := New(ctx, config.CacheConfig{Backend: config.CacheBackendMemory})
	if err != nil {
		t.Fatalf("New(memory) error = %v", err)
	}
	defer s.Close()
	if _, ok := s.(*Memory); !ok {
		t.Errorf("New(memory) = %T, want *Memory", s)
	}

	if _, err := New(ctx, config.CacheConfig{Backend: "memcached"}); err == nil {
		t.Error("New(memcached) error = nil, want unknown backend")
	}
	if _, err := New(ctx, config.CacheConfig{Backend: config.CacheBackendBadger}); err == nil {
		t.Error("New(badger without path) error = nil, want error")
	}
	if _, err := New(ctx, config.CacheConfig{Backend: config.CacheBackendRedis}); err == nil {
		t.Error("New(redis without addr) error = nil, want error")
	}
}

func TestNew_Badger(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	s, err := New(ctx, config.CacheConfig{Backend: config.CacheBackendBadger, BadgerPath: t.TempDir()})
	if err != nil {
		t.Fatalf("New(badger) error = %v", err)
	}
	defer s.Close()
	if _, ok := s.(*Badger); !ok {
		t.Errorf("New(badger) = %T, want *Badger", s)
	}
}
