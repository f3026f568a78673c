// MoviePulse - TMDB Discovery and Favorites Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviepulse

package api

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/tomtom215/moviepulse/internal/favorites"
)

func TestPages_Render(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	tests := []struct {
		target string
		want   []string
	}{
		{"/", []string{`data-page="index"`, `data-source="/api/v1/discover/upcoming"`}},
		{"/movie/550", []string{`data-page="movie"`, `data-id="550"`}},
		{"/tv/1399", []string{`data-page="tv"`, `data-id="1399"`}},
		{"/favorites", []string{`data-page="favorites"`, "No favorites yet."}},
	}
	for _, tt := range tests {
		rec := env.do(t, http.MethodGet, tt.target, "")
		if rec.Code != http.StatusOK {
			t.Errorf("%s: status = %d", tt.target, rec.Code)
			continue
		}
		if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
			t.Errorf("%s: content type = %q", tt.target, ct)
		}
		for _, w := range tt.want {
			if !strings.Contains(rec.Body.String(), w) {
				t.Errorf("%s: body missing %q", tt.target, w)
			}
		}
	}
}

func TestPages_FavoritesListed(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()
	if _, err := env.favorites.Add(ctx, favorites.Favorite{Username: "guest", TMDBID: 603, MediaType: "movie"}); err != nil {
		t.Fatal(err)
	}
	if _, err := env.favorites.Add(ctx, favorites.Favorite{Username: "someone", TMDBID: 1, MediaType: "tv"}); err != nil {
		t.Fatal(err)
	}

	rec := env.do(t, http.MethodGet, "/favorites", "")
	body := rec.Body.String()
	if !strings.Contains(body, `href="/movie/603"`) || !strings.Contains(body, `data-id="603"`) {
		t.Errorf("favorite card missing: %s", body)
	}
	if strings.Contains(body, `data-id="1"`) {
		t.Error("another user's favorite rendered")
	}
}

func TestPages_Static(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	for _, target := range []string{"/static/js/app.js", "/static/css/style.css"} {
		rec := env.do(t, http.MethodGet, target, "")
		if rec.Code != http.StatusOK || rec.Body.Len() == 0 {
			t.Errorf("%s: status = %d, %d bytes", target, rec.Code, rec.Body.Len())
		}
	}
}

func TestPages_BadID(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/movie/abc", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
