// MoviePulse - TMDB Discovery and Favorites Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviepulse

package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tomtom215/moviepulse/internal/favorites"
)

func TestFavorites_AddListRemove(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/favorites", "")
	if rec.Code != http.StatusOK || rec.Body.String() != `[]` {
		t.Fatalf("empty list: %d %s", rec.Code, rec.Body.String())
	}

	rec = env.do(t, http.MethodPost, "/api/v1/favorites", `{"tmdb_id":550,"media_type":"movie"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("add status = %d, body %s", rec.Code, rec.Body.String())
	}
	var created FavoriteCreatedResponse
	decodeBody(t, rec, &created)
	if !created.Success || created.Favorite.TMDBID != 550 || created.Favorite.MediaType != "movie" {
		t.Errorf("created = %+v", created)
	}

	rec = env.do(t, http.MethodPost, "/api/v1/favorites", `{"tmdb_id":"1399","media_type":"tv"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("add string id status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = env.do(t, http.MethodGet, "/api/v1/favorites", "")
	want := `[{"tmdb_id":550,"media_type":"movie"},{"tmdb_id":1399,"media_type":"tv"}]`
	if rec.Body.String() != want {
		t.Errorf("list = %s, want %s", rec.Body.String(), want)
	}

	rec = env.do(t, http.MethodDelete, "/api/v1/favorites", `{"tmdb_id":550,"media_type":"movie"}`)
	if rec.Code != http.StatusOK || rec.Body.String() != `{"success":true,"message":"Item removed from favorites."}` {
		t.Errorf("remove: %d %s", rec.Code, rec.Body.String())
	}

	rec = env.do(t, http.MethodDelete, "/api/v1/favorites", `{"tmdb_id":550,"media_type":"movie"}`)
	if rec.Code != http.StatusOK || rec.Body.String() != `{"success":false,"message":"Item not found in favorites."}` {
		t.Errorf("remove missing: %d %s", rec.Code, rec.Body.String())
	}

	favs, err := env.favorites.List(context.Background(), "guest")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(favs) != 1 || favs[0].TMDBID != 1399 {
		t.Errorf("stored = %+v", favs)
	}
}

func TestFavorites_Duplicate(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	body := `{"tmdb_id":550,"media_type":"movie"}`
	if rec := env.do(t, http.MethodPost, "/api/v1/favorites", body); rec.Code != http.StatusCreated {
		t.Fatalf("first add status = %d", rec.Code)
	}
	rec := env.do(t, http.MethodPost, "/api/v1/favorites", body)
	if rec.Code != http.StatusOK {
		t.Errorf("duplicate status = %d, want 200", rec.Code)
	}
	if rec.Body.String() != `{"message":"Item already in favorites."}` {
		t.Errorf("duplicate body = %s", rec.Body.String())
	}

	// Same id under the other media type is a different favorite.
	if rec := env.do(t, http.MethodPost, "/api/v1/favorites", `{"tmdb_id":550,"media_type":"tv"}`); rec.Code != http.StatusCreated {
		t.Errorf("other media type status = %d", rec.Code)
	}
}

func TestFavorites_InvalidBody(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	tests := []struct {
		name string
		body string
	}{
		{"not json", `{tmdb_id:`},
		{"zero id", `{"tmdb_id":0,"media_type":"movie"}`},
		{"negative id", `{"tmdb_id":-3,"media_type":"movie"}`},
		{"non numeric id", `{"tmdb_id":"abc","media_type":"movie"}`},
		{"bad media type", `{"tmdb_id":5,"media_type":"person"}`},
		{"missing media type", `{"tmdb_id":5}`},
		{"empty", ``},
	}
	for _, tt := range tests {
		for _, method := range []string{http.MethodPost, http.MethodDelete} {
			rec := env.do(t, method, "/api/v1/favorites", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("%s %s: status = %d, want 400", method, tt.name, rec.Code)
				continue
			}
			if errorMessage(t, rec) == "" {
				t.Errorf("%s %s: empty error message", method, tt.name)
			}
		}
	}
}

type failingStore struct{ favorites.Store }

func (failingStore) List(context.Context, string) ([]favorites.Favorite, error) {
	return nil, errors.New("connection refused")
}

func (failingStore) Ping(context.Context) error { return errors.New("connection refused") }

func TestFavorites_StoreFailure(t *testing.T) {
	t.Parallel()
	h := NewHandler(nil, failingStore{}, "")
	handler := NewRouter(h, nil, NewChiMiddleware(&ChiMiddlewareConfig{RateLimitDisabled: true})).SetupChi()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/favorites", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("list status = %d, want 500", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "connection refused") {
		t.Errorf("store error leaked: %s", rec.Body.String())
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health/ready", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("ready status = %d, want 503", rec.Code)
	}
}

func TestFlexInt(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{`42`, 42, false},
		{`"42"`, 42, false},
		{`" 7 "`, 7, false},
		{`null`, 0, false},
		{`"x"`, 0, true},
		{`4.5`, 0, true},
	}
	for _, tt := range tests {
		var f flexInt
		err := f.UnmarshalJSON([]byte(tt.in))
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: err = %v", tt.in, err)
			continue
		}
		if int(f) != tt.want {
			t.Errorf("%s: got %d, want %d", tt.in, f, tt.want)
		}
	}
}
