// MoviePulse - TMDB Discovery and Favorites Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviepulse

package api

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/moviepulse/internal/favorites"
	"github.com/tomtom215/moviepulse/internal/tmdb"
)

// fakeTMDB is an httptest server standing in for api.themoviedb.org/3.
type fakeTMDB struct {
	t      *testing.T
	server *httptest.Server

	mu     sync.Mutex
	hits   map[string]int
	last   map[string]url.Values
	routes map[string]string
	status map[string]int
}

func newFakeTMDB(t *testing.T) *fakeTMDB {
	t.Helper()
	f := &fakeTMDB{
		t:      t,
		hits:   make(map[string]int),
		last:   make(map[string]url.Values),
		routes: make(map[string]string),
		status: make(map[string]int),
	}
	f.server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.server.Close)
	return f
}

// on registers a JSON body for an upstream path such as "/3/genre/movie/list".
func (f *fakeTMDB) on(path, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.routes[path] = body
}

func (f *fakeTMDB) fail(path string, status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status[path] = status
	f.routes[path] = body
}

func (f *fakeTMDB) count(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[path]
}

func (f *fakeTMDB) lastQuery(path string) url.Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.last[path]
}

func (f *fakeTMDB) serve(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.hits[r.URL.Path]++
	f.last[r.URL.Path] = r.URL.Query()
	body, ok := f.routes[r.URL.Path]
	status := f.status[r.URL.Path]
	f.mu.Unlock()

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"status_message":"not found"}`)
		return
	}
	if status == 0 {
		status = http.StatusOK
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

// page renders a single-page TMDB list response.
func page(results ...string) string {
	return `{"page":1,"total_pages":1,"results":[` + strings.Join(results, ",") + `]}`
}

type testEnv struct {
	tmdb      *fakeTMDB
	favorites *favorites.Memory
	handler   http.Handler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	fake := newFakeTMDB(t)
	client := tmdb.New(
		tmdb.NewTransport(tmdb.TransportConfig{BaseURL: fake.server.URL + "/3", Timeout: 2 * time.Second}),
		tmdb.Options{Now: func() time.Time { return time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC) }},
	)
	store := favorites.NewMemory()

	pages, err := NewPages(store, "guest")
	if err != nil {
		t.Fatalf("NewPages: %v", err)
	}
	mw := NewChiMiddleware(&ChiMiddlewareConfig{RateLimitDisabled: true})
	router := NewRouter(NewHandler(client, store, "guest"), pages, mw)

	return &testEnv{tmdb: fake, favorites: store, handler: router.SetupChi()}
}

func (e *testEnv) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp ErrorResponse
	decodeBody(t, rec, &resp)
	return resp.Error
}
