// MoviePulse - TMDB Discovery and Favorites Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviepulse

package tmdb

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/moviepulse/internal/cache"
)

type call struct {
	path   string
	params url.Values
}

// fakeDoer records every call and answers through respond.
type fakeDoer struct {
	mu      sync.Mutex
	calls   []call
	respond func(path string, params url.Values) (json.RawMessage, error)
}

func (f *fakeDoer) Do(_ context.Context, _ string, path string, params url.Values) (json.RawMessage, error) {
	f.mu.Lock()
	f.calls = append(f.calls, call{path: path, params: params})
	f.mu.Unlock()
	return f.respond(path, params)
}

func (f *fakeDoer) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeDoer) last() call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[len(f.calls)-1]
}

// pages answers page n with two items {"id": n*10+i} and the given total.
// failAt > 0 makes that page fail with an upstream 500.
func pages(total, failAt int) func(string, url.Values) (json.RawMessage, error) {
	return func(_ string, params url.Values) (json.RawMessage, error) {
		n, _ := strconv.Atoi(params.Get("page"))
		if n == failAt {
			return nil, statusError(500, []byte("boom"))
		}
		body := fmt.Sprintf(`{"page":%d,"total_pages":%d,"results":[{"id":%d},{"id":%d}]}`, n, total, n*10, n*10+1)
		return json.RawMessage(body), nil
	}
}

func static(body string) func(string, url.Values) (json.RawMessage, error) {
	return func(string, url.Values) (json.RawMessage, error) {
		return json.RawMessage(body), nil
	}
}

// errorStore fails every operation.
type errorStore struct{ sets int }

func (e *errorStore) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("cache down")
}

func (e *errorStore) Set(context.Context, string, []byte, time.Duration) error {
	e.sets++
	return errors.New("cache down")
}

func (e *errorStore) Close() error { return nil }

func newTestClient(t *testing.T, doer Doer, now time.Time) (*Client, *cache.Memory) {
	t.Helper()
	store := cache.NewMemory()
	t.Cleanup(func() { _ = store.Close() })
	c := New(doer, Options{
		Cache: store,
		Now:   func() time.Time { return now },
	})
	return c, store
}

func ids(t *testing.T, items []json.RawMessage) []int {
	t.Helper()
	out := make([]int, 0, len(items))
	for _, item := range items {
		var v struct {
			ID int `json:"id"`
		}
		if err := json.Unmarshal(item, &v); err != nil {
			t.Fatalf("decode item %s: %v", item, err)
		}
		out = append(out, v.ID)
	}
	return out
}
