// MoviePulse - TMDB Discovery and Favorites Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviepulse

package favorites

import (
	"context"
	"sync"
)

// Memory is a process-local Store used for tests and for running without a
// database.
type Memory struct {
	mu     sync.RWMutex
	items  []Favorite
	nextID int64
}

// NewMemory creates an empty Memory store.
func NewMemory() *Memory {
	return &Memory{}
}

// List implements Store.
func (m *Memory) List(_ context.Context, username string) ([]Favorite, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Favorite, 0)
	for _, f := range m.items {
		if f.Username == username {
			out = append(out, f)
		}
	}
	return out, nil
}

// Add implements Store.
func (m *Memory) Add(_ context.Context, fav Favorite) (Favorite, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.indexOf(fav) >= 0 {
		return Favorite{}, ErrDuplicate
	}
	m.nextID++
	fav.ID = m.nextID
	m.items = append(m.items, fav)
	return fav, nil
}

// Remove implements Store.
func (m *Memory) Remove(_ context.Context, fav Favorite) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(fav)
	if i < 0 {
		return ErrNotFound
	}
	m.items = append(m.items[:i], m.items[i+1:]...)
	return nil
}

// Ping implements Store.
func (m *Memory) Ping(context.Context) error { return nil }

// Close implements Store.
func (m *Memory) Close() error { return nil }

// indexOf must be called with mu held.
func (m *Memory) indexOf(fav Favorite) int {
	for i, f := range m.items {
		if f.Username == fav.Username && f.TMDBID == fav.TMDBID && f.MediaType == fav.MediaType {
			return i
		}
	}
	return -1
}
