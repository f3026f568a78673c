// MoviePulse - TMDB Discovery and Favorites Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviepulse

// Package cache provides the TTL key-value stores used to memoize upstream
// TMDB responses. Values are opaque serialized payloads.
//
// A missing key and an expired key are indistinguishable. Callers treat any
// error from a Store as a miss.
package cache

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/tomtom215/moviepulse/internal/config"
)

// Store is a key-value store with per-entry expiration.
type Store interface {
	// Get returns the value for key. found is false when the key is absent
	// or expired.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)

	// Set stores value under key for ttl.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Close releases resources held by the store.
	Close() error
}

// New builds the Store selected by cfg.Backend.
func New(ctx context.Context, cfg config.CacheConfig) (Store, error) {
	switch cfg.Backend {
	case config.CacheBackendMemory, "":
		return NewMemory(), nil
	case config.CacheBackendBadger:
		if cfg.BadgerPath == "" {
			return nil, fmt.Errorf("badger path is required")
		}
		return NewBadger(cfg.BadgerPath)
	case config.CacheBackendRedis:
		if cfg.RedisAddr == "" {
			return nil, fmt.Errorf("redis address is required")
		}
		return NewRedis(ctx, RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
	default:
		return nil, fmt.Errorf("unknown cache backend: %s", cfg.Backend)
	}
}

// GenerateKey derives a stable key from an operation name and its effective
// parameters: "op" when params is empty, otherwise "op?k1=v1&k2=v2" with keys
// sorted and values query-escaped. Distinct operations or parameter sets never
// share a key.
func GenerateKey(operation string, params url.Values) string {
	if len(params) == 0 {
		return operation
	}
	return operation + "?" + params.Encode()
}
