// MoviePulse - TMDB Discovery and Favorites Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviepulse

// Package tmdb is the read-only TMDB aggregation layer: a single-attempt
// transport, a cache-aware pagination engine and the named discovery presets
// built on top of it.
//
// Every operation returns either its payload or an *Error carrying an
// ErrorKind and a caller-safe message.
package tmdb

import (
	"time"

	"github.com/tomtom215/moviepulse/internal/cache"
	"github.com/tomtom215/moviepulse/internal/config"
)

const (
	// DefaultLanguage is sent on every localized request unless overridden.
	DefaultLanguage = "en-US"
	// DefaultMaxPages bounds paginated fetches.
	DefaultMaxPages = 5
	// DefaultCacheTTL is used when Options.CacheTTL is zero.
	DefaultCacheTTL = 10 * time.Minute

	keyPrefix   = "tmdb:"
	breakerName = "tmdb-api"
)

// Options configures a Client.
type Options struct {
	// Cache is optional; nil disables caching.
	Cache    cache.Store
	CacheTTL time.Duration
	Language string
	MaxPages int
	// Now overrides the wall clock used by date-relative presets.
	Now func() time.Time
}

// Client exposes the TMDB operations.
type Client struct {
	doer     Doer
	cache    cache.Store
	ttl      time.Duration
	language string
	maxPages int
	now      func() time.Time
}

// New creates a Client on top of any Doer.
func New(doer Doer, opts Options) *Client {
	c := &Client{
		doer:     doer,
		cache:    opts.Cache,
		ttl:      opts.CacheTTL,
		language: opts.Language,
		maxPages: opts.MaxPages,
		now:      opts.Now,
	}
	if c.ttl <= 0 {
		c.ttl = DefaultCacheTTL
	}
	if c.language == "" {
		c.language = DefaultLanguage
	}
	if c.maxPages <= 0 {
		c.maxPages = DefaultMaxPages
	}
	if c.now == nil {
		c.now = time.Now
	}
	return c
}

// NewFromConfig builds the transport (and breaker, when enabled) from
// configuration.
func NewFromConfig(cfg *config.TMDBConfig, store cache.Store, ttl time.Duration) *Client {
	var doer Doer = NewTransport(TransportConfig{
		BaseURL:   cfg.BaseURL(),
		Token:     cfg.APIToken,
		Timeout:   cfg.Timeout,
		RateLimit: cfg.RateLimit,
		RateBurst: cfg.RateBurst,
	})
	if cfg.CircuitBreaker {
		doer = NewCircuitBreaker(doer, breakerName, DefaultBreakerSettings())
	}
	return New(doer, Options{
		Cache:    store,
		CacheTTL: ttl,
		Language: cfg.Language,
		MaxPages: cfg.MaxPages,
	})
}

// Language returns the default request language.
func (c *Client) Language() string {
	return c.language
}
