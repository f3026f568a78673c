// MoviePulse - TMDB Discovery and Favorites Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviepulse

// Package config loads MoviePulse configuration from defaults, an optional
// YAML file and environment variables (in increasing priority).
package config

import (
	"strings"
	"time"
)

// Config is the root configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	TMDB      TMDBConfig      `koanf:"tmdb"`
	Cache     CacheConfig     `koanf:"cache"`
	Favorites FavoritesConfig `koanf:"favorites"`
	Announcer AnnouncerConfig `koanf:"announcer"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// TMDBConfig describes the upstream API.
type TMDBConfig struct {
	// Host is scheme + host, e.g. https://api.themoviedb.org
	Host       string `koanf:"host"`
	APIVersion string `koanf:"api_version"`
	// Base is an optional path prefix appended after the version.
	Base     string        `koanf:"base"`
	APIToken string        `koanf:"api_token"`
	Timeout  time.Duration `koanf:"timeout"`
	Language string        `koanf:"language"`
	MaxPages int           `koanf:"max_pages"`

	// RateLimit is requests per second sent upstream; 0 disables pacing.
	RateLimit float64 `koanf:"rate_limit"`
	RateBurst int     `koanf:"rate_burst"`

	CircuitBreaker bool `koanf:"circuit_breaker"`
}

// Cache backends.
const (
	CacheBackendMemory = "memory"
	CacheBackendBadger = "badger"
	CacheBackendRedis  = "redis"
)

// CacheConfig selects and configures the response cache.
type CacheConfig struct {
	Backend       string        `koanf:"backend"`
	TTL           time.Duration `koanf:"ttl"`
	BadgerPath    string        `koanf:"badger_path"`
	RedisAddr     string        `koanf:"redis_addr"`
	RedisPassword string        `koanf:"redis_password"`
	RedisDB       int           `koanf:"redis_db"`
}

// Favorites drivers.
const (
	FavoritesDriverMemory   = "memory"
	FavoritesDriverSQLite   = "sqlite"
	FavoritesDriverPostgres = "postgres"
	FavoritesDriverDuckDB   = "duckdb"
	FavoritesDriverMongoDB  = "mongodb"
)

// FavoritesConfig selects the favorites store.
type FavoritesConfig struct {
	Driver          string `koanf:"driver"`
	SQLitePath      string `koanf:"sqlite_path"`
	PostgresDSN     string `koanf:"postgres_dsn"`
	DuckDBPath      string `koanf:"duckdb_path"`
	MongoDBURI      string `koanf:"mongodb_uri"`
	MongoDBDatabase string `koanf:"mongodb_database"`

	// Username owns every favorite; there is no authentication.
	Username string `koanf:"username"`
}

// AnnouncerConfig configures the Discord upcoming-movie announcer.
type AnnouncerConfig struct {
	DiscordWebhookURL string `koanf:"discord_webhook_url"`
	Username          string `koanf:"username"`
	Limit             int    `koanf:"limit"`

	// Interval schedules the announcer inside the server; 0 leaves it to the CLI.
	Interval time.Duration `koanf:"interval"`
}

// SecurityConfig holds CORS and rate-limit settings for the HTTP API.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitRequests int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig mirrors logging.Config.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// BaseURL returns the TMDB base URL: host/version[/base].
func (t *TMDBConfig) BaseURL() string {
	u := strings.TrimRight(t.Host, "/") + "/" + strings.Trim(t.APIVersion, "/")
	if b := strings.Trim(t.Base, "/"); b != "" {
		u += "/" + b
	}
	return u
}
