// MoviePulse - TMDB Discovery and Favorites Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviepulse

package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateTMDB(); err != nil {
		return err
	}
	if err := c.validateCache(); err != nil {
		return err
	}
	if err := c.validateFavorites(); err != nil {
		return err
	}
	if err := c.validateAnnouncer(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	return nil
}

func (c *Config) validateTMDB() error {
	u, err := url.Parse(c.TMDB.Host)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("TMDB_HOST must be an absolute URL, got %q", c.TMDB.Host)
	}
	if c.TMDB.APIVersion == "" {
		return fmt.Errorf("TMDB_API_VERSION is required")
	}
	if c.TMDB.Timeout <= 0 {
		return fmt.Errorf("TMDB_TIMEOUT must be positive, got %v", c.TMDB.Timeout)
	}
	if c.TMDB.MaxPages < 1 {
		return fmt.Errorf("TMDB_MAX_PAGES must be at least 1, got %d", c.TMDB.MaxPages)
	}
	if c.TMDB.RateLimit < 0 {
		return fmt.Errorf("TMDB_RATE_LIMIT must not be negative, got %v", c.TMDB.RateLimit)
	}
	if c.TMDB.RateLimit > 0 && c.TMDB.RateBurst < 1 {
		return fmt.Errorf("TMDB_RATE_BURST must be at least 1 when TMDB_RATE_LIMIT is set")
	}
	return nil
}

func (c *Config) validateCache() error {
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive, got %v", c.Cache.TTL)
	}
	switch c.Cache.Backend {
	case CacheBackendMemory:
	case CacheBackendBadger:
		if c.Cache.BadgerPath == "" {
			return fmt.Errorf("BADGER_PATH is required when CACHE_BACKEND=badger")
		}
	case CacheBackendRedis:
		if c.Cache.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR is required when CACHE_BACKEND=redis")
		}
	default:
		return fmt.Errorf("CACHE_BACKEND must be one of memory, badger, redis; got %q", c.Cache.Backend)
	}
	return nil
}

func (c *Config) validateFavorites() error {
	if c.Favorites.Username == "" {
		return fmt.Errorf("FAVORITES_USERNAME must not be empty")
	}
	switch c.Favorites.Driver {
	case FavoritesDriverMemory:
	case FavoritesDriverSQLite:
		if c.Favorites.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required when FAVORITES_DRIVER=sqlite")
		}
	case FavoritesDriverPostgres:
		if c.Favorites.PostgresDSN == "" {
			return fmt.Errorf("DATABASE_URL is required when FAVORITES_DRIVER=postgres")
		}
	case FavoritesDriverDuckDB:
		if c.Favorites.DuckDBPath == "" {
			return fmt.Errorf("DUCKDB_PATH is required when FAVORITES_DRIVER=duckdb")
		}
	case FavoritesDriverMongoDB:
		if c.Favorites.MongoDBURI == "" {
			return fmt.Errorf("MONGODB_URI is required when FAVORITES_DRIVER=mongodb")
		}
	default:
		return fmt.Errorf("FAVORITES_DRIVER must be one of memory, sqlite, postgres, duckdb, mongodb; got %q", c.Favorites.Driver)
	}
	return nil
}

func (c *Config) validateAnnouncer() error {
	if c.Announcer.Limit < 1 {
		return fmt.Errorf("ANNOUNCER_LIMIT must be at least 1, got %d", c.Announcer.Limit)
	}
	if c.Announcer.Interval < 0 {
		return fmt.Errorf("ANNOUNCER_INTERVAL must not be negative, got %v", c.Announcer.Interval)
	}
	if c.Announcer.Interval > 0 && c.Announcer.DiscordWebhookURL == "" {
		return fmt.Errorf("DISCORD_WEBHOOK_URL is required when ANNOUNCER_INTERVAL is set")
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitRequests < 1 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be at least 1, got %d", c.Security.RateLimitRequests)
	}
	if c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got %v", c.Security.RateLimitWindow)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "disabled":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of trace, debug, info, warn, error, fatal, disabled; got %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
	return nil
}
