// MoviePulse - TMDB Discovery and Favorites Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviepulse

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the config file locations searched in order.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/moviepulse/config.yaml",
	"/etc/moviepulse/config.yml",
}

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

// DotEnvFile is read into the process environment before loading, if present.
const DotEnvFile = ".env"

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            5000,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    60 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		TMDB: TMDBConfig{
			Host:           "https://api.themoviedb.org",
			APIVersion:     "3",
			Timeout:        10 * time.Second,
			Language:       "en-US",
			MaxPages:       5,
			RateBurst:      10,
			CircuitBreaker: true,
		},
		Cache: CacheConfig{
			Backend:    CacheBackendMemory,
			TTL:        600 * time.Second,
			BadgerPath: "/data/cache",
			RedisAddr:  "localhost:6379",
		},
		Favorites: FavoritesConfig{
			Driver:          FavoritesDriverSQLite,
			SQLitePath:      "/data/moviepulse.db",
			DuckDBPath:      "/data/moviepulse.duckdb",
			MongoDBDatabase: "moviepulse",
			Username:        "guest",
		},
		Announcer: AnnouncerConfig{
			Username: "MoviePulse",
			Limit:    5,
		},
		Security: SecurityConfig{
			CORSOrigins:       []string{"*"},
			RateLimitRequests: 100,
			RateLimitWindow:   time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads .env (if any) and then loads the layered configuration.
func Load() (*Config, error) {
	if err := godotenv.Load(DotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read %s: %w", DotEnvFile, err)
	}
	return LoadWithKoanf()
}

// LoadWithKoanf applies defaults, then the config file, then env vars, and
// validates the result.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields splits comma-separated env values for slice fields.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		s, ok := k.Get(path).(string)
		if !ok || s == "" {
			continue
		}
		parts := strings.Split(s, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		if err := k.Set(path, out); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps environment variable names (lower-cased) to koanf paths.
// Unmapped variables are ignored.
var envMappings = map[string]string{
	"http_host":        "server.host",
	"http_port":        "server.port",
	"read_timeout":     "server.read_timeout",
	"write_timeout":    "server.write_timeout",
	"idle_timeout":     "server.idle_timeout",
	"shutdown_timeout": "server.shutdown_timeout",

	"tmdb_host":            "tmdb.host",
	"tmdb_api_version":     "tmdb.api_version",
	"tmdb_base":            "tmdb.base",
	"tmdb_api_token":       "tmdb.api_token",
	"tmdb_timeout":         "tmdb.timeout",
	"tmdb_language":        "tmdb.language",
	"tmdb_max_pages":       "tmdb.max_pages",
	"tmdb_rate_limit":      "tmdb.rate_limit",
	"tmdb_rate_burst":      "tmdb.rate_burst",
	"tmdb_circuit_breaker": "tmdb.circuit_breaker",

	"cache_backend":  "cache.backend",
	"cache_ttl":      "cache.ttl",
	"badger_path":    "cache.badger_path",
	"redis_addr":     "cache.redis_addr",
	"redis_password": "cache.redis_password",
	"redis_db":       "cache.redis_db",

	"favorites_driver":   "favorites.driver",
	"favorites_username": "favorites.username",
	"sqlite_path":        "favorites.sqlite_path",
	"database_url":       "favorites.postgres_dsn",
	"duckdb_path":        "favorites.duckdb_path",
	"mongodb_uri":        "favorites.mongodb_uri",
	"mongodb_database":   "favorites.mongodb_database",

	"discord_webhook_url": "announcer.discord_webhook_url",
	"announcer_username":  "announcer.username",
	"announcer_limit":     "announcer.limit",
	"announcer_interval":  "announcer.interval",

	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_requests",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
