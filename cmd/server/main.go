// MoviePulse - TMDB Discovery and Favorites Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviepulse

package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	_ "github.com/tomtom215/moviepulse/docs" // swagger spec
	"github.com/tomtom215/moviepulse/internal/announcer"
	"github.com/tomtom215/moviepulse/internal/api"
	"github.com/tomtom215/moviepulse/internal/cache"
	"github.com/tomtom215/moviepulse/internal/config"
	"github.com/tomtom215/moviepulse/internal/favorites"
	"github.com/tomtom215/moviepulse/internal/logging"
	"github.com/tomtom215/moviepulse/internal/supervisor"
	"github.com/tomtom215/moviepulse/internal/supervisor/services"
	"github.com/tomtom215/moviepulse/internal/tmdb"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := cache.New(ctx, cfg.Cache)
	if err != nil {
		logging.Fatal().Err(err).Str("backend", cfg.Cache.Backend).Msg("Failed to open cache")
	}
	defer func() {
		if err := store.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing cache")
		}
	}()

	favStore, err := favorites.New(ctx, cfg.Favorites)
	if err != nil {
		logging.Fatal().Err(err).Str("driver", cfg.Favorites.Driver).Msg("Failed to open favorites store")
	}
	defer func() {
		if err := favStore.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing favorites store")
		}
	}()

	client := tmdb.NewFromConfig(&cfg.TMDB, store, cfg.Cache.TTL)
	logging.Info().
		Str("tmdb", cfg.TMDB.BaseURL()).
		Str("cache", cfg.Cache.Backend).
		Str("favorites", cfg.Favorites.Driver).
		Bool("circuit_breaker", cfg.TMDB.CircuitBreaker).
		Msg("Configuration loaded")

	pages, err := api.NewPages(favStore, cfg.Favorites.Username)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to parse page templates")
	}
	handler := api.NewHandler(client, favStore, cfg.Favorites.Username)
	router := api.NewRouter(handler, pages, api.NewChiMiddleware(api.ChiMiddlewareConfigFromSecurity(&cfg.Security)))

	addr := net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port))
	server := &http.Server{
		Addr:         addr,
		Handler:      router.SetupChi(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	if gc, ok := store.(services.GarbageCollector); ok {
		tree.AddBackgroundService(services.NewCacheGCService(gc, 0))
	}

	if cfg.Announcer.Interval > 0 {
		a, err := announcer.New(client, nil, announcer.Config{
			WebhookURL: cfg.Announcer.DiscordWebhookURL,
			Username:   cfg.Announcer.Username,
			Limit:      cfg.Announcer.Limit,
		})
		if err != nil {
			logging.Fatal().Err(err).Msg("Failed to configure announcer")
		}
		tree.AddBackgroundService(services.NewAnnouncerService(a, cfg.Announcer.Interval))
		logging.Info().Dur("interval", cfg.Announcer.Interval).Msg("Announcer scheduled")
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Shutdown signal received")
		cancel()
	}()

	logging.Info().Str("addr", addr).Msg("MoviePulse server starting")
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree stopped with error")
	}

	if report, err := tree.UnstoppedServiceReport(); err == nil && len(report) > 0 {
		for _, svc := range report {
			logging.Warn().Str("service", svc.Name).Msg("Service did not stop within timeout")
		}
	}
	logging.Info().Msg("MoviePulse stopped")
}
