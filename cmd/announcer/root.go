// MoviePulse - TMDB Discovery and Favorites Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviepulse

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tomtom215/moviepulse/internal/announcer"
	"github.com/tomtom215/moviepulse/internal/cache"
	"github.com/tomtom215/moviepulse/internal/config"
	"github.com/tomtom215/moviepulse/internal/logging"
	"github.com/tomtom215/moviepulse/internal/tmdb"
)

var (
	cfgFile    string
	dryRun     bool
	limit      int
	webhookURL string
	timeout    time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "moviepulse-announcer",
	Short: "Post the most popular upcoming movies to Discord",
	Long: `moviepulse-announcer fetches upcoming US theatrical releases from TMDB,
keeps those releasing after today, and posts the most popular ones to a
Discord channel through a webhook.`,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.Flags().BoolVarP(&dryRun, "dry-run", "d", false, "log the messages instead of sending them")
	rootCmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum announcements (default from config, 5)")
	rootCmd.Flags().StringVar(&webhookURL, "webhook", "", "Discord webhook URL (overrides config)")
	rootCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall run timeout")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	if cfgFile != "" {
		if err := os.Setenv(config.ConfigPathEnvVar, cfgFile); err != nil {
			return err
		}
	}
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	acfg := announcer.Config{
		WebhookURL: cfg.Announcer.DiscordWebhookURL,
		Username:   cfg.Announcer.Username,
		Limit:      cfg.Announcer.Limit,
		DryRun:     dryRun,
	}
	if cmd.Flags().Changed("webhook") {
		acfg.WebhookURL = webhookURL
	}
	if cmd.Flags().Changed("limit") {
		acfg.Limit = limit
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	store, err := cache.New(ctx, cfg.Cache)
	if err != nil {
		return fmt.Errorf("failed to open cache: %w", err)
	}
	defer store.Close()

	a, err := announcer.New(tmdb.NewFromConfig(&cfg.TMDB, store, cfg.Cache.TTL), nil, acfg)
	if err != nil {
		return err
	}

	summary, err := a.Run(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "sent %d, failed %d\n", summary.Sent, summary.Failed)
	return nil
}
