// MoviePulse - TMDB Discovery and Favorites Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviepulse

// Package announcer posts the most popular upcoming movies to a Discord
// channel through a webhook.
package announcer

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/moviepulse/internal/logging"
	"github.com/tomtom215/moviepulse/internal/metrics"
	"github.com/tomtom215/moviepulse/internal/tmdb"
)

const (
	// DefaultLimit caps announcements per run.
	DefaultLimit = 5

	messageContent    = "🎬 Upcoming Movie!"
	embedColor        = 0x1abc9c
	descriptionLength = 200
	posterBaseURL     = "https://image.tmdb.org/t/p/w500"
	notAvailable      = "N/A"

	// maxRateLimitWait bounds the pause after a Discord 429.
	maxRateLimitWait = 30 * time.Second
)

// ErrMissingWebhook is returned when no webhook URL is configured.
var ErrMissingWebhook = errors.New("Discord webhook URL is not configured")

// Catalog is the part of the TMDB client the announcer reads.
type Catalog interface {
	GenreMap(ctx context.Context) (map[int]string, error)
	Upcoming(ctx context.Context) ([]json.RawMessage, error)
}

var _ Catalog = (*tmdb.Client)(nil)

// Config controls one announcer.
type Config struct {
	WebhookURL string
	// Username overrides the webhook's display name.
	Username string
	Limit    int
	// DryRun logs each message instead of sending it.
	DryRun bool
	Now    func() time.Time
}

// Summary is the outcome of one run.
type Summary struct {
	Candidates int `json:"candidates"`
	Sent       int `json:"sent"`
	Failed     int `json:"failed"`
}

// Announcer builds and sends the messages.
type Announcer struct {
	catalog Catalog
	sender  Sender
	cfg     Config
	// wait pauses between sends after a 429; replaced in tests.
	wait func(ctx context.Context, d time.Duration) error
}

// New validates cfg and creates an Announcer. The webhook URL is required
// unless cfg.DryRun is set.
func New(catalog Catalog, sender Sender, cfg Config) (*Announcer, error) {
	if !cfg.DryRun {
		if err := ValidateWebhookURL(cfg.WebhookURL); err != nil {
			return nil, err
		}
	}
	if cfg.Limit <= 0 {
		cfg.Limit = DefaultLimit
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if sender == nil {
		sender = NewDiscordClient()
	}
	return &Announcer{catalog: catalog, sender: sender, cfg: cfg, wait: sleepCtx}, nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Movie is the subset of a TMDB discover result the embed uses.
type Movie struct {
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	ReleaseDate string  `json:"release_date"`
	Popularity  float64 `json:"popularity"`
	GenreIDs    []int   `json:"genre_ids"`
	PosterPath  string  `json:"poster_path"`
}

// Run fetches the genre map and upcoming movies concurrently, then announces
// the most popular ones strictly after today. A failed send is logged and
// counted. A 429 pauses for Retry-After (capped at 30s) before the next
// send. Fetch failures and cancellation during that pause abort the run.
func (a *Announcer) Run(ctx context.Context) (Summary, error) {
	ctx = logging.ContextWithNewCorrelationID(ctx)
	log := logging.Ctx(ctx)

	var (
		genres   map[int]string
		upcoming []json.RawMessage
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		genres, err = a.catalog.GenreMap(gctx)
		if err != nil {
			return fmt.Errorf("could not fetch genre mapping: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		upcoming, err = a.catalog.Upcoming(gctx)
		if err != nil {
			return fmt.Errorf("could not fetch upcoming movies: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	candidates, err := tmdb.FilterReleaseWindow(upcoming, a.cfg.Now(), time.Time{})
	if err != nil {
		return Summary{}, err
	}
	tmdb.SortByPopularity(candidates)
	if len(candidates) > a.cfg.Limit {
		candidates = candidates[:a.cfg.Limit]
	}

	summary := Summary{Candidates: len(candidates)}
	var stopErr error
	for i, raw := range candidates {
		var m Movie
		if err := json.Unmarshal(raw, &m); err != nil {
			summary.Failed++
			log.Error().Err(err).Msg("Failed to decode upcoming movie")
			continue
		}

		msg := a.message(&m, genres)
		if a.cfg.DryRun {
			payload, _ := json.Marshal(msg)
			log.Info().Str("title", m.Title).RawJSON("payload", payload).Msg("Dry run, not sending")
			summary.Sent++
			continue
		}

		if err := a.sender.Send(ctx, a.cfg.WebhookURL, msg); err != nil {
			summary.Failed++
			metrics.RecordAnnouncement(false)
			log.Error().Err(err).Str("title", m.Title).Msg("Failed to send announcement")

			var rl *RateLimitError
			if errors.As(err, &rl) && rl.RetryAfter > 0 && i < len(candidates)-1 {
				d := min(rl.RetryAfter, maxRateLimitWait)
				log.Warn().Dur("retry_after", d).Msg("Discord rate limited, pausing before next announcement")
				if stopErr = a.wait(ctx, d); stopErr != nil {
					break
				}
			}
			continue
		}
		summary.Sent++
		metrics.RecordAnnouncement(true)
		log.Info().Str("title", m.Title).Str("release_date", m.ReleaseDate).Msg("Announced upcoming movie")
	}

	metrics.RecordAnnouncerRun(a.cfg.Now())
	log.Info().Int("sent", summary.Sent).Int("failed", summary.Failed).Bool("dry_run", a.cfg.DryRun).
		Msg("Announcer run complete")
	return summary, stopErr
}

func (a *Announcer) message(m *Movie, genres map[int]string) *WebhookMessage {
	return &WebhookMessage{
		Username: a.cfg.Username,
		Content:  messageContent,
		Embeds:   []Embed{FormatEmbed(m, genres)},
	}
}

// FormatEmbed renders one movie. The description is always the first 200
// characters of the overview followed by "...".
func FormatEmbed(m *Movie, genres map[int]string) Embed {
	releaseDate := m.ReleaseDate
	if releaseDate == "" {
		releaseDate = notAvailable
	}

	names := make([]string, 0, len(m.GenreIDs))
	for _, id := range m.GenreIDs {
		if name, ok := genres[id]; ok {
			names = append(names, name)
		} else {
			names = append(names, strconv.Itoa(id))
		}
	}
	genreValue := strings.Join(names, ", ")
	if genreValue == "" {
		genreValue = notAvailable
	}

	image := ""
	if m.PosterPath != "" {
		image = posterBaseURL + m.PosterPath
	}

	return Embed{
		Title:       m.Title,
		Description: truncateRunes(m.Overview, descriptionLength) + "...",
		Color:       embedColor,
		Fields: []EmbedField{
			{Name: "Release Date", Value: releaseDate, Inline: true},
			{Name: "Popularity", Value: fmt.Sprintf("%d ⭐", int(m.Popularity)), Inline: true},
			{Name: "Genres", Value: genreValue, Inline: false},
		},
		Image: EmbedImage{URL: image},
	}
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
