// MoviePulse - TMDB Discovery and Favorites Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviepulse

package announcer

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/goccy/go-json"
)

// WebhookMessage is the Discord execute-webhook body.
type WebhookMessage struct {
	Username string  `json:"username,omitempty"`
	Content  string  `json:"content,omitempty"`
	Embeds   []Embed `json:"embeds,omitempty"`
}

// Embed is a Discord embed object.
type Embed struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Color       int          `json:"color"`
	Fields      []EmbedField `json:"fields"`
	Image       EmbedImage   `json:"image"`
}

// EmbedField is one name/value row of an embed.
type EmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

// EmbedImage is the large image under an embed. An empty URL shows nothing.
type EmbedImage struct {
	URL string `json:"url"`
}

// RateLimitError is returned when Discord answers 429.
type RateLimitError struct {
	RetryAfter time.Duration
	Body       string
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("Discord webhook returned %d: %s", http.StatusTooManyRequests, e.Body)
}

// Sender posts one message to a webhook.
type Sender interface {
	Send(ctx context.Context, webhookURL string, msg *WebhookMessage) error
}

// DiscordClient sends webhook messages over HTTP.
type DiscordClient struct {
	client *http.Client
}

// NewDiscordClient creates a client with a 30s timeout.
func NewDiscordClient() *DiscordClient {
	return &DiscordClient{client: &http.Client{Timeout: 30 * time.Second}}
}

// ValidateWebhookURL checks that u is an absolute http(s) URL.
func ValidateWebhookURL(u string) error {
	if u == "" {
		return ErrMissingWebhook
	}
	parsed, err := url.Parse(u)
	if err != nil {
		return fmt.Errorf("invalid Discord webhook URL: %w", err)
	}
	if (parsed.Scheme != "https" && parsed.Scheme != "http") || parsed.Host == "" {
		return fmt.Errorf("invalid Discord webhook URL: %q", u)
	}
	return nil
}

// Send posts msg. Any non-2xx status is an error carrying up to 1KiB of the
// response body.
func (c *DiscordClient) Send(ctx context.Context, webhookURL string, msg *WebhookMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, webhookURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1024))
	if err != nil {
		body = []byte("(failed to read response)")
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		rl := &RateLimitError{Body: string(body)}
		// Discord sends Retry-After in seconds.
		if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
			if d, perr := time.ParseDuration(retryAfter + "s"); perr == nil {
				rl.RetryAfter = d
			}
		}
		return rl
	}
	return fmt.Errorf("Discord webhook returned %d: %s", resp.StatusCode, string(body))
}
