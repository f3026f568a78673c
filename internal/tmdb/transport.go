// MoviePulse - TMDB Discovery and Favorites Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviepulse

package tmdb

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/tomtom215/moviepulse/internal/logging"
	"github.com/tomtom215/moviepulse/internal/metrics"
)

// maxErrorBody bounds how much of a failed response is copied into the error.
const maxErrorBody = 1024

// emptyPayload is returned for a successful response with no body.
var emptyPayload = json.RawMessage("{}")

// Doer performs a single upstream request and returns the decoded body.
type Doer interface {
	Do(ctx context.Context, method, path string, params url.Values) (json.RawMessage, error)
}

// TransportConfig configures a Transport.
type TransportConfig struct {
	// BaseURL is host + version (+ prefix), e.g. https://api.themoviedb.org/3
	BaseURL string
	// Token is sent as a bearer credential when non-empty.
	Token   string
	Timeout time.Duration
	// RateLimit in requests per second; 0 disables pacing.
	RateLimit float64
	RateBurst int
	// HTTPClient overrides the default client. Timeout is ignored when set.
	HTTPClient *http.Client
}

// Transport is the single-attempt HTTP layer in front of TMDB. It never
// retries.
type Transport struct {
	baseURL string
	token   string
	client  *http.Client
	limiter *rate.Limiter
}

// NewTransport creates a Transport.
func NewTransport(cfg TransportConfig) *Transport {
	client := cfg.HTTPClient
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}

	t := &Transport{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.Token,
		client:  client,
	}
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst < 1 {
			burst = 1
		}
		t.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}
	return t
}

// Do implements Doer.
func (t *Transport) Do(ctx context.Context, method, path string, params url.Values) (json.RawMessage, error) {
	endpoint := endpointLabel(path)
	start := time.Now()

	body, err := t.do(ctx, method, path, params)

	outcome := "ok"
	if err != nil {
		outcome = string(KindOf(err))
	}
	metrics.RecordUpstreamRequest(endpoint, outcome, time.Since(start))
	return body, err
}

func (t *Transport) do(ctx context.Context, method, path string, params url.Values) (json.RawMessage, error) {
	if t.limiter != nil {
		if err := t.limiter.Wait(ctx); err != nil {
			return nil, transportError(err)
		}
	}

	reqURL := t.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, http.NoBody)
	if err != nil {
		return nil, transportError(fmt.Errorf("create request failed: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if t.token != "" {
		req.Header.Set("Authorization", "Bearer "+t.token)
	}

	start := time.Now()
	resp, err := t.client.Do(req)
	if err != nil {
		logging.Ctx(ctx).Debug().Err(err).Str("method", method).Str("path", path).Msg("TMDB request failed")
		return nil, transportError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, transportError(fmt.Errorf("read response failed: %w", err))
	}

	logging.Ctx(ctx).Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("TMDB request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if len(raw) > maxErrorBody {
			raw = raw[:maxErrorBody]
		}
		return nil, statusError(resp.StatusCode, raw)
	}

	return decodeBody(raw)
}

func decodeBody(raw []byte) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return emptyPayload, nil
	}
	if !utf8.Valid(trimmed) {
		return nil, decodeError("failed to decode response: body is not valid UTF-8")
	}
	if !json.Valid(trimmed) {
		return nil, decodeError("failed to decode response: body is not valid JSON")
	}
	return json.RawMessage(trimmed), nil
}

var numericSegment = regexp.MustCompile(`/\d+(/|$)`)

// endpointLabel collapses numeric path segments so metrics stay low-cardinality.
func endpointLabel(path string) string {
	p := "/" + strings.Trim(path, "/")
	return strings.TrimPrefix(numericSegment.ReplaceAllString(p, "/{id}$1"), "/")
}
