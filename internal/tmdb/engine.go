// MoviePulse - TMDB Discovery and Favorites Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviepulse

package tmdb

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/tomtom215/moviepulse/internal/cache"
	"github.com/tomtom215/moviepulse/internal/logging"
	"github.com/tomtom215/moviepulse/internal/metrics"
)

// request identifies one logical operation.
type request struct {
	// op is the stable operation name used for cache keys and metrics.
	op   string
	path string
	// params are sent upstream on every call (page is added per call).
	params url.Values
	// identity holds arguments that shape the result but are not query
	// parameters, such as a path id or the page bound.
	identity url.Values
	// validate, when set, rejects a fetched result before it is cached.
	validate func([]json.RawMessage) error
}

func (r request) cacheKey() string {
	merged := make(url.Values, len(r.params)+len(r.identity))
	for k, v := range r.params {
		merged[k] = v
	}
	for k, v := range r.identity {
		merged[k] = v
	}
	return keyPrefix + cache.GenerateKey(r.op, merged)
}

// pagedKey adds the page bound to the identity.
func (r request) pagedKey(maxPages int) string {
	identity := cloneValues(r.identity)
	identity.Set("max_pages", strconv.Itoa(maxPages))
	r.identity = identity
	return r.cacheKey()
}

type pageEnvelope struct {
	Results    []json.RawMessage `json:"results"`
	TotalPages int               `json:"total_pages"`
}

// fetchPages concatenates results of pages 1..min(maxPages, total_pages).
// At least one call is made on a miss. A failing page or a result rejected
// by r.validate aborts the whole fetch and nothing is cached.
func (c *Client) fetchPages(ctx context.Context, r request, maxPages int) ([]json.RawMessage, error) {
	key := r.pagedKey(maxPages)

	if raw, ok := c.cacheGet(ctx, r.op, key); ok {
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err == nil {
			return items, nil
		}
		logging.Ctx(ctx).Warn().Str("operation", r.op).Msg("Discarding undecodable cache entry")
	}

	results, err := c.walkPages(ctx, r, maxPages)
	if err != nil {
		return nil, err
	}
	if r.validate != nil {
		if err := r.validate(results); err != nil {
			return nil, err
		}
	}

	c.cacheSet(ctx, r.op, key, results)
	return results, nil
}

// walkPages issues the page calls without touching the cache.
func (c *Client) walkPages(ctx context.Context, r request, maxPages int) ([]json.RawMessage, error) {
	results := make([]json.RawMessage, 0)
	for page := 1; ; page++ {
		params := cloneValues(r.params)
		params.Set("page", strconv.Itoa(page))

		body, err := c.doer.Do(ctx, http.MethodGet, r.path, params)
		if err != nil {
			return nil, err
		}

		var env pageEnvelope
		if err := json.Unmarshal(body, &env); err != nil {
			return nil, decodeError("failed to decode %s page %d: %w", r.op, page, err)
		}
		results = append(results, env.Results...)

		if page >= min(maxPages, env.TotalPages) {
			return results, nil
		}
	}
}

// fetchOne performs a single cached call. extract, when set, selects the
// part of the body that is returned and cached.
func (c *Client) fetchOne(ctx context.Context, r request, extract func(json.RawMessage) (json.RawMessage, error)) (json.RawMessage, error) {
	key := r.cacheKey()
	if raw, ok := c.cacheGet(ctx, r.op, key); ok {
		return json.RawMessage(raw), nil
	}

	body, err := c.doer.Do(ctx, http.MethodGet, r.path, r.params)
	if err != nil {
		return nil, err
	}
	if extract != nil {
		if body, err = extract(body); err != nil {
			return nil, err
		}
	}

	c.cacheSet(ctx, r.op, key, body)
	return body, nil
}

// cacheGet treats backend errors as misses.
func (c *Client) cacheGet(ctx context.Context, op, key string) ([]byte, bool) {
	if c.cache == nil {
		return nil, false
	}
	raw, ok, err := c.cache.Get(ctx, key)
	switch {
	case err != nil:
		metrics.RecordCacheLookup(op, "error")
		logging.Ctx(ctx).Warn().Err(err).Str("operation", op).Msg("Cache read failed, fetching from TMDB")
		return nil, false
	case !ok:
		metrics.RecordCacheLookup(op, "miss")
		return nil, false
	default:
		metrics.RecordCacheLookup(op, "hit")
		return raw, true
	}
}

// cacheSet never fails the caller.
func (c *Client) cacheSet(ctx context.Context, op, key string, value any) {
	if c.cache == nil {
		return
	}
	var (
		raw []byte
		err error
	)
	if msg, ok := value.(json.RawMessage); ok {
		raw = msg
	} else if raw, err = json.Marshal(value); err != nil {
		metrics.RecordCacheWriteError(op)
		logging.Ctx(ctx).Warn().Err(err).Str("operation", op).Msg("Cache encode failed")
		return
	}
	if err := c.cache.Set(ctx, key, raw, c.ttl); err != nil {
		metrics.RecordCacheWriteError(op)
		logging.Ctx(ctx).Warn().Err(err).Str("operation", op).Msg("Cache write failed")
	}
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v)+1)
	for k, vals := range v {
		out[k] = append([]string(nil), vals...)
	}
	return out
}

// resultsField extracts the "results" array of an object payload.
func resultsField(body json.RawMessage) (json.RawMessage, error) {
	var env struct {
		Results json.RawMessage `json:"results"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, decodeError("failed to decode results: %w", err)
	}
	if len(env.Results) == 0 || string(env.Results) == "null" {
		return json.RawMessage("[]"), nil
	}
	return env.Results, nil
}
