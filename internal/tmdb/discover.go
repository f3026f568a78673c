// MoviePulse - TMDB Discovery and Favorites Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviepulse

package tmdb

import (
	"context"
	"net/url"
	"strconv"

	"github.com/goccy/go-json"
)

// DiscoverParams are the discover/movie filters. Zero values are omitted
// from the request, except the two include_* flags which are always sent.
type DiscoverParams struct {
	IncludeAdult         bool
	IncludeVideo         bool
	Language             string
	WithOriginalLanguage string
	SortBy               string
	Region               string
	Certification        string
	PrimaryReleaseYear   int
	ReleaseDateGTE       string
	ReleaseDateLTE       string
	// WithReleaseType uses TMDB syntax, e.g. "2|3".
	WithReleaseType string
	// WithGenres and WithoutGenres are comma-separated genre ids.
	WithGenres    string
	WithoutGenres string
	// VoteCountGTE and VoteCountLTE are sent when non-nil, zero included.
	VoteCountGTE *int
	VoteCountLTE *int
	// MaxPages bounds the fetch; 0 uses the client default.
	MaxPages int
}

// Values renders the parameters with TMDB's dotted names.
func (p *DiscoverParams) Values() url.Values {
	v := url.Values{}
	v.Set("include_adult", strconv.FormatBool(p.IncludeAdult))
	v.Set("include_video", strconv.FormatBool(p.IncludeVideo))

	setString := func(name, value string) {
		if value != "" {
			v.Set(name, value)
		}
	}
	setInt := func(name string, value int) {
		if value != 0 {
			v.Set(name, strconv.Itoa(value))
		}
	}

	setString("language", p.Language)
	setString("with_original_language", p.WithOriginalLanguage)
	setString("sort_by", p.SortBy)
	setString("region", p.Region)
	setString("certification", p.Certification)
	setInt("primary_release_year", p.PrimaryReleaseYear)
	setString("release_date.gte", p.ReleaseDateGTE)
	setString("release_date.lte", p.ReleaseDateLTE)
	setString("with_release_type", p.WithReleaseType)
	setString("with_genres", p.WithGenres)
	setString("without_genres", p.WithoutGenres)
	setIntPtr := func(name string, value *int) {
		if value != nil {
			v.Set(name, strconv.Itoa(*value))
		}
	}
	setIntPtr("vote_count.gte", p.VoteCountGTE)
	setIntPtr("vote_count.lte", p.VoteCountLTE)
	return v
}

// DiscoverMovies runs the generic paginated discover call.
func (c *Client) DiscoverMovies(ctx context.Context, p DiscoverParams) ([]json.RawMessage, error) {
	return c.discover(ctx, p, nil)
}

func (c *Client) discover(ctx context.Context, p DiscoverParams, validate func([]json.RawMessage) error) ([]json.RawMessage, error) {
	maxPages := p.MaxPages
	if maxPages <= 0 {
		maxPages = c.maxPages
	}
	return c.fetchPages(ctx, request{
		op:       "discover_movies",
		path:     "discover/movie",
		params:   p.Values(),
		validate: validate,
	}, maxPages)
}

// defaultDiscover returns the shared preset baseline.
func (c *Client) defaultDiscover() DiscoverParams {
	return DiscoverParams{
		Language: c.language,
		SortBy:   "popularity.desc",
		MaxPages: c.maxPages,
	}
}
