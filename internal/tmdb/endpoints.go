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

// MediaType distinguishes movies from TV series.
type MediaType string

const (
	MediaMovie MediaType = "movie"
	MediaTV    MediaType = "tv"
)

// Trending windows.
const (
	WindowDay  = "day"
	WindowWeek = "week"
)

// ValidWindow reports whether w is a supported trending window.
func ValidWindow(w string) bool {
	return w == WindowDay || w == WindowWeek
}

func (c *Client) languageParams() url.Values {
	return url.Values{"language": {c.language}}
}

// MovieCertifications returns the certification catalogue by country.
func (c *Client) MovieCertifications(ctx context.Context) (json.RawMessage, error) {
	return c.fetchOne(ctx, request{op: "movie_certifications", path: "certification/movie/list"}, nil)
}

// Countries returns the configured countries list.
func (c *Client) Countries(ctx context.Context) (json.RawMessage, error) {
	return c.fetchOne(ctx, request{op: "countries", path: "configuration/countries"}, nil)
}

// Languages returns the configured languages list.
func (c *Client) Languages(ctx context.Context) (json.RawMessage, error) {
	return c.fetchOne(ctx, request{op: "languages", path: "configuration/languages"}, nil)
}

// MovieGenres returns {"genres":[{id,name}]}.
func (c *Client) MovieGenres(ctx context.Context) (json.RawMessage, error) {
	return c.fetchOne(ctx, request{op: "movie_genres", path: "genre/movie/list", params: c.languageParams()}, nil)
}

// GenreMap returns movie genre names keyed by id.
func (c *Client) GenreMap(ctx context.Context) (map[int]string, error) {
	body, err := c.MovieGenres(ctx)
	if err != nil {
		return nil, err
	}
	var v struct {
		Genres []struct {
			ID   int    `json:"id"`
			Name string `json:"name"`
		} `json:"genres"`
	}
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, decodeError("failed to decode genres: %w", err)
	}
	out := make(map[int]string, len(v.Genres))
	for _, g := range v.Genres {
		out[g.ID] = g.Name
	}
	return out, nil
}

// Trending returns trending titles for media over window.
func (c *Client) Trending(ctx context.Context, media MediaType, window string) ([]json.RawMessage, error) {
	if !ValidWindow(window) {
		return nil, validationError("Invalid time window, must be 'day' or 'week'")
	}
	if media != MediaMovie && media != MediaTV {
		return nil, validationError("Invalid media type, must be 'movie' or 'tv'")
	}
	return c.fetchPages(ctx, request{
		op:     "trending_" + string(media),
		path:   "trending/" + string(media) + "/" + window,
		params: c.languageParams(),
		identity: url.Values{
			"time_window": {window},
		},
	}, c.maxPages)
}

// TrendingMovies returns trending movies.
func (c *Client) TrendingMovies(ctx context.Context, window string) ([]json.RawMessage, error) {
	return c.Trending(ctx, MediaMovie, window)
}

// TrendingTV returns trending TV series.
func (c *Client) TrendingTV(ctx context.Context, window string) ([]json.RawMessage, error) {
	return c.Trending(ctx, MediaTV, window)
}

func (c *Client) detail(ctx context.Context, op, prefix string, id int, suffix string, extract func(json.RawMessage) (json.RawMessage, error)) (json.RawMessage, error) {
	if id <= 0 {
		return nil, validationError("Invalid id")
	}
	sid := strconv.Itoa(id)
	return c.fetchOne(ctx, request{
		op:       op,
		path:     prefix + "/" + sid + suffix,
		params:   c.languageParams(),
		identity: url.Values{"id": {sid}},
	}, extract)
}

// MovieDetail returns one movie.
func (c *Client) MovieDetail(ctx context.Context, id int) (json.RawMessage, error) {
	return c.detail(ctx, "movie_detail", "movie", id, "", nil)
}

// MovieCredits returns cast and crew of one movie.
func (c *Client) MovieCredits(ctx context.Context, id int) (json.RawMessage, error) {
	return c.detail(ctx, "movie_credits", "movie", id, "/credits", nil)
}

// MovieVideos returns the videos array of one movie.
func (c *Client) MovieVideos(ctx context.Context, id int) (json.RawMessage, error) {
	return c.detail(ctx, "movie_videos", "movie", id, "/videos", resultsField)
}

// TVDetail returns one TV series.
func (c *Client) TVDetail(ctx context.Context, id int) (json.RawMessage, error) {
	return c.detail(ctx, "tv_detail", "tv", id, "", nil)
}

// TVCredits returns cast and crew of one TV series.
func (c *Client) TVCredits(ctx context.Context, id int) (json.RawMessage, error) {
	return c.detail(ctx, "tv_credits", "tv", id, "/credits", nil)
}
