// MoviePulse - TMDB Discovery and Favorites Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviepulse

package tmdb

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

const (
	dateLayout = "2006-01-02"

	genreAnimation   = "16"
	genreFamily      = "10751"
	genreHorror      = "27"
	genreDocumentary = "99"
	genreTVMovie     = "10755"

	upcomingRegion     = "US"
	upcomingMonths     = 3
	topRatedMinVotes   = 200
	releaseTheatrical  = "2|3"
	sortVoteAverageDsc = "vote_average.desc"
)

// Filters are the caller-facing overrides accepted by Popular and TopRated.
type Filters struct {
	WithGenres       string
	OriginalLanguage string
	Region           string
	Year             int
}

func (f Filters) apply(p *DiscoverParams) {
	if f.WithGenres != "" {
		p.WithGenres = f.WithGenres
	}
	if f.OriginalLanguage != "" {
		p.WithOriginalLanguage = f.OriginalLanguage
	}
	if f.Region != "" {
		p.Region = f.Region
	}
	if f.Year != 0 {
		p.PrimaryReleaseYear = f.Year
	}
}

// Upcoming returns theatrical US releases dated after today and no later
// than three calendar months from today.
func (c *Client) Upcoming(ctx context.Context) ([]json.RawMessage, error) {
	today := civilDate(c.now())

	p := c.defaultDiscover()
	p.WithReleaseType = releaseTheatrical
	p.Region = upcomingRegion
	p.ReleaseDateGTE = today.Format(dateLayout)
	until := addMonths(today, upcomingMonths)
	p.ReleaseDateLTE = until.Format(dateLayout)

	items, err := c.discover(ctx, p, checkReleaseDates)
	if err != nil {
		return nil, err
	}
	return FilterReleaseWindow(items, today, until)
}

// Popular is discover sorted by popularity.
func (c *Client) Popular(ctx context.Context, f Filters) ([]json.RawMessage, error) {
	p := c.defaultDiscover()
	f.apply(&p)
	return c.DiscoverMovies(ctx, p)
}

// TopRated is discover sorted by rating with a vote floor, excluding
// documentaries and TV movies.
func (c *Client) TopRated(ctx context.Context, f Filters) ([]json.RawMessage, error) {
	p := c.defaultDiscover()
	p.SortBy = sortVoteAverageDsc
	minVotes := topRatedMinVotes
	p.VoteCountGTE = &minVotes
	p.WithoutGenres = genreDocumentary + "," + genreTVMovie
	f.apply(&p)
	return c.DiscoverMovies(ctx, p)
}

// FamilyAnimation is popular movies tagged both Animation and Family.
func (c *Client) FamilyAnimation(ctx context.Context) ([]json.RawMessage, error) {
	p := c.defaultDiscover()
	p.WithGenres = genreAnimation + "," + genreFamily
	return c.DiscoverMovies(ctx, p)
}

// Horror is popular horror movies.
func (c *Client) Horror(ctx context.Context) ([]json.RawMessage, error) {
	p := c.defaultDiscover()
	p.WithGenres = genreHorror
	return c.DiscoverMovies(ctx, p)
}

// Search runs a paginated multi search and orders results by popularity, highest
// first. Ties keep TMDB's order. Results are not cached.
func (c *Client) Search(ctx context.Context, query string) ([]json.RawMessage, error) {
	if strings.TrimSpace(query) == "" {
		return nil, validationError("Missing search query")
	}

	p := DiscoverParams{Language: c.language}
	params := p.Values()
	params.Del("include_video")
	params.Set("query", query)

	items, err := c.walkPages(ctx, request{op: "search_multi", path: "search/multi", params: params}, c.maxPages)
	if err != nil {
		return nil, err
	}
	SortByPopularity(items)
	return items, nil
}

// SortByPopularity stable-sorts items by their "popularity" field,
// descending. Missing or non-numeric values count as zero.
func SortByPopularity(items []json.RawMessage) {
	pop := make([]float64, len(items))
	for i, item := range items {
		pop[i] = Popularity(item)
	}
	idx := make([]int, len(items))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return pop[idx[a]] > pop[idx[b]] })

	sorted := make([]json.RawMessage, len(items))
	for i, j := range idx {
		sorted[i] = items[j]
	}
	copy(items, sorted)
}

// Popularity reads the popularity of one result, 0 when absent.
func Popularity(item json.RawMessage) float64 {
	var v struct {
		Popularity float64 `json:"popularity"`
	}
	if err := json.Unmarshal(item, &v); err != nil {
		return 0
	}
	return v.Popularity
}

// FilterReleaseWindow keeps items released after today and, when until is
// non-zero, on or before until. An item without a parsable release_date
// fails the whole call.
func FilterReleaseWindow(items []json.RawMessage, today, until time.Time) ([]json.RawMessage, error) {
	dates, err := releaseDates(items)
	if err != nil {
		return nil, err
	}
	today = civilDate(today)
	if !until.IsZero() {
		until = civilDate(until)
	}
	out := make([]json.RawMessage, 0, len(items))
	for i, released := range dates {
		if released.After(today) && (until.IsZero() || !released.After(until)) {
			out = append(out, items[i])
		}
	}
	return out, nil
}

func checkReleaseDates(items []json.RawMessage) error {
	_, err := releaseDates(items)
	return err
}

func releaseDates(items []json.RawMessage) ([]time.Time, error) {
	dates := make([]time.Time, len(items))
	for i, item := range items {
		var v struct {
			ReleaseDate *string `json:"release_date"`
		}
		if err := json.Unmarshal(item, &v); err != nil {
			return nil, decodeError("failed to decode result %d: %w", i, err)
		}
		if v.ReleaseDate == nil {
			return nil, decodeError("result %d has no release_date", i)
		}
		released, err := time.Parse(dateLayout, *v.ReleaseDate)
		if err != nil {
			return nil, decodeError("result %d has invalid release_date %q", i, *v.ReleaseDate)
		}
		dates[i] = released
	}
	return dates, nil
}

// civilDate truncates t to midnight UTC of its local calendar date.
func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// addMonths adds calendar months, clamping the day to the target month's
// last day (Nov 30 + 3 months is Feb 28, not Mar 2).
func addMonths(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	last := first.AddDate(0, 1, -1).Day()
	if d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, t.Location())
}
