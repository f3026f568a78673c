// MoviePulse - TMDB Discovery and Favorites Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviepulse

package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/tomtom215/moviepulse/internal/tmdb"
	"github.com/tomtom215/moviepulse/internal/validation"
)

// DiscoverQuery are the optional filters on /discover/popular and
// /discover/top_rated. Empty values are ignored.
type DiscoverQuery struct {
	WithGenres string `query:"with_genres" validate:"omitempty,genre_list"`
	// Language filters on original language.
	Language string `query:"language" validate:"omitempty,language_list"`
	Region   string `query:"region" validate:"omitempty,region_list"`
	Year     string `query:"year" validate:"omitempty,number,len=4"`
}

func (q *DiscoverQuery) filters() tmdb.Filters {
	year, _ := strconv.Atoi(q.Year)
	return tmdb.Filters{
		WithGenres:       q.WithGenres,
		OriginalLanguage: q.Language,
		Region:           q.Region,
		Year:             year,
	}
}

func parseDiscoverQuery(r *http.Request) (DiscoverQuery, *validation.RequestValidationError) {
	v := r.URL.Query()
	q := DiscoverQuery{
		WithGenres: v.Get("with_genres"),
		Language:   v.Get("language"),
		Region:     v.Get("region"),
		Year:       v.Get("year"),
	}
	return q, validation.ValidateStruct(&q)
}

func (h *Handler) serveObject(w http.ResponseWriter, r *http.Request, op string, fetch func(context.Context) (json.RawMessage, error)) {
	payload, err := fetch(r.Context())
	if err != nil {
		respondTMDBError(w, r, op, err)
		return
	}
	respondRaw(w, http.StatusOK, payload)
}

func (h *Handler) serveList(w http.ResponseWriter, r *http.Request, op string, fetch func(context.Context) ([]json.RawMessage, error)) {
	items, err := fetch(r.Context())
	if err != nil {
		respondTMDBError(w, r, op, err)
		return
	}
	respondList(w, items)
}

func (h *Handler) serveByID(w http.ResponseWriter, r *http.Request, op string, fetch func(context.Context, int) (json.RawMessage, error)) {
	id, err := pathID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	h.serveObject(w, r, op, func(ctx context.Context) (json.RawMessage, error) {
		return fetch(ctx, id)
	})
}

// Search handles multi search across movies, TV and people.
//
// @Summary Search movies, TV series and people
// @Description Paginated TMDB multi search ordered by popularity, highest first
// @Tags Search
// @Produce json
// @Param query query string true "Search text"
// @Success 200 {array} object
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /search [get]
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		respondError(w, http.StatusBadRequest, "Missing search query")
		return
	}
	h.serveList(w, r, "search", func(ctx context.Context) ([]json.RawMessage, error) {
		return h.catalog.Search(ctx, query)
	})
}

// Genres handles the movie genre list.
//
// @Summary Movie genres
// @Tags Catalogue
// @Produce json
// @Success 200 {object} object "{\"genres\":[{\"id\":28,\"name\":\"Action\"}]}"
// @Failure 500 {object} ErrorResponse
// @Router /genres [get]
func (h *Handler) Genres(w http.ResponseWriter, r *http.Request) {
	h.serveObject(w, r, "genres", h.catalog.MovieGenres)
}

// Languages handles the language list.
//
// @Summary Languages known to TMDB
// @Tags Catalogue
// @Produce json
// @Success 200 {array} object
// @Failure 500 {object} ErrorResponse
// @Router /languages [get]
func (h *Handler) Languages(w http.ResponseWriter, r *http.Request) {
	h.serveObject(w, r, "languages", h.catalog.Languages)
}

// Regions handles the country list.
//
// @Summary Countries known to TMDB
// @Tags Catalogue
// @Produce json
// @Success 200 {array} object
// @Failure 500 {object} ErrorResponse
// @Router /regions [get]
func (h *Handler) Regions(w http.ResponseWriter, r *http.Request) {
	h.serveObject(w, r, "regions", h.catalog.Countries)
}

// Certifications handles the movie certification list.
//
// @Summary Movie certifications by country
// @Tags Catalogue
// @Produce json
// @Success 200 {object} object
// @Failure 500 {object} ErrorResponse
// @Router /certifications [get]
func (h *Handler) Certifications(w http.ResponseWriter, r *http.Request) {
	h.serveObject(w, r, "certifications", h.catalog.MovieCertifications)
}

func trendingWindow(r *http.Request) string {
	if w := r.URL.Query().Get("window"); w != "" {
		return w
	}
	return tmdb.WindowDay
}

// TrendingMovies handles trending movies.
//
// @Summary Trending movies
// @Tags Trending
// @Produce json
// @Param window query string false "day or week" Enums(day, week) default(day)
// @Success 200 {array} object
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /trending/movies [get]
func (h *Handler) TrendingMovies(w http.ResponseWriter, r *http.Request) {
	window := trendingWindow(r)
	h.serveList(w, r, "trending_movies", func(ctx context.Context) ([]json.RawMessage, error) {
		return h.catalog.TrendingMovies(ctx, window)
	})
}

// TrendingTV handles trending TV series.
//
// @Summary Trending TV series
// @Tags Trending
// @Produce json
// @Param window query string false "day or week" Enums(day, week) default(day)
// @Success 200 {array} object
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /trending/tv [get]
func (h *Handler) TrendingTV(w http.ResponseWriter, r *http.Request) {
	window := trendingWindow(r)
	h.serveList(w, r, "trending_tv", func(ctx context.Context) ([]json.RawMessage, error) {
		return h.catalog.TrendingTV(ctx, window)
	})
}

// MovieDetail handles one movie.
//
// @Summary Movie details
// @Tags Movies
// @Produce json
// @Param id path int true "TMDB movie id"
// @Success 200 {object} object
// @Failure 404 {string} string "not found"
// @Failure 500 {object} ErrorResponse
// @Router /movie/{id} [get]
func (h *Handler) MovieDetail(w http.ResponseWriter, r *http.Request) {
	h.serveByID(w, r, "movie_detail", h.catalog.MovieDetail)
}

// MovieCredits handles movie cast and crew.
//
// @Summary Movie credits
// @Tags Movies
// @Produce json
// @Param id path int true "TMDB movie id"
// @Success 200 {object} object
// @Failure 500 {object} ErrorResponse
// @Router /movie/{id}/credits [get]
func (h *Handler) MovieCredits(w http.ResponseWriter, r *http.Request) {
	h.serveByID(w, r, "movie_credits", h.catalog.MovieCredits)
}

// MovieVideos handles movie trailers and clips.
//
// @Summary Movie videos
// @Tags Movies
// @Produce json
// @Param id path int true "TMDB movie id"
// @Success 200 {array} object
// @Failure 500 {object} ErrorResponse
// @Router /movie/{id}/videos [get]
func (h *Handler) MovieVideos(w http.ResponseWriter, r *http.Request) {
	h.serveByID(w, r, "movie_videos", h.catalog.MovieVideos)
}

// TVDetail handles one TV series.
//
// @Summary TV series details
// @Tags TV
// @Produce json
// @Param id path int true "TMDB TV id"
// @Success 200 {object} object
// @Failure 500 {object} ErrorResponse
// @Router /tv/{id} [get]
func (h *Handler) TVDetail(w http.ResponseWriter, r *http.Request) {
	h.serveByID(w, r, "tv_detail", h.catalog.TVDetail)
}

// TVCredits handles TV cast and crew.
//
// @Summary TV series credits
// @Tags TV
// @Produce json
// @Param id path int true "TMDB TV id"
// @Success 200 {object} object
// @Failure 500 {object} ErrorResponse
// @Router /tv/{id}/credits [get]
func (h *Handler) TVCredits(w http.ResponseWriter, r *http.Request) {
	h.serveByID(w, r, "tv_credits", h.catalog.TVCredits)
}

// DiscoverUpcoming handles upcoming theatrical releases.
//
// @Summary Upcoming movies
// @Description US theatrical releases from tomorrow to three months out
// @Tags Discover
// @Produce json
// @Success 200 {array} object
// @Failure 500 {object} ErrorResponse
// @Router /discover/upcoming [get]
func (h *Handler) DiscoverUpcoming(w http.ResponseWriter, r *http.Request) {
	h.serveList(w, r, "discover_upcoming", h.catalog.Upcoming)
}

// DiscoverPopular handles popular movies.
//
// @Summary Popular movies
// @Tags Discover
// @Produce json
// @Param with_genres query string false "Genre ids joined by , (all) or | (any)"
// @Param language query string false "Original language (ISO 639-1), | separated"
// @Param region query string false "Region (ISO 3166-1), | separated"
// @Param year query string false "Primary release year"
// @Success 200 {array} object
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /discover/popular [get]
func (h *Handler) DiscoverPopular(w http.ResponseWriter, r *http.Request) {
	h.serveDiscover(w, r, "discover_popular", h.catalog.Popular)
}

// DiscoverTopRated handles top rated movies.
//
// @Summary Top rated movies
// @Description Sorted by rating with at least 200 votes; documentaries and TV movies excluded
// @Tags Discover
// @Produce json
// @Param with_genres query string false "Genre ids joined by , (all) or | (any)"
// @Param language query string false "Original language (ISO 639-1), | separated"
// @Param region query string false "Region (ISO 3166-1), | separated"
// @Param year query string false "Primary release year"
// @Success 200 {array} object
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /discover/top_rated [get]
func (h *Handler) DiscoverTopRated(w http.ResponseWriter, r *http.Request) {
	h.serveDiscover(w, r, "discover_top_rated", h.catalog.TopRated)
}

func (h *Handler) serveDiscover(w http.ResponseWriter, r *http.Request, op string, fetch func(context.Context, tmdb.Filters) ([]json.RawMessage, error)) {
	q, verr := parseDiscoverQuery(r)
	if verr != nil {
		respondError(w, http.StatusBadRequest, verr.Error())
		return
	}
	h.serveList(w, r, op, func(ctx context.Context) ([]json.RawMessage, error) {
		return fetch(ctx, q.filters())
	})
}

// DiscoverFamilyAnimation handles family animation.
//
// @Summary Family animation
// @Tags Discover
// @Produce json
// @Success 200 {array} object
// @Failure 500 {object} ErrorResponse
// @Router /discover/family_animation [get]
func (h *Handler) DiscoverFamilyAnimation(w http.ResponseWriter, r *http.Request) {
	h.serveList(w, r, "discover_family_animation", h.catalog.FamilyAnimation)
}

// DiscoverHorror handles horror.
//
// @Summary Horror movies
// @Tags Discover
// @Produce json
// @Success 200 {array} object
// @Failure 500 {object} ErrorResponse
// @Router /discover/horror [get]
func (h *Handler) DiscoverHorror(w http.ResponseWriter, r *http.Request) {
	h.serveList(w, r, "discover_horror", h.catalog.Horror)
}
