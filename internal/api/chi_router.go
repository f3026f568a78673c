// MoviePulse - TMDB Discovery and Favorites Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviepulse

// Package api serves the MoviePulse JSON API, the HTML pages, Swagger UI and
// Prometheus metrics on one chi router.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/tomtom215/moviepulse/internal/middleware"
)

// Router wires handlers and middleware into an http.Handler.
type Router struct {
	handler       *Handler
	pages         *Pages
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a Router. pages may be nil to serve the API only.
func NewRouter(handler *Handler, pages *Pages, mw *ChiMiddleware) *Router {
	if mw == nil {
		mw = NewChiMiddleware(nil)
	}
	return &Router{handler: handler, pages: pages, chiMiddleware: mw}
}

// SetupChi builds the route tree.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(AccessLog())
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS()) // global so OPTIONS preflight is answered
	r.Use(chimiddleware.Compress(5, "application/json", "text/html", "text/css", "application/javascript"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(middleware.PrometheusMetrics)

		h := router.handler
		r.Get("/health", h.Health)
		r.Get("/health/ready", h.HealthReady)

		r.Get("/search", h.Search)
		r.Get("/genres", h.Genres)
		r.Get("/languages", h.Languages)
		r.Get("/regions", h.Regions)
		r.Get("/certifications", h.Certifications)

		r.Get("/trending/movies", h.TrendingMovies)
		r.Get("/trending/tv", h.TrendingTV)

		r.Route("/movie/{id:[0-9]+}", func(r chi.Router) {
			r.Get("/", h.MovieDetail)
			r.Get("/credits", h.MovieCredits)
			r.Get("/videos", h.MovieVideos)
		})
		r.Route("/tv/{id:[0-9]+}", func(r chi.Router) {
			r.Get("/", h.TVDetail)
			r.Get("/credits", h.TVCredits)
		})

		r.Route("/discover", func(r chi.Router) {
			r.Get("/upcoming", h.DiscoverUpcoming)
			r.Get("/popular", h.DiscoverPopular)
			r.Get("/top_rated", h.DiscoverTopRated)
			r.Get("/family_animation", h.DiscoverFamilyAnimation)
			r.Get("/horror", h.DiscoverHorror)
		})

		r.Get("/favorites", h.ListFavorites)
		r.Post("/favorites", h.AddFavorite)
		r.Delete("/favorites", h.RemoveFavorite)
	})

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/api/docs/*", httpSwagger.Handler(httpSwagger.URL("/api/docs/doc.json")))

	if router.pages != nil {
		p := router.pages
		r.Get("/", p.Index)
		r.Get("/movie/{id:[0-9]+}", p.Movie)
		r.Get("/tv/{id:[0-9]+}", p.TV)
		r.Get("/favorites", p.Favorites)
		r.Handle("/static/*", p.Static())
	}

	return r
}
