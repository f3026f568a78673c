// MoviePulse - TMDB Discovery and Favorites Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviepulse

// Package main runs the MoviePulse HTTP server.
//
// @title MoviePulse API
// @version 1.0
// @description TMDB discovery, search and favorites.
// @description
// @description Success responses are the bare TMDB payload. Failures are `{"error": "message"}`.
// @description Client errors (bad window, missing query) are 400; an open upstream circuit is 503.
// @description
// @description Default rate limit: 100 requests per minute per IP address.
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @BasePath /api/v1
package main
