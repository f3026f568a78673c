// MoviePulse - TMDB Discovery and Favorites Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviepulse

// Command moviepulse-announcer posts upcoming movies to Discord once and exits.
package main

func main() {
	Execute()
}
