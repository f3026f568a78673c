// MoviePulse - TMDB Discovery and Favorites Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviepulse

package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/tomtom215/moviepulse/internal/logging"
	"github.com/tomtom215/moviepulse/internal/tmdb"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error" example:"Missing search query"`
}

// sanitizeLogValue escapes control characters to prevent log injection.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			result.WriteString(fmt.Sprintf("\\x%02x", r))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// respondJSON writes v as the bare response body.
func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	writeJSON(w, status, data)
}

// respondRaw writes an already encoded payload.
func respondRaw(w http.ResponseWriter, status int, payload json.RawMessage) {
	writeJSON(w, status, payload)
}

func writeJSON(w http.ResponseWriter, status int, data []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// respondError writes {"error": message}.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondTMDBError maps a client error onto an HTTP status. The message is
// passed through unchanged.
func respondTMDBError(w http.ResponseWriter, r *http.Request, op string, err error) {
	status := http.StatusInternalServerError
	switch tmdb.KindOf(err) {
	case tmdb.KindValidation:
		status = http.StatusBadRequest
	case tmdb.KindCircuitOpen:
		status = http.StatusServiceUnavailable
	}

	event := logging.Ctx(r.Context()).Warn()
	if status == http.StatusInternalServerError {
		event = logging.Ctx(r.Context()).Error()
	}
	event.Str("operation", op).Str("kind", string(tmdb.KindOf(err))).
		Str("error", sanitizeLogValue(err.Error())).Msg("TMDB request failed")

	respondError(w, status, err.Error())
}

// respondList writes a result list, never null.
func respondList(w http.ResponseWriter, items []json.RawMessage) {
	if items == nil {
		items = []json.RawMessage{}
	}
	respondJSON(w, http.StatusOK, items)
}

// pathID reads the numeric {id} route parameter. The route pattern already
// restricts it to digits, so a failure here is an overflow.
func pathID(r *http.Request) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}
