// MoviePulse - TMDB Discovery and Favorites Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviepulse

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/moviepulse/internal/logging"
)

// HealthResponse is the liveness body.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}

// ReadinessResponse reports dependency state.
type ReadinessResponse struct {
	Status    string `json:"status" example:"ok"`
	Favorites string `json:"favorites" example:"ok"`
	Uptime    string `json:"uptime" example:"1h2m3s"`
}

// Health handles liveness checks.
//
// @Summary Liveness check
// @Description Returns ok while the process is serving requests
// @Tags Health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// HealthReady reports whether the favorites store is reachable.
//
// @Summary Readiness check
// @Description Pings the favorites store; 503 when it is unreachable
// @Tags Health
// @Produce json
// @Success 200 {object} ReadinessResponse
// @Failure 503 {object} ReadinessResponse
// @Router /health/ready [get]
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	resp := ReadinessResponse{
		Status:    "ok",
		Favorites: "ok",
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	}
	status := http.StatusOK
	if err := h.favorites.Ping(ctx); err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Msg("Favorites store not ready")
		resp.Status = "degraded"
		resp.Favorites = "unavailable"
		status = http.StatusServiceUnavailable
	}
	respondJSON(w, status, resp)
}
