// MoviePulse - TMDB Discovery and Favorites Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviepulse

// Package metrics defines the Prometheus collectors exposed on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP API
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moviepulse_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "route", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "moviepulse_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "route"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "moviepulse_api_active_requests",
			Help: "Current number of in-flight API requests",
		},
	)

	// TMDB upstream
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moviepulse_tmdb_requests_total",
			Help: "Total number of requests sent to TMDB by outcome",
		},
		[]string{"endpoint", "outcome"},
	)

	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "moviepulse_tmdb_request_duration_seconds",
			Help:    "TMDB request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	// Response cache
	CacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moviepulse_cache_lookups_total",
			Help: "Cache lookups by operation and result (hit, miss, error)",
		},
		[]string{"operation", "result"},
	)

	CacheWriteErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moviepulse_cache_write_errors_total",
			Help: "Failed cache writes by operation",
		},
		[]string{"operation"},
	)

	// Circuit breaker
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "moviepulse_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moviepulse_circuit_breaker_requests_total",
			Help: "Requests through the circuit breaker by result (success, failure, rejected)",
		},
		[]string{"name", "result"},
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "moviepulse_circuit_breaker_consecutive_failures",
			Help: "Current consecutive failures seen by the circuit breaker",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moviepulse_circuit_breaker_transitions_total",
			Help: "Circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	// Favorites
	FavoritesOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moviepulse_favorites_operations_total",
			Help: "Favorites store operations by result",
		},
		[]string{"operation", "result"},
	)

	// Announcer
	AnnouncementsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moviepulse_announcements_total",
			Help: "Discord announcements by result (sent, failed)",
		},
		[]string{"result"},
	)

	AnnouncerLastRun = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "moviepulse_announcer_last_run_timestamp_seconds",
			Help: "Unix time of the last completed announcer run",
		},
	)
)

// RecordAPIRequest records one completed API request.
func RecordAPIRequest(method, route, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, route, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the in-flight gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordUpstreamRequest records one TMDB call. outcome is "ok" or an error kind.
func RecordUpstreamRequest(endpoint, outcome string, duration time.Duration) {
	UpstreamRequestsTotal.WithLabelValues(endpoint, outcome).Inc()
	UpstreamRequestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// RecordCacheLookup records a cache lookup result: hit, miss or error.
func RecordCacheLookup(operation, result string) {
	CacheLookupsTotal.WithLabelValues(operation, result).Inc()
}

// RecordCacheWriteError records a failed write-through.
func RecordCacheWriteError(operation string) {
	CacheWriteErrors.WithLabelValues(operation).Inc()
}

// RecordFavoriteOperation records a favorites store call.
func RecordFavoriteOperation(operation, result string) {
	FavoritesOperations.WithLabelValues(operation, result).Inc()
}

// RecordAnnouncement records one Discord delivery attempt.
func RecordAnnouncement(sent bool) {
	result := "sent"
	if !sent {
		result = "failed"
	}
	AnnouncementsTotal.WithLabelValues(result).Inc()
}

// RecordAnnouncerRun stamps the completion time of an announcer pass.
func RecordAnnouncerRun(at time.Time) {
	AnnouncerLastRun.Set(float64(at.Unix()))
}
