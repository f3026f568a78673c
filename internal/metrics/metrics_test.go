// MoviePulse - TMDB Discovery and Favorites Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviepulse

package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	io_prometheus_client "github.com/prometheus/client_model/go"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m io_prometheus_client.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	return m.GetCounter().GetValue()
}

func gaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	var m io_prometheus_client.Metric
	if err := g.Write(&m); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	return m.GetGauge().GetValue()
}

func TestRecordAPIRequest(t *testing.T) {
	c := APIRequestsTotal.WithLabelValues("GET", "/api/v1/genres", "200")
	before := counterValue(t, c)

	RecordAPIRequest("GET", "/api/v1/genres", "200", 12*time.Millisecond)

	if got := counterValue(t, c); got != before+1 {
		t.Errorf("api_requests_total = %v, want %v", got, before+1)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := gaugeValue(t, APIActiveRequests)

	TrackActiveRequest(true)
	if got := gaugeValue(t, APIActiveRequests); got != before+1 {
		t.Errorf("active after inc = %v, want %v", got, before+1)
	}
	TrackActiveRequest(false)
	if got := gaugeValue(t, APIActiveRequests); got != before {
		t.Errorf("active after dec = %v, want %v", got, before)
	}
}

func TestRecordCacheLookup(t *testing.T) {
	hit := CacheLookupsTotal.WithLabelValues("movie_genres", "hit")
	miss := CacheLookupsTotal.WithLabelValues("movie_genres", "miss")
	hitBefore, missBefore := counterValue(t, hit), counterValue(t, miss)

	RecordCacheLookup("movie_genres", "hit")
	RecordCacheLookup("movie_genres", "miss")
	RecordCacheLookup("movie_genres", "miss")

	if got := counterValue(t, hit); got != hitBefore+1 {
		t.Errorf("hits = %v, want %v", got, hitBefore+1)
	}
	if got := counterValue(t, miss); got != missBefore+2 {
		t.Errorf("misses = %v, want %v", got, missBefore+2)
	}
}

func TestRecordAnnouncement(t *testing.T) {
	sent := AnnouncementsTotal.WithLabelValues("sent")
	failed := AnnouncementsTotal.WithLabelValues("failed")
	sentBefore, failedBefore := counterValue(t, sent), counterValue(t, failed)

	RecordAnnouncement(true)
	RecordAnnouncement(false)

	if got := counterValue(t, sent); got != sentBefore+1 {
		t.Errorf("sent = %v, want %v", got, sentBefore+1)
	}
	if got := counterValue(t, failed); got != failedBefore+1 {
		t.Errorf("failed = %v, want %v", got, failedBefore+1)
	}
}

func TestRecordAnnouncerRun(t *testing.T) {
	at := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	RecordAnnouncerRun(at)
	if got := gaugeValue(t, AnnouncerLastRun); got != float64(at.Unix()) {
		t.Errorf("last run = %v, want %v", got, float64(at.Unix()))
	}
}
