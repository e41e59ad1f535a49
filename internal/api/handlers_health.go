// Pulseboard - Team Analytics Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pulseboard

package api

import (
	"net/http"
	"time"
)

// HealthLive handles liveness probe requests. It never touches the upstream.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	})
}

// HealthReady handles readiness probe requests.
// Returns 503 while the upstream circuit breaker is open.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	data := map[string]interface{}{
		"ready":          h.upstream.Healthy(),
		"circuitBreaker": h.upstream.BreakerState(),
	}

	if !h.upstream.Healthy() {
		rw.ErrorWithDetails(http.StatusServiceUnavailable, ErrCodeExternalServiceFail,
			"Upstream API unavailable", data)
		return
	}
	rw.Success(data)
}
