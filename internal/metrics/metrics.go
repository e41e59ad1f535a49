// Pulseboard - Team Analytics Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pulseboard

// Package metrics declares the Prometheus collectors exported on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Upstream API Metrics
	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "upstream_request_duration_seconds",
			Help:    "Duration of upstream API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	UpstreamRequestErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_request_errors_total",
			Help: "Total number of failed upstream API requests",
		},
		[]string{"endpoint", "reason"}, // reason: "unauthorized", "not_found", "status", "network", "decode"
	)

	// Normalizer Metrics
	DatasetRecords = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "dataset_records",
			Help: "Number of flat records produced by the last normalization of a dataset",
		},
		[]string{"dataset"},
	)

	DatasetEmpty = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dataset_empty_total",
			Help: "Times a dataset resolved to no renderable records",
		},
		[]string{"dataset", "cause"}, // cause: "shape", "fetch"
	)

	// Chart View-State Metrics
	ChartInstancesActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "chart_instances_active",
			Help: "Current number of mounted chart view-state instances",
		},
	)

	ChartInstanceEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chart_instance_events_total",
			Help: "Chart instance lifecycle and interaction events",
		},
		[]string{"event"}, // "mount", "unmount", "expire", "evict", "toggle", "recolor", "tooltip"
	)

	// Cache Metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_type"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_type"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Post Moderation Metrics
	PostValidationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "post_validation_failures_total",
			Help: "Post create/update requests rejected by validation",
		},
		[]string{"field"},
	)

	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordUpstreamRequest records the latency of one upstream call and, when
// reason is non-empty, counts it as a failure.
func RecordUpstreamRequest(endpoint string, duration time.Duration, reason string) {
	UpstreamRequestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
	if reason != "" {
		UpstreamRequestErrors.WithLabelValues(endpoint, reason).Inc()
	}
}

// RecordDataset records the outcome of normalizing one dataset.
func RecordDataset(dataset string, records int, fetchFailed bool) {
	DatasetRecords.WithLabelValues(dataset).Set(float64(records))
	switch {
	case fetchFailed:
		DatasetEmpty.WithLabelValues(dataset, "fetch").Inc()
	case records == 0:
		DatasetEmpty.WithLabelValues(dataset, "shape").Inc()
	}
}

// RecordChartEvent counts a chart instance event and keeps the active gauge in step.
func RecordChartEvent(event string) {
	ChartInstanceEvents.WithLabelValues(event).Inc()
	switch event {
	case "mount":
		ChartInstancesActive.Inc()
	case "unmount", "expire", "evict":
		ChartInstancesActive.Dec()
	}
}

// RecordCacheLookup counts a cache hit or miss.
func RecordCacheLookup(cacheType string, hit bool) {
	if hit {
		CacheHits.WithLabelValues(cacheType).Inc()
		return
	}
	CacheMisses.WithLabelValues(cacheType).Inc()
}

// RecordPostValidationFailure counts one rejected post field.
func RecordPostValidationFailure(field string) {
	PostValidationFailures.WithLabelValues(field).Inc()
}
