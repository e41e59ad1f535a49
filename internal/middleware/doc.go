// Pulseboard - Team Analytics Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pulseboard

/*
Package middleware provides the HTTP middleware shared by every Pulseboard route.

Key Components:

  - RequestID: UUID request IDs, echoed in X-Request-ID and carried in the logging context
  - PrometheusMetrics: request count, latency and in-flight gauge, labelled by route pattern
  - BearerToken: lifts the inbound Authorization bearer token into the request context
    so the upstream client can forward it unchanged

All middleware use the func(http.HandlerFunc) http.HandlerFunc form; the api
package adapts them to chi with chiMiddleware.

Usage Example:

	r.Use(chiMiddleware(middleware.RequestID))
	r.Use(chiMiddleware(middleware.PrometheusMetrics))
	r.Use(chiMiddleware(middleware.BearerToken))
*/
package middleware
