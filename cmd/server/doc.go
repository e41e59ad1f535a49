// Pulseboard - Team Analytics Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pulseboard

/*
Package main is the entry point for the Pulseboard server.

Pulseboard fronts a read-only analytics REST API. It fetches the six team
analytics datasets, normalizes their loosely-shaped JSON, and serves chart
props (series, colors, visibility, tooltips) for ten dashboard charts, either
as JSON or rendered to HTML with go-echarts. It also proxies login and the
posts board of the same upstream.

# Application Architecture

	RootSupervisor ("pulseboard")
	├── MaintenanceSupervisor ("maintenance-layer")
	│   └── Janitor (purges expired datasets and chart instances)
	└── APISupervisor ("api-layer")
	    └── HTTP Server

Component initialization order:

 1. Configuration: koanf v2 with defaults, optional YAML file and environment
 2. Logging: zerolog with JSON or console output
 3. Upstream client: rate limiter, retry on 429, circuit breaker
 4. Dashboard: dataset loader with TTL cache, view-state store
 5. HTTP router: chi with CORS, rate limiting and Prometheus metrics
 6. Supervisor tree: suture v4

# Configuration

	HTTP_PORT=8080
	UPSTREAM_BASE_URL=https://fe-hiring-rest-api.vercel.app
	UPSTREAM_TIMEOUT=10s
	UPSTREAM_CACHE_TTL=1m
	VIEWSTATE_INSTANCE_TTL=30m
	CHART_PALETTE=#667eea,#764ba2,#f093fb,#4facfe,#43e97b,#fa709a
	CORS_ORIGINS=http://localhost:3000
	LOG_LEVEL=info
	LOG_FORMAT=json

A config.yaml in the working directory, /etc/pulseboard/ or at CONFIG_PATH
is read before the environment.

# Signal Handling

SIGINT and SIGTERM cancel the root context. The HTTP server stops accepting
connections and drains in-flight requests within server.shutdown_timeout.
*/
package main
