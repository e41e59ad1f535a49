// Pulseboard - Team Analytics Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pulseboard

// Package config loads Pulseboard configuration from built-in defaults, an
// optional YAML file and environment variables (in that order of precedence).
package config

import (
	"time"
)

// Config holds all application configuration.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in sensible defaults for all optional settings
//  2. Config File: Optional YAML config file (config.yaml)
//  3. Environment Variables: Override any setting via environment variables
//
// Config is immutable after Load() and safe for concurrent read access.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Upstream  UpstreamConfig  `koanf:"upstream"`
	ViewState ViewStateConfig `koanf:"viewstate"`
	Posts     PostsConfig     `koanf:"posts"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"`
}

// UpstreamConfig describes the analytics/posts REST API that Pulseboard fronts.
//
// Environment Variables:
//   - UPSTREAM_BASE_URL: base URL of the mock analytics API
//   - UPSTREAM_TIMEOUT: per-request timeout (default: 10s)
//   - UPSTREAM_RPS / UPSTREAM_BURST: outbound request rate
//   - UPSTREAM_CACHE_TTL: how long normalized datasets are reused (default: 1m)
type UpstreamConfig struct {
	BaseURL           string        `koanf:"base_url"`
	Timeout           time.Duration `koanf:"timeout"`
	RequestsPerSecond float64       `koanf:"requests_per_second"`
	Burst             int           `koanf:"burst"`
	MaxRetries        int           `koanf:"max_retries"`
	CacheTTL          time.Duration `koanf:"cache_ttl"`

	// Circuit breaker tuning (gobreaker)
	BreakerMaxRequests  uint32        `koanf:"breaker_max_requests"`
	BreakerInterval     time.Duration `koanf:"breaker_interval"`
	BreakerTimeout      time.Duration `koanf:"breaker_timeout"`
	BreakerMinRequests  uint32        `koanf:"breaker_min_requests"`
	BreakerFailureRatio float64       `koanf:"breaker_failure_ratio"`
}

// ViewStateConfig bounds the in-memory chart instance registry.
type ViewStateConfig struct {
	InstanceTTL  time.Duration `koanf:"instance_ttl"`
	MaxInstances int           `koanf:"max_instances"`
	Palette      []string      `koanf:"palette"`
}

// PostsConfig holds post listing and moderation settings
type PostsConfig struct {
	PageSize       int      `koanf:"page_size"`
	MaxPageSize    int      `koanf:"max_page_size"`
	ForbiddenWords []string `koanf:"forbidden_words"`
}

// SecurityConfig holds CORS and inbound rate limit settings
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds logging configuration.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false - include caller file:line (default: false)
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// IsProduction reports whether the server runs with ENVIRONMENT=production.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// Load reads configuration from defaults, config file and environment.
// See LoadWithKoanf() for the underlying implementation.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
