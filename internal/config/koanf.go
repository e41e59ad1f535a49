// Pulseboard - Team Analytics Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pulseboard

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/pulseboard/config.yaml",
	"/etc/pulseboard/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// DefaultPalette is the positional chart palette.
var DefaultPalette = []string{"#667eea", "#764ba2", "#f093fb", "#4facfe", "#43e97b", "#fa709a"}

// DefaultForbiddenWords is the moderation list applied to post titles, bodies and tags.
var DefaultForbiddenWords = []string{"캄보디아", "프놈펜", "불법체류", "텔레그램"}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			Host:            "0.0.0.0",
			Timeout:         30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			Environment:     "development",
		},
		Upstream: UpstreamConfig{
			BaseURL:             "https://fe-hiring-rest-api.vercel.app",
			Timeout:             10 * time.Second,
			RequestsPerSecond:   20,
			Burst:               10,
			MaxRetries:          3,
			CacheTTL:            time.Minute,
			BreakerMaxRequests:  3,
			BreakerInterval:     time.Minute,
			BreakerTimeout:      30 * time.Second,
			BreakerMinRequests:  10,
			BreakerFailureRatio: 0.6,
		},
		ViewState: ViewStateConfig{
			InstanceTTL:  30 * time.Minute,
			MaxInstances: 10000,
			Palette:      append([]string(nil), DefaultPalette...),
		},
		Posts: PostsConfig{
			PageSize:       20,
			MaxPageSize:    100,
			ForbiddenWords: append([]string(nil), DefaultForbiddenWords...),
		},
		Security: SecurityConfig{
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
			CORSOrigins:     []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in sensible defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any setting
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first existing config file, or "" when none exists.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"security.cors_origins",
	"viewstate.palette",
	"posts.forbidden_words",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps flat environment variable names to koanf config paths.
var envMappings = map[string]string{
	// Server
	"http_port":             "server.port",
	"http_host":             "server.host",
	"http_timeout":          "server.timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",
	"environment":           "server.environment",

	// Upstream API
	"upstream_base_url":              "upstream.base_url",
	"upstream_timeout":               "upstream.timeout",
	"upstream_rps":                   "upstream.requests_per_second",
	"upstream_burst":                 "upstream.burst",
	"upstream_max_retries":           "upstream.max_retries",
	"upstream_cache_ttl":             "upstream.cache_ttl",
	"upstream_breaker_max_requests":  "upstream.breaker_max_requests",
	"upstream_breaker_interval":      "upstream.breaker_interval",
	"upstream_breaker_timeout":       "upstream.breaker_timeout",
	"upstream_breaker_min_requests":  "upstream.breaker_min_requests",
	"upstream_breaker_failure_ratio": "upstream.breaker_failure_ratio",

	// Chart view-state
	"viewstate_instance_ttl":  "viewstate.instance_ttl",
	"viewstate_max_instances": "viewstate.max_instances",
	"chart_palette":           "viewstate.palette",

	// Posts
	"posts_page_size":       "posts.page_size",
	"posts_max_page_size":   "posts.max_page_size",
	"posts_forbidden_words": "posts.forbidden_words",

	// Security
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
	"cors_origins":        "security.cors_origins",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - HTTP_PORT -> server.port
//   - UPSTREAM_BASE_URL -> upstream.base_url
//   - CHART_PALETTE -> viewstate.palette
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}

	// Unmapped keys are skipped so unrelated environment variables never leak into config.
	return ""
}
