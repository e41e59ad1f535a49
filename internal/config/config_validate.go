// Pulseboard - Team Analytics Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pulseboard

package config

import (
	"fmt"
	"net/url"
	"regexp"
	"time"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateUpstream(); err != nil {
		return err
	}

	if err := c.validateViewState(); err != nil {
		return err
	}

	if err := c.validatePosts(); err != nil {
		return err
	}

	if err := c.validateSecurity(); err != nil {
		return err
	}

	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	return nil
}

// validateUpstream validates the upstream API client settings
func (c *Config) validateUpstream() error {
	if c.Upstream.BaseURL == "" {
		return fmt.Errorf("UPSTREAM_BASE_URL is required")
	}
	if err := validateHTTPURL(c.Upstream.BaseURL, "UPSTREAM_BASE_URL"); err != nil {
		return fmt.Errorf("UPSTREAM_BASE_URL is invalid: %w", err)
	}
	if c.Upstream.Timeout <= 0 {
		return fmt.Errorf("UPSTREAM_TIMEOUT must be positive")
	}
	if c.Upstream.RequestsPerSecond <= 0 {
		return fmt.Errorf("UPSTREAM_RPS must be positive")
	}
	if c.Upstream.Burst < 1 {
		return fmt.Errorf("UPSTREAM_BURST must be at least 1")
	}
	if c.Upstream.MaxRetries < 0 {
		return fmt.Errorf("UPSTREAM_MAX_RETRIES must not be negative")
	}
	if c.Upstream.BreakerFailureRatio <= 0 || c.Upstream.BreakerFailureRatio > 1 {
		return fmt.Errorf("UPSTREAM_BREAKER_FAILURE_RATIO must be in (0, 1]")
	}
	return nil
}

var hexColorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

func (c *Config) validateViewState() error {
	if c.ViewState.InstanceTTL < time.Second {
		return fmt.Errorf("VIEWSTATE_INSTANCE_TTL must be at least 1s")
	}
	if c.ViewState.MaxInstances < 1 {
		return fmt.Errorf("VIEWSTATE_MAX_INSTANCES must be at least 1")
	}
	if len(c.ViewState.Palette) == 0 {
		return fmt.Errorf("CHART_PALETTE must contain at least one color")
	}
	for _, color := range c.ViewState.Palette {
		if !hexColorPattern.MatchString(color) {
			return fmt.Errorf("CHART_PALETTE contains invalid hex color: %q", color)
		}
	}
	return nil
}

func (c *Config) validatePosts() error {
	if c.Posts.PageSize < 1 {
		return fmt.Errorf("POSTS_PAGE_SIZE must be at least 1")
	}
	if c.Posts.MaxPageSize < c.Posts.PageSize {
		return fmt.Errorf("POSTS_MAX_PAGE_SIZE must be >= POSTS_PAGE_SIZE")
	}
	return nil
}

// Rate limit constants
const (
	minRateLimitRequests = 1
	maxRateLimitRequests = 100000
	minRateLimitWindow   = time.Second
	maxRateLimitWindow   = time.Hour
)

func (c *Config) validateSecurity() error {
	if c.IsProduction() && c.hasWildcardCORS() {
		return fmt.Errorf("CORS_ORIGINS=* (wildcard) is not allowed in production; " +
			"set specific origins: CORS_ORIGINS=https://yourdomain.com")
	}
	return c.validateRateLimits()
}

func (c *Config) hasWildcardCORS() bool {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}

func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

// validateHTTPURL accepts only absolute http(s) base URLs without path or query.
func validateHTTPURL(rawURL, fieldName string) error {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%s failed to parse URL: %w", fieldName, err)
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("%s scheme must be http or https, got: %s", fieldName, parsedURL.Scheme)
	}

	if parsedURL.Host == "" {
		return fmt.Errorf("%s host is required", fieldName)
	}

	if parsedURL.Path != "" && parsedURL.Path != "/" {
		return fmt.Errorf("%s should be base URL only, remove path: %s", fieldName, parsedURL.Path)
	}

	if parsedURL.RawQuery != "" {
		return fmt.Errorf("%s should not contain query parameters, remove: ?%s", fieldName, parsedURL.RawQuery)
	}

	return nil
}
