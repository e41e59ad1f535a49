// Pulseboard - Team Analytics Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pulseboard

/*
Package upstream is the HTTP client for the team analytics REST API.

Client Features:
  - Bearer token passthrough: the caller's token travels in the context
  - Early rejection of JWTs whose exp claim has already passed
  - Outbound rate limiting (golang.org/x/time/rate)
  - Circuit breaker protection (sony/gobreaker)
  - Exponential backoff on HTTP 429, honoring Retry-After
  - Context support for cancellation and timeouts

Status mapping:
  - 401 returns ErrUnauthorized
  - 404 returns ErrNotFound
  - any other non-2xx returns *StatusError
*/
package upstream

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/tomtom215/pulseboard/internal/config"
	"github.com/tomtom215/pulseboard/internal/metrics"
)

var (
	// ErrUnauthorized means the upstream rejected (or would reject) the caller's token.
	ErrUnauthorized = errors.New("upstream: unauthorized")
	// ErrNotFound means the upstream resource does not exist.
	ErrNotFound = errors.New("upstream: not found")
	// ErrRateLimited means 429 persisted through every retry.
	ErrRateLimited = errors.New("upstream: rate limit exceeded")
)

// StatusError is an unexpected upstream status code.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream returned status %d: %s", e.StatusCode, e.Body)
}

// maxErrorBodySize caps how much of an error response is read for diagnostics.
const maxErrorBodySize = 64 * 1024

// maxResponseSize caps successful response bodies.
const maxResponseSize = 8 << 20

func readBodyForError(r io.Reader) string {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return "(failed to read response body)"
	}
	if len(body) == maxErrorBodySize {
		return string(body) + "\n... (truncated)"
	}
	return string(body)
}

// Client talks to the upstream API. It is safe for concurrent use.
type Client struct {
	baseURL        string
	http           *http.Client
	limiter        *rate.Limiter
	breaker        *breaker
	maxRetries     int
	retryBaseDelay time.Duration
	now            func() time.Time
}

// NewClient creates a client from the upstream configuration.
func NewClient(cfg config.UpstreamConfig) *Client {
	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}

	return &Client{
		baseURL:        cfg.BaseURL,
		http:           &http.Client{Timeout: cfg.Timeout},
		limiter:        rate.NewLimiter(limit, burst),
		breaker:        newBreaker("upstream-api", cfg),
		maxRetries:     cfg.MaxRetries,
		retryBaseDelay: 500 * time.Millisecond,
		now:            time.Now,
	}
}

// request describes one upstream call.
type request struct {
	method   string
	path     string
	query    url.Values
	body     interface{}
	endpoint string // metric label
}

// do runs req through the token check, the circuit breaker and the retry
// loop and returns the successful response body.
func (c *Client) do(ctx context.Context, req request) ([]byte, error) {
	token := TokenFromContext(ctx)
	if err := checkTokenExpiry(token, c.now()); err != nil {
		metrics.RecordUpstreamRequest(req.endpoint, 0, "unauthorized")
		return nil, err
	}

	start := time.Now()
	body, err := c.breaker.execute(func() ([]byte, error) {
		return c.doWithRetry(ctx, req, token)
	})
	metrics.RecordUpstreamRequest(req.endpoint, time.Since(start), failureReason(err))

	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.method, req.path, err)
	}
	return body, nil
}

// doWithRetry performs the request, backing off on HTTP 429 (base delay
// doubling per attempt, or the Retry-After value when present).
func (c *Client) doWithRetry(ctx context.Context, req request, token string) ([]byte, error) {
	var payload []byte
	if req.body != nil {
		var err error
		payload, err = json.Marshal(req.body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
	}

	reqURL := c.baseURL + req.path
	if len(req.query) > 0 {
		reqURL += "?" + req.query.Encode()
	}

	for attempt := 0; ; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		var body io.Reader = http.NoBody
		if payload != nil {
			body = bytes.NewReader(payload)
		}
		httpReq, err := http.NewRequestWithContext(ctx, req.method, reqURL, body)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		httpReq.Header.Set("Accept", "application/json")
		if payload != nil {
			httpReq.Header.Set("Content-Type", "application/json")
		}
		if token != "" {
			httpReq.Header.Set("Authorization", "Bearer "+token)
		}

		resp, err := c.http.Do(httpReq)
		if err != nil {
			return nil, fmt.Errorf("http request failed: %w", err)
		}

		if resp.StatusCode != http.StatusTooManyRequests {
			return readResponse(resp)
		}

		_ = resp.Body.Close()
		if attempt >= c.maxRetries {
			return nil, ErrRateLimited
		}

		delay := c.retryBaseDelay * time.Duration(1<<uint(attempt))
		if ra := resp.Header.Get("Retry-After"); ra != "" {
			if secs, err := strconv.Atoi(ra); err == nil && secs >= 0 {
				delay = time.Duration(secs) * time.Second
			}
		}

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

func readResponse(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: readBodyForError(resp.Body)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	return body, nil
}

// failureReason maps an error to the upstream_request_errors_total reason label.
func failureReason(err error) string {
	var statusErr *StatusError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrRateLimited):
		return "rate_limited"
	case errors.Is(err, errCircuitOpen):
		return "circuit_open"
	case errors.As(err, &statusErr):
		return "status"
	default:
		return "network"
	}
}

// IsClientError reports whether err is a caller-side problem (bad token,
// missing resource, 4xx) rather than an upstream outage.
func IsClientError(err error) bool {
	if errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrNotFound) {
		return true
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode >= 400 && statusErr.StatusCode < 500
	}
	return false
}
