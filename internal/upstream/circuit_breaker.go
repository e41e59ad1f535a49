// Pulseboard - Team Analytics Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pulseboard

package upstream

import (
	"context"
	"errors"
	"fmt"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/pulseboard/internal/config"
	"github.com/tomtom215/pulseboard/internal/logging"
	"github.com/tomtom215/pulseboard/internal/metrics"
)

// errCircuitOpen wraps gobreaker's rejection errors.
var errCircuitOpen = errors.New("upstream: circuit breaker open")

// breaker wraps a gobreaker circuit breaker with metrics and logging.
//
// Settings come from config.UpstreamConfig:
//   - MaxRequests: concurrent probes allowed in half-open state
//   - Interval: count reset period in closed state
//   - Timeout: open period before trying half-open
//   - ReadyToTrip: at least BreakerMinRequests requests with a failure
//     ratio of BreakerFailureRatio or more
//
// Caller-side errors (401, 404, other 4xx) and cancelled contexts do not
// count as failures; a bad token must not open the circuit for everyone.
type breaker struct {
	cb   *gobreaker.CircuitBreaker[[]byte]
	name string
}

func newBreaker(name string, cfg config.UpstreamConfig) *breaker {
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	minRequests := cfg.BreakerMinRequests
	ratio := cfg.BreakerFailureRatio

	cb := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.BreakerMaxRequests,
		Interval:    cfg.BreakerInterval,
		Timeout:     cfg.BreakerTimeout,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < minRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= ratio
			if shouldTrip {
				logging.Warn().
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).
					Msg("[CIRCUIT BREAKER] Opening circuit")
			}
			return shouldTrip
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr, toStr := stateToString(from), stateToString(to)
			logging.Info().Str("breaker", name).Str("from", fromStr).Str("to", toStr).
				Msg("[CIRCUIT BREAKER] State transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
		},

		IsSuccessful: func(err error) bool {
			return err == nil || IsClientError(err) || errors.Is(err, context.Canceled)
		},
	})

	return &breaker{cb: cb, name: name}
}

func (b *breaker) execute(fn func() ([]byte, error)) ([]byte, error) {
	body, err := b.cb.Execute(fn)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "rejected").Inc()
			logging.Warn().Err(err).Msg("[CIRCUIT BREAKER] Request rejected")
			return nil, fmt.Errorf("%w: %v", errCircuitOpen, err)
		}
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "failure").Inc()
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(b.name, "success").Inc()
	return body, nil
}

func (b *breaker) state() gobreaker.State {
	return b.cb.State()
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

// Healthy reports whether the circuit is not open. Used by the readiness probe.
func (c *Client) Healthy() bool {
	return c.breaker.state() != gobreaker.StateOpen
}

// BreakerState returns the circuit state name.
func (c *Client) BreakerState() string {
	return stateToString(c.breaker.state())
}
