// Pulseboard - Team Analytics Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pulseboard

package upstream

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type tokenKey struct{}

// WithToken returns a context carrying the caller's bearer token.
func WithToken(ctx context.Context, token string) context.Context {
	if token == "" {
		return ctx
	}
	return context.WithValue(ctx, tokenKey{}, token)
}

// TokenFromContext returns the bearer token stored by WithToken, or "".
func TokenFromContext(ctx context.Context) string {
	if token, ok := ctx.Value(tokenKey{}).(string); ok {
		return token
	}
	return ""
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// checkTokenExpiry rejects a JWT whose exp claim is already in the past. The
// signature is not checked: the upstream owns the key and remains the
// authority. Tokens that are not JWTs, or carry no exp, pass through.
func checkTokenExpiry(token string, now time.Time) error {
	if token == "" {
		return nil
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil //nolint:nilerr // opaque tokens are forwarded as-is
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil //nolint:nilerr // a malformed exp is the upstream's call
	}
	if !exp.After(now) {
		return ErrUnauthorized
	}
	return nil
}
