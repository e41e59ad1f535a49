// Pulseboard - Team Analytics Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pulseboard

package middleware

import (
	"net/http"

	"github.com/tomtom215/pulseboard/internal/upstream"
)

// BearerToken copies the caller's bearer token into the request context.
// Requests without one pass through untouched: whether a token is required
// is decided by the upstream API, not here.
func BearerToken(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if token := upstream.BearerToken(r.Header.Get("Authorization")); token != "" {
			r = r.WithContext(upstream.WithToken(r.Context(), token))
		}
		next(w, r)
	}
}
