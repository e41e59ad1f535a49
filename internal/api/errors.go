// Pulseboard - Team Analytics Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pulseboard

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/pulseboard/internal/dashboard"
	"github.com/tomtom215/pulseboard/internal/logging"
	"github.com/tomtom215/pulseboard/internal/upstream"
	"github.com/tomtom215/pulseboard/internal/validation"
	"github.com/tomtom215/pulseboard/internal/viewstate"
)

// respondServiceError maps a domain or upstream error onto the API envelope.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	rw := NewResponseWriter(w, r)

	var (
		verr      *validation.RequestValidationError
		statusErr *upstream.StatusError
	)

	switch {
	case errors.As(err, &verr):
		apiErr := verr.ToAPIError()
		rw.ValidationError(apiErr.Message, apiErr.Details)
	case errors.Is(err, upstream.ErrUnauthorized):
		rw.Unauthorized("Authentication required")
	case errors.Is(err, dashboard.ErrUnknownChart):
		rw.NotFound("Chart not found")
	case errors.Is(err, viewstate.ErrInstanceNotFound):
		rw.NotFound("Chart instance not found")
	case errors.Is(err, upstream.ErrNotFound):
		rw.NotFound("Resource not found")
	case errors.Is(err, dashboard.ErrNoTooltip):
		rw.BadRequest("This chart kind has no synthesized tooltip")
	case errors.Is(err, upstream.ErrRateLimited):
		rw.TooManyRequests("Upstream rate limit exceeded")
	case errors.As(err, &statusErr) &&
		(statusErr.StatusCode == http.StatusBadRequest || statusErr.StatusCode == http.StatusUnprocessableEntity):
		rw.ErrorWithDetails(statusErr.StatusCode, ErrCodeBadRequest, "Upstream rejected the request", statusErr.Body)
	case errors.Is(err, context.Canceled):
		// The client went away; nobody reads this response.
		logging.Ctx(r.Context()).Debug().Msg("Request cancelled by client")
		rw.Error(499, ErrCodeBadRequest, "Request cancelled")
	default:
		rw.ExternalServiceError("upstream", err)
	}
}
