// Pulseboard - Team Analytics Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pulseboard

package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/tomtom215/pulseboard/internal/posts"
	"github.com/tomtom215/pulseboard/internal/validation"
)

// maxBodyBytes bounds every JSON request body.
const maxBodyBytes = 1 << 20

// ToggleRequest flips the visibility of one series.
type ToggleRequest struct {
	SeriesKey string `json:"seriesKey" validate:"required,max=64"`
}

// ColorRequest overrides the color of one series.
type ColorRequest struct {
	Color string `json:"color" validate:"required,hexcolor"`
}

// PostListParams are the query parameters of the post list.
type PostListParams struct {
	Page     int    `json:"page" validate:"min=1"`
	Limit    int    `json:"limit" validate:"min=1"`
	Search   string `json:"search" validate:"max=100"`
	Category string `json:"category" validate:"omitempty,oneof=NOTICE QNA FREE"`
	Sort     string `json:"sort" validate:"omitempty,oneof=title createdAt"`
	Order    string `json:"order" validate:"omitempty,oneof=asc desc"`
}

// Query converts the validated parameters to an upstream query.
func (p PostListParams) Query() posts.Query {
	return posts.Query{
		Page:     p.Page,
		Limit:    p.Limit,
		Search:   p.Search,
		Category: posts.Category(p.Category),
		SortBy:   p.Sort,
		Order:    p.Order,
	}
}

// parsePostListParams reads the list query string. Unparseable numbers fall
// back to the defaults; the limit is clamped to maxLimit.
func parsePostListParams(r *http.Request, defaultLimit, maxLimit int) (PostListParams, *validation.RequestValidationError) {
	q := r.URL.Query()
	p := PostListParams{
		Page:     1,
		Limit:    defaultLimit,
		Search:   q.Get("search"),
		Category: q.Get("category"),
		Sort:     q.Get("sort"),
		Order:    q.Get("order"),
	}
	if v, err := strconv.Atoi(q.Get("page")); err == nil {
		p.Page = v
	}
	if v, err := strconv.Atoi(q.Get("limit")); err == nil {
		p.Limit = v
	}
	if maxLimit > 0 && p.Limit > maxLimit {
		p.Limit = maxLimit
	}
	return p, validation.ValidateStruct(&p)
}

// decodeAndValidate decodes a JSON body into dst and runs struct validation.
// It writes the error response itself and reports whether the caller may go on.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if !decodeBody(w, r, dst) {
		return false
	}
	if verr := validation.ValidateStruct(dst); verr != nil {
		respondServiceError(w, r, verr)
		return false
	}
	return true
}

// decodeBody decodes a JSON body into dst, answering 400 on malformed input.
func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		msg := "Invalid request body"
		if errors.Is(err, io.EOF) {
			msg = "Request body is required"
		}
		NewResponseWriter(w, r).BadRequest(msg)
		return false
	}
	return true
}
