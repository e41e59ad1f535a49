// Pulseboard - Team Analytics Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pulseboard

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/pulseboard/internal/logging"
	"github.com/tomtom215/pulseboard/internal/posts"
	"github.com/tomtom215/pulseboard/internal/upstream"
)

// loginResponse is the body of a successful login.
type loginResponse struct {
	Token string `json:"token"`
}

// Login exchanges credentials for an upstream bearer token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var creds upstream.Credentials
	if !decodeAndValidate(w, r, &creds) {
		return
	}

	token, err := h.upstream.Login(r.Context(), creds)
	if err != nil {
		logging.Ctx(r.Context()).Info().Err(err).Msg("Login rejected")
		respondServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(loginResponse{Token: token})
}

// ListPosts returns one page of posts.
func (h *Handler) ListPosts(w http.ResponseWriter, r *http.Request) {
	params, verr := parsePostListParams(r, h.config.Posts.PageSize, h.config.Posts.MaxPageSize)
	if verr != nil {
		respondServiceError(w, r, verr)
		return
	}

	list, err := h.upstream.ListPosts(r.Context(), params.Query())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).SuccessWithPagination(list, &PaginationMeta{
		Page:    params.Page,
		Limit:   params.Limit,
		Count:   len(list),
		HasMore: len(list) >= params.Limit,
	})
}

// GetPost returns one post.
func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	post, err := h.upstream.GetPost(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(post)
}

// CreatePost validates and forwards a new post.
func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req posts.Request
	if !decodeBody(w, r, &req) {
		return
	}
	if verr := h.moderator.CheckRequest(&req); verr != nil {
		respondServiceError(w, r, verr)
		return
	}

	post, err := h.upstream.CreatePost(r.Context(), req)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Created(post)
}

// UpdatePost validates and forwards a partial update.
func (h *Handler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	var patch posts.Patch
	if !decodeBody(w, r, &patch) {
		return
	}
	if verr := h.moderator.CheckPatch(&patch); verr != nil {
		respondServiceError(w, r, verr)
		return
	}

	post, err := h.upstream.UpdatePost(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(post)
}

// DeletePost deletes one post.
func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	if err := h.upstream.DeletePost(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).NoContent()
}
