// Pulseboard - Team Analytics Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pulseboard

package api

import (
	"context"
	"time"

	"github.com/tomtom215/pulseboard/internal/config"
	"github.com/tomtom215/pulseboard/internal/dashboard"
	"github.com/tomtom215/pulseboard/internal/posts"
	"github.com/tomtom215/pulseboard/internal/upstream"
)

// Upstream is the part of the upstream client the handlers call directly.
// Dataset fetches go through the dashboard service instead.
type Upstream interface {
	Login(ctx context.Context, creds upstream.Credentials) (string, error)
	ListPosts(ctx context.Context, q posts.Query) ([]posts.Post, error)
	GetPost(ctx context.Context, id string) (*posts.Post, error)
	CreatePost(ctx context.Context, req posts.Request) (*posts.Post, error)
	UpdatePost(ctx context.Context, id string, patch posts.Patch) (*posts.Post, error)
	DeletePost(ctx context.Context, id string) error
	Healthy() bool
	BreakerState() string
}

// Handler manages HTTP request handlers.
type Handler struct {
	dashboard *dashboard.Service
	upstream  Upstream
	moderator *posts.Moderator
	config    *config.Config
	startTime time.Time
}

// NewHandler creates a new Handler instance.
func NewHandler(svc *dashboard.Service, up Upstream, cfg *config.Config) *Handler {
	return &Handler{
		dashboard: svc,
		upstream:  up,
		moderator: posts.NewModerator(cfg.Posts.ForbiddenWords),
		config:    cfg,
		startTime: time.Now(),
	}
}
