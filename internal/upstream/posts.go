// Pulseboard - Team Analytics Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pulseboard

package upstream

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/tomtom215/pulseboard/internal/posts"
)

// ErrNoToken means a login succeeded at HTTP level but returned no token.
var ErrNoToken = errors.New("upstream: login response carried no token")

// Credentials is the login request body.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login exchanges credentials for a bearer token. A 401 maps to ErrUnauthorized.
func (c *Client) Login(ctx context.Context, creds Credentials) (string, error) {
	body, err := c.do(ctx, request{
		method:   http.MethodPost,
		path:     "/auth/login",
		body:     creds,
		endpoint: "auth-login",
	})
	if err != nil {
		return "", err
	}

	var resp loginResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("decode login response: %w", err)
	}
	if resp.Token == "" {
		return "", ErrNoToken
	}
	return resp.Token, nil
}

// ListPosts returns one page of posts.
func (c *Client) ListPosts(ctx context.Context, q posts.Query) ([]posts.Post, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(q.Page))
	params.Set("limit", strconv.Itoa(q.Limit))
	if q.Search != "" {
		params.Set("search", q.Search)
	}
	if q.Category != "" {
		params.Set("category", string(q.Category))
	}
	if q.SortBy != "" {
		params.Set("sortBy", q.SortBy)
	}
	if q.Order != "" {
		params.Set("sortOrder", q.Order)
	}

	body, err := c.do(ctx, request{
		method:   http.MethodGet,
		path:     "/posts",
		query:    params,
		endpoint: "posts-list",
	})
	if err != nil {
		return nil, err
	}
	return posts.DecodeList(body)
}

// GetPost returns a single post.
func (c *Client) GetPost(ctx context.Context, id string) (*posts.Post, error) {
	body, err := c.do(ctx, request{
		method:   http.MethodGet,
		path:     "/posts/" + url.PathEscape(id),
		endpoint: "posts-get",
	})
	if err != nil {
		return nil, err
	}
	return decodePost(body)
}

// CreatePost creates a post. The request must already be validated.
func (c *Client) CreatePost(ctx context.Context, req posts.Request) (*posts.Post, error) {
	body, err := c.do(ctx, request{
		method:   http.MethodPost,
		path:     "/posts",
		body:     req,
		endpoint: "posts-create",
	})
	if err != nil {
		return nil, err
	}
	return decodePost(body)
}

// UpdatePost applies a partial update.
func (c *Client) UpdatePost(ctx context.Context, id string, patch posts.Patch) (*posts.Post, error) {
	body, err := c.do(ctx, request{
		method:   http.MethodPatch,
		path:     "/posts/" + url.PathEscape(id),
		body:     patch,
		endpoint: "posts-update",
	})
	if err != nil {
		return nil, err
	}
	return decodePost(body)
}

// DeletePost deletes a post.
func (c *Client) DeletePost(ctx context.Context, id string) error {
	_, err := c.do(ctx, request{
		method:   http.MethodDelete,
		path:     "/posts/" + url.PathEscape(id),
		endpoint: "posts-delete",
	})
	return err
}

func decodePost(body []byte) (*posts.Post, error) {
	var p posts.Post
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("decode post: %w", err)
	}
	return &p, nil
}
