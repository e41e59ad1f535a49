// Pulseboard - Team Analytics Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pulseboard

// Package posts defines the board post types proxied to the upstream API and
// the rules a post must satisfy before it is forwarded.
package posts

import (
	"fmt"

	"github.com/goccy/go-json"
)

// Category is a post category.
type Category string

const (
	CategoryNotice Category = "NOTICE"
	CategoryQnA    Category = "QNA"
	CategoryFree   Category = "FREE"
)

// Limits enforced on create and update.
const (
	MaxTitleLength = 80
	MaxBodyLength  = 2000
	MaxTagCount    = 5
	MaxTagLength   = 24
)

// Post is a board post as returned by the upstream API.
type Post struct {
	ID        string   `json:"id"`
	UserID    string   `json:"userId"`
	Title     string   `json:"title"`
	Body      string   `json:"body"`
	Category  Category `json:"category"`
	Tags      []string `json:"tags"`
	CreatedAt string   `json:"createdAt"`
}

// Request is the body of a create call.
type Request struct {
	Title    string   `json:"title" validate:"notblank,max=80"`
	Body     string   `json:"body" validate:"notblank,max=2000"`
	Category Category `json:"category" validate:"required,oneof=NOTICE QNA FREE"`
	Tags     []string `json:"tags" validate:"max=5,dive,notblank,max=24"`
}

// Patch is the body of an update call. Absent fields are left unchanged.
type Patch struct {
	Title    *string   `json:"title,omitempty" validate:"omitempty,notblank,max=80"`
	Body     *string   `json:"body,omitempty" validate:"omitempty,notblank,max=2000"`
	Category *Category `json:"category,omitempty" validate:"omitempty,oneof=NOTICE QNA FREE"`
	Tags     []string  `json:"tags,omitempty" validate:"omitempty,max=5,dive,notblank,max=24"`
}

// Query holds the list parameters.
type Query struct {
	Page     int
	Limit    int
	Search   string
	Category Category
	SortBy   string // "title" or "createdAt"
	Order    string // "asc" or "desc"
}

// listEnvelopeFields are tried in order when the list response is an object.
var listEnvelopeFields = []string{"items", "data", "posts"}

// DecodeList decodes a post list response. The upstream has returned a bare
// array as well as {items}, {data} and {posts}; anything else is an empty list.
func DecodeList(data []byte) ([]Post, error) {
	var arr []Post
	if err := json.Unmarshal(data, &arr); err == nil {
		if arr == nil {
			arr = []Post{}
		}
		return arr, nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return []Post{}, fmt.Errorf("decode post list: %w", err)
	}
	for _, field := range listEnvelopeFields {
		raw, ok := obj[field]
		if !ok {
			continue
		}
		var list []Post
		if err := json.Unmarshal(raw, &list); err != nil || list == nil {
			continue
		}
		return list, nil
	}
	return []Post{}, nil
}
