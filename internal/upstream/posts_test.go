// Pulseboard - Team Analytics Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pulseboard

package upstream

import (
	"context"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/pulseboard/internal/posts"
)

func TestLogin(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/auth/login" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		var creds Credentials
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if creds.Email == "bad@example.com" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"token":"tok-123"}`))
	})

	token, err := c.Login(context.Background(), Credentials{Email: "me@example.com", Password: "pw"})
	if err != nil || token != "tok-123" {
		t.Fatalf("Login() = %q, %v", token, err)
	}

	_, err = c.Login(context.Background(), Credentials{Email: "bad@example.com", Password: "pw"})
	if !errors.Is(err, ErrUnauthorized) {
		t.Errorf("err = %v, want ErrUnauthorized", err)
	}
}

func TestLogin_EmptyToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})
	if _, err := c.Login(context.Background(), Credentials{Email: "a@b.c", Password: "x"}); !errors.Is(err, ErrNoToken) {
		t.Errorf("err = %v, want ErrNoToken", err)
	}
}

func TestListPosts_QueryAndEnvelope(t *testing.T) {
	var query map[string]string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		query = map[string]string{}
		for k, v := range r.URL.Query() {
			query[k] = v[0]
		}
		_, _ = w.Write([]byte(`{"items":[{"id":"1","title":"hi","category":"FREE","tags":[]}],"nextCursor":null}`))
	})

	list, err := c.ListPosts(context.Background(), posts.Query{
		Page: 2, Limit: 20, Search: "회의", Category: posts.CategoryFree, SortBy: "createdAt", Order: "desc",
	})
	if err != nil {
		t.Fatalf("ListPosts() error = %v", err)
	}
	if len(list) != 1 || list[0].ID != "1" {
		t.Errorf("list = %+v", list)
	}

	want := map[string]string{
		"page": "2", "limit": "20", "search": "회의", "category": "FREE", "sortBy": "createdAt", "sortOrder": "desc",
	}
	for k, v := range want {
		if query[k] != v {
			t.Errorf("query[%s] = %q, want %q", k, query[k], v)
		}
	}
}

func TestPostCRUD(t *testing.T) {
	var lastMethod, lastPath, lastBody string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		lastMethod, lastPath = r.Method, r.URL.Path
		b, _ := io.ReadAll(r.Body)
		lastBody = string(b)
		switch r.Method {
		case http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		default:
			_, _ = w.Write([]byte(`{"id":"42","title":"t","body":"b","category":"QNA","tags":["x"]}`))
		}
	})
	ctx := context.Background()

	p, err := c.CreatePost(ctx, posts.Request{Title: "t", Body: "b", Category: posts.CategoryQnA, Tags: []string{"x"}})
	if err != nil || p.ID != "42" {
		t.Fatalf("CreatePost() = %+v, %v", p, err)
	}
	if lastMethod != http.MethodPost || lastPath != "/posts" {
		t.Errorf("create sent %s %s", lastMethod, lastPath)
	}

	title := "new"
	if _, err := c.UpdatePost(ctx, "42", posts.Patch{Title: &title}); err != nil {
		t.Fatalf("UpdatePost() error = %v", err)
	}
	if lastMethod != http.MethodPatch || lastPath != "/posts/42" || lastBody != `{"title":"new"}` {
		t.Errorf("update sent %s %s %s", lastMethod, lastPath, lastBody)
	}

	if _, err := c.GetPost(ctx, "42"); err != nil {
		t.Fatalf("GetPost() error = %v", err)
	}

	if err := c.DeletePost(ctx, "42"); err != nil {
		t.Fatalf("DeletePost() error = %v", err)
	}
	if lastMethod != http.MethodDelete {
		t.Errorf("delete sent %s", lastMethod)
	}
}
