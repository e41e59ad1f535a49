// Pulseboard - Team Analytics Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pulseboard

package posts

import (
	"fmt"
	"strings"

	"github.com/tomtom215/pulseboard/internal/cache"
	"github.com/tomtom215/pulseboard/internal/metrics"
	"github.com/tomtom215/pulseboard/internal/validation"
)

// Moderator validates post bodies and screens them for forbidden words.
type Moderator struct {
	matcher *cache.KeywordMatcher
}

// NewModerator builds a moderator for the given forbidden words.
func NewModerator(forbidden []string) *Moderator {
	return &Moderator{matcher: cache.NewKeywordMatcher(forbidden)}
}

// ForbiddenWords returns the distinct forbidden words found in text.
func (m *Moderator) ForbiddenWords(text string) []string {
	if m == nil || m.matcher.Len() == 0 {
		return nil
	}
	return m.matcher.Find(text)
}

// CheckRequest validates a create request.
func (m *Moderator) CheckRequest(req *Request) *validation.RequestValidationError {
	verr := validation.ValidateStruct(req)
	verr = verr.Merge(m.screen(req.Title, req.Body, req.Tags))
	record(verr)
	return verr
}

// CheckPatch validates an update request. Only fields present are checked.
func (m *Moderator) CheckPatch(p *Patch) *validation.RequestValidationError {
	verr := validation.ValidateStruct(p)

	var title, body string
	if p.Title != nil {
		title = *p.Title
	}
	if p.Body != nil {
		body = *p.Body
	}
	verr = verr.Merge(m.screen(title, body, p.Tags))
	record(verr)
	return verr
}

func (m *Moderator) screen(title, body string, tags []string) *validation.RequestValidationError {
	var errs []validation.ValidationError

	check := func(field, text string) {
		if found := m.ForbiddenWords(text); len(found) > 0 {
			errs = append(errs, validation.NewFieldError(field, "forbidden",
				fmt.Sprintf("%s contains forbidden words: %s", field, strings.Join(found, ", ")), found))
		}
	}

	check("title", title)
	check("body", body)
	for i, tag := range tags {
		check(fmt.Sprintf("tags[%d]", i), tag)
	}

	return validation.NewRequestValidationError(errs...)
}

func record(verr *validation.RequestValidationError) {
	if verr == nil {
		return
	}
	for _, f := range verr.Fields() {
		field, _, _ := strings.Cut(f, "[")
		metrics.RecordPostValidationFailure(field)
	}
}
