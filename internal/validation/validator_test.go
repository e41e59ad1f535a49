// Pulseboard - Team Analytics Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pulseboard

package validation

import (
	"reflect"
	"strings"
	"testing"
)

func TestGetValidator_Singleton(t *testing.T) {
	v1 := GetValidator()
	v2 := GetValidator()

	if v1 == nil {
		t.Fatal("GetValidator() should not return nil")
	}
	if v1 != v2 {
		t.Error("GetValidator() should return the same singleton instance")
	}
}

type testRequest struct {
	Title string   `json:"title" validate:"notblank,max=10"`
	Color string   `json:"color" validate:"omitempty,hexcolor"`
	Kind  string   `json:"kind" validate:"required,oneof=A B"`
	Tags  []string `json:"tags" validate:"max=2,dive,notblank,max=3"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name       string
		input      testRequest
		wantFields []string
		wantInMsg  string
	}{
		{
			name:  "valid",
			input: testRequest{Title: "hello", Color: "#667eea", Kind: "A", Tags: []string{"go"}},
		},
		{
			name:       "blank title",
			input:      testRequest{Title: "   ", Kind: "A"},
			wantFields: []string{"title"},
			wantInMsg:  "title must not be blank",
		},
		{
			name:       "separator-only title is blank",
			input:      testRequest{Title: " \x1f\t", Kind: "A"},
			wantFields: []string{"title"},
			wantInMsg:  "title must not be blank",
		},
		{
			name:       "blank tag element",
			input:      testRequest{Title: "x", Kind: "A", Tags: []string{"ok", " "}},
			wantFields: []string{"tags[1]"},
		},
		{
			name:       "title too long counts runes",
			input:      testRequest{Title: "가나다라마바사아자차카", Kind: "A"},
			wantFields: []string{"title"},
			wantInMsg:  "at most 10 characters",
		},
		{
			name:       "bad color",
			input:      testRequest{Title: "x", Color: "red", Kind: "B"},
			wantFields: []string{"color"},
			wantInMsg:  "hex color",
		},
		{
			name:       "bad kind",
			input:      testRequest{Title: "x", Kind: "C"},
			wantFields: []string{"kind"},
			wantInMsg:  "one of: A B",
		},
		{
			name:       "too many tags",
			input:      testRequest{Title: "x", Kind: "A", Tags: []string{"a", "b", "c"}},
			wantFields: []string{"tags"},
			wantInMsg:  "at most 2 items",
		},
		{
			name:       "tag element too long",
			input:      testRequest{Title: "x", Kind: "A", Tags: []string{"ok", "long"}},
			wantFields: []string{"tags[1]"},
		},
		{
			name:       "multiple failures",
			input:      testRequest{Title: "", Kind: ""},
			wantFields: []string{"title", "kind"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verr := ValidateStruct(&tt.input)
			if tt.wantFields == nil {
				if verr != nil {
					t.Fatalf("ValidateStruct() = %v, want nil", verr)
				}
				return
			}
			if verr == nil {
				t.Fatal("ValidateStruct() = nil, want error")
			}
			if got := verr.Fields(); !reflect.DeepEqual(got, tt.wantFields) {
				t.Errorf("Fields() = %v, want %v", got, tt.wantFields)
			}
			if tt.wantInMsg != "" && !strings.Contains(verr.Error(), tt.wantInMsg) {
				t.Errorf("Error() = %q, want it to contain %q", verr.Error(), tt.wantInMsg)
			}
		})
	}
}

func TestToAPIError(t *testing.T) {
	single := NewRequestValidationError(NewFieldError("body", "forbidden", "body contains a forbidden word", "x"))
	apiErr := single.ToAPIError()
	if apiErr.Code != CodeValidationFailed {
		t.Errorf("Code = %q", apiErr.Code)
	}
	if apiErr.Details["field"] != "body" {
		t.Errorf("Details = %v", apiErr.Details)
	}

	multi := single.Merge(NewRequestValidationError(NewFieldError("title", "required", "title is required", "")))
	apiErr = multi.ToAPIError()
	fields, ok := apiErr.Details["fields"].([]map[string]interface{})
	if !ok || len(fields) != 2 {
		t.Fatalf("Details[fields] = %v", apiErr.Details["fields"])
	}
	if !strings.Contains(apiErr.Message, "; ") {
		t.Errorf("Message = %q, want joined messages", apiErr.Message)
	}
}

func TestNewRequestValidationError_Empty(t *testing.T) {
	if NewRequestValidationError() != nil {
		t.Error("no field errors should yield nil")
	}
	var nilErr *RequestValidationError
	if got := nilErr.Merge(nil); got != nil {
		t.Error("nil merged with nil should stay nil")
	}
}
