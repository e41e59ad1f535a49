// Pulseboard - Team Analytics Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pulseboard

// Package viewstate holds the per-chart-instance record of hidden series and
// color overrides.
//
// State is an immutable value. Every mutation goes through Apply, which
// returns a new State and leaves its input untouched, so a State can be shared
// between goroutines and compared before and after an action in tests.
package viewstate

import (
	"fmt"
	"sort"

	"github.com/goccy/go-json"
)

// State is the view-state of one chart instance. The zero value is a valid
// state with every series visible and no color overrides.
type State struct {
	hidden map[string]struct{}
	colors map[string]string
}

// New returns an empty state.
func New() State {
	return State{}
}

// IsVisible reports whether the series is not hidden. Unknown keys are visible.
func (s State) IsVisible(seriesKey string) bool {
	_, hidden := s.hidden[seriesKey]
	return !hidden
}

// Color returns the color override for a series, if one exists.
func (s State) Color(seriesKey string) (string, bool) {
	c, ok := s.colors[seriesKey]
	return c, ok
}

// Hidden returns the hidden series keys in sorted order.
func (s State) Hidden() []string {
	keys := make([]string, 0, len(s.hidden))
	for k := range s.hidden {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Colors returns a copy of the color overrides.
func (s State) Colors() map[string]string {
	out := make(map[string]string, len(s.colors))
	for k, v := range s.colors {
		out[k] = v
	}
	return out
}

// VisibleKeys filters keys down to the visible ones, preserving order.
func (s State) VisibleKeys(keys []string) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if s.IsVisible(k) {
			out = append(out, k)
		}
	}
	return out
}

func (s State) clone() State {
	next := State{
		hidden: make(map[string]struct{}, len(s.hidden)+1),
		colors: make(map[string]string, len(s.colors)+1),
	}
	for k := range s.hidden {
		next.hidden[k] = struct{}{}
	}
	for k, v := range s.colors {
		next.colors[k] = v
	}
	return next
}

type stateJSON struct {
	Hidden []string          `json:"hidden"`
	Colors map[string]string `json:"colors"`
}

// MarshalJSON encodes the state as {"hidden": [...], "colors": {...}}.
func (s State) MarshalJSON() ([]byte, error) {
	return json.Marshal(stateJSON{Hidden: s.Hidden(), Colors: s.Colors()})
}

// UnmarshalJSON decodes the form written by MarshalJSON.
func (s *State) UnmarshalJSON(data []byte) error {
	var raw stateJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode view-state: %w", err)
	}
	next := State{}.clone()
	for _, k := range raw.Hidden {
		next.hidden[k] = struct{}{}
	}
	for k, v := range raw.Colors {
		next.colors[k] = v
	}
	*s = next
	return nil
}

// DefaultColor returns palette[index mod len(palette)], or "" for an empty
// palette. Negative indexes wrap the same way.
func DefaultColor(index int, palette []string) string {
	n := len(palette)
	if n == 0 {
		return ""
	}
	i := index % n
	if i < 0 {
		i += n
	}
	return palette[i]
}
