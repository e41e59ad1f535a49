// Pulseboard - Team Analytics Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pulseboard

// Package dashboard assembles the analytics page: it knows which chart shows
// which dataset, builds the props each chart renderer receives, and loads the
// datasets concurrently with per-dataset failure isolation.
package dashboard

import (
	"errors"
	"fmt"

	"github.com/tomtom215/pulseboard/internal/upstream"
)

// ErrUnknownChart is returned for chart IDs that are not in the catalogue.
var ErrUnknownChart = errors.New("unknown chart")

// ErrNoTooltip is returned when a chart kind has no synthesized tooltip.
var ErrNoTooltip = errors.New("chart kind has no synthesized tooltip")

// Kind is a chart kind.
type Kind string

const (
	KindBar         Kind = "bar"
	KindDoughnut    Kind = "doughnut"
	KindStackedBar  Kind = "stacked-bar"
	KindStackedArea Kind = "stacked-area"
	KindMultiLine   Kind = "multi-line"
)

// ChartSpec is one catalogue entry.
type ChartSpec struct {
	ID      string             `json:"id"`
	Title   string             `json:"title"`
	Dataset upstream.DatasetID `json:"dataset"`
	Kind    Kind               `json:"kind"`
	// XKey is the category/x field. Empty means "take it from the dataset shape".
	XKey string `json:"xKey,omitempty"`
	// LeftKey and RightKey are the per-team metrics of a multi-line chart.
	LeftKey  string `json:"leftKey,omitempty"`
	RightKey string `json:"rightKey,omitempty"`
	// PaletteSize limits the palette to its first n colors; 0 uses all of it.
	PaletteSize int `json:"-"`
}

// Palette returns the colors this chart seeds from.
func (s ChartSpec) Palette(full []string) []string {
	if s.PaletteSize > 0 && s.PaletteSize < len(full) {
		return full[:s.PaletteSize]
	}
	return full
}

// Catalog lists every chart on the dashboard, in page order.
var Catalog = []ChartSpec{
	{ID: "coffee-brands-bar", Title: "Top Coffee Brands", Dataset: upstream.TopCoffeeBrands, Kind: KindBar, PaletteSize: 4},
	{ID: "coffee-brands-doughnut", Title: "Top Coffee Brands", Dataset: upstream.TopCoffeeBrands, Kind: KindDoughnut},
	{ID: "snack-brands-bar", Title: "Popular Snack Brands", Dataset: upstream.PopularSnackBrands, Kind: KindBar, PaletteSize: 4},
	{ID: "snack-brands-doughnut", Title: "Popular Snack Brands", Dataset: upstream.PopularSnackBrands, Kind: KindDoughnut},
	{ID: "mood-stacked-bar", Title: "Weekly Mood Trend", Dataset: upstream.WeeklyMoodTrend, Kind: KindStackedBar, XKey: "week", PaletteSize: 4},
	{ID: "mood-stacked-area", Title: "Weekly Mood Trend", Dataset: upstream.WeeklyMoodTrend, Kind: KindStackedArea, XKey: "week", PaletteSize: 3},
	{ID: "workout-stacked-bar", Title: "Weekly Workout Trend", Dataset: upstream.WeeklyWorkoutTrend, Kind: KindStackedBar, XKey: "week", PaletteSize: 4},
	{ID: "workout-stacked-area", Title: "Weekly Workout Trend", Dataset: upstream.WeeklyWorkoutTrend, Kind: KindStackedArea, XKey: "week", PaletteSize: 3},
	{
		ID: "coffee-multiline", Title: "Coffee Consumption", Dataset: upstream.CoffeeConsumption, Kind: KindMultiLine,
		XKey: "coffee", LeftKey: "bugs", RightKey: "productivity",
	},
	{
		ID: "snack-multiline", Title: "Snack Impact", Dataset: upstream.SnackImpact, Kind: KindMultiLine,
		XKey: "snacks", LeftKey: "meetingMissed", RightKey: "morale",
	},
}

// Lookup returns the catalogue entry for id.
func Lookup(id string) (ChartSpec, error) {
	for _, spec := range Catalog {
		if spec.ID == id {
			return spec, nil
		}
	}
	return ChartSpec{}, fmt.Errorf("%w: %q", ErrUnknownChart, id)
}

var displayLabels = map[string]string{
	"coffee":        "Cups of coffee",
	"snacks":        "Snacks",
	"bugs":          "Bug count",
	"productivity":  "Productivity score",
	"meetingMissed": "Missed meetings",
	"morale":        "Morale",
}

// Label returns the display label of a field, or the field name itself.
func Label(field string) string {
	if l, ok := displayLabels[field]; ok {
		return l
	}
	return field
}
