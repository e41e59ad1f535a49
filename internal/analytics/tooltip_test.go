// Pulseboard - Team Analytics Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pulseboard

package analytics

import (
	"testing"

	"github.com/goccy/go-json"
)

func ptr(f float64) *float64 { return &f }

func TestProportionTooltip(t *testing.T) {
	h := Hover{
		Active:  true,
		Payload: []HoverEntry{{Name: "Starbucks", Value: Number(30), Color: "#111111"}},
	}

	tip := ProportionTooltip(h, 100, nil)
	if tip == nil {
		t.Fatal("expected tooltip")
	}
	if tip.Kind != TooltipProportion {
		t.Errorf("Kind = %q", tip.Kind)
	}
	if tip.Label != "Starbucks" {
		t.Errorf("Label = %q, want Starbucks", tip.Label)
	}
	if tip.Value == nil || *tip.Value != 30 {
		t.Errorf("Value = %v, want 30", tip.Value)
	}
	if tip.Percent != "30.0" {
		t.Errorf("Percent = %q, want 30.0", tip.Percent)
	}
	if tip.Color != "#111111" {
		t.Errorf("Color = %q, want renderer color", tip.Color)
	}
}

func TestProportionTooltip_RendererPercentWins(t *testing.T) {
	h := Hover{
		Active:  true,
		Payload: []HoverEntry{{Name: "Pringles", Value: Number(30), Percent: ptr(0.4567)}},
	}

	tip := ProportionTooltip(h, 100, nil)
	if tip == nil || tip.Percent != "45.7" {
		t.Errorf("Percent = %v, want 45.7", tip)
	}
}

func TestProportionTooltip_ColorOverrideAndFallbackLabel(t *testing.T) {
	h := Hover{
		Active:  true,
		Label:   String("Blue Bottle"),
		Payload: []HoverEntry{{Value: String("25"), Color: "#000000"}},
	}
	colors := func(key string) (string, bool) {
		if key == "Blue Bottle" {
			return "#abcdef", true
		}
		return "", false
	}

	tip := ProportionTooltip(h, 0, colors)
	if tip == nil {
		t.Fatal("expected tooltip")
	}
	if tip.Label != "Blue Bottle" {
		t.Errorf("Label = %q", tip.Label)
	}
	if tip.Color != "#abcdef" {
		t.Errorf("Color = %q, want override", tip.Color)
	}
	if tip.Percent != "0.0" {
		t.Errorf("Percent = %q, want 0.0 for zero total", tip.Percent)
	}
}

func TestProportionTooltip_NothingToRender(t *testing.T) {
	tests := []struct {
		name string
		h    Hover
	}{
		{"inactive", Hover{Active: false, Payload: []HoverEntry{{Name: "x", Value: Number(1)}}}},
		{"empty payload", Hover{Active: true}},
		{"non-numeric value", Hover{Active: true, Payload: []HoverEntry{{Name: "x", Value: String("n/a")}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tip := ProportionTooltip(tt.h, 10, nil); tip != nil {
				t.Errorf("expected nil, got %+v", tip)
			}
		})
	}
}

func crossOpts() CrossSeriesOptions {
	return CrossSeriesOptions{
		LeftKey:    "bugs",
		RightKey:   "productivity",
		LeftLabel:  "Bug count",
		RightLabel: "Productivity score",
		XLabel:     "Cups of coffee",
	}
}

func TestCrossSeriesTooltip(t *testing.T) {
	h := Hover{
		Active: true,
		Label:  Number(3),
		Payload: []HoverEntry{
			{DataKey: "TeamA-bugs", Value: Number(4), Color: "#a"},
			{DataKey: "TeamA-productivity", Value: Number(70), Color: "#b"},
			{DataKey: "TeamB-bugs", Value: Number(9), Color: "#c"},
		},
	}

	tip := CrossSeriesTooltip(h, crossOpts())
	if tip == nil {
		t.Fatal("expected tooltip")
	}
	if tip.Team != "TeamA" {
		t.Errorf("Team = %q, want TeamA", tip.Team)
	}
	if tip.Label != "3" || tip.XLabel != "Cups of coffee" {
		t.Errorf("Label = %q, XLabel = %q", tip.Label, tip.XLabel)
	}
	if tip.Left == nil || tip.Left.Value != 4 || tip.Left.Label != "Bug count" {
		t.Errorf("Left = %+v", tip.Left)
	}
	if tip.Right == nil || tip.Right.Value != 70 || tip.Right.Label != "Productivity score" {
		t.Errorf("Right = %+v", tip.Right)
	}
	if tip.Color != "#a" {
		t.Errorf("Color = %q, want hovered entry color", tip.Color)
	}
}

func TestCrossSeriesTooltip_HoveredSeriesKeySelectsTeam(t *testing.T) {
	h := Hover{
		Active:    true,
		Label:     Number(1),
		SeriesKey: "TeamB-bugs",
		Payload: []HoverEntry{
			{DataKey: "TeamA-bugs", Value: Number(4)},
			{DataKey: "TeamB-bugs", Value: Number(9)},
		},
	}

	tip := CrossSeriesTooltip(h, crossOpts())
	if tip == nil || tip.Team != "TeamB" {
		t.Fatalf("tip = %+v, want team TeamB", tip)
	}
	if tip.Left == nil || tip.Left.Value != 9 {
		t.Errorf("Left = %+v", tip.Left)
	}
	if tip.Right != nil {
		t.Errorf("missing metric must be omitted, got %+v", tip.Right)
	}
}

func TestCrossSeriesTooltip_NothingToRender(t *testing.T) {
	if tip := CrossSeriesTooltip(Hover{Active: false, Payload: []HoverEntry{{DataKey: "A-bugs"}}}, crossOpts()); tip != nil {
		t.Error("inactive hover must yield nil")
	}
	if tip := CrossSeriesTooltip(Hover{Active: true}, crossOpts()); tip != nil {
		t.Error("empty payload must yield nil")
	}
	if tip := CrossSeriesTooltip(Hover{Active: true, Payload: []HoverEntry{{DataKey: ""}}}, crossOpts()); tip != nil {
		t.Error("empty key must yield nil")
	}
}

func TestHover_UnmarshalTolerant(t *testing.T) {
	payload := `{"active":true,"label":"W1","payload":[
		{"dataKey":"a","value":"12","percent":0.5},
		{"dataKey":"b","value":true},
		{"dataKey":"c","value":7}
	]}`

	var h Hover
	if err := json.Unmarshal([]byte(payload), &h); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if len(h.Payload) != 3 {
		t.Fatalf("len(Payload) = %d", len(h.Payload))
	}
	if f, ok := h.Payload[0].Value.Float(); !ok || f != 12 {
		t.Errorf("numeric string value = %v, %v", f, ok)
	}
	if !h.Payload[1].Value.IsZero() {
		t.Error("boolean value should decode to zero Value")
	}
	if h.Label.Text() != "W1" {
		t.Errorf("Label = %q", h.Label.Text())
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		value, total float64
		want         string
	}{
		{30, 100, "30.0"},
		{1, 3, "33.3"},
		{2, 3, "66.7"},
		{5, 0, "0.0"},
		{5, -1, "0.0"},
	}
	for _, tt := range tests {
		if got := Percent(tt.value, tt.total); got != tt.want {
			t.Errorf("Percent(%v, %v) = %q, want %q", tt.value, tt.total, got, tt.want)
		}
	}
}
