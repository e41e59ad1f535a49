// Pulseboard - Team Analytics Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pulseboard

package analytics

import (
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// UnmarshalJSON accepts a JSON string or number. Any other JSON value decodes
// to the zero Value rather than failing, so one odd field never rejects a
// whole hover payload.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		*v = Value{}
		return nil //nolint:nilerr // tolerated: malformed hover fields are omitted
	}
	switch t := raw.(type) {
	case string:
		*v = String(t)
	case float64:
		*v = Number(t)
	default:
		*v = Value{}
	}
	return nil
}

// HoverEntry is one point under the pointer as reported by the renderer.
type HoverEntry struct {
	DataKey string `json:"dataKey"`
	Name    string `json:"name,omitempty"`
	Value   Value  `json:"value"`
	Color   string `json:"color,omitempty"`
	// Percent is the renderer's own share for the point, as a 0..1 fraction.
	Percent *float64 `json:"percent,omitempty"`
}

// Hover is the renderer's hover event.
type Hover struct {
	Active  bool         `json:"active"`
	Label   Value        `json:"label"`
	Payload []HoverEntry `json:"payload"`
	// SeriesKey optionally names the hovered series; the first payload entry is used otherwise.
	SeriesKey string `json:"seriesKey,omitempty"`
}

// Renderable reports whether the hover event should produce a tooltip at all.
func (h Hover) Renderable() bool {
	return h.Active && len(h.Payload) > 0
}

// TooltipKind names the tooltip variant.
type TooltipKind string

const (
	TooltipProportion  TooltipKind = "proportion"
	TooltipCrossSeries TooltipKind = "cross-series"
)

// MetricValue is one metric line of a cross-series tooltip.
type MetricValue struct {
	Key   string  `json:"key"`
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Color string  `json:"color"`
}

// Tooltip is a composed tooltip payload.
type Tooltip struct {
	Kind  TooltipKind `json:"kind"`
	Label string      `json:"label"`
	Color string      `json:"color,omitempty"`

	// Proportion tooltips
	Value   *float64 `json:"value,omitempty"`
	Percent string   `json:"percent,omitempty"`

	// Cross-series tooltips
	XLabel string       `json:"xLabel,omitempty"`
	Team   string       `json:"team,omitempty"`
	Left   *MetricValue `json:"left,omitempty"`
	Right  *MetricValue `json:"right,omitempty"`
}

// ColorLookup returns a view-state color override for a series key.
type ColorLookup func(seriesKey string) (string, bool)

func resolveColor(colors ColorLookup, key, fallback string) string {
	if colors != nil {
		if c, ok := colors(key); ok && c != "" {
			return c
		}
	}
	return fallback
}

// Percent returns value as a percentage of total formatted to one decimal
// place. A non-positive total yields "0.0".
func Percent(value, total float64) string {
	if total <= 0 {
		return "0.0"
	}
	return strconv.FormatFloat(value/total*100, 'f', 1, 64)
}

// ProportionTooltip composes the doughnut tooltip for the hovered slice.
// visibleTotal must be the sum of the currently visible slices. A percent
// supplied by the renderer wins over the locally computed one. Returns nil
// when there is nothing to render.
func ProportionTooltip(h Hover, visibleTotal float64, colors ColorLookup) *Tooltip {
	if !h.Renderable() {
		return nil
	}
	entry := h.Payload[0]

	value, ok := entry.Value.Float()
	if !ok {
		return nil
	}

	label := entry.Name
	if label == "" {
		label = h.Label.Text()
	}

	percent := Percent(value, visibleTotal)
	if entry.Percent != nil {
		percent = strconv.FormatFloat(*entry.Percent*100, 'f', 1, 64)
	}

	return &Tooltip{
		Kind:    TooltipProportion,
		Label:   label,
		Color:   resolveColor(colors, label, entry.Color),
		Value:   &value,
		Percent: percent,
	}
}

// CrossSeriesOptions configures CrossSeriesTooltip.
type CrossSeriesOptions struct {
	LeftKey    string
	RightKey   string
	LeftLabel  string
	RightLabel string
	XLabel     string
	Colors     ColorLookup
}

// CrossSeriesTooltip composes the dual-axis tooltip: the hovered composite key
// yields a team, and every payload entry for that team contributes its left or
// right metric. A metric absent from the payload is omitted, never shown as
// zero. Returns nil when there is nothing to render.
func CrossSeriesTooltip(h Hover, o CrossSeriesOptions) *Tooltip {
	if !h.Renderable() {
		return nil
	}

	hovered := h.SeriesKey
	var hoveredColor string
	for _, e := range h.Payload {
		if hovered == "" || e.DataKey == hovered {
			hovered = e.DataKey
			hoveredColor = e.Color
			break
		}
	}
	team := TeamOf(hovered)
	if team == "" {
		return nil
	}

	tip := &Tooltip{
		Kind:   TooltipCrossSeries,
		Label:  h.Label.Text(),
		XLabel: o.XLabel,
		Team:   team,
		Color:  resolveColor(o.Colors, hovered, hoveredColor),
	}

	prefix := team + "-"
	for _, e := range h.Payload {
		metric, ok := strings.CutPrefix(e.DataKey, prefix)
		if !ok {
			continue
		}
		value, ok := e.Value.Float()
		if !ok {
			continue
		}
		mv := &MetricValue{
			Key:   e.DataKey,
			Value: value,
			Color: resolveColor(o.Colors, e.DataKey, e.Color),
		}
		switch {
		case tip.Left == nil && o.LeftKey != "" && strings.Contains(metric, o.LeftKey):
			mv.Label = o.LeftLabel
			tip.Left = mv
		case tip.Right == nil && o.RightKey != "" && strings.Contains(metric, o.RightKey):
			mv.Label = o.RightLabel
			tip.Right = mv
		}
	}

	return tip
}
