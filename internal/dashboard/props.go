// Pulseboard - Team Analytics Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pulseboard

package dashboard

import (
	"github.com/tomtom215/pulseboard/internal/analytics"
	"github.com/tomtom215/pulseboard/internal/viewstate"
)

// Status is the render state of one chart.
type Status string

const (
	// StatusLoading is part of the contract for clients that render before
	// props arrive; the server itself never returns it.
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	// StatusEmpty means there is nothing to chart. Empty charts have no
	// interactive affordances.
	StatusEmpty Status = "empty"
)

// Axis is the y-axis a multi-line series is plotted against.
type Axis string

const (
	AxisLeft  Axis = "left"
	AxisRight Axis = "right"
)

// Series is one legend entry: a series key with its visibility and color.
type Series struct {
	Key     string `json:"key"`
	Label   string `json:"label"`
	Visible bool   `json:"visible"`
	Color   string `json:"color"`
	Axis    Axis   `json:"axis,omitempty"`
	Team    string `json:"team,omitempty"`
}

// Props is everything a chart renderer needs.
type Props struct {
	ChartID           string             `json:"chartId"`
	Title             string             `json:"title"`
	Kind              Kind               `json:"kind"`
	Status            Status             `json:"status"`
	Error             string             `json:"error,omitempty"`
	XKey              string             `json:"xKey"`
	XLabel            string             `json:"xLabel,omitempty"`
	Data              []analytics.Record `json:"data"`
	Series            []Series           `json:"series"`
	VisibleSeriesKeys []string           `json:"visibleSeriesKeys"`
	Teams             []string           `json:"teams,omitempty"`
	// ValueKey is the field holding each doughnut slice's value.
	ValueKey string `json:"valueKey,omitempty"`
	// Total is the sum of the visible doughnut slices.
	Total *float64 `json:"total,omitempty"`
	// Duplicates lists team/x pairs that had more than one source record.
	Duplicates []analytics.Duplicate `json:"duplicates,omitempty"`
}

// ColorFor returns the color of a series, or "" when the chart has no such series.
func (p Props) ColorFor(key string) string {
	for _, s := range p.Series {
		if s.Key == key {
			return s.Color
		}
	}
	return ""
}

// Chart is the result of BuildChart.
type Chart struct {
	Props Props
	// State is the view-state with every series color seeded.
	State viewstate.State
	// Seeds are the palette seeding actions applied to reach State. A stored
	// instance dispatches them so its colors stay stable from then on.
	Seeds []viewstate.Action
}

type builder struct {
	spec    ChartSpec
	state   viewstate.State
	palette []string
	seeds   []viewstate.Action
}

// color returns the series color, seeding it from the palette on first use.
func (b *builder) color(key string, index int) string {
	if c, ok := b.state.Color(key); ok {
		return c
	}
	var c string
	b.state, c = viewstate.InitColor(b.state, key, index, b.palette)
	if c != "" {
		b.seeds = append(b.seeds, viewstate.SeedColor(key, index, b.palette))
	}
	return c
}

func (b *builder) series(key, label string, index int) Series {
	return Series{
		Key:     key,
		Label:   label,
		Visible: b.state.IsVisible(key),
		Color:   b.color(key, index),
	}
}

// BuildChart resolves the props of one chart from its dataset and view-state.
// It is pure: the same inputs always give the same props.
func BuildChart(spec ChartSpec, ds analytics.Dataset, state viewstate.State, palette []string) Chart {
	b := &builder{spec: spec, state: state, palette: spec.Palette(palette)}

	props := Props{
		ChartID:           spec.ID,
		Title:             spec.Title,
		Kind:              spec.Kind,
		Status:            StatusEmpty,
		Data:              []analytics.Record{},
		Series:            []Series{},
		VisibleSeriesKeys: []string{},
	}

	switch spec.Kind {
	case KindBar, KindStackedBar, KindStackedArea:
		b.buildCartesian(&props, ds)
	case KindDoughnut:
		b.buildDoughnut(&props, ds)
	case KindMultiLine:
		b.buildMultiLine(&props, ds)
	}

	return Chart{Props: props, State: b.state, Seeds: b.seeds}
}

// buildCartesian handles bar, stacked-bar and stacked-area charts. Plain bar
// charts seed colors from the key's position in the record, axis key
// included; stacked charts from the position among the series keys.
func (b *builder) buildCartesian(p *Props, ds analytics.Dataset) {
	xKey := b.spec.XKey
	if xKey == "" {
		xKey = ds.Shape.CategoryKey()
	}
	p.XKey = xKey

	keys := analytics.SeriesKeys(ds.Records, xKey)
	if len(ds.Records) == 0 || len(keys) == 0 {
		return
	}

	for i, key := range keys {
		index := i
		if b.spec.Kind == KindBar {
			index = analytics.KeyPosition(ds.Records, key)
		}
		s := b.series(key, key, index)
		p.Series = append(p.Series, s)
		if s.Visible {
			p.VisibleSeriesKeys = append(p.VisibleSeriesKeys, key)
		}
	}

	p.Data = ds.Records
	p.Status = StatusReady
}

// buildDoughnut emits one series per slice and only the visible slices as data.
func (b *builder) buildDoughnut(p *Props, ds analytics.Dataset) {
	category, value := ds.Shape.CategoryKey(), ds.Shape.ValueKey()
	p.XKey, p.ValueKey = category, value
	if len(ds.Records) == 0 || category == "" || value == "" {
		return
	}

	var total float64
	for i, rec := range ds.Records {
		label := rec.Text(category)
		s := b.series(label, label, i)
		p.Series = append(p.Series, s)
		if !s.Visible {
			continue
		}
		p.VisibleSeriesKeys = append(p.VisibleSeriesKeys, label)
		p.Data = append(p.Data, rec)
		if v, ok := rec.Float(value); ok {
			total += v
		}
	}

	p.Total = &total
	p.Status = StatusReady
}

// buildMultiLine pivots per-team records and emits a left and a right series
// per team, both seeded with the team's palette color.
func (b *builder) buildMultiLine(p *Props, ds analytics.Dataset) {
	p.XKey = b.spec.XKey
	p.XLabel = Label(b.spec.XKey)

	pivot := analytics.PivotRecords(ds.Records, b.spec.XKey, b.spec.LeftKey, b.spec.RightKey)
	p.Teams = pivot.Teams
	p.Duplicates = pivot.Duplicates
	if len(ds.Records) == 0 || len(pivot.Teams) == 0 {
		return
	}

	for i, team := range pivot.Teams {
		for _, side := range []struct {
			metric string
			axis   Axis
		}{{b.spec.LeftKey, AxisLeft}, {b.spec.RightKey, AxisRight}} {
			key := analytics.CompositeKey(team, side.metric)
			s := b.series(key, team+" - "+Label(side.metric), i)
			s.Axis = side.axis
			s.Team = team
			p.Series = append(p.Series, s)
			if s.Visible {
				p.VisibleSeriesKeys = append(p.VisibleSeriesKeys, key)
			}
		}
	}

	p.Data = pivot.Rows
	p.Status = StatusReady
}

// LegendEntry is the legend view of a series.
type LegendEntry struct {
	SeriesKey string `json:"seriesKey"`
	Label     string `json:"label"`
	Visible   bool   `json:"visible"`
	Color     string `json:"color"`
}

// Legend returns the legend entries of a chart, hidden series included.
func Legend(p Props) []LegendEntry {
	out := make([]LegendEntry, 0, len(p.Series))
	for _, s := range p.Series {
		out = append(out, LegendEntry{SeriesKey: s.Key, Label: s.Label, Visible: s.Visible, Color: s.Color})
	}
	return out
}

// ComposeTooltip synthesizes the hover tooltip of a doughnut or multi-line
// chart. It returns nil when the hover has nothing to render and ErrNoTooltip
// for chart kinds that use the renderer's own tooltip.
func ComposeTooltip(spec ChartSpec, ds analytics.Dataset, state viewstate.State, h analytics.Hover) (*analytics.Tooltip, error) {
	colors := func(key string) (string, bool) { return state.Color(key) }

	switch spec.Kind {
	case KindDoughnut:
		return analytics.ProportionTooltip(h, visibleTotal(ds, state), colors), nil
	case KindMultiLine:
		return analytics.CrossSeriesTooltip(h, analytics.CrossSeriesOptions{
			LeftKey:    spec.LeftKey,
			RightKey:   spec.RightKey,
			LeftLabel:  Label(spec.LeftKey),
			RightLabel: Label(spec.RightKey),
			XLabel:     Label(spec.XKey),
			Colors:     colors,
		}), nil
	default:
		return nil, ErrNoTooltip
	}
}

func visibleTotal(ds analytics.Dataset, state viewstate.State) float64 {
	category, value := ds.Shape.CategoryKey(), ds.Shape.ValueKey()
	var total float64
	for _, rec := range ds.Records {
		if !state.IsVisible(rec.Text(category)) {
			continue
		}
		if v, ok := rec.Float(value); ok {
			total += v
		}
	}
	return total
}
