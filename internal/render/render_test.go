// Pulseboard - Team Analytics Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pulseboard

package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/tomtom215/pulseboard/internal/analytics"
	"github.com/tomtom215/pulseboard/internal/dashboard"
	"github.com/tomtom215/pulseboard/internal/viewstate"
)

var palette = []string{"#667eea", "#764ba2", "#f093fb", "#4facfe", "#43e97b", "#fa709a"}

func props(t *testing.T, chartID, body string, state viewstate.State) dashboard.Props {
	t.Helper()
	spec, err := dashboard.Lookup(chartID)
	if err != nil {
		t.Fatal(err)
	}
	ds, err := analytics.Decode([]byte(body))
	if err != nil {
		t.Fatal(err)
	}
	return dashboard.BuildChart(spec, ds, state, palette).Props
}

func TestRenderChart(t *testing.T) {
	tests := []struct {
		name    string
		chartID string
		body    string
		want    []string
	}{
		{
			name:    "bar",
			chartID: "coffee-brands-bar",
			body:    `[{"brand":"Starbucks","popularity":45},{"brand":"Ediya","popularity":30}]`,
			want:    []string{"Top Coffee Brands", "Starbucks", "#764ba2"},
		},
		{
			name:    "stacked area",
			chartID: "mood-stacked-area",
			body:    `[{"week":"W1","happy":5,"tired":3}]`,
			want:    []string{"Weekly Mood Trend", "happy", "tired", "total"},
		},
		{
			name:    "doughnut",
			chartID: "snack-brands-doughnut",
			body:    `{"items":[{"name":"Pringles","share":60},{"name":"Oreo","share":40}]}`,
			want:    []string{"Pringles", "Oreo", "Total: 100"},
		},
		{
			name:    "multi-line",
			chartID: "coffee-multiline",
			body:    `{"teams":[{"team":"Frontend","series":[{"cups":1,"bugs":3,"productivity":60}]}]}`,
			want:    []string{"Frontend - Bug count", "Frontend - Productivity score", "Cups of coffee", "dashed"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := RenderChart(&buf, props(t, tt.chartID, tt.body, viewstate.New())); err != nil {
				t.Fatalf("RenderChart() error = %v", err)
			}
			html := buf.String()
			for _, w := range tt.want {
				if !strings.Contains(html, w) {
					t.Errorf("output missing %q", w)
				}
			}
		})
	}
}

func TestDoughnutChart_UsesShapeValueField(t *testing.T) {
	body := `[{"brand":"X","rank":1,"popularity":30},{"brand":"Y","rank":2,"popularity":70}]`
	p := props(t, "coffee-brands-doughnut", body, viewstate.New())
	if p.ValueKey != "popularity" {
		t.Fatalf("ValueKey = %q, want popularity", p.ValueKey)
	}

	pie := doughnutChart(p)
	if len(pie.MultiSeries) != 1 {
		t.Fatalf("series = %d, want 1", len(pie.MultiSeries))
	}
	data, ok := pie.MultiSeries[0].Data.([]opts.PieData)
	if !ok {
		t.Fatalf("data is %T", pie.MultiSeries[0].Data)
	}

	want := map[string]float64{"X": 30, "Y": 70}
	if len(data) != len(want) {
		t.Fatalf("slices = %d, want %d", len(data), len(want))
	}
	for _, d := range data {
		if d.Value != want[d.Name] {
			t.Errorf("slice %s = %v, want %v", d.Name, d.Value, want[d.Name])
		}
	}
}

func TestRenderChart_Empty(t *testing.T) {
	p := props(t, "coffee-brands-bar", `{"nothing":[]}`, viewstate.New())
	p.Error = dashboard.FetchFailedMessage

	var buf bytes.Buffer
	if err := RenderChart(&buf, p); err != nil {
		t.Fatalf("RenderChart() error = %v", err)
	}
	if !strings.Contains(buf.String(), dashboard.FetchFailedMessage) {
		t.Error("empty chart should show its error message")
	}
}

func TestRenderChart_UnknownKind(t *testing.T) {
	p := dashboard.Props{Kind: "radar", Status: dashboard.StatusReady}
	if err := RenderChart(&bytes.Buffer{}, p); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestLegendSelection(t *testing.T) {
	state := viewstate.Apply(viewstate.New(), viewstate.Toggle("tired"))
	p := props(t, "mood-stacked-bar", `[{"week":"W1","happy":5,"tired":3}]`, state)

	sel := legendSelection(p)
	if !sel["happy"] || sel["tired"] {
		t.Errorf("selection = %v", sel)
	}
}

func TestRenderPage(t *testing.T) {
	a := props(t, "coffee-brands-bar", `[{"brand":"Starbucks","popularity":45}]`, viewstate.New())
	b := props(t, "mood-stacked-bar", `[{"week":"W1","happy":5}]`, viewstate.New())

	var buf bytes.Buffer
	if err := RenderPage(&buf, "Pulseboard", []dashboard.Props{a, b}); err != nil {
		t.Fatalf("RenderPage() error = %v", err)
	}
	html := buf.String()
	for _, w := range []string{"Pulseboard", "Top Coffee Brands", "Weekly Mood Trend"} {
		if !strings.Contains(html, w) {
			t.Errorf("page missing %q", w)
		}
	}
}
