// Pulseboard - Team Analytics Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pulseboard

package dashboard

import (
	"errors"
	"reflect"
	"testing"

	"github.com/tomtom215/pulseboard/internal/analytics"
	"github.com/tomtom215/pulseboard/internal/viewstate"
)

var testPalette = []string{"#667eea", "#764ba2", "#f093fb", "#4facfe", "#43e97b", "#fa709a"}

func decode(t *testing.T, body string) analytics.Dataset {
	t.Helper()
	ds, err := analytics.Decode([]byte(body))
	if err != nil {
		t.Fatalf("Decode(%s) error = %v", body, err)
	}
	return ds
}

func mustSpec(t *testing.T, id string) ChartSpec {
	t.Helper()
	spec, err := Lookup(id)
	if err != nil {
		t.Fatalf("Lookup(%q) error = %v", id, err)
	}
	return spec
}

const (
	brandsBody  = `[{"brand":"Starbucks","popularity":45},{"brand":"Ediya","popularity":30},{"brand":"Mega","popularity":25}]`
	moodBody    = `{"data":[{"week":"W1","happy":5,"tired":3,"stressed":2},{"week":"W2","happy":4,"tired":4,"stressed":1}]}`
	coffeeBody  = `{"teams":[{"team":"Frontend","series":[{"cups":1,"bugs":3,"productivity":60},{"cups":2,"bugs":2,"productivity":70}]},{"team":"Backend","series":[{"cups":1,"bugs":5,"productivity":55}]}]}`
	snackBody   = `{"departments":[{"name":"Sales","metrics":[{"snacks":2,"meetingsMissed":1,"morale":80}]}]}`
	unknownBody = `{"weird":true}`
)

func TestBuildChart_Bar(t *testing.T) {
	chart := BuildChart(mustSpec(t, "coffee-brands-bar"), decode(t, brandsBody), viewstate.New(), testPalette)
	p := chart.Props

	if p.Status != StatusReady {
		t.Fatalf("Status = %s, want ready", p.Status)
	}
	if p.XKey != "brand" {
		t.Errorf("XKey = %q, want brand", p.XKey)
	}
	if len(p.Series) != 1 || p.Series[0].Key != "popularity" {
		t.Fatalf("Series = %+v", p.Series)
	}
	// "brand" occupies slot 0, so popularity takes the second palette color.
	if got := p.Series[0].Color; got != "#764ba2" {
		t.Errorf("popularity color = %s, want #764ba2", got)
	}
	if len(p.Data) != 3 {
		t.Errorf("Data len = %d, want 3", len(p.Data))
	}
	if len(chart.Seeds) != 1 {
		t.Errorf("Seeds = %d, want 1", len(chart.Seeds))
	}
}

func TestBuildChart_StackedIndexesExcludeAxis(t *testing.T) {
	tests := []struct {
		chartID string
		want    []string
	}{
		{"mood-stacked-bar", []string{"#667eea", "#764ba2", "#f093fb"}},
		{"mood-stacked-area", []string{"#667eea", "#764ba2", "#f093fb"}},
	}
	for _, tt := range tests {
		t.Run(tt.chartID, func(t *testing.T) {
			p := BuildChart(mustSpec(t, tt.chartID), decode(t, moodBody), viewstate.New(), testPalette).Props
			var got []string
			for _, s := range p.Series {
				got = append(got, s.Color)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("colors = %v, want %v", got, tt.want)
			}
			if !reflect.DeepEqual(p.VisibleSeriesKeys, []string{"happy", "tired", "stressed"}) {
				t.Errorf("VisibleSeriesKeys = %v", p.VisibleSeriesKeys)
			}
		})
	}
}

func TestBuildChart_StackedAreaPaletteWraps(t *testing.T) {
	body := `[{"week":"W1","a":1,"b":2,"c":3,"d":4}]`
	p := BuildChart(mustSpec(t, "mood-stacked-area"), decode(t, body), viewstate.New(), testPalette).Props
	if got := p.ColorFor("d"); got != "#667eea" {
		t.Errorf("fourth series color = %s, want the first of three colors", got)
	}
}

func TestBuildChart_HiddenSeries(t *testing.T) {
	state := viewstate.Apply(viewstate.New(), viewstate.Toggle("tired"))
	p := BuildChart(mustSpec(t, "mood-stacked-bar"), decode(t, moodBody), state, testPalette).Props

	if !reflect.DeepEqual(p.VisibleSeriesKeys, []string{"happy", "stressed"}) {
		t.Errorf("VisibleSeriesKeys = %v", p.VisibleSeriesKeys)
	}
	if len(p.Series) != 3 || p.Series[1].Visible {
		t.Errorf("tired should stay in the legend as hidden: %+v", p.Series)
	}
}

func TestBuildChart_OverrideWins(t *testing.T) {
	state := viewstate.Apply(viewstate.New(), viewstate.SetColor("happy", "#000000"))
	chart := BuildChart(mustSpec(t, "mood-stacked-bar"), decode(t, moodBody), state, testPalette)

	if got := chart.Props.ColorFor("happy"); got != "#000000" {
		t.Errorf("happy color = %s, want override", got)
	}
	for _, a := range chart.Seeds {
		if a.SeriesKey == "happy" {
			t.Error("an overridden series must not be seeded")
		}
	}
}

func TestBuildChart_Doughnut(t *testing.T) {
	state := viewstate.Apply(viewstate.New(), viewstate.Toggle("Ediya"))
	p := BuildChart(mustSpec(t, "coffee-brands-doughnut"), decode(t, brandsBody), state, testPalette).Props

	if len(p.Series) != 3 {
		t.Fatalf("Series = %+v, want all three slices", p.Series)
	}
	if len(p.Data) != 2 {
		t.Errorf("Data len = %d, want visible slices only", len(p.Data))
	}
	if p.Total == nil || *p.Total != 70 {
		t.Errorf("Total = %v, want 70", p.Total)
	}
	if got := p.ColorFor("Mega"); got != "#f093fb" {
		t.Errorf("Mega color = %s, want slice index 2", got)
	}
}

func TestBuildChart_DoughnutNameShare(t *testing.T) {
	body := `{"items":[{"name":"Pringles","share":60},{"name":"Oreo","share":40}]}`
	p := BuildChart(mustSpec(t, "snack-brands-doughnut"), decode(t, body), viewstate.New(), testPalette).Props

	if p.XKey != "name" || p.Total == nil || *p.Total != 100 {
		t.Errorf("props = %+v", p)
	}
}

func TestBuildChart_MultiLine(t *testing.T) {
	p := BuildChart(mustSpec(t, "coffee-multiline"), decode(t, coffeeBody), viewstate.New(), testPalette).Props

	if p.Status != StatusReady {
		t.Fatalf("Status = %s", p.Status)
	}
	if !reflect.DeepEqual(p.Teams, []string{"Frontend", "Backend"}) {
		t.Errorf("Teams = %v", p.Teams)
	}
	if p.XLabel != "Cups of coffee" {
		t.Errorf("XLabel = %q", p.XLabel)
	}
	if len(p.Series) != 4 {
		t.Fatalf("Series = %+v", p.Series)
	}

	want := []Series{
		{Key: "Frontend-bugs", Label: "Frontend - Bug count", Visible: true, Color: "#667eea", Axis: AxisLeft, Team: "Frontend"},
		{Key: "Frontend-productivity", Label: "Frontend - Productivity score", Visible: true, Color: "#667eea", Axis: AxisRight, Team: "Frontend"},
		{Key: "Backend-bugs", Label: "Backend - Bug count", Visible: true, Color: "#764ba2", Axis: AxisLeft, Team: "Backend"},
		{Key: "Backend-productivity", Label: "Backend - Productivity score", Visible: true, Color: "#764ba2", Axis: AxisRight, Team: "Backend"},
	}
	if !reflect.DeepEqual(p.Series, want) {
		t.Errorf("Series =\n%+v\nwant\n%+v", p.Series, want)
	}
	if len(p.Data) != 2 {
		t.Errorf("Data len = %d, want one row per x", len(p.Data))
	}
}

func TestBuildChart_MultiLineDepartments(t *testing.T) {
	p := BuildChart(mustSpec(t, "snack-multiline"), decode(t, snackBody), viewstate.New(), testPalette).Props
	if len(p.Series) != 2 || p.Series[0].Key != "Sales-meetingMissed" || p.Series[1].Key != "Sales-morale" {
		t.Errorf("Series = %+v", p.Series)
	}
}

func TestBuildChart_Empty(t *testing.T) {
	for _, spec := range Catalog {
		t.Run(spec.ID, func(t *testing.T) {
			chart := BuildChart(spec, decode(t, unknownBody), viewstate.New(), testPalette)
			p := chart.Props
			if p.Status != StatusEmpty {
				t.Errorf("Status = %s, want empty", p.Status)
			}
			if p.Data == nil || p.Series == nil || p.VisibleSeriesKeys == nil {
				t.Error("empty props must carry empty, non-nil slices")
			}
			if len(chart.Seeds) != 0 {
				t.Error("empty chart must not seed colors")
			}
		})
	}
}

func TestBuildChart_Deterministic(t *testing.T) {
	spec := mustSpec(t, "coffee-multiline")
	ds := decode(t, coffeeBody)
	a := BuildChart(spec, ds, viewstate.New(), testPalette).Props
	b := BuildChart(spec, ds, viewstate.New(), testPalette).Props
	if !reflect.DeepEqual(a, b) {
		t.Error("BuildChart is not deterministic")
	}
}

func TestBuildChart_SeedsReplayToSameState(t *testing.T) {
	chart := BuildChart(mustSpec(t, "coffee-multiline"), decode(t, coffeeBody), viewstate.New(), testPalette)
	replayed := viewstate.ApplyAll(viewstate.New(), chart.Seeds...)
	if !reflect.DeepEqual(replayed.Colors(), chart.State.Colors()) {
		t.Errorf("replayed colors = %v, want %v", replayed.Colors(), chart.State.Colors())
	}
}

func TestLegend(t *testing.T) {
	state := viewstate.Apply(viewstate.New(), viewstate.Toggle("happy"))
	p := BuildChart(mustSpec(t, "mood-stacked-bar"), decode(t, moodBody), state, testPalette).Props

	entries := Legend(p)
	if len(entries) != 3 {
		t.Fatalf("Legend len = %d", len(entries))
	}
	if entries[0].SeriesKey != "happy" || entries[0].Visible {
		t.Errorf("entries[0] = %+v", entries[0])
	}
	if entries[1].Color != "#764ba2" {
		t.Errorf("entries[1].Color = %s", entries[1].Color)
	}
}

func hover(label analytics.Value, entries ...analytics.HoverEntry) analytics.Hover {
	return analytics.Hover{Active: true, Label: label, Payload: entries}
}

func TestComposeTooltip_Doughnut(t *testing.T) {
	spec := mustSpec(t, "coffee-brands-doughnut")
	ds := decode(t, brandsBody)
	state := viewstate.Apply(viewstate.New(), viewstate.Toggle("Mega"))
	state = viewstate.Apply(state, viewstate.SetColor("Ediya", "#123456"))

	tip, err := ComposeTooltip(spec, ds, state, hover(analytics.String("Ediya"),
		analytics.HoverEntry{DataKey: "popularity", Name: "Ediya", Value: analytics.Number(30)}))
	if err != nil {
		t.Fatalf("ComposeTooltip() error = %v", err)
	}
	if tip == nil {
		t.Fatal("tooltip = nil")
	}
	// Mega is hidden, so the visible total is 75.
	if tip.Percent != "40.0" {
		t.Errorf("Percent = %s, want 40.0", tip.Percent)
	}
	if tip.Color != "#123456" {
		t.Errorf("Color = %s, want override", tip.Color)
	}
}

func TestComposeTooltip_MultiLine(t *testing.T) {
	spec := mustSpec(t, "coffee-multiline")
	ds := decode(t, coffeeBody)

	tip, err := ComposeTooltip(spec, ds, viewstate.New(), hover(analytics.Number(1),
		analytics.HoverEntry{DataKey: "Backend-bugs", Value: analytics.Number(5), Color: "#764ba2"},
		analytics.HoverEntry{DataKey: "Frontend-bugs", Value: analytics.Number(3)},
		analytics.HoverEntry{DataKey: "Backend-productivity", Value: analytics.Number(55)},
	))
	if err != nil {
		t.Fatalf("ComposeTooltip() error = %v", err)
	}
	if tip == nil || tip.Team != "Backend" {
		t.Fatalf("tooltip = %+v", tip)
	}
	if tip.XLabel != "Cups of coffee" {
		t.Errorf("XLabel = %q", tip.XLabel)
	}
	if tip.Left == nil || tip.Left.Label != "Bug count" || tip.Left.Value != 5 {
		t.Errorf("Left = %+v", tip.Left)
	}
	if tip.Right == nil || tip.Right.Value != 55 {
		t.Errorf("Right = %+v", tip.Right)
	}
}

func TestComposeTooltip_Inactive(t *testing.T) {
	tip, err := ComposeTooltip(mustSpec(t, "coffee-multiline"), decode(t, coffeeBody), viewstate.New(), analytics.Hover{})
	if err != nil || tip != nil {
		t.Errorf("ComposeTooltip() = %+v, %v, want nil, nil", tip, err)
	}
}

func TestComposeTooltip_BarHasNone(t *testing.T) {
	_, err := ComposeTooltip(mustSpec(t, "coffee-brands-bar"), decode(t, brandsBody), viewstate.New(), analytics.Hover{Active: true})
	if !errors.Is(err, ErrNoTooltip) {
		t.Errorf("err = %v, want ErrNoTooltip", err)
	}
}

func TestLookup(t *testing.T) {
	if _, err := Lookup("nope"); !errors.Is(err, ErrUnknownChart) {
		t.Errorf("err = %v, want ErrUnknownChart", err)
	}
	seen := map[string]bool{}
	for _, spec := range Catalog {
		if seen[spec.ID] {
			t.Errorf("duplicate chart id %s", spec.ID)
		}
		seen[spec.ID] = true
		if !spec.Dataset.Valid() {
			t.Errorf("%s: invalid dataset %s", spec.ID, spec.Dataset)
		}
	}
}

func TestChartSpec_Palette(t *testing.T) {
	if got := (ChartSpec{PaletteSize: 3}).Palette(testPalette); len(got) != 3 {
		t.Errorf("len = %d, want 3", len(got))
	}
	if got := (ChartSpec{}).Palette(testPalette); len(got) != 6 {
		t.Errorf("len = %d, want full palette", len(got))
	}
	if got := (ChartSpec{PaletteSize: 10}).Palette(testPalette[:2]); len(got) != 2 {
		t.Errorf("len = %d, want 2", len(got))
	}
}
