// Pulseboard - Team Analytics Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pulseboard

package analytics

import (
	"sort"
	"strings"

	"github.com/samber/lo"
)

// CompositeKey joins a team and a metric into a dual-axis series identity.
func CompositeKey(team, metric string) string {
	return team + "-" + metric
}

// TeamOf returns the team part of a composite key: everything before the first "-".
// A key without "-" is returned unchanged.
func TeamOf(compositeKey string) string {
	team, _, _ := strings.Cut(compositeKey, "-")
	return team
}

// Duplicate reports a team/x pair that appeared in more than one record.
type Duplicate struct {
	Team  string  `json:"team"`
	X     float64 `json:"x"`
	Count int     `json:"count"`
}

// Pivot is the full result of pivoting per-team records.
type Pivot struct {
	Rows    []Record  `json:"rows"`
	Teams   []string  `json:"teams"`
	XValues []float64 `json:"xValues"`
	// Duplicates lists team/x pairs with more than one source record. The
	// first record wins for those pairs.
	Duplicates []Duplicate `json:"duplicates,omitempty"`
	// Skipped counts records without a team label or a numeric x value.
	Skipped int `json:"skipped"`
}

// BuildPivot reshapes per-team records into one row per distinct x value.
// Each row holds xKey plus, for every team with a record at that x, the
// columns "<team>-<leftKey>" and "<team>-<rightKey>". Rows are ordered by
// ascending x; teams keep first-seen order.
func BuildPivot(records []Record, xKey, leftKey, rightKey string) []Record {
	return PivotRecords(records, xKey, leftKey, rightKey).Rows
}

type pivotPoint struct {
	team string
	x    float64
	rec  Record
}

// PivotRecords is BuildPivot with diagnostics.
func PivotRecords(records []Record, xKey, leftKey, rightKey string) Pivot {
	points := make([]pivotPoint, 0, len(records))
	skipped := 0
	for _, r := range records {
		team := r.Text(GroupLabelKey)
		x, ok := r.Float(xKey)
		if team == "" || !ok {
			skipped++
			continue
		}
		points = append(points, pivotPoint{team: team, x: x, rec: r})
	}

	teams := lo.Uniq(lo.Map(points, func(p pivotPoint, _ int) string { return p.team }))
	xs := lo.Uniq(lo.Map(points, func(p pivotPoint, _ int) float64 { return p.x }))
	sort.Float64s(xs)

	type cell struct {
		team string
		x    float64
	}
	lookup := make(map[cell]Record, len(points))
	seen := make(map[cell]int, len(points))
	for _, p := range points {
		c := cell{p.team, p.x}
		if seen[c] == 0 {
			lookup[c] = p.rec
		}
		seen[c]++
	}

	var duplicates []Duplicate
	for _, team := range teams {
		for _, x := range xs {
			if n := seen[cell{team, x}]; n > 1 {
				duplicates = append(duplicates, Duplicate{Team: team, X: x, Count: n})
			}
		}
	}

	rows := make([]Record, 0, len(xs))
	for _, x := range xs {
		var row Record
		row.Set(xKey, Number(x))
		for _, team := range teams {
			rec, ok := lookup[cell{team, x}]
			if !ok {
				continue
			}
			if v, ok := rec.Float(leftKey); ok {
				row.Set(CompositeKey(team, leftKey), Number(v))
			}
			if v, ok := rec.Float(rightKey); ok {
				row.Set(CompositeKey(team, rightKey), Number(v))
			}
		}
		rows = append(rows, row)
	}

	if teams == nil {
		teams = []string{}
	}
	if xs == nil {
		xs = []float64{}
	}

	return Pivot{Rows: rows, Teams: teams, XValues: xs, Duplicates: duplicates, Skipped: skipped}
}
