// Pulseboard - Team Analytics Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pulseboard

// Package analytics turns loosely shaped analytics payloads into chart-ready
// data: flat records, series keys, pivoted rows for dual-axis charts and
// synthesized tooltips.
//
// Every function in this package is pure and total. Unrecognized shapes,
// malformed records and missing fields degrade to empty or partial output;
// nothing here returns an error for bad data or panics.
package analytics

import (
	"fmt"
	"math"
	"sort"

	"github.com/goccy/go-json"
)

// GroupLabelKey is the field every flattened grouped record carries its group label under.
const GroupLabelKey = "team"

// Source records which resolution rule produced a dataset.
type Source string

const (
	SourceArray        Source = "array"
	SourceData         Source = "data"
	SourceItems        Source = "items"
	SourceGroup        Source = "group"
	SourceUnrecognized Source = "unrecognized"
)

// Shape is the discriminant assigned to a dataset once, at normalization time.
// Consumers read it instead of probing record fields.
type Shape string

const (
	ShapeUnknown           Shape = "unknown"
	ShapeBrandPopularity   Shape = "brand-popularity"
	ShapeNameShare         Shape = "name-share"
	ShapeWeeklyTrend       Shape = "weekly-trend"
	ShapeTeamSeries        Shape = "team-series"
	ShapeDepartmentMetrics Shape = "department-metrics"
)

// CategoryKey is the field that labels a record on the category/x axis.
func (s Shape) CategoryKey() string {
	switch s {
	case ShapeBrandPopularity:
		return "brand"
	case ShapeNameShare:
		return "name"
	case ShapeWeeklyTrend:
		return "week"
	case ShapeTeamSeries:
		return "coffee"
	case ShapeDepartmentMetrics:
		return "snacks"
	default:
		return ""
	}
}

// ValueKey is the field holding a proportion dataset's slice value.
func (s Shape) ValueKey() string {
	switch s {
	case ShapeBrandPopularity:
		return "popularity"
	case ShapeNameShare:
		return "share"
	default:
		return ""
	}
}

// GroupSpec describes a domain-grouped envelope that is flattened into one
// record per child entry.
type GroupSpec struct {
	// Field is the top-level envelope field holding the group array.
	Field string
	// LabelField is the group object's label, copied to GroupLabelKey on every child.
	LabelField string
	// ChildField is the group object's array of child entries.
	ChildField string
	// Rename maps child field names to output field names. Unlisted fields keep their name.
	Rename map[string]string
	// Shape is assigned to datasets flattened through this spec.
	Shape Shape
}

var (
	// TeamSeriesGroup flattens {teams:[{team, series:[{cups,bugs,productivity}]}]}.
	TeamSeriesGroup = GroupSpec{
		Field:      "teams",
		LabelField: "team",
		ChildField: "series",
		Rename:     map[string]string{"cups": "coffee"},
		Shape:      ShapeTeamSeries,
	}

	// DepartmentMetricsGroup flattens {departments:[{name, metrics:[{snacks,meetingsMissed,morale}]}]}.
	DepartmentMetricsGroup = GroupSpec{
		Field:      "departments",
		LabelField: "name",
		ChildField: "metrics",
		Rename:     map[string]string{"meetingsMissed": "meetingMissed"},
		Shape:      ShapeDepartmentMetrics,
	}

	// KnownGroups are tried in order after the generic array/data/items rules.
	KnownGroups = []GroupSpec{TeamSeriesGroup, DepartmentMetricsGroup}
)

// Dataset is the result of normalizing one envelope.
type Dataset struct {
	Records []Record `json:"records"`
	Shape   Shape    `json:"shape"`
	Source  Source   `json:"source"`
}

// Empty reports whether the dataset has nothing to render.
func (d Dataset) Empty() bool { return len(d.Records) == 0 }

// Normalize resolves an envelope to a flat record list. It never returns nil.
//
// The envelope may come from DecodeEnvelope or from a plain json.Unmarshal
// into any. Plain maps carry no key order, so their fields are visited in
// sorted key order.
func Normalize(envelope any) []Record {
	return Resolve(envelope).Records
}

// Decode parses a raw payload and resolves it. A parse failure returns an
// empty dataset together with the error so the caller can report it.
func Decode(data []byte) (Dataset, error) {
	envelope, err := DecodeEnvelope(data)
	if err != nil {
		return emptyDataset(), fmt.Errorf("decode envelope: %w", err)
	}
	return Resolve(envelope), nil
}

// Resolve applies the resolution rules using KnownGroups.
func Resolve(envelope any) Dataset {
	return ResolveWith(envelope, KnownGroups)
}

// ResolveWith applies the resolution rules, first match wins:
//  1. the envelope is an array
//  2. the envelope has a "data" array
//  3. the envelope has an "items" array
//  4. the envelope has one of the groups' Field arrays, flattened
//
// Anything else resolves to an empty, unrecognized dataset.
func ResolveWith(envelope any, groups []GroupSpec) Dataset {
	if arr, ok := envelope.([]any); ok {
		return classify(recordsFrom(arr), SourceArray)
	}

	obj, ok := asObject(envelope)
	if !ok {
		return emptyDataset()
	}

	if arr, ok := arrayField(obj, "data"); ok {
		return classify(recordsFrom(arr), SourceData)
	}
	if arr, ok := arrayField(obj, "items"); ok {
		return classify(recordsFrom(arr), SourceItems)
	}

	for _, g := range groups {
		if arr, ok := arrayField(obj, g.Field); ok {
			return Dataset{Records: flatten(arr, g), Shape: g.Shape, Source: SourceGroup}
		}
	}

	return emptyDataset()
}

func emptyDataset() Dataset {
	return Dataset{Records: []Record{}, Shape: ShapeUnknown, Source: SourceUnrecognized}
}

// asObject accepts both ordered objects and plain decoded maps.
func asObject(v any) (*Object, bool) {
	switch t := v.(type) {
	case *Object:
		return t, t != nil
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return &Object{Keys: keys, Fields: t}, true
	default:
		return nil, false
	}
}

func arrayField(obj *Object, field string) ([]any, bool) {
	v, ok := obj.Get(field)
	if !ok {
		return nil, false
	}
	arr, ok := v.([]any)
	return arr, ok
}

// classify assigns the shape discriminant from the first record.
func classify(records []Record, source Source) Dataset {
	shape := ShapeUnknown
	if len(records) > 0 {
		first := records[0]
		switch {
		case first.Has("brand"):
			shape = ShapeBrandPopularity
		case first.Has("name") && first.Has("share"):
			shape = ShapeNameShare
		case first.Has("week"):
			shape = ShapeWeeklyTrend
		}
	}
	return Dataset{Records: records, Shape: shape, Source: source}
}

// recordsFrom converts array elements to records, skipping non-objects.
func recordsFrom(arr []any) []Record {
	records := make([]Record, 0, len(arr))
	for _, item := range arr {
		obj, ok := asObject(item)
		if !ok {
			continue
		}
		records = append(records, recordFrom(obj, nil))
	}
	return records
}

// recordFrom copies the scalar fields of obj, renaming as requested.
// Nested values, booleans and nulls are not record values and are dropped.
func recordFrom(obj *Object, rename map[string]string) Record {
	var rec Record
	for _, key := range obj.Keys {
		v, ok := scalar(obj.Fields[key])
		if !ok {
			continue
		}
		if to, ok := rename[key]; ok {
			key = to
		}
		rec.Set(key, v)
	}
	return rec
}

func scalar(v any) (Value, bool) {
	switch t := v.(type) {
	case string:
		return String(t), true
	case float64:
		return finite(t)
	case float32:
		return finite(float64(t))
	case int:
		return Number(float64(t)), true
	case int32:
		return Number(float64(t)), true
	case int64:
		return Number(float64(t)), true
	case uint:
		return Number(float64(t)), true
	case uint32:
		return Number(float64(t)), true
	case uint64:
		return Number(float64(t)), true
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return Value{}, false
		}
		return finite(f)
	default:
		return Value{}, false
	}
}

func finite(f float64) (Value, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Value{}, false
	}
	return Number(f), true
}

// flatten emits one record per child entry, labelled with its group.
func flatten(groups []any, spec GroupSpec) []Record {
	records := make([]Record, 0)
	for _, g := range groups {
		group, ok := asObject(g)
		if !ok {
			continue
		}

		label, hasLabel := scalar(group.Fields[spec.LabelField])
		children, ok := arrayField(group, spec.ChildField)
		if !ok {
			continue
		}

		for _, c := range children {
			child, ok := asObject(c)
			if !ok {
				continue
			}
			var rec Record
			if hasLabel {
				rec.Set(GroupLabelKey, String(label.Text()))
			}
			for _, key := range child.Keys {
				v, ok := scalar(child.Fields[key])
				if !ok {
					continue
				}
				if to, ok := spec.Rename[key]; ok {
					key = to
				}
				if key == GroupLabelKey {
					continue
				}
				rec.Set(key, v)
			}
			records = append(records, rec)
		}
	}
	return records
}
