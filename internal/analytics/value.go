// Pulseboard - Team Analytics Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pulseboard

package analytics

import (
	"bytes"
	"math"
	"strconv"

	"github.com/goccy/go-json"
)

// Kind discriminates the two value types a flat record may hold.
type Kind uint8

const (
	// KindNone is the zero Value: the field is absent.
	KindNone Kind = iota
	KindString
	KindNumber
)

// Value is a record field: either a string or a number.
type Value struct {
	kind Kind
	str  string
	num  float64
}

// String returns a string Value.
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// Number returns a numeric Value. NaN and infinities are not representable in
// JSON and become the zero Value.
func Number(f float64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Value{}
	}
	return Value{kind: KindNumber, num: f}
}

// Kind reports the value's discriminant.
func (v Value) Kind() Kind { return v.kind }

// IsZero reports whether the value is absent.
func (v Value) IsZero() bool { return v.kind == KindNone }

// Float returns the numeric value. Strings that parse as numbers are accepted,
// since some endpoints send counts as text.
func (v Value) Float() (float64, bool) {
	switch v.kind {
	case KindNumber:
		return v.num, true
	case KindString:
		f, err := strconv.ParseFloat(v.str, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// Text renders the value as a label.
func (v Value) Text() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	default:
		return ""
	}
}

// MarshalJSON encodes strings as JSON strings and numbers as JSON numbers.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString:
		return json.Marshal(v.str)
	case KindNumber:
		return []byte(strconv.FormatFloat(v.num, 'f', -1, 64)), nil
	default:
		return []byte("null"), nil
	}
}

// Record is one flat data point: an ordered mapping from field name to Value.
// Field order is the order fields were first set, which for decoded records is
// the order they appeared in the payload.
type Record struct {
	keys   []string
	values map[string]Value
}

// Set assigns a field, appending it to the key order if new. Setting the zero
// Value removes nothing and is ignored.
func (r *Record) Set(key string, v Value) {
	if v.IsZero() {
		return
	}
	if r.values == nil {
		r.values = make(map[string]Value)
	}
	if _, exists := r.values[key]; !exists {
		r.keys = append(r.keys, key)
	}
	r.values[key] = v
}

// Get returns the field value and whether it is present.
func (r Record) Get(key string) (Value, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Float returns the numeric value of a field.
func (r Record) Float(key string) (float64, bool) {
	v, ok := r.values[key]
	if !ok {
		return 0, false
	}
	return v.Float()
}

// Text returns the label form of a field, or "" when absent.
func (r Record) Text(key string) string {
	return r.values[key].Text()
}

// Has reports whether the field is present.
func (r Record) Has(key string) bool {
	_, ok := r.values[key]
	return ok
}

// Keys returns the field names in insertion order.
func (r Record) Keys() []string {
	return append([]string(nil), r.keys...)
}

// Len returns the number of fields.
func (r Record) Len() int { return len(r.keys) }

// MarshalJSON writes the record as a JSON object preserving field order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := r.values[k].MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
