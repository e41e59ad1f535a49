// Pulseboard - Team Analytics Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pulseboard

package analytics

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-json"
)

// Object is a decoded JSON object that remembers key order.
type Object struct {
	Keys   []string
	Fields map[string]any
}

// Get returns a field of the object.
func (o *Object) Get(key string) (any, bool) {
	if o == nil {
		return nil, false
	}
	v, ok := o.Fields[key]
	return v, ok
}

// NewObject builds an Object from alternating key/value arguments.
func NewObject(kv ...any) *Object {
	o := &Object{Fields: make(map[string]any, len(kv)/2)}
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			continue
		}
		if _, exists := o.Fields[key]; !exists {
			o.Keys = append(o.Keys, key)
		}
		o.Fields[key] = kv[i+1]
	}
	return o
}

// DecodeEnvelope parses a raw payload into a tree of *Object, []any, string,
// float64, bool and nil. Objects keep their key order so that series order
// follows the payload.
func DecodeEnvelope(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("unexpected data after top-level value")
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", t)
		}
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			// Out-of-range numbers are treated as missing values.
			return nil, nil
		}
		return f, nil
	case string, bool, nil:
		return t, nil
	case float64:
		return t, nil
	default:
		return nil, fmt.Errorf("unexpected token %v", tok)
	}
}

func decodeObject(dec *json.Decoder) (*Object, error) {
	obj := &Object{Fields: make(map[string]any)}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("object key is %T, not string", tok)
		}
		val, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		if _, exists := obj.Fields[key]; !exists {
			obj.Keys = append(obj.Keys, key)
		}
		obj.Fields[key] = val
	}
	if _, err := dec.Token(); err != nil { // closing '}'
		return nil, err
	}
	return obj, nil
}

func decodeArray(dec *json.Decoder) ([]any, error) {
	arr := make([]any, 0)
	for dec.More() {
		val, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		arr = append(arr, val)
	}
	if _, err := dec.Token(); err != nil { // closing ']'
		return nil, err
	}
	return arr, nil
}
