// Pulseboard - Team Analytics Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pulseboard

package analytics

// SeriesKeys returns the field names of the first record minus excludeKey, in
// insertion order. Records are assumed homogeneous, so only the first is read.
// Empty input yields an empty, non-nil slice.
func SeriesKeys(records []Record, excludeKey string) []string {
	keys := make([]string, 0)
	if len(records) == 0 {
		return keys
	}
	for _, k := range records[0].keys {
		if k != excludeKey {
			keys = append(keys, k)
		}
	}
	return keys
}

// KeyPosition returns the index of key in the first record's field order, or
// -1. Chart colors are seeded from this position, so an excluded axis key
// still occupies its slot.
func KeyPosition(records []Record, key string) int {
	if len(records) == 0 {
		return -1
	}
	for i, k := range records[0].keys {
		if k == key {
			return i
		}
	}
	return -1
}
