// Pulseboard - Team Analytics Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pulseboard

package upstream

import (
	"context"
	"fmt"
	"net/http"
)

// DatasetID names one of the analytics read endpoints.
type DatasetID string

const (
	TopCoffeeBrands    DatasetID = "top-coffee-brands"
	PopularSnackBrands DatasetID = "popular-snack-brands"
	WeeklyMoodTrend    DatasetID = "weekly-mood-trend"
	WeeklyWorkoutTrend DatasetID = "weekly-workout-trend"
	CoffeeConsumption  DatasetID = "coffee-consumption"
	SnackImpact        DatasetID = "snack-impact"
)

// Datasets lists every dataset in dashboard order.
var Datasets = []DatasetID{
	TopCoffeeBrands,
	PopularSnackBrands,
	WeeklyMoodTrend,
	WeeklyWorkoutTrend,
	CoffeeConsumption,
	SnackImpact,
}

// Valid reports whether id is a known dataset.
func (id DatasetID) Valid() bool {
	for _, d := range Datasets {
		if d == id {
			return true
		}
	}
	return false
}

// Path returns the upstream path of the dataset.
func (id DatasetID) Path() string {
	return "/mock/" + string(id)
}

// FetchDataset returns the raw JSON envelope of a dataset.
func (c *Client) FetchDataset(ctx context.Context, id DatasetID) ([]byte, error) {
	if !id.Valid() {
		return nil, fmt.Errorf("unknown dataset %q: %w", id, ErrNotFound)
	}
	return c.do(ctx, request{
		method:   http.MethodGet,
		path:     id.Path(),
		endpoint: string(id),
	})
}
