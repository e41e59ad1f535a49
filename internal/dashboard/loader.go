// Pulseboard - Team Analytics Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pulseboard

package dashboard

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/pulseboard/internal/analytics"
	"github.com/tomtom215/pulseboard/internal/cache"
	"github.com/tomtom215/pulseboard/internal/logging"
	"github.com/tomtom215/pulseboard/internal/metrics"
	"github.com/tomtom215/pulseboard/internal/upstream"
)

// maxConcurrentFetches bounds the number of in-flight upstream dataset calls
// per page load.
const maxConcurrentFetches = 4

// Fetcher returns the raw body of one dataset.
type Fetcher interface {
	FetchDataset(ctx context.Context, id upstream.DatasetID) ([]byte, error)
}

// Result is the outcome of loading one dataset. Err is set when the fetch or
// decode failed; Dataset is then empty.
type Result struct {
	Dataset analytics.Dataset
	Err     error
}

// Loader fetches and normalizes datasets, caching the normalized form per
// dataset and bearer token.
type Loader struct {
	fetcher Fetcher
	cache   *cache.Cache[analytics.Dataset]
}

// NewLoader creates a loader. A ttl of zero disables caching.
func NewLoader(f Fetcher, ttl time.Duration) *Loader {
	l := &Loader{fetcher: f}
	if ttl > 0 {
		l.cache = cache.New[analytics.Dataset](ttl)
	}
	return l
}

func cacheKey(ctx context.Context, id upstream.DatasetID) string {
	return cache.GenerateKey("dataset", map[string]string{
		"id":    string(id),
		"token": upstream.TokenFromContext(ctx),
	})
}

// Dataset returns the normalized dataset id. An unrecognized envelope is not
// an error: it yields an empty dataset.
func (l *Loader) Dataset(ctx context.Context, id upstream.DatasetID) (analytics.Dataset, error) {
	var key string
	if l.cache != nil {
		key = cacheKey(ctx, id)
		if ds, ok := l.cache.Get(key); ok {
			metrics.RecordCacheLookup("dataset", true)
			return ds, nil
		}
		metrics.RecordCacheLookup("dataset", false)
	}

	body, err := l.fetcher.FetchDataset(ctx, id)
	if err != nil {
		metrics.RecordDataset(string(id), 0, true)
		logging.Ctx(ctx).Warn().Err(err).Str("dataset", string(id)).Msg("Dataset fetch failed")
		return analytics.Dataset{}, err
	}

	ds, err := analytics.Decode(body)
	if err != nil {
		metrics.RecordDataset(string(id), 0, true)
		logging.Ctx(ctx).Warn().Err(err).Str("dataset", string(id)).Msg("Dataset body is not JSON")
		return analytics.Dataset{}, err
	}

	metrics.RecordDataset(string(id), len(ds.Records), false)
	if ds.Empty() {
		logging.Ctx(ctx).Debug().Str("dataset", string(id)).Msg("Dataset envelope not recognized, treating as empty")
	}

	if l.cache != nil {
		l.cache.Set(key, ds)
	}
	return ds, nil
}

// LoadAll loads every dataset concurrently. A failing dataset never cancels
// the others; its Result carries the error.
func (l *Loader) LoadAll(ctx context.Context, ids []upstream.DatasetID) map[upstream.DatasetID]Result {
	var (
		mu  sync.Mutex
		out = make(map[upstream.DatasetID]Result, len(ids))
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFetches)
	for _, id := range ids {
		g.Go(func() error {
			ds, err := l.Dataset(gctx, id)
			mu.Lock()
			out[id] = Result{Dataset: ds, Err: err}
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return out
}

// Purge drops expired cache entries and returns how many were removed.
func (l *Loader) Purge() int {
	if l.cache == nil {
		return 0
	}
	return l.cache.Cleanup()
}

// unauthorized reports whether any result failed with an authorization error.
func unauthorized(results map[upstream.DatasetID]Result) error {
	for _, r := range results {
		if errors.Is(r.Err, upstream.ErrUnauthorized) {
			return r.Err
		}
	}
	return nil
}
