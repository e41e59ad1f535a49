// Pulseboard - Team Analytics Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pulseboard

package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/dashboard", "200"))

	RecordAPIRequest("GET", "/api/v1/dashboard", "200", 25*time.Millisecond)

	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/dashboard", "200"))
	if after != before+1 {
		t.Errorf("api_requests_total = %v, want %v", after, before+1)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)

	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+1 {
		t.Errorf("after inc: %v, want %v", got, before+1)
	}

	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("after dec: %v, want %v", got, before)
	}
}

func TestRecordUpstreamRequest(t *testing.T) {
	before := testutil.ToFloat64(UpstreamRequestErrors.WithLabelValues("/mock/snack-impact", "status"))

	RecordUpstreamRequest("/mock/snack-impact", time.Millisecond, "")
	RecordUpstreamRequest("/mock/snack-impact", time.Millisecond, "status")

	after := testutil.ToFloat64(UpstreamRequestErrors.WithLabelValues("/mock/snack-impact", "status"))
	if after != before+1 {
		t.Errorf("upstream_request_errors_total = %v, want %v", after, before+1)
	}
}

func TestRecordDataset(t *testing.T) {
	tests := []struct {
		name        string
		records     int
		fetchFailed bool
		cause       string
	}{
		{"populated", 5, false, ""},
		{"shape mismatch", 0, false, "shape"},
		{"fetch failure", 0, true, "fetch"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dataset := "test-" + tt.name
			RecordDataset(dataset, tt.records, tt.fetchFailed)

			if got := testutil.ToFloat64(DatasetRecords.WithLabelValues(dataset)); got != float64(tt.records) {
				t.Errorf("dataset_records = %v, want %d", got, tt.records)
			}
			for _, cause := range []string{"shape", "fetch"} {
				want := 0.0
				if cause == tt.cause {
					want = 1
				}
				if got := testutil.ToFloat64(DatasetEmpty.WithLabelValues(dataset, cause)); got != want {
					t.Errorf("dataset_empty_total{cause=%s} = %v, want %v", cause, got, want)
				}
			}
		})
	}
}

func TestRecordChartEvent(t *testing.T) {
	before := testutil.ToFloat64(ChartInstancesActive)

	RecordChartEvent("mount")
	RecordChartEvent("mount")
	RecordChartEvent("toggle")
	RecordChartEvent("unmount")

	if got := testutil.ToFloat64(ChartInstancesActive); got != before+1 {
		t.Errorf("chart_instances_active = %v, want %v", got, before+1)
	}
}

func TestRecordCacheLookup(t *testing.T) {
	hits := testutil.ToFloat64(CacheHits.WithLabelValues("dataset"))
	misses := testutil.ToFloat64(CacheMisses.WithLabelValues("dataset"))

	RecordCacheLookup("dataset", true)
	RecordCacheLookup("dataset", false)
	RecordCacheLookup("dataset", false)

	if got := testutil.ToFloat64(CacheHits.WithLabelValues("dataset")); got != hits+1 {
		t.Errorf("cache_hits_total = %v, want %v", got, hits+1)
	}
	if got := testutil.ToFloat64(CacheMisses.WithLabelValues("dataset")); got != misses+2 {
		t.Errorf("cache_misses_total = %v, want %v", got, misses+2)
	}
}
