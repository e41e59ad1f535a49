// Pulseboard - Team Analytics Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pulseboard

package viewstate

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/pulseboard/internal/metrics"
)

func TestStore_MountIsolatesInstances(t *testing.T) {
	store := NewStore(10, time.Minute)

	a := store.Mount("mood-stacked-bar")
	b := store.Mount("mood-stacked-bar")
	if a.ID == b.ID {
		t.Fatal("two mounts must produce distinct IDs")
	}

	if _, err := store.Dispatch(a.ID, Toggle("happy")); err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}

	gotA, _ := store.Get(a.ID)
	gotB, _ := store.Get(b.ID)
	if gotA.State.IsVisible("happy") {
		t.Error("instance a should hide happy")
	}
	if !gotB.State.IsVisible("happy") {
		t.Error("instance b must not share instance a's state")
	}
}

func TestStore_GetRefreshesTouchedAt(t *testing.T) {
	store := NewStore(10, time.Minute)
	clock := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return clock }

	inst := store.Mount("coffee-brands-bar")
	clock = clock.Add(5 * time.Second)

	got, err := store.Get(inst.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !got.TouchedAt.Equal(clock) {
		t.Errorf("TouchedAt = %v, want %v", got.TouchedAt, clock)
	}
	if !got.CreatedAt.Equal(inst.CreatedAt) {
		t.Errorf("CreatedAt changed to %v", got.CreatedAt)
	}
}

func TestStore_DispatchAppliesInOrder(t *testing.T) {
	store := NewStore(10, time.Minute)
	inst := store.Mount("coffee-brands-doughnut")

	got, err := store.Dispatch(inst.ID,
		SeedColor("Starbucks", 0, []string{"#667eea"}),
		SetColor("Starbucks", "#000000"),
	)
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if c, _ := got.State.Color("Starbucks"); c != "#000000" {
		t.Errorf("Color = %q, want #000000", c)
	}
	if got.ChartID != "coffee-brands-doughnut" {
		t.Errorf("ChartID = %q", got.ChartID)
	}
}

func TestStore_Unmount(t *testing.T) {
	store := NewStore(10, time.Minute)
	inst := store.Mount("coffee-multiline")

	if err := store.Unmount(inst.ID); err != nil {
		t.Fatalf("Unmount() error = %v", err)
	}
	if _, err := store.Get(inst.ID); !errors.Is(err, ErrInstanceNotFound) {
		t.Errorf("Get after unmount err = %v, want ErrInstanceNotFound", err)
	}
	if err := store.Unmount(inst.ID); !errors.Is(err, ErrInstanceNotFound) {
		t.Errorf("second Unmount err = %v, want ErrInstanceNotFound", err)
	}
	if _, err := store.Dispatch(inst.ID, Toggle("x")); !errors.Is(err, ErrInstanceNotFound) {
		t.Errorf("Dispatch after unmount err = %v, want ErrInstanceNotFound", err)
	}
}

func TestStore_CapacityEvictsLeastRecentlyUsed(t *testing.T) {
	store := NewStore(2, time.Minute)

	first := store.Mount("a")
	second := store.Mount("b")
	_, _ = store.Get(first.ID)
	store.Mount("c")

	if store.Len() != 2 {
		t.Errorf("Len() = %d, want 2", store.Len())
	}
	if _, err := store.Get(second.ID); !errors.Is(err, ErrInstanceNotFound) {
		t.Error("least recently used instance should be evicted")
	}
	if _, err := store.Get(first.ID); err != nil {
		t.Errorf("recently used instance evicted: %v", err)
	}
}

func TestStore_MetricsTrackLifecycle(t *testing.T) {
	store := NewStore(10, time.Minute)
	before := testutil.ToFloat64(metrics.ChartInstancesActive)
	toggles := testutil.ToFloat64(metrics.ChartInstanceEvents.WithLabelValues("toggle"))

	inst := store.Mount("mood-stacked-area")
	if _, err := store.Dispatch(inst.ID, Toggle("happy"), SeedColor("tired", 1, []string{"#fff"})); err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if got := testutil.ToFloat64(metrics.ChartInstancesActive); got != before+1 {
		t.Errorf("active after mount = %v, want %v", got, before+1)
	}
	if got := testutil.ToFloat64(metrics.ChartInstanceEvents.WithLabelValues("toggle")); got != toggles+1 {
		t.Errorf("toggle events = %v, want %v", got, toggles+1)
	}

	_ = store.Unmount(inst.ID)
	if got := testutil.ToFloat64(metrics.ChartInstancesActive); got != before {
		t.Errorf("active after unmount = %v, want %v", got, before)
	}
}

func TestStore_ConcurrentDispatch(t *testing.T) {
	store := NewStore(10, time.Minute)
	inst := store.Mount("workout-stacked-bar")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = store.Dispatch(inst.ID, Toggle("running"))
		}()
	}
	wg.Wait()

	got, err := store.Get(inst.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	// An even number of toggles leaves the series visible.
	if !got.State.IsVisible("running") {
		t.Error("running should be visible after 50 toggles")
	}
}
