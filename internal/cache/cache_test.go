// Pulseboard - Team Analytics Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pulseboard

package cache

import (
	"strings"
	"testing"
	"time"
)

// fakeClock is a manually advanced clock for expiry tests.
type fakeClock struct{ t time.Time }

func (f *fakeClock) Now() time.Time         { return f.t }
func (f *fakeClock) Advance(d time.Duration) { f.t = f.t.Add(d) }

func TestCacheBasicOperations(t *testing.T) {
	c := New[string](time.Minute)

	c.Set("key1", "value1")
	value, exists := c.Get("key1")
	if !exists {
		t.Error("Expected key1 to exist")
	}
	if value != "value1" {
		t.Errorf("Expected value1, got %v", value)
	}

	if _, exists = c.Get("key2"); exists {
		t.Error("Expected key2 to not exist")
	}

	stats := c.GetStats()
	if stats.Hits != 1 || stats.Misses != 1 {
		t.Errorf("Expected 1 hit / 1 miss, got %d / %d", stats.Hits, stats.Misses)
	}
	if rate := c.HitRate(); rate != 50 {
		t.Errorf("Expected 50%% hit rate, got %v", rate)
	}
}

func TestCacheExpiration(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	c := New[int](time.Minute)
	c.now = clock.Now

	c.Set("short", 1)
	c.SetWithTTL("long", 2, time.Hour)

	clock.Advance(2 * time.Minute)

	if _, ok := c.Get("short"); ok {
		t.Error("Expected short to be expired")
	}
	if v, ok := c.Get("long"); !ok || v != 2 {
		t.Errorf("Expected long=2, got %v, %v", v, ok)
	}
}

func TestCacheCleanup(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	c := New[int](time.Minute)
	c.now = clock.Now

	c.Set("a", 1)
	c.Set("b", 2)
	c.SetWithTTL("c", 3, time.Hour)

	clock.Advance(5 * time.Minute)

	if removed := c.Cleanup(); removed != 2 {
		t.Errorf("Cleanup() removed %d, want 2", removed)
	}
	if stats := c.GetStats(); stats.TotalKeys != 1 {
		t.Errorf("TotalKeys = %d, want 1", stats.TotalKeys)
	}
}

func TestCacheDeleteAndClear(t *testing.T) {
	c := New[string](time.Minute)

	c.Set("key1", "value1")
	c.Set("key2", "value2")
	c.Delete("key1")

	if _, ok := c.Get("key1"); ok {
		t.Error("Expected key1 to be deleted")
	}

	c.Clear()
	if _, ok := c.Get("key2"); ok {
		t.Error("Expected key2 to be cleared")
	}
}

func TestGenerateKey(t *testing.T) {
	k1 := GenerateKey("dataset:weekly-mood-trend", "token-a")
	k2 := GenerateKey("dataset:weekly-mood-trend", "token-a")
	k3 := GenerateKey("dataset:weekly-mood-trend", "token-b")

	if k1 != k2 {
		t.Error("Expected identical params to produce identical keys")
	}
	if k1 == k3 {
		t.Error("Expected different params to produce different keys")
	}
	if !strings.HasPrefix(k1, "dataset:weekly-mood-trend:") {
		t.Errorf("Expected namespace prefix, got %q", k1)
	}
	if strings.Contains(k1, "token-a") {
		t.Error("Expected params to be hashed, not embedded")
	}
}
