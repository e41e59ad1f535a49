// Pulseboard - Team Analytics Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pulseboard

package viewstate

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/pulseboard/internal/cache"
	"github.com/tomtom215/pulseboard/internal/logging"
	"github.com/tomtom215/pulseboard/internal/metrics"
)

// ErrInstanceNotFound is returned for unknown, unmounted or expired instance IDs.
var ErrInstanceNotFound = errors.New("chart instance not found")

// Instance is one mounted chart and its view-state.
type Instance struct {
	ID        string    `json:"instanceId"`
	ChartID   string    `json:"chartId"`
	State     State     `json:"state"`
	CreatedAt time.Time `json:"createdAt"`
	TouchedAt time.Time `json:"touchedAt"`
}

// Store owns every mounted chart instance. Instances are never shared: each
// Mount creates a fresh State under a new ID. Idle instances expire after the
// configured TTL and the least recently used ones are evicted at capacity.
type Store struct {
	instances *cache.LRU[Instance]
	now       func() time.Time
}

// NewStore creates a store holding at most capacity instances, each expiring
// after ttl without use.
func NewStore(capacity int, ttl time.Duration) *Store {
	return &Store{
		instances: cache.NewLRU(capacity, ttl, onEvict),
		now:       time.Now,
	}
}

func onEvict(id string, inst Instance, reason cache.EvictReason) {
	metrics.RecordChartEvent(reason.String())
	if reason != cache.EvictRemoved {
		logging.Debug().
			Str("instance_id", id).
			Str("chart_id", inst.ChartID).
			Str("reason", reason.String()).
			Msg("Chart instance dropped")
	}
}

// Mount creates a new instance for chartID with an empty state.
func (s *Store) Mount(chartID string) Instance {
	now := s.now()
	inst := Instance{
		ID:        uuid.New().String(),
		ChartID:   chartID,
		State:     New(),
		CreatedAt: now,
		TouchedAt: now,
	}
	s.instances.Put(inst.ID, inst)
	metrics.RecordChartEvent("mount")
	return inst
}

// Get returns an instance and refreshes its idle timer and TouchedAt.
func (s *Store) Get(id string) (Instance, error) {
	now := s.now()
	inst, ok := s.instances.Update(id, func(cur Instance) Instance {
		cur.TouchedAt = now
		return cur
	})
	if !ok {
		return Instance{}, ErrInstanceNotFound
	}
	return inst, nil
}

// Dispatch applies actions to an instance's state atomically and returns the
// updated instance. Toggle and recolor actions are counted; palette seeding is not.
func (s *Store) Dispatch(id string, actions ...Action) (Instance, error) {
	now := s.now()
	inst, ok := s.instances.Update(id, func(cur Instance) Instance {
		cur.State = ApplyAll(cur.State, actions...)
		cur.TouchedAt = now
		return cur
	})
	if !ok {
		return Instance{}, ErrInstanceNotFound
	}

	for _, a := range actions {
		if a.Type == ActionToggle || a.Type == ActionSetColor {
			metrics.RecordChartEvent(string(a.Type))
		}
	}
	return inst, nil
}

// Unmount discards an instance.
func (s *Store) Unmount(id string) error {
	if !s.instances.Remove(id) {
		return ErrInstanceNotFound
	}
	return nil
}

// Sweep drops expired instances and returns how many were dropped.
func (s *Store) Sweep() int {
	return s.instances.CleanupExpired()
}

// Len returns the number of instances currently held.
func (s *Store) Len() int {
	return s.instances.Len()
}
