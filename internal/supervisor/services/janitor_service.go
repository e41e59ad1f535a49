// Pulseboard - Team Analytics Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pulseboard

package services

import (
	"context"
	"time"

	"github.com/tomtom215/pulseboard/internal/logging"
)

// Purger drops expired entries and reports how many went.
// Satisfied by *dashboard.Service.
type Purger interface {
	Purge() (datasets, instances int)
}

// JanitorService periodically purges expired datasets and chart instances.
// Both stores also expire lazily on read; the janitor bounds memory for
// entries nobody reads again.
type JanitorService struct {
	purger   Purger
	interval time.Duration
}

// NewJanitorService creates a janitor. A non-positive interval means one minute.
func NewJanitorService(p Purger, interval time.Duration) *JanitorService {
	if interval <= 0 {
		interval = time.Minute
	}
	return &JanitorService{purger: p, interval: interval}
}

// Serve implements suture.Service.
func (j *JanitorService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	log := logging.WithComponent("janitor")
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			datasets, instances := j.purger.Purge()
			if datasets > 0 || instances > 0 {
				log.Debug().
					Int("datasets", datasets).
					Int("instances", instances).
					Msg("Purged expired entries")
			}
		}
	}
}

// String identifies the service in supervisor events.
func (j *JanitorService) String() string {
	return "janitor"
}
