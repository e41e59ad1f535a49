// Pulseboard - Team Analytics Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pulseboard

package dashboard

import (
	"context"
	"fmt"

	"github.com/samber/lo"

	"github.com/tomtom215/pulseboard/internal/analytics"
	"github.com/tomtom215/pulseboard/internal/logging"
	"github.com/tomtom215/pulseboard/internal/upstream"
	"github.com/tomtom215/pulseboard/internal/viewstate"
)

// FetchFailedMessage is the user-facing error of a chart whose dataset could
// not be fetched.
const FetchFailedMessage = "Failed to load chart data"

// PageStatus is the single tri-state of the dashboard page.
type PageStatus string

const (
	PageLoading PageStatus = "loading"
	PageReady   PageStatus = "ready"
	PageError   PageStatus = "error"
)

// Page is the whole dashboard with default view-state.
type Page struct {
	Status PageStatus `json:"status"`
	Error  string     `json:"error,omitempty"`
	Charts []Props    `json:"charts"`
}

// InstanceView is a mounted chart: its ID plus the props under its state.
type InstanceView struct {
	InstanceID string `json:"instanceId"`
	Props      Props  `json:"props"`
}

// Service ties the loader, the view-state store and the catalogue together.
type Service struct {
	loader  *Loader
	store   *viewstate.Store
	palette []string
}

// NewService creates a dashboard service.
func NewService(loader *Loader, store *viewstate.Store, palette []string) *Service {
	return &Service{loader: loader, store: store, palette: palette}
}

// Catalog returns every chart spec in page order.
func (s *Service) Catalog() []ChartSpec {
	return append([]ChartSpec(nil), Catalog...)
}

// Chart returns the props of one chart under the default view-state.
func (s *Service) Chart(ctx context.Context, chartID string) (Props, error) {
	spec, err := Lookup(chartID)
	if err != nil {
		return Props{}, err
	}
	ds, err := s.loader.Dataset(ctx, spec.Dataset)
	if err != nil {
		return Props{}, fmt.Errorf("load %s: %w", spec.Dataset, err)
	}
	return s.build(ctx, spec, ds, viewstate.New()).Props, nil
}

// Page loads every dataset concurrently and builds every chart. A dataset
// that fails only empties its own charts. An authorization failure fails the
// whole page.
func (s *Service) Page(ctx context.Context) (Page, error) {
	ids := lo.Uniq(lo.Map(Catalog, func(spec ChartSpec, _ int) upstream.DatasetID {
		return spec.Dataset
	}))

	results := s.loader.LoadAll(ctx, ids)
	if err := unauthorized(results); err != nil {
		return Page{}, err
	}

	page := Page{Status: PageReady, Charts: make([]Props, 0, len(Catalog))}
	for _, spec := range Catalog {
		r := results[spec.Dataset]
		props := s.build(ctx, spec, r.Dataset, viewstate.New()).Props
		if r.Err != nil {
			props.Status = StatusEmpty
			props.Error = FetchFailedMessage
		}
		page.Charts = append(page.Charts, props)
	}

	failed := lo.CountBy(ids, func(id upstream.DatasetID) bool { return results[id].Err != nil })
	if failed == len(ids) {
		page.Status = PageError
		page.Error = FetchFailedMessage
	}
	return page, nil
}

// Mount creates a new chart instance and returns its initial props. The
// palette colors seeded while building are stored on the instance.
func (s *Service) Mount(ctx context.Context, chartID string) (InstanceView, error) {
	spec, err := Lookup(chartID)
	if err != nil {
		return InstanceView{}, err
	}
	ds, err := s.loader.Dataset(ctx, spec.Dataset)
	if err != nil {
		return InstanceView{}, fmt.Errorf("load %s: %w", spec.Dataset, err)
	}

	inst := s.store.Mount(spec.ID)
	chart := s.build(ctx, spec, ds, inst.State)
	if len(chart.Seeds) > 0 {
		if _, err := s.store.Dispatch(inst.ID, chart.Seeds...); err != nil {
			return InstanceView{}, err
		}
	}

	logging.Ctx(ctx).Debug().
		Str("chart_id", spec.ID).
		Str("instance_id", inst.ID).
		Msg("Chart instance mounted")

	return InstanceView{InstanceID: inst.ID, Props: chart.Props}, nil
}

// Instance returns the props of a mounted chart under its current state.
func (s *Service) Instance(ctx context.Context, instanceID string) (InstanceView, error) {
	inst, err := s.store.Get(instanceID)
	if err != nil {
		return InstanceView{}, err
	}
	return s.view(ctx, inst)
}

// Toggle flips the visibility of one series of a mounted chart.
func (s *Service) Toggle(ctx context.Context, instanceID, seriesKey string) (InstanceView, error) {
	return s.dispatch(ctx, instanceID, viewstate.Toggle(seriesKey))
}

// SetColor overrides the color of one series of a mounted chart.
func (s *Service) SetColor(ctx context.Context, instanceID, seriesKey, color string) (InstanceView, error) {
	return s.dispatch(ctx, instanceID, viewstate.SetColor(seriesKey, color))
}

// Legend returns the legend of a mounted chart.
func (s *Service) Legend(ctx context.Context, instanceID string) ([]LegendEntry, error) {
	v, err := s.Instance(ctx, instanceID)
	if err != nil {
		return nil, err
	}
	return Legend(v.Props), nil
}

// Tooltip synthesizes the tooltip of a hover over a mounted chart.
func (s *Service) Tooltip(ctx context.Context, instanceID string, h analytics.Hover) (*analytics.Tooltip, error) {
	inst, err := s.store.Get(instanceID)
	if err != nil {
		return nil, err
	}
	spec, err := Lookup(inst.ChartID)
	if err != nil {
		return nil, err
	}
	ds, err := s.loader.Dataset(ctx, spec.Dataset)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", spec.Dataset, err)
	}
	// Hover colors fall back to the seeded palette color, so seed first.
	state := s.build(ctx, spec, ds, inst.State).State
	return ComposeTooltip(spec, ds, state, h)
}

// Unmount discards a chart instance.
func (s *Service) Unmount(instanceID string) error {
	return s.store.Unmount(instanceID)
}

// Purge drops expired datasets and instances. It returns the number of each.
func (s *Service) Purge() (datasets, instances int) {
	return s.loader.Purge(), s.store.Sweep()
}

func (s *Service) dispatch(ctx context.Context, instanceID string, a viewstate.Action) (InstanceView, error) {
	inst, err := s.store.Dispatch(instanceID, a)
	if err != nil {
		return InstanceView{}, err
	}
	return s.view(ctx, inst)
}

func (s *Service) view(ctx context.Context, inst viewstate.Instance) (InstanceView, error) {
	spec, err := Lookup(inst.ChartID)
	if err != nil {
		return InstanceView{}, err
	}
	ds, err := s.loader.Dataset(ctx, spec.Dataset)
	if err != nil {
		return InstanceView{}, fmt.Errorf("load %s: %w", spec.Dataset, err)
	}

	chart := s.build(ctx, spec, ds, inst.State)
	if len(chart.Seeds) > 0 {
		// New series appeared since mount; their colors are fixed from now on.
		if _, err := s.store.Dispatch(inst.ID, chart.Seeds...); err != nil {
			return InstanceView{}, err
		}
	}
	return InstanceView{InstanceID: inst.ID, Props: chart.Props}, nil
}

func (s *Service) build(ctx context.Context, spec ChartSpec, ds analytics.Dataset, state viewstate.State) Chart {
	chart := BuildChart(spec, ds, state, s.palette)
	if n := len(chart.Props.Duplicates); n > 0 {
		logging.Ctx(ctx).Warn().
			Str("chart_id", spec.ID).
			Int("duplicates", n).
			Msg("Multiple records share a team and x value, keeping the first")
	}
	return chart
}
