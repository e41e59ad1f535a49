// Pulseboard - Team Analytics Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pulseboard

package api

import (
	"bytes"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/pulseboard/internal/analytics"
	"github.com/tomtom215/pulseboard/internal/logging"
	"github.com/tomtom215/pulseboard/internal/render"
)

// PageTitle is the title of the rendered dashboard page.
const PageTitle = "Team Analytics"

// Dashboard returns every chart with default view-state.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	page, err := h.dashboard.Page(r.Context())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(page)
}

// DashboardRender renders the whole dashboard as one HTML page.
func (h *Handler) DashboardRender(w http.ResponseWriter, r *http.Request) {
	page, err := h.dashboard.Page(r.Context())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := render.RenderPage(&buf, PageTitle, page.Charts); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to render dashboard")
		NewResponseWriter(w, r).InternalError("Failed to render dashboard")
		return
	}
	writeHTML(w, buf.Bytes())
}

// Charts lists the chart catalogue.
func (h *Handler) Charts(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(h.dashboard.Catalog())
}

// Chart returns one chart's props with default view-state.
func (h *Handler) Chart(w http.ResponseWriter, r *http.Request) {
	props, err := h.dashboard.Chart(r.Context(), chi.URLParam(r, "chartID"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(props)
}

// ChartRender renders one chart as HTML.
func (h *Handler) ChartRender(w http.ResponseWriter, r *http.Request) {
	props, err := h.dashboard.Chart(r.Context(), chi.URLParam(r, "chartID"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := render.RenderChart(&buf, props); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Str("chart", props.ChartID).Msg("Failed to render chart")
		NewResponseWriter(w, r).InternalError("Failed to render chart")
		return
	}
	writeHTML(w, buf.Bytes())
}

// MountChart creates a view-state instance for a chart.
func (h *Handler) MountChart(w http.ResponseWriter, r *http.Request) {
	view, err := h.dashboard.Mount(r.Context(), chi.URLParam(r, "chartID"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Created(view)
}

// ChartInstance returns a mounted chart under its current view-state.
func (h *Handler) ChartInstance(w http.ResponseWriter, r *http.Request) {
	view, err := h.dashboard.Instance(r.Context(), chi.URLParam(r, "instanceID"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(view)
}

// ToggleSeries flips one series' visibility.
func (h *Handler) ToggleSeries(w http.ResponseWriter, r *http.Request) {
	var req ToggleRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	view, err := h.dashboard.Toggle(r.Context(), chi.URLParam(r, "instanceID"), req.SeriesKey)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(view)
}

// SetSeriesColor overrides one series' color.
func (h *Handler) SetSeriesColor(w http.ResponseWriter, r *http.Request) {
	var req ColorRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	view, err := h.dashboard.SetColor(r.Context(),
		chi.URLParam(r, "instanceID"), chi.URLParam(r, "seriesKey"), req.Color)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(view)
}

// ChartLegend returns the legend entries of a mounted chart.
func (h *Handler) ChartLegend(w http.ResponseWriter, r *http.Request) {
	legend, err := h.dashboard.Legend(r.Context(), chi.URLParam(r, "instanceID"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(legend)
}

// tooltipResponse keeps the tooltip key present as null when nothing shows.
type tooltipResponse struct {
	Tooltip *analytics.Tooltip `json:"tooltip"`
}

// ChartTooltip composes the tooltip for a hover event on a mounted chart.
func (h *Handler) ChartTooltip(w http.ResponseWriter, r *http.Request) {
	var hover analytics.Hover
	if !decodeBody(w, r, &hover) {
		return
	}

	tip, err := h.dashboard.Tooltip(r.Context(), chi.URLParam(r, "instanceID"), hover)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(tooltipResponse{Tooltip: tip})
}

// UnmountChart drops a view-state instance.
func (h *Handler) UnmountChart(w http.ResponseWriter, r *http.Request) {
	if err := h.dashboard.Unmount(chi.URLParam(r, "instanceID")); err != nil {
		respondServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).NoContent()
}

func writeHTML(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
