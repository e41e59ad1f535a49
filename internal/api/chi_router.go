// Pulseboard - Team Analytics Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pulseboard

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/pulseboard/internal/middleware"
)

// Router wires handlers and middleware into a chi mux.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a new router.
func NewRouter(handler *Handler, chiMw *ChiMiddleware) *Router {
	if chiMw == nil {
		chiMw = NewChiMiddleware(nil)
	}
	return &Router{handler: handler, chiMiddleware: chiMw}
}

// SetupChi configures all HTTP routes.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// ========================
	// Global Middleware Stack
	// ========================
	r.Use(chiMiddleware(middleware.RequestID)) // X-Request-ID plus logging context
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS()) // must be global to answer OPTIONS preflight

	// ========================
	// Probes and Metrics
	// ========================
	r.Route("/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitHealth())
		r.Use(APISecurityHeaders())
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})
	r.Handle("/metrics", promhttp.Handler())

	// ========================
	// API
	// ========================
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(APISecurityHeaders())
		r.Use(chiMiddleware(middleware.PrometheusMetrics))
		r.Use(chiMiddleware(middleware.BearerToken))

		// Login has its own strict limiter (5 attempts per 5 minutes)
		r.With(router.chiMiddleware.RateLimitLogin()).Post("/auth/login", router.handler.Login)

		// Rendered pages inline every series, so they are gzipped.
		compressHTML := chimiddleware.Compress(5, "text/html")

		r.Group(func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimit())

			r.Get("/dashboard", router.handler.Dashboard)
			r.With(compressHTML).Get("/dashboard/render", router.handler.DashboardRender)

			r.Route("/charts", func(r chi.Router) {
				r.Get("/", router.handler.Charts)

				// Static "instances" wins over {chartID} in chi's tree.
				r.Route("/instances/{instanceID}", func(r chi.Router) {
					r.Get("/", router.handler.ChartInstance)
					r.Delete("/", router.handler.UnmountChart)
					r.Post("/toggle", router.handler.ToggleSeries)
					r.Put("/colors/{seriesKey}", router.handler.SetSeriesColor)
					r.Post("/tooltip", router.handler.ChartTooltip)
					r.Get("/legend", router.handler.ChartLegend)
				})

				r.Get("/{chartID}", router.handler.Chart)
				r.With(compressHTML).Get("/{chartID}/render", router.handler.ChartRender)
				r.Post("/{chartID}/instances", router.handler.MountChart)
			})

			r.Route("/posts", func(r chi.Router) {
				r.Get("/", router.handler.ListPosts)
				r.Post("/", router.handler.CreatePost)
				r.Get("/{id}", router.handler.GetPost)
				r.Patch("/{id}", router.handler.UpdatePost)
				r.Delete("/{id}", router.handler.DeletePost)
			})
		})
	})

	return r
}
