// Vibescope - AI Model Vibe Monitoring and Worseness Analytics
// Copyright 2026 Vibescope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vibescope/vibescope

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Router wires handlers and middleware into the HTTP surface.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router from a handler and middleware factory.
func NewRouter(handler *Handler, mw *ChiMiddleware) *Router {
	return &Router{
		handler:       handler,
		chiMiddleware: mw,
	}
}

// Setup configures all HTTP routes using the Chi router.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to all routes in order.
	r.Use(RequestIDWithLogging())
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS()) // global so OPTIONS preflight works

	// Health probes get permissive limits for monitoring tools.
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitHealth())
		r.Use(APISecurityHeaders())
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
		r.Get("/", router.handler.Health)
	})

	// Report ingest. Write limits protect the store from floods.
	r.Route("/api/v1/reports", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitWrite())
		r.Use(APISecurityHeaders())
		r.Use(PrometheusMetrics())

		r.Post("/", router.handler.SubmitReport)
	})

	// Dashboard views. Read-heavy and cached, permissive limits.
	r.Route("/api/v1/vibes", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitViews())
		r.Use(APISecurityHeaders())
		r.Use(PrometheusMetrics())

		r.Get("/", router.handler.VibesOverview)

		r.Route("/{model}", func(r chi.Router) {
			r.Get("/summary", router.handler.VibesSummary)
			r.Get("/series", router.handler.VibesSeries)
			r.Get("/issues", router.handler.VibesIssues)
			r.Get("/environments", router.handler.VibesEnvironments)
			r.Get("/clusters", router.handler.VibesClusters)
			r.Get("/recent", router.handler.VibesRecent)
		})
	})

	// Mock data seeding for demos and CI. The handler refuses it in
	// production unless explicitly enabled.
	r.Route("/api/v1/admin/seed", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitSeed())
		r.Use(APISecurityHeaders())
		r.Use(PrometheusMetrics())

		r.Post("/", router.handler.SeedMockData)
	})

	// Observability
	r.Handle("/metrics", promhttp.Handler())

	return r
}
