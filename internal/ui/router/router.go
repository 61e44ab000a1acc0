// Package router sets up HTTP routes for the UI server.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/leapstack-labs/launchdash/internal/metrics"
	dashboardFeature "github.com/leapstack-labs/launchdash/internal/ui/features/dashboard"
	"github.com/leapstack-labs/launchdash/internal/ui/resources"
)

// SetupRoutes configures all routes for the UI server. The metrics endpoint
// is mounted only when m is non-nil.
func SetupRoutes(router chi.Router, opts dashboardFeature.Options, m *metrics.Metrics) error {
	// Static assets
	router.Handle("/static/*", resources.Handler())

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	if m != nil {
		router.Handle("/metrics", m.Handler())
	}

	// Feature routes
	opts.Metrics = m
	if err := dashboardFeature.SetupRoutes(router, opts); err != nil {
		return err
	}

	return nil
}
