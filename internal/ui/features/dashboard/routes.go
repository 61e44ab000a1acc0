package dashboard

import (
	"errors"

	"github.com/go-chi/chi/v5"
)

// SetupRoutes configures routes for the dashboard feature.
func SetupRoutes(router chi.Router, opts Options) error {
	if opts.Dataset == nil {
		return errors.New("dashboard: no dataset loaded")
	}
	handlers := NewHandlers(opts)

	router.Get("/", handlers.DashboardPage)
	router.Get("/dashboard/charts", handlers.ChartsSSE)

	router.Route("/api", func(r chi.Router) {
		r.Get("/outcomes", handlers.OutcomesJSON)
		r.Get("/points", handlers.PointsJSON)
	})

	router.Route("/charts", func(r chi.Router) {
		r.Get("/pie.svg", handlers.PieSVG)
		r.Get("/scatter.svg", handlers.ScatterSVG)
	})

	return nil
}
