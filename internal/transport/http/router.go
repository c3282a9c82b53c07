// Package httptransport is the thin HTTP layer. Handlers delegate to the
// reporting façade without embedding business logic so transport concerns
// stay isolated.
package httptransport

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires all public endpoints.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)

	r.Get("/healthz", h.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(principal)

		r.Route("/projects/{projectID}/reports", func(r chi.Router) {
			r.Get("/overview", h.handleOverview)
			r.Get("/funnel", h.handleFunnel)
			r.Get("/performance", h.handlePerformance)
			r.Get("/quality", h.handleQuality)
			r.Delete("/cache", h.handleInvalidateCache)
		})

		r.Get("/tenants/{tenantID}/dashboard", h.handleDashboard)
	})

	return r
}
