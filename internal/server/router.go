package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"tapecalc/internal/calculator"
	"tapecalc/internal/handlers"
	"tapecalc/internal/observability"
)

// NewRouter wires the middleware stack, health and metrics endpoints, and
// the calculator session API backed by store. A nil gatherer serves the
// default Prometheus registry.
func NewRouter(store *calculator.Store, gatherer prometheus.Gatherer) http.Handler {

	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(observability.RequestIDMiddleware)
	r.Use(observability.TracingMiddleware)
	r.Use(observability.LoggingMiddleware)

	r.Get("/health", handlers.Health)

	r.Handle("/metrics", observability.PrometheusHandler(gatherer))

	calculator.RegisterRoutes(r, calculator.NewAPI(store))

	return r
}
