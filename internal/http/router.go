// Package httpapi assembles the public router. Module handlers register
// their own routes; this package only owns cross-cutting middleware and
// the operational endpoints.
package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"crewfit/internal/platform/metrics"
)

// Registrar is anything that can mount routes, which every module handler
// implements.
type Registrar interface {
	Register(r chi.Router)
}

// HealthCheck reports one dependency's liveness for /healthz.
type HealthCheck func() error

// NewRouter builds the router: middleware, operational endpoints, then
// every module surface.
func NewRouter(httpMetrics *metrics.Metrics, checks map[string]HealthCheck, handlers ...Registrar) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	if httpMetrics != nil {
		r.Use(httpMetrics.Middleware)
	}

	r.Get("/healthz", handleHealth(checks))
	r.Handle("/metrics", promhttp.Handler())

	for _, h := range handlers {
		h.Register(r)
	}
	return r
}

func handleHealth(checks map[string]HealthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := http.StatusOK
		report := make(map[string]string, len(checks)+1)
		report["status"] = "ok"

		for name, check := range checks {
			if err := check(); err != nil {
				status = http.StatusServiceUnavailable
				report["status"] = "degraded"
				report[name] = err.Error()
				continue
			}
			report[name] = "ok"
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(report)
	}
}
