// Package api exposes the usage ledger over HTTP for the serve command:
// usage JSON, the rendered report, and Prometheus metrics.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/alecgard/quill/internal/auth"
	"github.com/alecgard/quill/internal/ledger"
	"github.com/alecgard/quill/internal/metrics"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// RouterDeps holds all dependencies for the API router.
type RouterDeps struct {
	Ledger       *ledger.Ledger
	Metrics      *metrics.Metrics
	AdminKeyHash string
}

// NewRouter builds the chi router with all routes and middleware.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	// Global middleware.
	r.Use(chimw.Recoverer)
	r.Use(slogRequestLogger)

	usage := newUsageHandler(deps.Ledger)

	// Health check.
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Metrics.
	r.Handle("/metrics", deps.Metrics.Handler())
	r.Get("/metrics/summary", deps.Metrics.SummaryHandler())

	// Usage routes (admin key required when configured).
	r.Route("/api/v1", func(ar chi.Router) {
		ar.Use(auth.AdminAuthMiddleware(deps.AdminKeyHash))

		ar.Get("/usage", usage.GetUsage)
		ar.Get("/usage/{month}", usage.GetUsageByMonth)
		ar.Get("/report", usage.GetReport)
	})

	return r
}

// slogRequestLogger is a simple structured logging middleware using slog.
func slogRequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		slog.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"bytes", ww.BytesWritten(),
		)
	})
}
