package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/nikita1503agarwal/backend-repo-tekn7rlf-t29ckk/adapters/metrics"
	"github.com/nikita1503agarwal/backend-repo-tekn7rlf-t29ckk/core/openapi"
)

// RouterConfig controls the optional parts of the route tree.
type RouterConfig struct {
	// Metrics enables the request middleware and the metrics endpoint
	// when non-nil.
	Metrics *metrics.Collector

	// MetricsPath overrides where the Prometheus endpoint is mounted.
	// Defaults to /metrics.
	MetricsPath string

	// OpenAPI enables /.well-known/openapi.json and the Swagger UI when
	// non-nil.
	OpenAPI *openapi.Generator
}

// NewRouter assembles the full route tree: the storefront API under /api,
// introspection and diagnostics at the root, and the operational endpoints
// (health, metrics, OpenAPI).
func NewRouter(h *Handler, health *HealthHandler, logger zerolog.Logger, cfg RouterConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(NewLoggingMiddleware(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(NewCORSMiddleware())
	if cfg.Metrics != nil {
		r.Use(NewMetricsMiddleware(cfg.Metrics))
	}

	r.Get("/", h.Root)

	r.Route("/api", func(r chi.Router) {
		r.Get("/products", h.ListProducts)
		r.Post("/products", h.CreateProduct)
		r.Post("/seed", h.Seed)
		r.Get("/orders", h.ListOrders)
		r.Post("/orders", h.CreateOrder)
	})

	r.Get("/schema", h.Schema)
	r.Get("/test", h.Test)

	r.Get("/health/live", health.Liveness)
	r.Get("/health/ready", health.Readiness)

	if cfg.Metrics != nil {
		path := cfg.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.Handle(path, promhttp.Handler())
	}

	if cfg.OpenAPI != nil {
		// Serve the generated spec at the well-known location so the
		// Swagger UI and external tooling can find it.
		r.Get("/.well-known/openapi.json", func(w http.ResponseWriter, req *http.Request) {
			data, err := cfg.OpenAPI.Generate().ToJSON()
			if err != nil {
				writeError(w, err)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write(data)
		})

		// Swagger UI
		r.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL("/.well-known/openapi.json"),
		))
	}

	return r
}
