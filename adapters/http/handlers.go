// Package http exposes the storefront over a chi router. Handlers decode
// untyped JSON payloads, delegate to the application services, and map
// domain errors to HTTP status codes.
package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/nikita1503agarwal/backend-repo-tekn7rlf-t29ckk/app"
	"github.com/nikita1503agarwal/backend-repo-tekn7rlf-t29ckk/core/registry"
	"github.com/nikita1503agarwal/backend-repo-tekn7rlf-t29ckk/ports"
)

// Handler serves the storefront API endpoints.
type Handler struct {
	catalog     *app.CatalogService
	orders      *app.OrderService
	diagnostics *app.DiagnosticsService
	registry    *registry.Registry
	logger      zerolog.Logger
}

// NewHandler creates the API handler.
func NewHandler(
	catalog *app.CatalogService,
	orders *app.OrderService,
	diagnostics *app.DiagnosticsService,
	reg *registry.Registry,
	logger zerolog.Logger,
) *Handler {
	return &Handler{
		catalog:     catalog,
		orders:      orders,
		diagnostics: diagnostics,
		registry:    reg,
		logger:      logger.With().Str("component", "http").Logger(),
	}
}

// Root reports that the backend is up.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "CARTX backend is running"})
}

// CreateProduct validates and stores a catalog item.
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	payload, err := decodeBody(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Detail: "invalid JSON body: " + err.Error()})
		return
	}

	id, err := h.catalog.Create(r.Context(), payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"_id": id})
}

// ListProducts returns catalog items, optionally filtered by category.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")

	docs, err := h.catalog.List(r.Context(), category)
	if err != nil {
		writeError(w, err)
		return
	}
	if docs == nil {
		docs = []ports.Document{}
	}

	writeJSON(w, http.StatusOK, listResponse{Items: docs})
}

// Seed loads the sample catalog unless products already exist.
func (h *Handler) Seed(w http.ResponseWriter, r *http.Request) {
	result, err := h.catalog.Seed(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// CreateOrder validates and stores an order.
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	payload, err := decodeBody(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Detail: "invalid JSON body: " + err.Error()})
		return
	}

	id, err := h.orders.Create(r.Context(), payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"_id": id, "status": "received"})
}

// ListOrders returns stored orders in insertion order, capped at ?limit=.
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	limit := int64(0)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Detail: "invalid limit parameter: " + raw})
			return
		}
		limit = parsed
	}

	docs, err := h.orders.List(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	if docs == nil {
		docs = []ports.Document{}
	}

	writeJSON(w, http.StatusOK, listResponse{Items: docs})
}

// Schema describes every declared schema so clients can discover the
// shapes the API accepts.
func (h *Handler) Schema(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.registry.Report())
}

// Test reports backend and store diagnostics.
func (h *Handler) Test(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.diagnostics.Report(r.Context()))
}

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	store ports.DocumentStore
}

// NewHealthHandler creates health check endpoints backed by the store.
func NewHealthHandler(store ports.DocumentStore) *HealthHandler {
	return &HealthHandler{store: store}
}

// Liveness always reports healthy while the process is running.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readiness reports whether the document store is reachable.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "degraded",
			"error":  err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
