package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nikita1503agarwal/backend-repo-tekn7rlf-t29ckk/core/validation"
	"github.com/nikita1503agarwal/backend-repo-tekn7rlf-t29ckk/ports"
)

// errorResponse is the body of every non-2xx response.
type errorResponse struct {
	Detail string `json:"detail"`
}

// listResponse is the {"items": [...]} envelope of the list endpoints.
// Callers keep Items non-nil so an empty listing serializes as [].
type listResponse struct {
	Items []ports.Document `json:"items"`
}

// writeJSON writes v as a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps an error to its HTTP status and writes a {"detail": ...}
// body. Validation failures are client errors, unknown schemas are 404,
// a missing store is 503, and everything else is a 500.
func writeError(w http.ResponseWriter, err error) {
	var (
		validationErr *validation.ValidationError
		schemaErr     *validation.UnknownSchemaError
		storageErr    *ports.StorageError
	)

	switch {
	case errors.As(err, &validationErr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Detail: validationErr.Error()})
	case errors.As(err, &schemaErr):
		writeJSON(w, http.StatusNotFound, errorResponse{Detail: schemaErr.Error()})
	case errors.Is(err, ports.ErrNotConfigured):
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Detail: "database not configured"})
	case errors.As(err, &storageErr):
		writeJSON(w, http.StatusInternalServerError, errorResponse{Detail: storageErr.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Detail: err.Error()})
	}
}

// decodeBody parses a JSON request body into a map payload. The body is
// limited to 1 MiB.
func decodeBody(r *http.Request) (map[string]any, error) {
	var payload map[string]any
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20))
	if err := dec.Decode(&payload); err != nil {
		return nil, err
	}
	return payload, nil
}
