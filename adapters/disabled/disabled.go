// Package disabled provides a DocumentStore placeholder for deployments
// without a configured database. Every operation fails with
// ports.ErrNotConfigured so callers can map the condition to a distinct
// service response instead of a generic storage error.
package disabled

import (
	"context"

	"github.com/nikita1503agarwal/backend-repo-tekn7rlf-t29ckk/ports"
)

// DocumentStore rejects all operations.
type DocumentStore struct{}

// NewDocumentStore creates a disabled document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{}
}

// Insert always fails with ErrNotConfigured.
func (*DocumentStore) Insert(ctx context.Context, collection string, doc ports.Document) (string, error) {
	return "", ports.ErrNotConfigured
}

// List always fails with ErrNotConfigured.
func (*DocumentStore) List(ctx context.Context, collection string, filter map[string]any, limit int64) ([]ports.Document, error) {
	return nil, ports.ErrNotConfigured
}

// Collections always fails with ErrNotConfigured.
func (*DocumentStore) Collections(ctx context.Context) ([]string, error) {
	return nil, ports.ErrNotConfigured
}

// Ping always fails with ErrNotConfigured.
func (*DocumentStore) Ping(ctx context.Context) error {
	return ports.ErrNotConfigured
}

// Name identifies the store backend.
func (*DocumentStore) Name() string {
	return "disabled"
}

// Ensure interface compliance.
var _ ports.DocumentStore = (*DocumentStore)(nil)
