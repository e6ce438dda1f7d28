// Package ports defines interfaces (contracts) between layers.
// These interfaces enable dependency injection and testability.
// Implementations live in adapters/.
package ports

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// -----------------------------------------------------------------------------
// Infrastructure Ports
// -----------------------------------------------------------------------------

// Clock abstracts time for testability.
type Clock interface {
	Now() time.Time
}

// IDGenerator generates unique identifiers.
type IDGenerator interface {
	New() string
}

// -----------------------------------------------------------------------------
// Document Store Port
// -----------------------------------------------------------------------------

// Document is a flat field-to-value mapping as produced by validation and as
// returned by the store. Listed documents carry their identifier under "_id"
// as a plain string, regardless of how the store represents it internally.
type Document = map[string]any

// DocumentStore persists documents in named collections.
//
// Insert is only ever called with an already-validated document. List applies
// an exact-match filter (empty filter matches everything) and caps results at
// limit; ordering is store-native, unspecified but deterministic per
// implementation. Collections and Ping exist for diagnostics only.
type DocumentStore interface {
	// Insert stores a document and returns its store-assigned identifier.
	Insert(ctx context.Context, collection string, doc Document) (string, error)

	// List returns documents matching the filter, at most limit.
	// limit <= 0 means no cap.
	List(ctx context.Context, collection string, filter map[string]any, limit int64) ([]Document, error)

	// Collections returns the names of collections present in the store.
	Collections(ctx context.Context) ([]string, error)

	// Ping verifies the store is reachable.
	Ping(ctx context.Context) error

	// Name identifies the backing implementation ("mongo", "sqlite", ...).
	Name() string
}

// -----------------------------------------------------------------------------
// Store Error Taxonomy
// -----------------------------------------------------------------------------

// ErrNotConfigured is returned by every operation of a store that was never
// configured. Callers report it as a degraded state rather than a hard
// failure.
var ErrNotConfigured = errors.New("document store not configured")

// StorageError wraps a store driver failure with the operation context.
// It marks the failure as server-side; it is never retried.
type StorageError struct {
	Op         string // "insert", "list", "collections", "ping"
	Collection string // empty for store-wide operations
	Err        error
}

func (e *StorageError) Error() string {
	if e.Collection == "" {
		return fmt.Sprintf("store %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("store %s %s: %v", e.Op, e.Collection, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
