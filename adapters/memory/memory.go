// Package memory provides an in-memory document store for tests and local runs.
package memory

import (
	"context"
	"reflect"
	"sort"
	"sync"
	"time"

	"github.com/nikita1503agarwal/backend-repo-tekn7rlf-t29ckk/ports"
)

// storedDoc is one stored document plus store-side metadata.
type storedDoc struct {
	id        string
	createdAt time.Time
	fields    ports.Document
}

// DocumentStore is an in-memory implementation of ports.DocumentStore.
// Documents are kept per collection in insertion order, which is also the
// order List returns them in.
type DocumentStore struct {
	mu   sync.RWMutex
	docs map[string][]storedDoc

	ids   ports.IDGenerator
	clock ports.Clock
}

// NewDocumentStore creates a new in-memory document store.
func NewDocumentStore(ids ports.IDGenerator, clock ports.Clock) *DocumentStore {
	return &DocumentStore{
		docs:  make(map[string][]storedDoc),
		ids:   ids,
		clock: clock,
	}
}

// Insert stores a copy of the document and returns its generated identifier.
func (s *DocumentStore) Insert(ctx context.Context, collection string, doc ports.Document) (string, error) {
	id := s.ids.New()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.docs[collection] = append(s.docs[collection], storedDoc{
		id:        id,
		createdAt: s.clock.Now(),
		fields:    copyDoc(doc),
	})
	return id, nil
}

// List returns documents matching the exact-match filter, in insertion order,
// capped at limit. Returned documents are copies carrying "_id".
func (s *DocumentStore) List(ctx context.Context, collection string, filter map[string]any, limit int64) ([]ports.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []ports.Document
	for _, d := range s.docs[collection] {
		if !matches(d.fields, filter) {
			continue
		}

		doc := copyDoc(d.fields)
		doc["_id"] = d.id
		out = append(out, doc)

		if limit > 0 && int64(len(out)) >= limit {
			break
		}
	}
	return out, nil
}

// Collections returns the names of non-empty collections, sorted.
func (s *DocumentStore) Collections(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.docs))
	for name := range s.docs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Ping always succeeds.
func (s *DocumentStore) Ping(ctx context.Context) error {
	return nil
}

// Name identifies the backing implementation.
func (s *DocumentStore) Name() string {
	return "memory"
}

// Count returns the number of documents in a collection (for testing).
func (s *DocumentStore) Count(collection string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs[collection])
}

// Clear removes all documents (for testing).
func (s *DocumentStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs = make(map[string][]storedDoc)
}

// copyDoc returns a shallow copy so callers cannot mutate stored state.
func copyDoc(doc ports.Document) ports.Document {
	out := make(ports.Document, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	return out
}

// matches reports whether every filter entry equals the document's value for
// that field. An empty filter matches everything.
func matches(doc ports.Document, filter map[string]any) bool {
	for field, want := range filter {
		got, ok := doc[field]
		if !ok || !valuesEqual(got, want) {
			return false
		}
	}
	return true
}

// valuesEqual compares values the way a JSON round trip would: all numeric
// types collapse to float64 before comparison.
func valuesEqual(a, b any) bool {
	af, aok := asFloat(a)
	bf, bok := asFloat(b)
	if aok && bok {
		return af == bf
	}
	return reflect.DeepEqual(a, b)
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// Ensure interface compliance.
var _ ports.DocumentStore = (*DocumentStore)(nil)
