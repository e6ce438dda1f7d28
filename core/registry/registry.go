// Package registry manages schema registration and conflict detection.
// Every schema is declared exactly once; the registry is the single lookup
// point for validation, introspection, and documentation.
package registry

import (
	"fmt"
	"sync"

	"github.com/nikita1503agarwal/backend-repo-tekn7rlf-t29ckk/core/schema"
)

// Registry holds the declared schemas. Declarations happen at process start;
// afterwards the registry is effectively read-only.
type Registry struct {
	mu sync.RWMutex

	// schemas in declaration order
	order []schema.Schema

	// indexes by name and by collection
	byName       map[string]int
	byCollection map[string]int
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		byName:       make(map[string]int),
		byCollection: make(map[string]int),
	}
}

// Declare registers a schema. It fails with DuplicateSchemaError when the
// name is already taken, and with a plain error when the declaration itself
// is inconsistent or its collection is claimed by another schema.
func (r *Registry) Declare(s schema.Schema) error {
	if err := s.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byName[s.Name]; exists {
		return &DuplicateSchemaError{Name: s.Name}
	}
	if idx, exists := r.byCollection[s.Collection]; exists {
		return fmt.Errorf("collection %q already claimed by schema %q", s.Collection, r.order[idx].Name)
	}

	r.byName[s.Name] = len(r.order)
	r.byCollection[s.Collection] = len(r.order)
	r.order = append(r.order, s)
	return nil
}

// MustDeclare registers a schema and panics on error. Intended for the fixed
// startup declarations, where a failure is a programming mistake.
func (r *Registry) MustDeclare(s schema.Schema) {
	if err := r.Declare(s); err != nil {
		panic(err)
	}
}

// Get returns a registered schema by name.
func (r *Registry) Get(name string) (schema.Schema, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx, ok := r.byName[name]
	if !ok {
		return schema.Schema{}, false
	}
	return r.order[idx], true
}

// GetByCollection returns the schema that owns a collection.
func (r *Registry) GetByCollection(collection string) (schema.Schema, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx, ok := r.byCollection[collection]
	if !ok {
		return schema.Schema{}, false
	}
	return r.order[idx], true
}

// List returns all schemas in declaration order. The returned slice is a
// copy; callers can range over it repeatedly without affecting the registry.
func (r *Registry) List() []schema.Schema {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]schema.Schema, len(r.order))
	copy(out, r.order)
	return out
}

// Count returns the number of declared schemas.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// Report serializes every declared schema, in declaration order, for the
// introspection endpoint.
func (r *Registry) Report() schema.Report {
	return schema.BuildReport(r.List())
}

// DuplicateSchemaError reports a second declaration under an existing name.
type DuplicateSchemaError struct {
	Name string
}

func (e *DuplicateSchemaError) Error() string {
	return fmt.Sprintf("schema %q already declared", e.Name)
}
