// Package schema defines declarative document schemas.
//
// A schema is a named, ordered list of typed fields plus the explicit name of
// the store collection its documents live in. One declaration is the single
// source of truth for payload validation, the introspection endpoint, and the
// generated API documentation, so the three can never drift apart.
//
// Schemas are constructed once at process start, registered explicitly, and
// never mutated afterwards.
package schema

import "fmt"

// Schema is the canonical declaration of one document kind.
type Schema struct {
	// Name is the exported schema name (e.g., "CatalogItem").
	Name string `json:"name" yaml:"name"`

	// Collection is the store collection documents of this schema are
	// written to. It is declared explicitly rather than derived from Name,
	// so renaming a schema cannot silently re-target its data.
	Collection string `json:"collection" yaml:"collection"`

	// Description for documentation.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Fields in declaration order.
	Fields []Field `json:"fields" yaml:"fields"`
}

// Field returns the declared field with the given name.
func (s Schema) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// FieldNames returns the field names in declaration order.
func (s Schema) FieldNames() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

// Validate checks that the declaration is internally consistent.
func (s Schema) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("schema name is required")
	}
	if s.Collection == "" {
		return fmt.Errorf("schema %q: collection is required", s.Name)
	}
	if len(s.Fields) == 0 {
		return fmt.Errorf("schema %q has no fields", s.Name)
	}

	seen := make(map[string]bool, len(s.Fields))
	for _, f := range s.Fields {
		if f.Name == "" {
			return fmt.Errorf("schema %q has a field without a name", s.Name)
		}
		if seen[f.Name] {
			return fmt.Errorf("schema %q declares field %q twice", s.Name, f.Name)
		}
		seen[f.Name] = true

		if !fieldTypes[f.Type] {
			return fmt.Errorf("schema %q field %q: unknown type %q", s.Name, f.Name, f.Type)
		}
		if f.IsRequired() && f.HasDefault() {
			return fmt.Errorf("schema %q field %q: required fields cannot carry a default", s.Name, f.Name)
		}
	}
	return nil
}
