// Package validation checks and coerces untyped payloads against declared
// schemas. Validation runs before any storage operation; a payload either
// becomes a fully-coerced document or the request fails.
package validation

import (
	"fmt"

	"github.com/nikita1503agarwal/backend-repo-tekn7rlf-t29ckk/core/registry"
)

// Validation failure reasons.
const (
	ReasonMissing      = "missing"
	ReasonTypeMismatch = "type-mismatch"
	ReasonOutOfRange   = "out-of-range"
)

// ValidationError reports the first field that failed validation.
// It is a client error: the payload, not the system, is at fault.
type ValidationError struct {
	Field    string `json:"field"`
	Reason   string `json:"reason"`
	Expected string `json:"expected,omitempty"`
	Got      string `json:"got,omitempty"`
}

func (e *ValidationError) Error() string {
	if e.Expected == "" && e.Got == "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("%s: %s (expected %s, got %s)", e.Field, e.Reason, e.Expected, e.Got)
}

// UnknownSchemaError reports validation against a schema that was never
// declared.
type UnknownSchemaError struct {
	Name string
}

func (e *UnknownSchemaError) Error() string {
	return fmt.Sprintf("unknown schema %q", e.Name)
}

// Validator validates payloads against the schema registry.
type Validator struct {
	reg *registry.Registry
}

// New creates a validator backed by the given registry.
func New(reg *registry.Registry) *Validator {
	return &Validator{reg: reg}
}

// Validate checks a raw payload against the named schema and returns the
// coerced document.
//
// Fields are processed in declaration order. A required field that is absent
// (or explicitly null) fails with reason "missing"; an absent optional field
// takes its declared default; a present field is coerced to its declared
// type, failing with reason "type-mismatch". Constraints run after coercion
// and fail with reason "out-of-range". Unknown payload fields are ignored and
// never reach the document.
//
// Validation is synchronous and deterministic: the first failing field in
// declaration order is reported, and nothing is ever silently corrected
// beyond declared defaults.
func (v *Validator) Validate(schemaName string, payload map[string]any) (map[string]any, error) {
	s, ok := v.reg.Get(schemaName)
	if !ok {
		return nil, &UnknownSchemaError{Name: schemaName}
	}

	doc := make(map[string]any, len(s.Fields))
	for _, field := range s.Fields {
		value, present := payload[field.Name]
		if value == nil {
			// Explicit null is treated like an absent field.
			present = false
		}

		if !present {
			if field.IsRequired() {
				return nil, &ValidationError{Field: field.Name, Reason: ReasonMissing}
			}
			if field.HasDefault() {
				doc[field.Name] = field.Default
			}
			continue
		}

		coerced, ok := coerce(field.Type, value)
		if !ok {
			return nil, &ValidationError{
				Field:    field.Name,
				Reason:   ReasonTypeMismatch,
				Expected: string(field.Type),
				Got:      typeLabel(value),
			}
		}

		for _, c := range field.Constraints {
			if violation := c.Check(coerced); violation != nil {
				return nil, &ValidationError{
					Field:    field.Name,
					Reason:   ReasonOutOfRange,
					Expected: violation.Expected,
					Got:      fmt.Sprintf("%v", coerced),
				}
			}
		}

		doc[field.Name] = coerced
	}

	return doc, nil
}
