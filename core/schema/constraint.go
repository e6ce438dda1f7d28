package schema

import "fmt"

// Constraint defines a validation rule applied to a field value after type
// coercion has succeeded.
type Constraint struct {
	// Type is the constraint type (min, max).
	Type ConstraintType `json:"type" yaml:"type"`

	// Value is the constraint parameter.
	Value any `json:"value" yaml:"value"`

	// Message is the custom error message (optional).
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}

// ConstraintType identifies the type of constraint.
type ConstraintType string

const (
	// Numeric constraints
	ConstraintMin ConstraintType = "min" // Minimum numeric value
	ConstraintMax ConstraintType = "max" // Maximum numeric value
)

// Violation describes a failed constraint check.
type Violation struct {
	Constraint ConstraintType
	Expected   string
	Message    string
}

// Check validates an already-coerced value against a single constraint.
// It returns nil when the constraint holds or does not apply to the value.
// This is a pure function.
func (c Constraint) Check(value any) *Violation {
	switch c.Type {
	case ConstraintMin:
		bound, ok := toFloat64(c.Value)
		if !ok {
			return nil
		}
		val, ok := toFloat64(value)
		if !ok {
			return nil
		}
		if val < bound {
			return &Violation{
				Constraint: ConstraintMin,
				Expected:   fmt.Sprintf(">= %v", c.Value),
				Message:    c.message(fmt.Sprintf("must be at least %v", c.Value)),
			}
		}
	case ConstraintMax:
		bound, ok := toFloat64(c.Value)
		if !ok {
			return nil
		}
		val, ok := toFloat64(value)
		if !ok {
			return nil
		}
		if val > bound {
			return &Violation{
				Constraint: ConstraintMax,
				Expected:   fmt.Sprintf("<= %v", c.Value),
				Message:    c.message(fmt.Sprintf("must be at most %v", c.Value)),
			}
		}
	}
	return nil
}

func (c Constraint) message(fallback string) string {
	if c.Message != "" {
		return c.Message
	}
	return fallback
}

// toFloat64 converts coerced numeric values to float64 for comparison.
func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	default:
		return 0, false
	}
}
