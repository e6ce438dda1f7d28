package schema

// Field declares one named field of a document schema. Field order inside a
// Schema is declaration order and is preserved by validation, introspection,
// and documentation output.
type Field struct {
	// Name is the document key for this field.
	Name string `json:"name" yaml:"name"`

	// Type is the field type. See FieldType constants.
	Type FieldType `json:"type" yaml:"type"`

	// Required indicates this field must be provided on create.
	// Nil or false means optional.
	Required *bool `json:"required,omitempty" yaml:"required,omitempty"`

	// Default value substituted when an optional field is absent.
	Default any `json:"default,omitempty" yaml:"default,omitempty"`

	// Description for documentation and introspection.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Constraints defines validation rules applied after coercion.
	Constraints []Constraint `json:"constraints,omitempty" yaml:"constraints,omitempty"`
}

// FieldType represents the declared type of a schema field. The constant
// value doubles as the type label reported by introspection.
type FieldType string

const (
	// Primitive types
	FieldTypeString  FieldType = "string"
	FieldTypeInteger FieldType = "integer"
	FieldTypeDecimal FieldType = "decimal"
	FieldTypeBoolean FieldType = "boolean"

	// Semantic types (string with format validation)
	FieldTypeURL FieldType = "url"

	// Composite types
	FieldTypeTimestamp FieldType = "timestamp"
	FieldTypeObject    FieldType = "object"
	FieldTypeArray     FieldType = "array"
)

// fieldTypes is the set of valid field types, used by Schema.Validate.
var fieldTypes = map[FieldType]bool{
	FieldTypeString:    true,
	FieldTypeInteger:   true,
	FieldTypeDecimal:   true,
	FieldTypeBoolean:   true,
	FieldTypeURL:       true,
	FieldTypeTimestamp: true,
	FieldTypeObject:    true,
	FieldTypeArray:     true,
}

// IsRequired returns whether the field must be present on create.
func (f Field) IsRequired() bool {
	if f.Required != nil {
		return *f.Required
	}
	return false
}

// HasDefault returns whether the field declares a default value.
func (f Field) HasDefault() bool {
	return f.Default != nil
}
