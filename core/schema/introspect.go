package schema

// Introspection types for exposing schema metadata over the API. These let
// clients discover declared document shapes (e.g., to auto-generate forms)
// without hardcoding them.

// Report is returned by GET /schema.
type Report struct {
	Models []SchemaDescription `json:"models"`
}

// SchemaDescription describes one declared schema.
type SchemaDescription struct {
	Name       string             `json:"name"`
	Collection string             `json:"collection"`
	Fields     []FieldDescription `json:"fields"`
}

// FieldDescription describes one field for introspection. Default and
// Description serialize as null when the declaration leaves them unset, so
// consumers always see every key.
type FieldDescription struct {
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	Required    bool    `json:"required"`
	Default     any     `json:"default"`
	Description *string `json:"description"`
}

// Describe reduces a schema to its per-field introspection form.
// Pure function of the declaration.
func Describe(s Schema) []FieldDescription {
	fields := make([]FieldDescription, len(s.Fields))
	for i, f := range s.Fields {
		var desc *string
		if f.Description != "" {
			d := f.Description
			desc = &d
		}
		fields[i] = FieldDescription{
			Name:        f.Name,
			Type:        string(f.Type),
			Required:    f.IsRequired(),
			Default:     f.Default,
			Description: desc,
		}
	}
	return fields
}

// BuildReport serializes the given schemas, in order, for the introspection
// endpoint. It reads only the declarations and never touches the store;
// calling it twice over the same schemas yields identical output.
func BuildReport(schemas []Schema) Report {
	models := make([]SchemaDescription, len(schemas))
	for i, s := range schemas {
		models[i] = SchemaDescription{
			Name:       s.Name,
			Collection: s.Collection,
			Fields:     Describe(s),
		}
	}
	return Report{Models: models}
}
