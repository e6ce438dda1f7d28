package formatter

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/nikita1503agarwal/backend-repo-tekn7rlf-t29ckk/core/schema"
)

// JSONFormatter formats output as JSON.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Name returns the formatter name.
func (f *JSONFormatter) Name() string {
	return "json"
}

// Description returns the formatter description.
func (f *JSONFormatter) Description() string {
	return "JSON output format"
}

// FormatReport renders a schema report in the same shape the /schema endpoint
// serves.
func (f *JSONFormatter) FormatReport(w io.Writer, report schema.Report, opts Options) error {
	return f.encode(w, report, opts.Compact)
}

// FormatDocuments renders documents with their schema context.
func (f *JSONFormatter) FormatDocuments(w io.Writer, s schema.Schema, docs []map[string]any, opts Options) error {
	docs = filterColumns(docs, opts.Columns)
	output := map[string]any{
		"schema":     s.Name,
		"collection": s.Collection,
		"count":      len(docs),
		"items":      docs,
	}
	return f.encode(w, output, opts.Compact)
}

// FormatRecord renders a single record as JSON.
func (f *JSONFormatter) FormatRecord(w io.Writer, record map[string]any, opts Options) error {
	return f.encode(w, record, opts.Compact)
}

// FormatError formats an error as JSON.
func (f *JSONFormatter) FormatError(w io.Writer, err error) error {
	return f.encode(w, map[string]any{"error": err.Error()}, false)
}

// encode writes JSON to the writer.
func (f *JSONFormatter) encode(w io.Writer, data any, compact bool) error {
	encoder := json.NewEncoder(w)
	if !compact {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(data)
}

// filterColumns restricts documents to the requested columns. An empty
// request passes documents through untouched.
func filterColumns(docs []map[string]any, columns []string) []map[string]any {
	if len(columns) == 0 {
		return docs
	}
	result := make([]map[string]any, len(docs))
	for i, doc := range docs {
		filtered := make(map[string]any, len(columns))
		for _, col := range columns {
			if val, ok := doc[col]; ok {
				filtered[col] = val
			}
		}
		result[i] = filtered
	}
	return result
}

func init() {
	if err := Register(NewJSONFormatter()); err != nil {
		fmt.Printf("failed to register json formatter: %v\n", err)
	}
}
