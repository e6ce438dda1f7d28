package formatter

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/nikita1503agarwal/backend-repo-tekn7rlf-t29ckk/core/schema"
)

// YAMLFormatter formats output as YAML.
type YAMLFormatter struct{}

// NewYAMLFormatter creates a new YAML formatter.
func NewYAMLFormatter() *YAMLFormatter {
	return &YAMLFormatter{}
}

// Name returns the formatter name.
func (f *YAMLFormatter) Name() string {
	return "yaml"
}

// Description returns the formatter description.
func (f *YAMLFormatter) Description() string {
	return "YAML output format"
}

// FormatReport renders a schema report as YAML.
func (f *YAMLFormatter) FormatReport(w io.Writer, report schema.Report, opts Options) error {
	return f.encode(w, report)
}

// FormatDocuments renders documents with their schema context as YAML.
func (f *YAMLFormatter) FormatDocuments(w io.Writer, s schema.Schema, docs []map[string]any, opts Options) error {
	docs = filterColumns(docs, opts.Columns)
	output := map[string]any{
		"schema":     s.Name,
		"collection": s.Collection,
		"count":      len(docs),
		"items":      docs,
	}
	return f.encode(w, output)
}

// FormatRecord renders a single record as YAML.
func (f *YAMLFormatter) FormatRecord(w io.Writer, record map[string]any, opts Options) error {
	return f.encode(w, record)
}

// FormatError formats an error as YAML.
func (f *YAMLFormatter) FormatError(w io.Writer, err error) error {
	return f.encode(w, map[string]any{"error": err.Error()})
}

// encode writes YAML to the writer.
func (f *YAMLFormatter) encode(w io.Writer, data any) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer encoder.Close()
	return encoder.Encode(data)
}

func init() {
	if err := Register(NewYAMLFormatter()); err != nil {
		fmt.Printf("failed to register yaml formatter: %v\n", err)
	}
}
