package formatter

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/nikita1503agarwal/backend-repo-tekn7rlf-t29ckk/core/schema"
)

func testSchema() schema.Schema {
	return schema.CatalogItem()
}

func testReport() schema.Report {
	return schema.BuildReport(schema.Declarations())
}

func testDocuments() []map[string]any {
	return []map[string]any{
		{
			"_id":      "doc-1",
			"title":    "Orion Headphones",
			"price":    129.99,
			"category": "Audio",
			"in_stock": true,
		},
		{
			"_id":      "doc-2",
			"title":    "Nova Smartwatch",
			"price":    199.00,
			"category": "Wearables",
			"in_stock": false,
		},
	}
}

// ===========================================
// Registry Tests
// ===========================================

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r == nil {
		t.Fatal("NewRegistry returned nil")
	}
	if r.Default() != nil {
		t.Error("empty registry should have no default")
	}
}

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(NewTableFormatter()); err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if err := r.Register(NewTableFormatter()); err == nil {
		t.Error("expected error on duplicate registration")
	}
}

func TestRegistry_Get(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(NewJSONFormatter()); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	f, ok := r.Get("json")
	if !ok || f.Name() != "json" {
		t.Errorf("expected json formatter, got %v", f)
	}

	if _, ok := r.Get("csv"); ok {
		t.Error("expected lookup miss for csv")
	}
}

func TestRegistry_Default(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(NewTableFormatter()); err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if err := r.Register(NewJSONFormatter()); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	if got := r.Default().Name(); got != "table" {
		t.Errorf("expected default table, got %q", got)
	}

	if err := r.SetDefault("json"); err != nil {
		t.Fatalf("SetDefault error: %v", err)
	}
	if got := r.Default().Name(); got != "json" {
		t.Errorf("expected default json, got %q", got)
	}

	if err := r.SetDefault("csv"); err == nil {
		t.Error("expected error setting unregistered default")
	}
}

func TestDefaultRegistry_BuiltIns(t *testing.T) {
	for _, name := range []string{"table", "json", "yaml"} {
		f, ok := Get(name)
		if !ok {
			t.Errorf("expected built-in formatter %q", name)
			continue
		}
		if f.Name() != name {
			t.Errorf("formatter %q reports name %q", name, f.Name())
		}
	}
	if Default() == nil || Default().Name() != "table" {
		t.Error("expected table as the default formatter")
	}
	if len(List()) < 3 {
		t.Errorf("expected at least 3 registered formatters, got %v", List())
	}
}

// ===========================================
// Table Formatter Tests
// ===========================================

func TestTableFormatter_FormatReport(t *testing.T) {
	var buf bytes.Buffer
	f := NewTableFormatter()

	if err := f.FormatReport(&buf, testReport(), Options{}); err != nil {
		t.Fatalf("FormatReport error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "CatalogItem (collection: product)") {
		t.Errorf("expected CatalogItem header, got:\n%s", out)
	}
	if !strings.Contains(out, "Order (collection: order)") {
		t.Errorf("expected Order header, got:\n%s", out)
	}
	if !strings.Contains(out, "FIELD") || !strings.Contains(out, "REQUIRED") {
		t.Errorf("expected column headers, got:\n%s", out)
	}
	if !strings.Contains(out, "price") || !strings.Contains(out, "decimal") {
		t.Errorf("expected price field row, got:\n%s", out)
	}
	if !strings.Contains(out, "received") {
		t.Errorf("expected status default in output, got:\n%s", out)
	}
}

func TestTableFormatter_FormatReport_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := NewTableFormatter().FormatReport(&buf, schema.Report{}, Options{}); err != nil {
		t.Fatalf("FormatReport error: %v", err)
	}
	if !strings.Contains(buf.String(), "No schemas registered.") {
		t.Errorf("expected empty notice, got %q", buf.String())
	}
}

func TestTableFormatter_FormatDocuments(t *testing.T) {
	var buf bytes.Buffer
	f := NewTableFormatter()

	if err := f.FormatDocuments(&buf, testSchema(), testDocuments(), Options{}); err != nil {
		t.Fatalf("FormatDocuments error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "_ID") || !strings.Contains(out, "TITLE") {
		t.Errorf("expected uppercase headers, got:\n%s", out)
	}
	if !strings.Contains(out, "Orion Headphones") {
		t.Errorf("expected document row, got:\n%s", out)
	}
	if !strings.Contains(out, "129.99") {
		t.Errorf("expected decimal rendering, got:\n%s", out)
	}
	if !strings.Contains(out, "yes") || !strings.Contains(out, "no") {
		t.Errorf("expected booleans rendered as yes/no, got:\n%s", out)
	}
	// The description column is absent from the documents and renders as a
	// dash.
	if !strings.Contains(out, "-") {
		t.Errorf("expected dash for absent field, got:\n%s", out)
	}
}

func TestTableFormatter_FormatDocuments_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := NewTableFormatter().FormatDocuments(&buf, testSchema(), nil, Options{}); err != nil {
		t.Fatalf("FormatDocuments error: %v", err)
	}
	if !strings.Contains(buf.String(), "No documents found.") {
		t.Errorf("expected empty notice, got %q", buf.String())
	}
}

func TestTableFormatter_FormatDocuments_Columns(t *testing.T) {
	var buf bytes.Buffer
	opts := Options{Columns: []string{"title", "price"}}

	if err := NewTableFormatter().FormatDocuments(&buf, testSchema(), testDocuments(), opts); err != nil {
		t.Fatalf("FormatDocuments error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "TITLE") || strings.Contains(out, "CATEGORY") {
		t.Errorf("expected only requested columns, got:\n%s", out)
	}
}

func TestTableFormatter_FormatDocuments_NoHeader(t *testing.T) {
	var buf bytes.Buffer
	opts := Options{NoHeader: true}

	if err := NewTableFormatter().FormatDocuments(&buf, testSchema(), testDocuments(), opts); err != nil {
		t.Fatalf("FormatDocuments error: %v", err)
	}
	if strings.Contains(buf.String(), "TITLE") {
		t.Errorf("expected no header row, got:\n%s", buf.String())
	}
}

func TestTableFormatter_FormatDocuments_MaxWidth(t *testing.T) {
	var buf bytes.Buffer
	docs := []map[string]any{{
		"_id":   "doc-1",
		"title": strings.Repeat("x", 40),
	}}

	if err := NewTableFormatter().FormatDocuments(&buf, testSchema(), docs, Options{MaxWidth: 10}); err != nil {
		t.Fatalf("FormatDocuments error: %v", err)
	}
	if !strings.Contains(buf.String(), "xxxxxxx...") {
		t.Errorf("expected truncated value, got:\n%s", buf.String())
	}
}

func TestTableFormatter_FormatRecord(t *testing.T) {
	var buf bytes.Buffer
	record := map[string]any{"status": "seeded", "count": 4.0}

	if err := NewTableFormatter().FormatRecord(&buf, record, Options{}); err != nil {
		t.Fatalf("FormatRecord error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Status:") {
		t.Errorf("expected title-cased label, got:\n%s", out)
	}
	if !strings.Contains(out, "seeded") {
		t.Errorf("expected value, got:\n%s", out)
	}
	if !strings.Contains(out, "4") {
		t.Errorf("expected whole float rendered without decimals, got:\n%s", out)
	}
}

func TestTableFormatter_FormatError(t *testing.T) {
	var buf bytes.Buffer
	if err := NewTableFormatter().FormatError(&buf, errors.New("boom")); err != nil {
		t.Fatalf("FormatError error: %v", err)
	}
	if buf.String() != "Error: boom\n" {
		t.Errorf("unexpected error output %q", buf.String())
	}
}

// ===========================================
// JSON Formatter Tests
// ===========================================

func TestJSONFormatter_FormatReport(t *testing.T) {
	var buf bytes.Buffer
	if err := NewJSONFormatter().FormatReport(&buf, testReport(), Options{}); err != nil {
		t.Fatalf("FormatReport error: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	models, ok := decoded["models"].([]any)
	if !ok || len(models) != 2 {
		t.Errorf("expected 2 models, got %v", decoded["models"])
	}
}

func TestJSONFormatter_FormatDocuments(t *testing.T) {
	var buf bytes.Buffer
	if err := NewJSONFormatter().FormatDocuments(&buf, testSchema(), testDocuments(), Options{}); err != nil {
		t.Fatalf("FormatDocuments error: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded["schema"] != "CatalogItem" || decoded["collection"] != "product" {
		t.Errorf("expected schema context, got %v", decoded)
	}
	if decoded["count"] != 2.0 {
		t.Errorf("expected count 2, got %v", decoded["count"])
	}
	items, ok := decoded["items"].([]any)
	if !ok || len(items) != 2 {
		t.Errorf("expected 2 items, got %v", decoded["items"])
	}
}

func TestJSONFormatter_FormatDocuments_Columns(t *testing.T) {
	var buf bytes.Buffer
	opts := Options{Columns: []string{"title"}}

	if err := NewJSONFormatter().FormatDocuments(&buf, testSchema(), testDocuments(), opts); err != nil {
		t.Fatalf("FormatDocuments error: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	first := decoded["items"].([]any)[0].(map[string]any)
	if len(first) != 1 || first["title"] == nil {
		t.Errorf("expected only title column, got %v", first)
	}
}

func TestJSONFormatter_Compact(t *testing.T) {
	var indented, compact bytes.Buffer
	f := NewJSONFormatter()

	if err := f.FormatDocuments(&indented, testSchema(), testDocuments(), Options{}); err != nil {
		t.Fatalf("FormatDocuments error: %v", err)
	}
	if err := f.FormatDocuments(&compact, testSchema(), testDocuments(), Options{Compact: true}); err != nil {
		t.Fatalf("FormatDocuments error: %v", err)
	}
	if compact.Len() >= indented.Len() {
		t.Error("expected compact output to be smaller than indented output")
	}
}

func TestJSONFormatter_FormatError(t *testing.T) {
	var buf bytes.Buffer
	if err := NewJSONFormatter().FormatError(&buf, errors.New("boom")); err != nil {
		t.Fatalf("FormatError error: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded["error"] != "boom" {
		t.Errorf("expected error boom, got %v", decoded["error"])
	}
}

// ===========================================
// YAML Formatter Tests
// ===========================================

func TestYAMLFormatter_FormatReport(t *testing.T) {
	var buf bytes.Buffer
	if err := NewYAMLFormatter().FormatReport(&buf, testReport(), Options{}); err != nil {
		t.Fatalf("FormatReport error: %v", err)
	}

	var decoded map[string]any
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	models, ok := decoded["models"].([]any)
	if !ok || len(models) != 2 {
		t.Errorf("expected 2 models, got %v", decoded["models"])
	}
}

func TestYAMLFormatter_FormatDocuments(t *testing.T) {
	var buf bytes.Buffer
	if err := NewYAMLFormatter().FormatDocuments(&buf, testSchema(), testDocuments(), Options{}); err != nil {
		t.Fatalf("FormatDocuments error: %v", err)
	}

	var decoded map[string]any
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	if decoded["schema"] != "CatalogItem" {
		t.Errorf("expected schema CatalogItem, got %v", decoded["schema"])
	}
	if decoded["count"] != 2 {
		t.Errorf("expected count 2, got %v", decoded["count"])
	}
}

func TestYAMLFormatter_FormatError(t *testing.T) {
	var buf bytes.Buffer
	if err := NewYAMLFormatter().FormatError(&buf, errors.New("boom")); err != nil {
		t.Fatalf("FormatError error: %v", err)
	}
	if !strings.Contains(buf.String(), "error: boom") {
		t.Errorf("unexpected yaml error output %q", buf.String())
	}
}
