package formatter

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/nikita1503agarwal/backend-repo-tekn7rlf-t29ckk/core/schema"
)

// TableFormatter formats output as aligned text tables.
type TableFormatter struct{}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter() *TableFormatter {
	return &TableFormatter{}
}

// Name returns the formatter name.
func (f *TableFormatter) Name() string {
	return "table"
}

// Description returns the formatter description.
func (f *TableFormatter) Description() string {
	return "Aligned text table output"
}

// FormatReport renders one block per schema with its fields as rows.
func (f *TableFormatter) FormatReport(w io.Writer, report schema.Report, opts Options) error {
	if len(report.Models) == 0 {
		fmt.Fprintln(w, "No schemas registered.")
		return nil
	}

	for i, model := range report.Models {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s (collection: %s)\n", model.Name, model.Collection)

		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		if !opts.NoHeader {
			fmt.Fprintln(tw, "FIELD\tTYPE\tREQUIRED\tDEFAULT\tDESCRIPTION")
		}
		for _, field := range model.Fields {
			desc := ""
			if field.Description != nil {
				desc = *field.Description
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
				field.Name,
				field.Type,
				boolWord(field.Required),
				f.formatValue(field.Default, opts.MaxWidth),
				desc,
			)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	return nil
}

// FormatDocuments renders documents as a table with one column per declared
// field, led by the identifier.
func (f *TableFormatter) FormatDocuments(w io.Writer, s schema.Schema, docs []map[string]any, opts Options) error {
	if len(docs) == 0 {
		fmt.Fprintln(w, "No documents found.")
		return nil
	}

	columns := f.resolveColumns(s, opts.Columns)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if !opts.NoHeader {
		headers := make([]string, len(columns))
		for i, col := range columns {
			headers[i] = strings.ToUpper(col)
		}
		fmt.Fprintln(tw, strings.Join(headers, "\t"))
	}

	for _, doc := range docs {
		values := make([]string, len(columns))
		for i, col := range columns {
			values[i] = f.formatValue(doc[col], opts.MaxWidth)
		}
		fmt.Fprintln(tw, strings.Join(values, "\t"))
	}

	return tw.Flush()
}

// FormatRecord renders a record as label/value lines.
func (f *TableFormatter) FormatRecord(w io.Writer, record map[string]any, opts Options) error {
	if record == nil {
		fmt.Fprintln(w, "Record not found.")
		return nil
	}

	keys := opts.Columns
	if len(keys) == 0 {
		keys = sortedKeys(record)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, key := range keys {
		fmt.Fprintf(tw, "%s:\t%s\n", f.formatLabel(key), f.formatValue(record[key], 0))
	}
	return tw.Flush()
}

// FormatError formats an error message.
func (f *TableFormatter) FormatError(w io.Writer, err error) error {
	fmt.Fprintf(w, "Error: %s\n", err.Error())
	return nil
}

// resolveColumns determines which columns to display.
func (f *TableFormatter) resolveColumns(s schema.Schema, requested []string) []string {
	if len(requested) > 0 {
		return requested
	}
	return append([]string{"_id"}, s.FieldNames()...)
}

// formatLabel converts snake_case to Title Case.
func (f *TableFormatter) formatLabel(name string) string {
	words := strings.Split(name, "_")
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + word[1:]
		}
	}
	return strings.Join(words, " ")
}

// formatValue formats a value for display.
func (f *TableFormatter) formatValue(val any, maxWidth int) string {
	if val == nil {
		return "-"
	}

	var str string
	switch v := val.(type) {
	case string:
		str = v
	case bool:
		str = boolWord(v)
	case float64:
		if v == float64(int64(v)) {
			str = fmt.Sprintf("%d", int64(v))
		} else {
			str = fmt.Sprintf("%.2f", v)
		}
	default:
		b, _ := json.Marshal(v)
		str = string(b)
	}

	if maxWidth > 3 && len(str) > maxWidth {
		str = str[:maxWidth-3] + "..."
	}

	return str
}

func boolWord(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func sortedKeys(record map[string]any) []string {
	keys := make([]string, 0, len(record))
	for k := range record {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func init() {
	if err := Register(NewTableFormatter()); err != nil {
		fmt.Printf("failed to register table formatter: %v\n", err)
	}
}
