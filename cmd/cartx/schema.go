package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nikita1503agarwal/backend-repo-tekn7rlf-t29ckk/core/formatter"
	"github.com/nikita1503agarwal/backend-repo-tekn7rlf-t29ckk/core/registry"
	"github.com/nikita1503agarwal/backend-repo-tekn7rlf-t29ckk/core/schema"
)

var (
	schemaFormat string
)

var schemaCmd = &cobra.Command{
	Use:   "schema [name]",
	Short: "Describe the declared schemas",
	Long: `Describe the declared document schemas: fields, types, required
flags, and defaults. This is the same information GET /schema serves.

Examples:
  cartx schema
  cartx schema CatalogItem
  cartx schema Order --format yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSchema,
}

func init() {
	rootCmd.AddCommand(schemaCmd)

	schemaCmd.Flags().StringVar(&schemaFormat, "format", "table", "output format: table, json, yaml")
}

func runSchema(cmd *cobra.Command, args []string) error {
	f, err := lookupFormatter(schemaFormat)
	if err != nil {
		return err
	}

	reg := registry.New()
	for _, s := range schema.Declarations() {
		reg.MustDeclare(s)
	}

	report := reg.Report()
	if len(args) == 1 {
		sch, ok := reg.Get(args[0])
		if !ok {
			return fmt.Errorf("unknown schema %q (have: %s)", args[0], strings.Join(schemaNames(reg), ", "))
		}
		report = schema.BuildReport([]schema.Schema{sch})
	}

	return f.FormatReport(os.Stdout, report, formatter.Options{})
}

func schemaNames(reg *registry.Registry) []string {
	schemas := reg.List()
	names := make([]string, len(schemas))
	for i, s := range schemas {
		names[i] = s.Name
	}
	return names
}
