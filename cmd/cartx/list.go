package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/nikita1503agarwal/backend-repo-tekn7rlf-t29ckk/bootstrap"
	"github.com/nikita1503agarwal/backend-repo-tekn7rlf-t29ckk/core/formatter"
)

var (
	listFormat  string
	listLimit   int64
	listColumns []string
)

var listCmd = &cobra.Command{
	Use:   "list <schema>",
	Short: "List stored documents for a schema",
	Long: `List the documents stored in a schema's collection.

Examples:
  cartx list CatalogItem
  cartx list Order --limit 10
  cartx list CatalogItem --columns title,price --format json`,
	Args: cobra.ExactArgs(1),
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVar(&listFormat, "format", "table", "output format: table, json, yaml")
	listCmd.Flags().Int64Var(&listLimit, "limit", 50, "maximum documents to list")
	listCmd.Flags().StringSliceVar(&listColumns, "columns", nil, "columns to show (default: all schema fields)")
}

func runList(cmd *cobra.Command, args []string) error {
	f, err := lookupFormatter(listFormat)
	if err != nil {
		return err
	}

	app, err := bootstrap.New(bootstrap.Options{ConfigPath: cfgFile})
	if err != nil {
		return fmt.Errorf("error initializing: %w", err)
	}
	defer app.Shutdown()

	sch, ok := app.Registry.Get(args[0])
	if !ok {
		return fmt.Errorf("unknown schema %q (have: %s)", args[0], strings.Join(schemaNames(app.Registry), ", "))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	docs, err := app.Store.List(ctx, sch.Collection, nil, listLimit)
	if err != nil {
		return fmt.Errorf("list %s: %w", sch.Collection, err)
	}

	return f.FormatDocuments(os.Stdout, sch, docs, formatter.Options{Columns: listColumns})
}
