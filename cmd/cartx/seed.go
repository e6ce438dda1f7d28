package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/nikita1503agarwal/backend-repo-tekn7rlf-t29ckk/bootstrap"
	"github.com/nikita1503agarwal/backend-repo-tekn7rlf-t29ckk/core/formatter"
)

var (
	seedFormat string
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the sample catalog",
	Long: `Load the four sample products into the product collection.

Seeding is idempotent: when any product already exists, nothing is
inserted and the outcome reports already-seeded.

Examples:
  cartx seed
  cartx seed --format json`,
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)

	seedCmd.Flags().StringVar(&seedFormat, "format", "table", "output format: table, json, yaml")
}

func runSeed(cmd *cobra.Command, args []string) error {
	f, err := lookupFormatter(seedFormat)
	if err != nil {
		return err
	}

	app, err := bootstrap.New(bootstrap.Options{ConfigPath: cfgFile})
	if err != nil {
		return fmt.Errorf("error initializing: %w", err)
	}
	defer app.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	result, err := app.Catalog.Seed(ctx)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	record := map[string]any{"status": result.Status}
	if result.Count > 0 {
		record["count"] = result.Count
	}
	if len(result.IDs) > 0 {
		record["ids"] = result.IDs
	}
	return f.FormatRecord(os.Stdout, record, formatter.Options{})
}
