package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nikita1503agarwal/backend-repo-tekn7rlf-t29ckk/core/formatter"
)

var (
	// Global flags
	cfgFile string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "cartx",
	Short: "Storefront backend serving schema-validated documents",
	Long: `CARTX is the storefront backend: products and orders stored as
schema-validated documents over MongoDB, SQLite, or memory.

Quick start:
  cartx serve       # Start the API server
  cartx seed        # Load the sample catalog

Inspection:
  cartx schema      # Describe the declared schemas
  cartx list        # List stored documents
  cartx validate    # Validate configuration`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		formatter.Default().FormatError(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "cartx.yaml", "config file path")
}

// lookupFormatter resolves an output format by name.
func lookupFormatter(name string) (formatter.Formatter, error) {
	f, ok := formatter.Get(name)
	if !ok {
		return nil, fmt.Errorf("unknown format %q (have: %s)", name, strings.Join(formatter.List(), ", "))
	}
	return f, nil
}
