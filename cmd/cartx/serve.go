package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nikita1503agarwal/backend-repo-tekn7rlf-t29ckk/bootstrap"
)

var (
	hotReload bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long: `Start the CARTX API server.

The server will:
  - Load configuration from cartx.yaml (or --config)
  - Or run entirely from environment variables
  - Connect to the document store (mongo, sqlite, or memory)
  - Serve the storefront API with validation, events, and metrics

A missing database is not fatal: the server starts degraded and /test
reports the store state.

Environment variables (for Docker deployments):
  DATABASE_URL         - MongoDB connection string
  DATABASE_NAME        - MongoDB database name
  PORT                 - Server port (default: 8000)
  CARTX_STORE_DRIVER   - Store driver: mongo, sqlite, memory, disabled
  CARTX_SQLITE_PATH    - SQLite file path (default: cartx.db)
  CARTX_LOG_LEVEL      - Log level: debug, info, warn, error
  CARTX_SEED_ON_START  - Seed sample products during startup

Examples:
  cartx serve
  cartx serve --config /etc/cartx/config.yaml
  cartx serve --hot-reload=false

  # Docker (env vars only):
  DATABASE_URL=mongodb://localhost:27017 cartx serve`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().BoolVar(&hotReload, "hot-reload", true, "enable hot reload of configuration")
}

func runServe(cmd *cobra.Command, args []string) error {
	app, err := bootstrap.New(bootstrap.Options{
		ConfigPath: cfgFile,
		HotReload:  hotReload,
	})
	if err != nil {
		return fmt.Errorf("error initializing: %w", err)
	}

	// Run (blocks until shutdown)
	return app.Run()
}
