// balaghctl is the operations CLI for the content console: workbook
// import/export, column drift checks, and cleanup of imported records.
// It talks directly to the configured document store using the same
// environment configuration as the server.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/brahimakil/balagh-admin-sub001/internal/config"
	"github.com/brahimakil/balagh-admin-sub001/internal/core"
	"github.com/brahimakil/balagh-admin-sub001/internal/logging"
	"github.com/brahimakil/balagh-admin-sub001/internal/schema"
	"github.com/brahimakil/balagh-admin-sub001/internal/store"
)

// Build-time variables set via ldflags.
var (
	version = "1.0.0"
	commit  = ""
)

var (
	pipeline     *core.Pipeline
	storeCleanup func()
)

func versionString() string {
	if commit != "" {
		return fmt.Sprintf("balaghctl version %s (commit: %s)", version, commit)
	}
	return fmt.Sprintf("balaghctl version %s-dev", version)
}

func main() {
	rootCmd := &cobra.Command{
		Use:          "balaghctl",
		Short:        "balaghctl manages workbook import/export for the content console",
		Version:      versionString(),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Overload()

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
			core.CellCeiling = cfg.Export.CellCeiling
			core.MaxColumnWidth = cfg.Export.MaxColumnWidth

			st, cleanup, err := store.Open(context.Background(), store.Options{
				Driver:          cfg.Store.Driver,
				PostgresURL:     cfg.Store.PostgresURL,
				MaxConns:        cfg.Store.MaxConns,
				MinConns:        cfg.Store.MinConns,
				MaxConnLifetime: cfg.Store.MaxConnLifetime,
				Surreal: store.SurrealConfig{
					URL:       cfg.Store.SurrealURL,
					Namespace: cfg.Store.SurrealNamespace,
					Database:  cfg.Store.SurrealDatabase,
					User:      cfg.Store.SurrealUser,
					Pass:      cfg.Store.SurrealPass,
				},
			})
			if err != nil {
				return fmt.Errorf("open document store: %w", err)
			}

			storeCleanup = cleanup
			pipeline = core.New(st, schema.Default)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if storeCleanup != nil {
				storeCleanup()
			}
		},
	}

	rootCmd.AddCommand(
		newCollectionsCmd(),
		newImportCmd(),
		newExportCmd(),
		newDriftCmd(),
		newPurgeCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
