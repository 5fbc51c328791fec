package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/brahimakil/balagh-admin-sub001/internal/config"
	"github.com/brahimakil/balagh-admin-sub001/internal/core"
	"github.com/brahimakil/balagh-admin-sub001/internal/logging"
	"github.com/brahimakil/balagh-admin-sub001/internal/schema"
	"github.com/brahimakil/balagh-admin-sub001/internal/store"
	"github.com/brahimakil/balagh-admin-sub001/internal/web"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging based on config
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"store_driver", cfg.Store.Driver,
		"max_workbook_bytes", cfg.Import.MaxWorkbookBytes,
	)

	// Export ceilings come from config
	core.CellCeiling = cfg.Export.CellCeiling
	core.MaxColumnWidth = cfg.Export.MaxColumnWidth

	ctx := context.Background()
	st, cleanup, err := openStore(ctx, cfg)
	if err != nil {
		slog.Error("failed to open document store", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	pipeline := core.New(st, schema.Default)

	slog.Info("collections registered",
		"count", schema.Default.Count(),
		"order", strings.Join(schema.Default.OrderedKeys(), ", "),
	)

	// Create server with config
	server := web.NewServer(pipeline, st, cfg)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	// Start server (uses addr from config internally)
	slog.Info("server starting", "addr", cfg.Server.Addr())
	if err := server.Start(); err != nil {
		slog.Info("server stopped", "error", err)
	}
}

// openStore maps the loaded configuration onto store.Open.
func openStore(ctx context.Context, cfg *config.Config) (store.Store, func(), error) {
	return store.Open(ctx, store.Options{
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
}
