// Package main is the entry point for the deckd API server, the backend
// of the editable investor-presentation site. It loads configuration,
// picks a storage backend, sets up routing, and starts the HTTP server
// with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"deckd/internal/cache"
	"deckd/internal/config"
	"deckd/internal/database"
	"deckd/internal/handlers"
	"deckd/internal/router"
	"deckd/internal/store"
)

func main() {
	// Structured logger for the whole process.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"storage", cfg.StorageBackend,
	)

	// Pick the storage backend. Memory is the default: the store is
	// reseeded with the default presentation version on every boot and
	// all edits live only in process memory. Postgres is opt-in for
	// operators who want edits to survive restarts.
	var st store.Storage
	switch cfg.StorageBackend {
	case config.BackendPostgres:
		db, err := database.Connect(cfg.DSN())
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		if err := database.Migrate(db); err != nil {
			slog.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
		st = store.NewPostgres(db)
	default:
		st = store.NewMemory()
		slog.Info("using in-memory storage — edits will not survive a restart")
	}

	// Connect to Valkey for the section cache (optional — the API works
	// without it, every read just hits the store).
	var sections *cache.SectionCache
	if cfg.CacheEnabled() {
		valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
		if err != nil {
			slog.Error("failed to connect to valkey", "error", err)
			os.Exit(1)
		}
		defer valkeyClient.Close()
		sections = cache.NewSectionCache(valkeyClient, cache.DefaultSectionTTL)
	} else {
		slog.Info("valkey not configured — section cache disabled")
	}

	// Create the handler group and router.
	api := handlers.NewAPI(st, sections)
	r := router.New(api)

	// Create the HTTP server with sensible timeouts. Every operation is
	// an in-memory or single-row mutation, so short write timeouts are
	// plenty.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
