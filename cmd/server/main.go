package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/docfill/internal/api"
	"github.com/dgallion1/docfill/internal/config"
	"github.com/dgallion1/docfill/internal/placeholder"
	"github.com/dgallion1/docfill/internal/preview"
	"github.com/dgallion1/docfill/internal/session"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		log.Error("failed to create upload dir", "dir", cfg.UploadDir, "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pattern, err := placeholder.CompilePattern(cfg.PlaceholderPattern)
	if err != nil {
		log.Error("invalid placeholder pattern", "error", err)
		os.Exit(1)
	}
	scanner := placeholder.NewScanner(pattern)

	// Initialize session store with TTL eviction.
	store := session.NewStore(cfg.SessionTTL, log)
	store.StartCleanup(ctx, cfg.CleanupInterval)

	// Initialize HTTP server.
	srv := api.NewServer(store, scanner, preview.NewRenderer(), log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		// Sessions are in-memory only; drop them and their temp files.
		store.DestroyAll()
		cancel()
	}()

	log.Info("starting docfill", "port", cfg.Port)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
