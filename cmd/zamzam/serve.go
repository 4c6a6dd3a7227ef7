package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"zamzam/internal/cache"
	"zamzam/internal/database"
	"zamzam/internal/handlers"
	"zamzam/internal/router"
	"zamzam/internal/storage"
)

func newServeCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}
}

func (a *app) serve(ctx context.Context) error {
	cfg := a.cfg

	db, err := a.connect()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.Migrate(db, cfg.Database.Driver); err != nil {
		return err
	}
	if cfg.Database.Seed {
		admin := database.Admin{
			Username: cfg.Admin.Username,
			Email:    cfg.Admin.Email,
			Password: cfg.Admin.Password,
		}
		if err := database.Seed(ctx, db, admin); err != nil {
			return err
		}
		if !cfg.IsDev() && admin.Password == "admin123" {
			slog.Warn("seeded administrator uses the default password", "username", admin.Username)
		}
	}

	backend, err := storage.New(cfg)
	if err != nil {
		return err
	}

	opts := router.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		MaxBodyBytes:   cfg.Server.MaxBodyBytes,
		RateLimit:      cfg.RateLimit.Requests,
		RateWindow:     cfg.RateLimit.Window,
	}
	if local, ok := backend.(*storage.Local); ok {
		opts.UploadDir = local.Dir()
		opts.UploadPrefix = local.Prefix()
	}

	// Valkey is optional; without it rate limits are kept per process.
	if addr := cfg.ValkeyAddr(); addr != "" {
		client, err := cache.ConnectValkey(addr, cfg.Valkey.Password)
		if err != nil {
			return err
		}
		defer client.Close()
		opts.RateCounter = cache.NewWindowCounter(client)
	} else {
		slog.Info("valkey not configured, rate limits are per process")
	}

	api := handlers.New(db, backend, cfg.Admin.Username)
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router.New(api, opts),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		slog.Info("shutdown signal received")
	}

	// Give active requests up to 30 seconds to complete.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}
