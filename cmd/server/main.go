package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/JonMunkholm/streamgraph/internal/config"
	"github.com/JonMunkholm/streamgraph/internal/core"
	"github.com/JonMunkholm/streamgraph/internal/logging"
	"github.com/JonMunkholm/streamgraph/internal/web"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"upload_max_concurrent", cfg.Upload.MaxConcurrent,
		"upload_max_file_size", cfg.Upload.MaxFileSize,
		"rate_limit_enabled", cfg.Rate.Enabled,
	)
	slog.Debug("configuration", "config", cfg.String())

	service, err := core.NewService(cfg)
	if err != nil {
		slog.Error("failed to create service", "error", err)
		os.Exit(1)
	}

	slog.Info("entities configured", "names", service.Entities().Names())

	server := web.NewServer(service, cfg)

	jobCtx, cancelJobs := context.WithCancel(context.Background())

	go service.StartSessionSweeper(jobCtx, core.SweepConfig{
		IdleTTL:  cfg.Session.IdleTTL,
		Interval: cfg.Session.SweepInterval,
	})

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		cancelJobs()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		// Let in-flight file reads finish before the listener goes away.
		if status := service.ReadStatus(); status.Active > 0 {
			slog.Info("waiting for reads to complete", "active", status.Active)
			if err := service.WaitForReads(shutdownCtx); err != nil {
				slog.Warn("reads did not complete in time", "error", err)
			} else {
				slog.Info("all reads completed")
			}
		}

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	slog.Info("server starting", "addr", cfg.Server.Addr())
	if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
