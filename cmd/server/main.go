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
	"golang.org/x/sync/errgroup"

	"github.com/Vadym-Teslytskyy/usermanager/internal/config"
	"github.com/Vadym-Teslytskyy/usermanager/internal/core"
	"github.com/Vadym-Teslytskyy/usermanager/internal/logging"
	"github.com/Vadym-Teslytskyy/usermanager/internal/schema"
	"github.com/Vadym-Teslytskyy/usermanager/internal/store"
	"github.com/Vadym-Teslytskyy/usermanager/internal/telemetry"
	"github.com/Vadym-Teslytskyy/usermanager/internal/web"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logCloser := logging.Setup(cfg.Logging)
	defer logCloser.Close()

	slog.Info("configuration loaded", "config", cfg.String())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := telemetry.Setup(ctx, cfg.Telemetry)
	if err != nil {
		return err
	}

	users, closeDB, err := store.Open(cfg.Database)
	if err != nil {
		return err
	}
	defer closeDB()

	// First use of the lazy pool: connection problems stop startup here.
	if err := schema.Ensure(ctx, users, cfg.Database.Driver); err != nil {
		return err
	}

	service := core.NewService(users)
	server := web.NewServer(cfg, service)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		err := server.Shutdown(shutdownCtx)
		if tErr := shutdownTelemetry(shutdownCtx); tErr != nil {
			slog.Warn("telemetry shutdown", "error", tErr)
		}
		return err
	})

	if err := g.Wait(); err != nil {
		return err
	}
	slog.Info("server stopped")
	return nil
}
