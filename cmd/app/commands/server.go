package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/allisson/secureshare/internal/app"
	"github.com/allisson/secureshare/internal/config"
)

// shutdownTimeout bounds graceful shutdown of the metrics server.
const shutdownTimeout = 30 * time.Second

// RunServer starts the object store with graceful shutdown support.
// Loads configuration, initializes the DI container, fetches secret material
// from Vault, and starts the metrics HTTP server. Startup is fail-fast: if
// Vault is unreachable or the key material is invalid, the process exits
// before serving. Blocks until receiving SIGINT/SIGTERM or encountering a
// fatal error.
func RunServer(ctx context.Context, version string) error {
	// Load and validate configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Set Gin mode based on log level
	gin.SetMode(cfg.GetGinMode())

	// Create DI container
	container := app.NewContainer(cfg)

	// Get logger from container
	logger := container.Logger()
	logger.Info("starting server", slog.String("version", version))

	// Ensure cleanup on exit
	defer closeContainer(container, logger)

	// Build the store use case eagerly: this fetches the encryption key from
	// Vault and fails startup when secret material is missing or invalid.
	if _, err := container.StoreUseCase(); err != nil {
		return fmt.Errorf("failed to initialize object store: %w", err)
	}
	logger.Info("object store ready", slog.String("root", cfg.StorageRoot))

	// Get metrics server from container
	metricsServer, err := container.MetricsServer()
	if err != nil {
		return fmt.Errorf("failed to initialize metrics server: %w", err)
	}

	// Setup graceful shutdown
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Start the metrics server in a goroutine
	serverErr := make(chan error, 1)
	go func() {
		if err := metricsServer.Start(ctx); err != nil {
			serverErr <- fmt.Errorf("metrics server error: %w", err)
		}
	}()

	// Wait for shutdown signal or server error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()

		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("metrics server shutdown: %w", err)
		}
	case err := <-serverErr:
		logger.Error("server error, initiating shutdown", slog.Any("error", err))
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()

		shutdownErrors := []error{err}
		if shutErr := metricsServer.Shutdown(shutdownCtx); shutErr != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics server shutdown: %w", shutErr))
		}

		return errors.Join(shutdownErrors...)
	}

	return nil
}
