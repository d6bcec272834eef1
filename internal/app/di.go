// Package app provides dependency injection container for assembling application components.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/allisson/secureshare/internal/config"
	cryptoDomain "github.com/allisson/secureshare/internal/crypto/domain"
	cryptoService "github.com/allisson/secureshare/internal/crypto/service"
	"github.com/allisson/secureshare/internal/database"
	"github.com/allisson/secureshare/internal/http"
	"github.com/allisson/secureshare/internal/metrics"
	secretstoreService "github.com/allisson/secureshare/internal/secretstore/service"
	storageService "github.com/allisson/secureshare/internal/storage/service"
	storageUsecase "github.com/allisson/secureshare/internal/storage/usecase"
)

// Container holds all application dependencies and provides methods to access them.
// It follows the lazy initialization pattern - components are created on first access.
type Container struct {
	// Configuration
	config *config.Config

	// Infrastructure
	logger *slog.Logger
	db     *sql.DB

	// Secret store
	vaultClient *secretstoreService.VaultClient

	// Crypto
	keyBuffer *cryptoDomain.Buffer
	sealer    cryptoService.Sealer

	// Storage
	fileStore    *storageService.FileStore
	storeUseCase storageUsecase.StoreUseCase

	// Metrics
	metricsProvider *metrics.Provider
	storageMetrics  metrics.StorageMetrics
	metricsServer   *http.MetricsServer

	// Initialization flags and mutex for thread-safety
	mu                  sync.Mutex
	loggerInit          sync.Once
	dbInit              sync.Once
	vaultClientInit     sync.Once
	sealerInit          sync.Once
	fileStoreInit       sync.Once
	storeUseCaseInit    sync.Once
	metricsProviderInit sync.Once
	storageMetricsInit  sync.Once
	metricsServerInit   sync.Once
	initErrors          map[string]error
}

// NewContainer creates a new dependency injection container with the provided configuration.
func NewContainer(cfg *config.Config) *Container {
	return &Container{
		config:     cfg,
		initErrors: make(map[string]error),
	}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the configured logger instance.
// It creates a new logger on first access based on the log level in configuration.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// DB returns the database connection.
// Credentials are fetched from Vault on first access.
func (c *Container) DB() (*sql.DB, error) {
	var err error
	c.dbInit.Do(func() {
		c.db, err = c.initDB()
		if err != nil {
			c.initErrors["db"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["db"]; exists {
		return nil, storedErr
	}
	return c.db, nil
}

// MetricsProvider returns the metrics provider instance.
// Returns nil if metrics are disabled in configuration.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	var err error
	c.metricsProviderInit.Do(func() {
		c.metricsProvider, err = c.initMetricsProvider()
		if err != nil {
			c.initErrors["metricsProvider"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["metricsProvider"]; exists {
		return nil, storedErr
	}
	return c.metricsProvider, nil
}

// StorageMetrics returns the storage metrics recorder.
// Returns a no-op implementation when metrics are disabled.
func (c *Container) StorageMetrics() (metrics.StorageMetrics, error) {
	var err error
	c.storageMetricsInit.Do(func() {
		c.storageMetrics, err = c.initStorageMetrics()
		if err != nil {
			c.initErrors["storageMetrics"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["storageMetrics"]; exists {
		return nil, storedErr
	}
	return c.storageMetrics, nil
}

// MetricsServer returns the metrics HTTP server instance.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	var err error
	c.metricsServerInit.Do(func() {
		c.metricsServer, err = c.initMetricsServer()
		if err != nil {
			c.initErrors["metricsServer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["metricsServer"]; exists {
		return nil, storedErr
	}
	return c.metricsServer, nil
}

// Shutdown performs cleanup of all initialized resources.
// It should be called when the application is shutting down.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var shutdownErrors []error

	// Shutdown metrics server if initialized
	if c.metricsServer != nil {
		if err := c.metricsServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}

	// Close the file store, draining in-flight async saves
	if c.fileStore != nil {
		if err := c.fileStore.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("file store close: %w", err))
		}
	}

	// Close database connection if initialized
	if c.db != nil {
		if err := c.db.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("database close: %w", err))
		}
	}

	// Wipe the encryption key from memory
	if c.keyBuffer != nil {
		if err := c.keyBuffer.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("key buffer close: %w", err))
		}
	}

	// Shutdown metrics provider if initialized
	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	// Return combined errors if any occurred
	if len(shutdownErrors) > 0 {
		return fmt.Errorf("shutdown errors: %v", shutdownErrors)
	}

	return nil
}

// initLogger creates and configures a structured logger based on the log level.
func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})

	return slog.New(handler)
}

// initDB creates the database connection using credentials fetched from Vault.
func (c *Container) initDB() (*sql.DB, error) {
	vaultClient, err := c.VaultClient()
	if err != nil {
		return nil, fmt.Errorf("failed to get vault client for database: %w", err)
	}

	creds, err := vaultClient.DatabaseCredentials(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch database credentials: %w", err)
	}

	db, err := database.Connect(database.Config{
		Driver:             c.config.DatabaseDriver,
		MaxOpenConnections: c.config.DBMaxOpenConnections,
		MaxIdleConnections: c.config.DBMaxIdleConnections,
		ConnMaxLifetime:    c.config.DBConnMaxLifetime,
	}, creds)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// initMetricsProvider creates the metrics provider when metrics are enabled.
func (c *Container) initMetricsProvider() (*metrics.Provider, error) {
	if !c.config.MetricsEnabled {
		return nil, nil
	}

	provider, err := metrics.NewProvider(c.config.MetricsNamespace)
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics provider: %w", err)
	}
	return provider, nil
}

// initStorageMetrics creates the storage metrics recorder.
func (c *Container) initStorageMetrics() (metrics.StorageMetrics, error) {
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for storage metrics: %w", err)
	}
	if provider == nil {
		return metrics.NewNoOpStorageMetrics(), nil
	}

	storageMetrics, err := metrics.NewStorageMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage metrics: %w", err)
	}
	return storageMetrics, nil
}

// initMetricsServer creates the metrics HTTP server with all its dependencies.
func (c *Container) initMetricsServer() (*http.MetricsServer, error) {
	logger := c.Logger()

	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for metrics server: %w", err)
	}

	var readiness http.ReadinessProbe
	if vaultClient, err := c.VaultClient(); err == nil {
		readiness = vaultClient.Connected
	}

	server := http.NewMetricsServer(
		c.config.MetricsHost,
		c.config.MetricsPort,
		logger,
		provider,
		readiness,
	)

	return server, nil
}
