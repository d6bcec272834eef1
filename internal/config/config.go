// Package config provides application configuration through environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/allisson/go-env"
	"github.com/joho/godotenv"

	apperrors "github.com/allisson/secureshare/internal/errors"
)

// Config holds all application configuration.
//
// Sensitive material (database credentials, the encryption key) is never part
// of this struct: it lives in Vault and is fetched by the secretstore client.
type Config struct {
	// VaultAddress is the address of the Vault server (e.g., "http://localhost:8200").
	VaultAddress string
	// VaultToken is the token used to authenticate against Vault.
	VaultToken string
	// VaultMountPath is the KV v2 mount where application secrets live.
	VaultMountPath string
	// VaultDatabasePath is the secret path holding database credentials.
	VaultDatabasePath string
	// VaultEncryptionPath is the secret path holding encryption key material.
	VaultEncryptionPath string

	// StorageRoot is the directory under which encrypted objects are stored.
	StorageRoot string
	// MaxObjectSize is the maximum accepted plaintext size in bytes.
	MaxObjectSize int64
	// LockTimeout bounds how long an operation waits for an object lock.
	LockTimeout time.Duration
	// AsyncWorkers is the size of the worker pool for asynchronous saves.
	AsyncWorkers int

	// DatabaseDriver selects the SQL driver ("postgres" or "mysql").
	DatabaseDriver string
	// DBMaxOpenConnections is the maximum number of open connections to the database.
	DBMaxOpenConnections int
	// DBMaxIdleConnections is the maximum number of idle connections in the database pool.
	DBMaxIdleConnections int
	// DBConnMaxLifetime is the maximum amount of time a connection may be reused.
	DBConnMaxLifetime time.Duration

	// LogLevel is the logging level (e.g., "debug", "info", "warn", "error").
	LogLevel string

	// MetricsEnabled indicates whether metrics collection is enabled.
	MetricsEnabled bool
	// MetricsNamespace is the namespace for the application metrics.
	MetricsNamespace string
	// MetricsHost is the host address the metrics server will bind to.
	MetricsHost string
	// MetricsPort is the port number for the metrics server.
	MetricsPort int
}

// Load loads configuration from environment variables and .env file.
func Load() *Config {
	// Try to load .env file recursively
	loadDotEnv()

	return &Config{
		// Vault configuration
		VaultAddress:        env.GetString("VAULT_ADDR", ""),
		VaultToken:          env.GetString("VAULT_TOKEN", ""),
		VaultMountPath:      env.GetString("VAULT_MOUNT_PATH", "secret"),
		VaultDatabasePath:   env.GetString("VAULT_DATABASE_PATH", "secureshare/database"),
		VaultEncryptionPath: env.GetString("VAULT_ENCRYPTION_PATH", "secureshare/encryption"),

		// Storage configuration
		StorageRoot:   env.GetString("STORAGE_ROOT", "./uploads"),
		MaxObjectSize: int64(env.GetInt("MAX_OBJECT_SIZE_BYTES", 10*1024*1024)),
		LockTimeout:   env.GetDuration("LOCK_TIMEOUT_SECONDS", 30, time.Second),
		AsyncWorkers:  env.GetInt("ASYNC_WORKERS", 4),

		// Database configuration
		DatabaseDriver:       env.GetString("DATABASE_DRIVER", "postgres"),
		DBMaxOpenConnections: env.GetInt("DB_MAX_OPEN_CONNECTIONS", 25),
		DBMaxIdleConnections: env.GetInt("DB_MAX_IDLE_CONNECTIONS", 5),
		DBConnMaxLifetime:    env.GetDuration("DB_CONN_MAX_LIFETIME", 5, time.Minute),

		// Logging
		LogLevel: env.GetString("LOG_LEVEL", "info"),

		// Metrics
		MetricsEnabled:   env.GetBool("METRICS_ENABLED", true),
		MetricsNamespace: env.GetString("METRICS_NAMESPACE", "secureshare"),
		MetricsHost:      env.GetString("METRICS_HOST", "0.0.0.0"),
		MetricsPort:      env.GetInt("METRICS_PORT", 8081),
	}
}

// Validate checks that the configuration required for startup is present.
// Secret-service address and credential have no fallback: without them the
// process must not start.
func (c *Config) Validate() error {
	if c.VaultAddress == "" {
		return apperrors.Wrap(apperrors.ErrConfiguration, "VAULT_ADDR is not set")
	}
	if c.VaultToken == "" {
		return apperrors.Wrap(apperrors.ErrConfiguration, "VAULT_TOKEN is not set")
	}
	if c.StorageRoot == "" {
		return apperrors.Wrap(apperrors.ErrConfiguration, "STORAGE_ROOT is not set")
	}
	if c.MaxObjectSize <= 0 {
		return apperrors.Wrap(
			apperrors.ErrConfiguration,
			fmt.Sprintf("MAX_OBJECT_SIZE_BYTES must be positive, got %d", c.MaxObjectSize),
		)
	}
	if c.AsyncWorkers < 1 {
		return apperrors.Wrap(
			apperrors.ErrConfiguration,
			fmt.Sprintf("ASYNC_WORKERS must be at least 1, got %d", c.AsyncWorkers),
		)
	}
	return nil
}

// GetGinMode returns the appropriate Gin mode based on log level.
func (c *Config) GetGinMode() string {
	switch c.LogLevel {
	case "debug":
		return "debug"
	default:
		return "release"
	}
}

// loadDotEnv searches for a .env file recursively from the current directory
// up to the root directory and loads it if found.
func loadDotEnv() {
	// Get current working directory
	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	// Search for .env file recursively up the directory tree
	dir := cwd
	for {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			// .env file found, load it
			_ = godotenv.Load(envPath)
			return
		}

		// Move to parent directory
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root directory
			break
		}
		dir = parent
	}
}
