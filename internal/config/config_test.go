package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/allisson/secureshare/internal/errors"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := Load()

		assert.Equal(t, "secret", cfg.VaultMountPath)
		assert.Equal(t, "secureshare/database", cfg.VaultDatabasePath)
		assert.Equal(t, "secureshare/encryption", cfg.VaultEncryptionPath)
		assert.Equal(t, int64(10*1024*1024), cfg.MaxObjectSize)
		assert.Equal(t, 30*time.Second, cfg.LockTimeout)
		assert.Equal(t, 4, cfg.AsyncWorkers)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.True(t, cfg.MetricsEnabled)
		assert.Equal(t, "secureshare", cfg.MetricsNamespace)
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("VAULT_ADDR", "http://vault:8200")
		t.Setenv("VAULT_TOKEN", "test-token")
		t.Setenv("STORAGE_ROOT", "/data/objects")
		t.Setenv("MAX_OBJECT_SIZE_BYTES", "1024")
		t.Setenv("ASYNC_WORKERS", "8")
		t.Setenv("LOCK_TIMEOUT_SECONDS", "5")

		cfg := Load()

		assert.Equal(t, "http://vault:8200", cfg.VaultAddress)
		assert.Equal(t, "test-token", cfg.VaultToken)
		assert.Equal(t, "/data/objects", cfg.StorageRoot)
		assert.Equal(t, int64(1024), cfg.MaxObjectSize)
		assert.Equal(t, 8, cfg.AsyncWorkers)
		assert.Equal(t, 5*time.Second, cfg.LockTimeout)
	})
}

func TestConfigValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			VaultAddress:  "http://localhost:8200",
			VaultToken:    "token",
			StorageRoot:   "./uploads",
			MaxObjectSize: 1024,
			AsyncWorkers:  2,
		}
	}

	t.Run("valid configuration", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("missing vault address", func(t *testing.T) {
		cfg := valid()
		cfg.VaultAddress = ""
		err := cfg.Validate()
		assert.ErrorIs(t, err, apperrors.ErrConfiguration)
		assert.Contains(t, err.Error(), "VAULT_ADDR")
	})

	t.Run("missing vault token", func(t *testing.T) {
		cfg := valid()
		cfg.VaultToken = ""
		err := cfg.Validate()
		assert.ErrorIs(t, err, apperrors.ErrConfiguration)
		assert.Contains(t, err.Error(), "VAULT_TOKEN")
	})

	t.Run("missing storage root", func(t *testing.T) {
		cfg := valid()
		cfg.StorageRoot = ""
		assert.ErrorIs(t, cfg.Validate(), apperrors.ErrConfiguration)
	})

	t.Run("non-positive object size", func(t *testing.T) {
		cfg := valid()
		cfg.MaxObjectSize = 0
		assert.ErrorIs(t, cfg.Validate(), apperrors.ErrConfiguration)
	})

	t.Run("async workers below one", func(t *testing.T) {
		cfg := valid()
		cfg.AsyncWorkers = 0
		assert.ErrorIs(t, cfg.Validate(), apperrors.ErrConfiguration)
	})
}

func TestGetGinMode(t *testing.T) {
	assert.Equal(t, "debug", (&Config{LogLevel: "debug"}).GetGinMode())
	assert.Equal(t, "release", (&Config{LogLevel: "info"}).GetGinMode())
	assert.Equal(t, "release", (&Config{LogLevel: "unknown"}).GetGinMode())
}
