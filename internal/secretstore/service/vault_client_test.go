package service

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/secureshare/internal/crypto/domain"
	apperrors "github.com/allisson/secureshare/internal/errors"
	"github.com/allisson/secureshare/internal/secretstore/domain"
	"github.com/allisson/secureshare/internal/testutil"
)

const (
	testDatabasePath   = "secureshare/database"
	testEncryptionPath = "secureshare/encryption"
)

func newTestClient(t *testing.T, fake *testutil.FakeVault) *VaultClient {
	t.Helper()

	client, err := NewVaultClient(Config{
		Address:        fake.Address(),
		Token:          testutil.FakeVaultToken,
		MountPath:      "secret",
		DatabasePath:   testDatabasePath,
		EncryptionPath: testEncryptionPath,
	})
	require.NoError(t, err)
	return client
}

func seedSecrets(fake *testutil.FakeVault) {
	fake.SetSecret(testDatabasePath, map[string]any{
		"url":      "postgres://localhost:5432/secureshare?sslmode=disable",
		"username": "app",
		"password": "s3cret",
	})
	fake.SetSecret(testEncryptionPath, map[string]any{
		"aes_key":   base64.StdEncoding.EncodeToString(make([]byte, 32)),
		"algorithm": "aes-gcm",
		"key_size":  "256",
	})
}

func TestNewVaultClient(t *testing.T) {
	t.Run("missing address", func(t *testing.T) {
		_, err := NewVaultClient(Config{Token: "token"})
		assert.ErrorIs(t, err, apperrors.ErrConfiguration)
	})

	t.Run("missing token", func(t *testing.T) {
		_, err := NewVaultClient(Config{Address: "http://localhost:8200"})
		assert.ErrorIs(t, err, apperrors.ErrConfiguration)
	})
}

func TestVaultClient_DatabaseCredentials(t *testing.T) {
	fake := testutil.NewFakeVault()
	defer fake.Close()
	seedSecrets(fake)

	client := newTestClient(t, fake)
	ctx := context.Background()

	t.Run("returns all fields", func(t *testing.T) {
		creds, err := client.DatabaseCredentials(ctx)
		require.NoError(t, err)
		assert.Equal(t, "postgres://localhost:5432/secureshare?sslmode=disable", creds.URL)
		assert.Equal(t, "app", creds.Username)
		assert.Equal(t, "s3cret", creds.Password)
	})

	t.Run("missing field names field and path", func(t *testing.T) {
		fake.SetSecret(testDatabasePath, map[string]any{"url": "postgres://x"})
		fresh := newTestClient(t, fake)

		_, err := fresh.DatabaseCredentials(ctx)
		assert.ErrorIs(t, err, domain.ErrSecretMissing)
		assert.Contains(t, err.Error(), "username")
		assert.Contains(t, err.Error(), testDatabasePath)
	})
}

func TestVaultClient_EncryptionKey(t *testing.T) {
	fake := testutil.NewFakeVault()
	defer fake.Close()
	seedSecrets(fake)

	ctx := context.Background()

	t.Run("returns decoded key material", func(t *testing.T) {
		client := newTestClient(t, fake)

		km, err := client.EncryptionKey(ctx)
		require.NoError(t, err)
		assert.Len(t, km.Key, 32)
		assert.Equal(t, cryptoDomain.AESGCM, km.Algorithm)
		assert.Equal(t, 256, km.KeySize)
	})

	t.Run("missing secret document fails fast", func(t *testing.T) {
		fake.DeleteSecret(testEncryptionPath)
		defer seedSecrets(fake)

		client := newTestClient(t, fake)
		_, err := client.EncryptionKey(ctx)
		assert.ErrorIs(t, err, domain.ErrSecretMissing)
	})

	t.Run("key not base64", func(t *testing.T) {
		fake.SetSecret(testEncryptionPath, map[string]any{
			"aes_key": "!!!", "algorithm": "aes-gcm", "key_size": "256",
		})
		defer seedSecrets(fake)

		client := newTestClient(t, fake)
		_, err := client.EncryptionKey(ctx)
		assert.ErrorIs(t, err, domain.ErrInvalidKeyMaterial)
	})

	t.Run("key size mismatch", func(t *testing.T) {
		fake.SetSecret(testEncryptionPath, map[string]any{
			"aes_key":   base64.StdEncoding.EncodeToString(make([]byte, 16)),
			"algorithm": "aes-gcm",
			"key_size":  "256",
		})
		defer seedSecrets(fake)

		client := newTestClient(t, fake)
		_, err := client.EncryptionKey(ctx)
		assert.ErrorIs(t, err, domain.ErrInvalidKeyMaterial)
	})

	t.Run("unsupported algorithm", func(t *testing.T) {
		fake.SetSecret(testEncryptionPath, map[string]any{
			"aes_key":   base64.StdEncoding.EncodeToString(make([]byte, 32)),
			"algorithm": "des",
			"key_size":  "256",
		})
		defer seedSecrets(fake)

		client := newTestClient(t, fake)
		_, err := client.EncryptionKey(ctx)
		assert.ErrorIs(t, err, domain.ErrInvalidKeyMaterial)
	})
}

func TestVaultClient_Caching(t *testing.T) {
	fake := testutil.NewFakeVault()
	defer fake.Close()
	seedSecrets(fake)

	client := newTestClient(t, fake)
	ctx := context.Background()

	t.Run("second read hits the cache", func(t *testing.T) {
		_, err := client.EncryptionKey(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, fake.Reads(testEncryptionPath))

		_, err = client.EncryptionKey(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, fake.Reads(testEncryptionPath), "cached read must not hit the network")
	})

	t.Run("invalidate forces a refetch", func(t *testing.T) {
		client.InvalidateCache()

		_, err := client.EncryptionKey(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, fake.Reads(testEncryptionPath))
	})
}

func TestVaultClient_Connected(t *testing.T) {
	fake := testutil.NewFakeVault()
	defer fake.Close()
	seedSecrets(fake)

	ctx := context.Background()

	t.Run("reachable with secrets", func(t *testing.T) {
		client := newTestClient(t, fake)
		assert.True(t, client.Connected(ctx))
	})

	t.Run("missing database secret", func(t *testing.T) {
		fake.DeleteSecret(testDatabasePath)
		defer seedSecrets(fake)

		client := newTestClient(t, fake)
		assert.False(t, client.Connected(ctx))
	})
}
