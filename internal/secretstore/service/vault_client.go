// Package service implements the secret store client over HashiCorp Vault.
//
// The client reads two KV v2 documents: database credentials and encryption
// key material. Secrets are cached in memory per path after the first read,
// and there are no fallbacks: a missing secret or field aborts whatever
// startup sequence depends on it.
package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"strconv"
	"sync"

	vault "github.com/hashicorp/vault/api"

	cryptoDomain "github.com/allisson/secureshare/internal/crypto/domain"
	apperrors "github.com/allisson/secureshare/internal/errors"
	"github.com/allisson/secureshare/internal/secretstore/domain"
)

// Config holds the settings needed to reach the Vault server.
type Config struct {
	// Address is the Vault server address (e.g., "http://localhost:8200").
	Address string
	// Token is the authentication token.
	Token string
	// MountPath is the KV v2 mount holding application secrets.
	MountPath string
	// DatabasePath is the secret path exposing {url, username, password}.
	DatabasePath string
	// EncryptionPath is the secret path exposing {aes_key, algorithm, key_size}.
	EncryptionPath string
}

// VaultClient reads and caches secrets from a Vault KV v2 mount.
// It is safe for concurrent use; after the first successful read of a path no
// further network calls are made for it until InvalidateCache.
type VaultClient struct {
	client         *vault.Client
	mountPath      string
	databasePath   string
	encryptionPath string

	mu    sync.RWMutex
	cache map[string]map[string]string
}

// NewVaultClient creates a Vault client from the given configuration.
// Address and token are mandatory: without them the process must not start.
func NewVaultClient(cfg Config) (*VaultClient, error) {
	if cfg.Address == "" {
		return nil, apperrors.Wrap(apperrors.ErrConfiguration, "vault address is required")
	}
	if cfg.Token == "" {
		return nil, apperrors.Wrap(apperrors.ErrConfiguration, "vault token is required")
	}

	vaultCfg := vault.DefaultConfig()
	vaultCfg.Address = cfg.Address

	client, err := vault.NewClient(vaultCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create vault client: %w", err)
	}
	client.SetToken(cfg.Token)

	return &VaultClient{
		client:         client,
		mountPath:      cfg.MountPath,
		databasePath:   cfg.DatabasePath,
		encryptionPath: cfg.EncryptionPath,
		cache:          make(map[string]map[string]string),
	}, nil
}

// DatabaseCredentials returns the database credentials stored in Vault.
// Every field is required; an absent or empty field is an ErrSecretMissing.
func (v *VaultClient) DatabaseCredentials(ctx context.Context) (*domain.Credentials, error) {
	url, err := v.requireValue(ctx, v.databasePath, "url")
	if err != nil {
		return nil, err
	}
	username, err := v.requireValue(ctx, v.databasePath, "username")
	if err != nil {
		return nil, err
	}
	password, err := v.requireValue(ctx, v.databasePath, "password")
	if err != nil {
		return nil, err
	}

	return &domain.Credentials{URL: url, Username: username, Password: password}, nil
}

// EncryptionKey returns the symmetric key material stored in Vault.
// The key arrives base64-encoded and must decode to exactly 32 bytes matching
// the declared key size; anything else is ErrInvalidKeyMaterial.
func (v *VaultClient) EncryptionKey(ctx context.Context) (*domain.KeyMaterial, error) {
	encodedKey, err := v.requireValue(ctx, v.encryptionPath, "aes_key")
	if err != nil {
		return nil, err
	}
	algorithm, err := v.requireValue(ctx, v.encryptionPath, "algorithm")
	if err != nil {
		return nil, err
	}
	keySizeStr, err := v.requireValue(ctx, v.encryptionPath, "key_size")
	if err != nil {
		return nil, err
	}

	key, err := base64.StdEncoding.DecodeString(encodedKey)
	if err != nil {
		return nil, apperrors.Wrap(domain.ErrInvalidKeyMaterial, "aes_key is not valid base64")
	}

	keySize, err := strconv.Atoi(keySizeStr)
	if err != nil {
		return nil, apperrors.Wrap(domain.ErrInvalidKeyMaterial, "key_size is not a number")
	}

	if len(key) != cryptoDomain.KeySize || len(key)*8 != keySize {
		cryptoDomain.Zero(key)
		return nil, apperrors.Wrap(
			domain.ErrInvalidKeyMaterial,
			fmt.Sprintf("expected a %d-bit key, got %d bytes", keySize, len(key)),
		)
	}

	alg := cryptoDomain.Algorithm(algorithm)
	switch alg {
	case cryptoDomain.AESGCM, cryptoDomain.ChaCha20:
	default:
		cryptoDomain.Zero(key)
		return nil, apperrors.Wrap(
			domain.ErrInvalidKeyMaterial,
			fmt.Sprintf("unsupported algorithm %q", algorithm),
		)
	}

	return &domain.KeyMaterial{Key: key, Algorithm: alg, KeySize: keySize}, nil
}

// InvalidateCache clears the in-memory secret cache, forcing the next read of
// every path to hit Vault again. Used after credential rotation.
func (v *VaultClient) InvalidateCache() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.cache = make(map[string]map[string]string)
}

// Connected reports whether Vault is reachable and the database secret is
// accessible. A cached secret counts as connected.
func (v *VaultClient) Connected(ctx context.Context) bool {
	_, err := v.secret(ctx, v.databasePath)
	return err == nil
}

// secret fetches a secret document, consulting the cache first.
func (v *VaultClient) secret(ctx context.Context, path string) (map[string]string, error) {
	v.mu.RLock()
	cached, ok := v.cache[path]
	v.mu.RUnlock()
	if ok {
		return cached, nil
	}

	kvSecret, err := v.client.KVv2(v.mountPath).Get(ctx, path)
	if err != nil {
		if apperrors.Is(err, vault.ErrSecretNotFound) {
			return nil, apperrors.Wrap(domain.ErrSecretMissing, fmt.Sprintf("path %q", path))
		}
		return nil, apperrors.Wrap(domain.ErrSecretUnavailable, err.Error())
	}
	if kvSecret == nil || len(kvSecret.Data) == 0 {
		return nil, apperrors.Wrap(domain.ErrSecretMissing, fmt.Sprintf("path %q is empty", path))
	}

	data := make(map[string]string, len(kvSecret.Data))
	for k, raw := range kvSecret.Data {
		if raw == nil {
			continue
		}
		data[k] = fmt.Sprintf("%v", raw)
	}

	v.mu.Lock()
	v.cache[path] = data
	v.mu.Unlock()

	return data, nil
}

// requireValue returns a mandatory field from a secret document, failing with
// an error that names both the field and the path.
func (v *VaultClient) requireValue(ctx context.Context, path, key string) (string, error) {
	data, err := v.secret(ctx, path)
	if err != nil {
		return "", err
	}

	value, ok := data[key]
	if !ok || value == "" {
		return "", apperrors.Wrap(
			domain.ErrSecretMissing,
			fmt.Sprintf("field %q in path %q", key, path),
		)
	}
	return value, nil
}
