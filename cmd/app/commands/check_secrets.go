package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/allisson/secureshare/internal/app"
	"github.com/allisson/secureshare/internal/config"
	cryptoDomain "github.com/allisson/secureshare/internal/crypto/domain"
)

// RunCheckSecrets verifies that Vault is reachable and that the secrets the
// application depends on are present and well formed. Intended as a
// pre-deployment check: it fetches the database credentials and the
// encryption key material without starting the store.
func RunCheckSecrets(ctx context.Context, w io.Writer) error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}

	container := app.NewContainer(cfg)
	logger := container.Logger()
	defer closeContainer(container, logger)

	vaultClient, err := container.VaultClient()
	if err != nil {
		return fmt.Errorf("failed to create vault client: %w", err)
	}

	if !vaultClient.Connected(ctx) {
		return fmt.Errorf("vault is not reachable at %s", cfg.VaultAddress)
	}
	fmt.Fprintf(w, "vault: reachable at %s\n", cfg.VaultAddress)

	if _, err := vaultClient.DatabaseCredentials(ctx); err != nil {
		fmt.Fprintf(w, "database credentials (%s): MISSING\n", cfg.VaultDatabasePath)
	} else {
		fmt.Fprintf(w, "database credentials (%s): ok\n", cfg.VaultDatabasePath)
	}

	keyMaterial, err := vaultClient.EncryptionKey(ctx)
	if err != nil {
		return fmt.Errorf("encryption key material (%s): %w", cfg.VaultEncryptionPath, err)
	}
	defer cryptoDomain.Zero(keyMaterial.Key)
	fmt.Fprintf(
		w,
		"encryption key (%s): ok (%s, %d-bit)\n",
		cfg.VaultEncryptionPath,
		keyMaterial.Algorithm,
		keyMaterial.KeySize,
	)

	return nil
}
