package app

import (
	"fmt"

	secretstoreService "github.com/allisson/secureshare/internal/secretstore/service"
)

// VaultClient returns the Vault secret store client.
func (c *Container) VaultClient() (*secretstoreService.VaultClient, error) {
	var err error
	c.vaultClientInit.Do(func() {
		c.vaultClient, err = c.initVaultClient()
		if err != nil {
			c.initErrors["vaultClient"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["vaultClient"]; exists {
		return nil, storedErr
	}
	return c.vaultClient, nil
}

// initVaultClient creates the Vault client from configuration.
func (c *Container) initVaultClient() (*secretstoreService.VaultClient, error) {
	client, err := secretstoreService.NewVaultClient(secretstoreService.Config{
		Address:        c.config.VaultAddress,
		Token:          c.config.VaultToken,
		MountPath:      c.config.VaultMountPath,
		DatabasePath:   c.config.VaultDatabasePath,
		EncryptionPath: c.config.VaultEncryptionPath,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create vault client: %w", err)
	}
	return client, nil
}
