package app

import (
	"context"
	"fmt"

	cryptoDomain "github.com/allisson/secureshare/internal/crypto/domain"
	cryptoService "github.com/allisson/secureshare/internal/crypto/service"
)

// Sealer returns the envelope sealer built from Vault key material.
// The key is fetched once; the plaintext key bytes are held in a wipeable
// buffer that is zeroed during container shutdown.
func (c *Container) Sealer() (cryptoService.Sealer, error) {
	var err error
	c.sealerInit.Do(func() {
		c.sealer, err = c.initSealer()
		if err != nil {
			c.initErrors["sealer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["sealer"]; exists {
		return nil, storedErr
	}
	return c.sealer, nil
}

// initSealer fetches key material from Vault and builds the envelope sealer.
func (c *Container) initSealer() (cryptoService.Sealer, error) {
	vaultClient, err := c.VaultClient()
	if err != nil {
		return nil, fmt.Errorf("failed to get vault client for sealer: %w", err)
	}

	keyMaterial, err := vaultClient.EncryptionKey(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch encryption key: %w", err)
	}

	c.keyBuffer = cryptoDomain.NewBuffer(keyMaterial.Key)

	aeadManager := cryptoService.NewAEADManager()
	cipher, err := aeadManager.CreateCipher(c.keyBuffer.Bytes(), keyMaterial.Algorithm)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	return cryptoService.NewEnvelopeSealer(cipher), nil
}
