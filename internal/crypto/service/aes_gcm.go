package service

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"

	cryptoDomain "github.com/allisson/secureshare/internal/crypto/domain"
)

// AESGCMCipher implements the AEAD interface using AES-256-GCM.
//
// AES-GCM combines AES encryption with GMAC authentication, providing both
// confidentiality and tamper detection. A fresh 12-byte nonce is generated
// from crypto/rand for every encryption; the 16-byte authentication tag is
// appended to the ciphertext by the primitive.
//
// The cipher instance is stateless and safe for concurrent use from multiple
// goroutines.
type AESGCMCipher struct {
	aead cipher.AEAD
}

// NewAESGCM creates a new AES-256-GCM cipher instance.
// The key must be exactly 32 bytes. Keys should come from the secret service
// or crypto/rand, never from a derivation of the content being encrypted.
func NewAESGCM(key []byte) (*AESGCMCipher, error) {
	if len(key) != cryptoDomain.KeySize {
		return nil, cryptoDomain.ErrInvalidKeySize
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return &AESGCMCipher{aead: aead}, nil
}

// Encrypt encrypts plaintext using AES-256-GCM with optional additional
// authenticated data. A unique nonce is generated per call; it must be stored
// alongside the ciphertext for later decryption and must never be reused with
// the same key. The returned ciphertext carries the authentication tag at the
// end.
func (a *AESGCMCipher) Encrypt(plaintext, aad []byte) (ciphertext, nonce []byte, err error) {
	nonce = make([]byte, a.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	ciphertext = a.aead.Seal(nil, nonce, plaintext, aad)
	return ciphertext, nonce, nil
}

// Decrypt decrypts ciphertext using AES-256-GCM with the provided nonce and
// AAD. The authentication tag is verified before any plaintext is returned;
// on failure no partial plaintext leaks to the caller.
func (a *AESGCMCipher) Decrypt(ciphertext, nonce, aad []byte) ([]byte, error) {
	plaintext, err := a.aead.Open(nil, nonce, ciphertext, aad)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt: %w", err)
	}
	return plaintext, nil
}
