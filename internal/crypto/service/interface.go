// Package service provides the authenticated-encryption engine used to protect
// stored objects. Implements AEAD ciphers (AES-256-GCM, ChaCha20-Poly1305) and
// the self-describing envelope format persisted to the backing store.
package service

import (
	cryptoDomain "github.com/allisson/secureshare/internal/crypto/domain"
)

// AEAD defines the interface for Authenticated Encryption with Associated Data.
type AEAD interface {
	// Encrypt encrypts plaintext with optional AAD and returns ciphertext and nonce.
	Encrypt(plaintext, aad []byte) (ciphertext, nonce []byte, err error)

	// Decrypt decrypts ciphertext using the provided nonce and AAD.
	Decrypt(ciphertext, nonce, aad []byte) ([]byte, error)
}

// AEADManager defines the interface for creating AEAD cipher instances.
type AEADManager interface {
	// CreateCipher creates an AEAD cipher instance for the specified algorithm.
	CreateCipher(key []byte, alg cryptoDomain.Algorithm) (AEAD, error)
}

// Sealer defines the interface for sealing and opening self-describing
// envelopes. An envelope carries its own nonce and authentication tag, so a
// single opaque byte sequence is all that needs to be persisted.
type Sealer interface {
	// Seal encrypts plaintext into an envelope of the form nonce‖ciphertext‖tag.
	Seal(plaintext []byte) ([]byte, error)

	// Open authenticates and decrypts an envelope produced by Seal.
	// Returns ErrTamperedOrCorrupt if authentication fails or the envelope is
	// shorter than the minimum valid length.
	Open(envelope []byte) ([]byte, error)

	// SealString seals a UTF-8 string and returns the envelope in base64.
	SealString(plaintext string) (string, error)

	// OpenString opens a base64 envelope produced by SealString.
	OpenString(encoded string) (string, error)
}
