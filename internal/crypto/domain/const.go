// Package domain defines core cryptographic domain types shared by the cipher
// services and their consumers.
package domain

// Algorithm represents the AEAD algorithm used for encryption.
//
// Both supported algorithms provide authenticated encryption: confidentiality
// plus tamper detection through an authentication tag. Use AESGCM on CPUs with
// AES-NI hardware acceleration, ChaCha20 elsewhere; both offer 256-bit keys.
type Algorithm string

const (
	// AESGCM represents the AES-256-GCM authenticated encryption algorithm.
	//
	// Key features:
	//   - 256-bit key size
	//   - 12-byte nonce (96 bits)
	//   - 16-byte authentication tag
	//   - Hardware acceleration on modern CPUs
	AESGCM Algorithm = "aes-gcm"

	// ChaCha20 represents the ChaCha20-Poly1305 authenticated encryption algorithm.
	//
	// Key features:
	//   - 256-bit key size
	//   - 12-byte nonce (96 bits)
	//   - 16-byte authentication tag
	//   - Constant-time software implementation
	ChaCha20 Algorithm = "chacha20-poly1305"
)

const (
	// KeySize is the required key length in bytes for both algorithms.
	KeySize = 32

	// NonceSize is the nonce length in bytes (96 bits).
	NonceSize = 12

	// TagSize is the authentication tag length in bytes (128 bits).
	TagSize = 16
)
