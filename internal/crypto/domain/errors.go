package domain

import (
	"github.com/allisson/secureshare/internal/errors"
)

// Cryptographic operation error definitions.
var (
	// ErrUnsupportedAlgorithm indicates the requested encryption algorithm is
	// not supported. Supported algorithms: AESGCM (AES-256-GCM) and ChaCha20
	// (ChaCha20-Poly1305).
	ErrUnsupportedAlgorithm = errors.Wrap(errors.ErrInvalidInput, "unsupported algorithm")

	// ErrInvalidKeySize indicates the cryptographic key size is invalid.
	// All keys must be exactly 32 bytes (256 bits).
	ErrInvalidKeySize = errors.Wrap(errors.ErrInvalidInput, "invalid key size")

	// ErrTamperedOrCorrupt indicates an envelope failed authentication or is
	// malformed.
	//
	// This covers a wrong decryption key, a flipped bit anywhere in the
	// envelope, and an envelope shorter than nonce plus tag. The specific
	// cause is deliberately not disclosed: distinguishing "wrong key" from
	// "corrupted data" would hand an oracle to attackers.
	ErrTamperedOrCorrupt = errors.Wrap(errors.ErrInvalidInput, "envelope tampered or corrupt")
)
