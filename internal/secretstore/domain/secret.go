// Package domain defines the core domain models for secrets fetched from the
// external secret service. Only sensitive material lives here: everything else
// is ordinary environment configuration.
package domain

import (
	cryptoDomain "github.com/allisson/secureshare/internal/crypto/domain"
)

// Credentials holds database access credentials read from the secret service.
type Credentials struct {
	// URL is the database connection URL (driver-specific DSN).
	URL string
	// Username is the database user.
	Username string
	// Password is the database password.
	Password string
}

// KeyMaterial holds the symmetric encryption key and its descriptors as stored
// in the secret service.
type KeyMaterial struct {
	// Key is the raw symmetric key. It must be wiped with cryptoDomain.Zero
	// when no longer needed.
	Key []byte
	// Algorithm identifies the AEAD algorithm the key is intended for.
	Algorithm cryptoDomain.Algorithm
	// KeySize is the declared key size in bits.
	KeySize int
}
