package domain

import (
	"github.com/allisson/secureshare/internal/errors"
)

// Secret service error definitions.
//
// Secret failures during startup are fatal: the application must refuse to
// serve requests rather than substitute defaults for missing secrets.
var (
	// ErrSecretMissing indicates a required secret, or a required field inside
	// a fetched secret, is absent from the secret service.
	ErrSecretMissing = errors.Wrap(errors.ErrConfiguration, "secret missing")

	// ErrSecretUnavailable indicates the secret service could not be reached
	// or the read failed.
	ErrSecretUnavailable = errors.Wrap(errors.ErrUnavailable, "secret service unavailable")

	// ErrInvalidKeyMaterial indicates the encryption key stored in the secret
	// service is malformed (bad encoding or wrong size).
	ErrInvalidKeyMaterial = errors.Wrap(errors.ErrConfiguration, "invalid key material")
)
