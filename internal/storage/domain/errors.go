// Package domain defines core domain models and errors for the object store.
package domain

import (
	"github.com/allisson/secureshare/internal/errors"
)

// Object store error definitions.
var (
	// ErrObjectNotFound indicates no stored object exists for the given owner
	// and reference. Recoverable and caller-visible; never used to mask a
	// failed envelope authentication.
	ErrObjectNotFound = errors.Wrap(errors.ErrNotFound, "object not found")

	// ErrStorageFailure indicates an I/O failure while writing, reading or
	// removing an object. Writes are atomic: a failed save leaves no partial
	// file visible.
	ErrStorageFailure = errors.Wrap(errors.ErrUnavailable, "storage failure")

	// ErrLockTimeout indicates an object lock could not be acquired within the
	// configured bound. Callers may retry.
	ErrLockTimeout = errors.Wrap(errors.ErrUnavailable, "lock acquisition timed out")

	// ErrObjectTooLarge indicates the plaintext exceeds the configured maximum
	// object size.
	ErrObjectTooLarge = errors.Wrap(errors.ErrInvalidInput, "object too large")

	// ErrInvalidReference indicates the supplied object reference is not a
	// token this store could have issued.
	ErrInvalidReference = errors.Wrap(errors.ErrInvalidInput, "invalid object reference")

	// ErrInvalidOwner indicates the owner identifier is not valid.
	ErrInvalidOwner = errors.Wrap(errors.ErrInvalidInput, "invalid owner id")

	// ErrStoreClosed indicates the store has been closed and accepts no new
	// operations.
	ErrStoreClosed = errors.Wrap(errors.ErrUnavailable, "store closed")
)
