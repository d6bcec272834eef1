// Package usecase defines the interfaces and implementations for object store use cases.
// Use cases validate caller input and orchestrate the encrypted file store service to
// implement per-owner object management.
package usecase

import (
	"context"

	storageDomain "github.com/allisson/secureshare/internal/storage/domain"
	storageService "github.com/allisson/secureshare/internal/storage/service"
)

// FileStore defines the interface for the encrypted object persistence service.
type FileStore interface {
	Save(ctx context.Context, ownerID int64, plaintext []byte) (*storageDomain.StoredObject, error)
	SaveAsync(ctx context.Context, ownerID int64, plaintext []byte) (*storageService.SaveHandle, error)
	Read(ctx context.Context, ownerID int64, reference string) ([]byte, error)
	Delete(ctx context.Context, ownerID int64, reference string) (bool, error)
	List(ctx context.Context, ownerID int64) ([]string, error)
	Exists(ctx context.Context, ownerID int64, reference string) (bool, error)
	TotalWrites() uint64
}

// StoreUseCase defines the interface for object store business logic.
type StoreUseCase interface {
	// Save encrypts and persists an object for the owner, returning its metadata
	// including the generated reference.
	Save(ctx context.Context, ownerID int64, plaintext []byte) (*storageDomain.StoredObject, error)
	// SaveAsync schedules a save on a background worker and returns a handle for
	// awaiting the result.
	SaveAsync(ctx context.Context, ownerID int64, plaintext []byte) (*storageService.SaveHandle, error)
	// Read retrieves and decrypts an object by its reference.
	//
	// Security Note: The returned slice contains plaintext data. Callers handling
	// sensitive payloads should zero it after use via cryptoDomain.Zero.
	Read(ctx context.Context, ownerID int64, reference string) ([]byte, error)
	// Delete removes an object, reporting whether it existed.
	Delete(ctx context.Context, ownerID int64, reference string) (bool, error)
	// List returns the references of all objects stored for the owner.
	List(ctx context.Context, ownerID int64) ([]string, error)
	// Exists reports whether an object is present without decrypting it.
	Exists(ctx context.Context, ownerID int64, reference string) (bool, error)
	// TotalWrites returns the number of successful writes since the store started.
	TotalWrites() uint64
}
