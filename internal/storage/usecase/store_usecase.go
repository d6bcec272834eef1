package usecase

import (
	"context"
	"log/slog"

	validation "github.com/jellydator/validation"

	storageDomain "github.com/allisson/secureshare/internal/storage/domain"
	storageService "github.com/allisson/secureshare/internal/storage/service"
	appvalidation "github.com/allisson/secureshare/internal/validation"
)

// storeUseCase implements the StoreUseCase interface for managing stored objects.
type storeUseCase struct {
	store  FileStore
	logger *slog.Logger
}

// NewStoreUseCase creates a StoreUseCase backed by the given file store.
func NewStoreUseCase(store FileStore, logger *slog.Logger) StoreUseCase {
	return &storeUseCase{
		store:  store,
		logger: logger,
	}
}

func validateOwner(ownerID int64) error {
	return appvalidation.WrapValidationError(
		validation.Validate(ownerID, appvalidation.OwnerID),
	)
}

func validateReference(reference string) error {
	return appvalidation.WrapValidationError(
		validation.Validate(reference, validation.Required, appvalidation.Reference),
	)
}

// Save validates the owner and persists the object through the file store.
func (u *storeUseCase) Save(
	ctx context.Context,
	ownerID int64,
	plaintext []byte,
) (*storageDomain.StoredObject, error) {
	if err := validateOwner(ownerID); err != nil {
		return nil, err
	}

	obj, err := u.store.Save(ctx, ownerID, plaintext)
	if err != nil {
		u.logger.Error("object save failed", "owner_id", ownerID, "error", err)
		return nil, err
	}

	u.logger.Info("object saved", "owner_id", ownerID, "reference", obj.Reference, "size", obj.Size)
	return obj, nil
}

// SaveAsync validates the owner and schedules a background save.
func (u *storeUseCase) SaveAsync(
	ctx context.Context,
	ownerID int64,
	plaintext []byte,
) (*storageService.SaveHandle, error) {
	if err := validateOwner(ownerID); err != nil {
		return nil, err
	}

	handle, err := u.store.SaveAsync(ctx, ownerID, plaintext)
	if err != nil {
		u.logger.Error("async save rejected", "owner_id", ownerID, "error", err)
		return nil, err
	}

	u.logger.Debug("async save scheduled", "owner_id", ownerID)
	return handle, nil
}

// Read validates input and retrieves the decrypted object.
func (u *storeUseCase) Read(ctx context.Context, ownerID int64, reference string) ([]byte, error) {
	if err := validateOwner(ownerID); err != nil {
		return nil, err
	}
	if err := validateReference(reference); err != nil {
		return nil, err
	}

	plaintext, err := u.store.Read(ctx, ownerID, reference)
	if err != nil {
		u.logger.Error("object read failed", "owner_id", ownerID, "reference", reference, "error", err)
		return nil, err
	}

	return plaintext, nil
}

// Delete validates input and removes the object, reporting whether it existed.
func (u *storeUseCase) Delete(ctx context.Context, ownerID int64, reference string) (bool, error) {
	if err := validateOwner(ownerID); err != nil {
		return false, err
	}
	if err := validateReference(reference); err != nil {
		return false, err
	}

	removed, err := u.store.Delete(ctx, ownerID, reference)
	if err != nil {
		u.logger.Error("object delete failed", "owner_id", ownerID, "reference", reference, "error", err)
		return false, err
	}

	u.logger.Info("object delete completed", "owner_id", ownerID, "reference", reference, "removed", removed)
	return removed, nil
}

// List validates the owner and returns the references of its stored objects.
func (u *storeUseCase) List(ctx context.Context, ownerID int64) ([]string, error) {
	if err := validateOwner(ownerID); err != nil {
		return nil, err
	}

	references, err := u.store.List(ctx, ownerID)
	if err != nil {
		u.logger.Error("object list failed", "owner_id", ownerID, "error", err)
		return nil, err
	}

	return references, nil
}

// Exists validates input and reports object presence.
func (u *storeUseCase) Exists(ctx context.Context, ownerID int64, reference string) (bool, error) {
	if err := validateOwner(ownerID); err != nil {
		return false, err
	}
	if err := validateReference(reference); err != nil {
		return false, err
	}

	return u.store.Exists(ctx, ownerID, reference)
}

// TotalWrites returns the store's successful write count.
func (u *storeUseCase) TotalWrites() uint64 {
	return u.store.TotalWrites()
}
