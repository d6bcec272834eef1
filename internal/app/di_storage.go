package app

import (
	"fmt"

	storageService "github.com/allisson/secureshare/internal/storage/service"
	storageUsecase "github.com/allisson/secureshare/internal/storage/usecase"
)

// FileStore returns the encrypted file store service.
func (c *Container) FileStore() (*storageService.FileStore, error) {
	var err error
	c.fileStoreInit.Do(func() {
		c.fileStore, err = c.initFileStore()
		if err != nil {
			c.initErrors["fileStore"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["fileStore"]; exists {
		return nil, storedErr
	}
	return c.fileStore, nil
}

// StoreUseCase returns the object store use case, decorated with metrics.
func (c *Container) StoreUseCase() (storageUsecase.StoreUseCase, error) {
	var err error
	c.storeUseCaseInit.Do(func() {
		c.storeUseCase, err = c.initStoreUseCase()
		if err != nil {
			c.initErrors["storeUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["storeUseCase"]; exists {
		return nil, storedErr
	}
	return c.storeUseCase, nil
}

// initFileStore creates the file store with the envelope sealer.
func (c *Container) initFileStore() (*storageService.FileStore, error) {
	sealer, err := c.Sealer()
	if err != nil {
		return nil, fmt.Errorf("failed to get sealer for file store: %w", err)
	}

	store, err := storageService.NewFileStore(storageService.Config{
		Root:          c.config.StorageRoot,
		MaxObjectSize: c.config.MaxObjectSize,
		LockTimeout:   c.config.LockTimeout,
		AsyncWorkers:  c.config.AsyncWorkers,
	}, sealer, c.Logger())
	if err != nil {
		return nil, fmt.Errorf("failed to create file store: %w", err)
	}
	return store, nil
}

// initStoreUseCase creates the store use case with all its dependencies.
func (c *Container) initStoreUseCase() (storageUsecase.StoreUseCase, error) {
	store, err := c.FileStore()
	if err != nil {
		return nil, fmt.Errorf("failed to get file store for store use case: %w", err)
	}

	storageMetrics, err := c.StorageMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get storage metrics for store use case: %w", err)
	}

	useCase := storageUsecase.NewStoreUseCase(store, c.Logger())
	return storageUsecase.NewStoreUseCaseWithMetrics(useCase, storageMetrics), nil
}
