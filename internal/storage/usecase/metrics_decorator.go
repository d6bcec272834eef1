package usecase

import (
	"context"
	"time"

	"github.com/allisson/secureshare/internal/metrics"
	storageDomain "github.com/allisson/secureshare/internal/storage/domain"
	storageService "github.com/allisson/secureshare/internal/storage/service"
)

// storeUseCaseWithMetrics decorates StoreUseCase with metrics instrumentation.
type storeUseCaseWithMetrics struct {
	next    StoreUseCase
	metrics metrics.StorageMetrics
}

// NewStoreUseCaseWithMetrics wraps a StoreUseCase with metrics recording.
func NewStoreUseCaseWithMetrics(useCase StoreUseCase, m metrics.StorageMetrics) StoreUseCase {
	return &storeUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Save records metrics for object save operations.
func (s *storeUseCaseWithMetrics) Save(
	ctx context.Context,
	ownerID int64,
	plaintext []byte,
) (*storageDomain.StoredObject, error) {
	start := time.Now()
	obj, err := s.next.Save(ctx, ownerID, plaintext)

	status := "success"
	if err != nil {
		status = "error"
	}

	s.metrics.RecordOperation(ctx, "save", status)
	s.metrics.RecordDuration(ctx, "save", time.Since(start), status)
	if err == nil {
		s.metrics.RecordBytesWritten(ctx, obj.Size)
	}

	return obj, err
}

// SaveAsync records metrics for async save scheduling. Written bytes are
// recorded once the background save resolves, so async writes count toward
// the same volume counter as synchronous ones.
func (s *storeUseCaseWithMetrics) SaveAsync(
	ctx context.Context,
	ownerID int64,
	plaintext []byte,
) (*storageService.SaveHandle, error) {
	start := time.Now()
	handle, err := s.next.SaveAsync(ctx, ownerID, plaintext)

	status := "success"
	if err != nil {
		status = "error"
	}

	s.metrics.RecordOperation(ctx, "save_async", status)
	s.metrics.RecordDuration(ctx, "save_async", time.Since(start), status)

	if err == nil {
		go func() {
			// The handle always resolves: the store drains in-flight
			// saves on Close, so waiting on a background context is safe.
			obj, saveErr := handle.Wait(context.Background())
			if saveErr == nil {
				s.metrics.RecordBytesWritten(context.Background(), obj.Size)
			}
		}()
	}

	return handle, err
}

// Read records metrics for object read operations.
func (s *storeUseCaseWithMetrics) Read(
	ctx context.Context,
	ownerID int64,
	reference string,
) ([]byte, error) {
	start := time.Now()
	plaintext, err := s.next.Read(ctx, ownerID, reference)

	status := "success"
	if err != nil {
		status = "error"
	}

	s.metrics.RecordOperation(ctx, "read", status)
	s.metrics.RecordDuration(ctx, "read", time.Since(start), status)

	return plaintext, err
}

// Delete records metrics for object deletion operations.
func (s *storeUseCaseWithMetrics) Delete(
	ctx context.Context,
	ownerID int64,
	reference string,
) (bool, error) {
	start := time.Now()
	removed, err := s.next.Delete(ctx, ownerID, reference)

	status := "success"
	if err != nil {
		status = "error"
	}

	s.metrics.RecordOperation(ctx, "delete", status)
	s.metrics.RecordDuration(ctx, "delete", time.Since(start), status)

	return removed, err
}

// List records metrics for object listing operations.
func (s *storeUseCaseWithMetrics) List(ctx context.Context, ownerID int64) ([]string, error) {
	start := time.Now()
	references, err := s.next.List(ctx, ownerID)

	status := "success"
	if err != nil {
		status = "error"
	}

	s.metrics.RecordOperation(ctx, "list", status)
	s.metrics.RecordDuration(ctx, "list", time.Since(start), status)

	return references, err
}

// Exists records metrics for object presence checks.
func (s *storeUseCaseWithMetrics) Exists(
	ctx context.Context,
	ownerID int64,
	reference string,
) (bool, error) {
	start := time.Now()
	found, err := s.next.Exists(ctx, ownerID, reference)

	status := "success"
	if err != nil {
		status = "error"
	}

	s.metrics.RecordOperation(ctx, "exists", status)
	s.metrics.RecordDuration(ctx, "exists", time.Since(start), status)

	return found, err
}

// TotalWrites passes through without instrumentation.
func (s *storeUseCaseWithMetrics) TotalWrites() uint64 {
	return s.next.TotalWrites()
}
