package service

import (
	"context"

	"github.com/allisson/secureshare/internal/storage/domain"
)

// SaveHandle represents an in-flight asynchronous save. Callers obtain the
// result with Wait.
type SaveHandle struct {
	done chan struct{}
	obj  *domain.StoredObject
	err  error
}

// ResolvedSaveHandle returns a handle that has already completed with the
// given result.
func ResolvedSaveHandle(obj *domain.StoredObject, err error) *SaveHandle {
	h := &SaveHandle{done: make(chan struct{}), obj: obj, err: err}
	close(h.done)
	return h
}

// Wait blocks until the save completes or the context is done, returning the
// stored object or the save error.
func (h *SaveHandle) Wait(ctx context.Context) (*domain.StoredObject, error) {
	select {
	case <-h.done:
		return h.obj, h.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// SaveAsync fires a save in the background and returns a handle to await it.
// Concurrency is bounded by the configured worker count; submissions beyond
// it queue on the worker semaphore. Returns ErrStoreClosed after Close.
func (s *FileStore) SaveAsync(ctx context.Context, ownerID int64, plaintext []byte) (*SaveHandle, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, domain.ErrStoreClosed
	}
	s.wg.Add(1)
	s.mu.Unlock()

	handle := &SaveHandle{done: make(chan struct{})}

	go func() {
		defer s.wg.Done()
		defer close(handle.done)

		if err := s.workers.Acquire(ctx, 1); err != nil {
			handle.err = err
			return
		}
		defer s.workers.Release(1)

		handle.obj, handle.err = s.Save(ctx, ownerID, plaintext)
	}()

	return handle, nil
}
