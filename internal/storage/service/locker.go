package service

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/allisson/secureshare/internal/storage/domain"
)

// maxReaders is the semaphore weight reserved by a writer. Readers take
// weight 1, so up to maxReaders of them can hold the lock at once while a
// writer excludes everyone.
const maxReaders = 1 << 30

// objectLock is a reader/writer lock with context-bounded acquisition.
//
// refs counts holders plus waiters and is guarded by the registry mutex, not
// by the semaphore: an entry is only removed from the registry when refs hits
// zero while the registry mutex is held, so a goroutine that just looked the
// entry up can never see it evicted underneath itself.
type objectLock struct {
	sem  *semaphore.Weighted
	refs int
}

// lockRegistry hands out per-object reader/writer locks, creating entries on
// first use and evicting them once no holder or waiter remains.
type lockRegistry struct {
	mu    sync.Mutex
	locks map[string]*objectLock
}

func newLockRegistry() *lockRegistry {
	return &lockRegistry{locks: make(map[string]*objectLock)}
}

// acquire takes the lock for key, exclusively or shared, honouring the
// context deadline. On success it returns a release function that must be
// called exactly once; on deadline expiry it returns ErrLockTimeout.
func (r *lockRegistry) acquire(ctx context.Context, key string, exclusive bool) (func(), error) {
	r.mu.Lock()
	lock, ok := r.locks[key]
	if !ok {
		lock = &objectLock{sem: semaphore.NewWeighted(maxReaders)}
		r.locks[key] = lock
	}
	lock.refs++
	r.mu.Unlock()

	weight := int64(1)
	if exclusive {
		weight = maxReaders
	}

	if err := lock.sem.Acquire(ctx, weight); err != nil {
		r.unref(key, lock)
		return nil, domain.ErrLockTimeout
	}

	released := false
	return func() {
		if released {
			return
		}
		released = true
		lock.sem.Release(weight)
		r.unref(key, lock)
	}, nil
}

// unref drops one reference and evicts the entry when nobody holds or awaits it.
func (r *lockRegistry) unref(key string, lock *objectLock) {
	r.mu.Lock()
	defer r.mu.Unlock()
	lock.refs--
	if lock.refs == 0 && r.locks[key] == lock {
		delete(r.locks, key)
	}
}

// size reports the number of resident lock entries. Used by tests to verify
// eviction.
func (r *lockRegistry) size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.locks)
}

// dirLockSet provides one reader/writer mutex per owner subdirectory.
//
// Directory locks guard only the exists/create step and brief I/O, so entries
// are kept for the process lifetime: growth is bounded by the number of
// distinct owners.
type dirLockSet struct {
	mu    sync.Mutex
	locks map[int64]*sync.RWMutex
}

func newDirLockSet() *dirLockSet {
	return &dirLockSet{locks: make(map[int64]*sync.RWMutex)}
}

func (d *dirLockSet) get(ownerID int64) *sync.RWMutex {
	d.mu.Lock()
	defer d.mu.Unlock()
	lock, ok := d.locks[ownerID]
	if !ok {
		lock = &sync.RWMutex{}
		d.locks[ownerID] = lock
	}
	return lock
}
