// Package service implements the concurrent encrypted file store.
//
// The store owns a directory tree keyed by owner id, then by a random
// per-object token with a ".enc" suffix. Mutation of a single object is
// serialized through a per-object reader/writer lock while operations on
// distinct objects run fully in parallel; a per-owner directory lock
// linearizes subdirectory creation. Everything written to disk is a sealed
// envelope, never plaintext.
package service

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	cryptoService "github.com/allisson/secureshare/internal/crypto/service"
	apperrors "github.com/allisson/secureshare/internal/errors"
	"github.com/allisson/secureshare/internal/storage/domain"
)

// storedSuffix marks files owned by the store; anything else sharing the
// directory is ignored by List.
const storedSuffix = ".enc"

const (
	dirPerm  = 0o700
	filePerm = 0o600
)

// Config holds the file store settings.
type Config struct {
	// Root is the directory under which owner subdirectories are created.
	Root string
	// MaxObjectSize is the maximum accepted plaintext size in bytes.
	MaxObjectSize int64
	// LockTimeout bounds how long an operation waits for an object lock.
	LockTimeout time.Duration
	// AsyncWorkers bounds the number of concurrently running async saves.
	AsyncWorkers int
}

// FileStore stores sealed envelopes on the local filesystem.
//
// The store assumes a single process owns the directory tree; its locks
// coordinate goroutines within that process, not other processes.
type FileStore struct {
	root          string
	maxObjectSize int64
	lockTimeout   time.Duration
	sealer        cryptoService.Sealer
	logger        *slog.Logger

	locks *lockRegistry
	dirs  *dirLockSet

	writes  atomic.Uint64
	workers *semaphore.Weighted

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// NewFileStore creates a FileStore rooted at cfg.Root, creating the root
// directory if needed.
func NewFileStore(cfg Config, sealer cryptoService.Sealer, logger *slog.Logger) (*FileStore, error) {
	if cfg.Root == "" {
		return nil, apperrors.Wrap(apperrors.ErrConfiguration, "storage root is required")
	}
	if cfg.MaxObjectSize <= 0 {
		return nil, apperrors.Wrap(apperrors.ErrConfiguration, "max object size must be positive")
	}
	if cfg.LockTimeout <= 0 {
		cfg.LockTimeout = 30 * time.Second
	}
	if cfg.AsyncWorkers < 1 {
		cfg.AsyncWorkers = 1
	}

	if err := os.MkdirAll(cfg.Root, dirPerm); err != nil {
		return nil, apperrors.Wrap(domain.ErrStorageFailure, "failed to create storage root")
	}

	return &FileStore{
		root:          cfg.Root,
		maxObjectSize: cfg.MaxObjectSize,
		lockTimeout:   cfg.LockTimeout,
		sealer:        sealer,
		logger:        logger,
		locks:         newLockRegistry(),
		dirs:          newDirLockSet(),
		workers:       semaphore.NewWeighted(int64(cfg.AsyncWorkers)),
	}, nil
}

// Save seals plaintext and writes it under the owner's subdirectory at a path
// derived from a fresh random token. The write is atomic: a failed save never
// leaves a partial file visible. Returns the stored object carrying the
// external reference.
func (s *FileStore) Save(ctx context.Context, ownerID int64, plaintext []byte) (*domain.StoredObject, error) {
	if ownerID <= 0 {
		return nil, domain.ErrInvalidOwner
	}
	if int64(len(plaintext)) > s.maxObjectSize {
		return nil, domain.ErrObjectTooLarge
	}

	reference := uuid.NewString()

	lockCtx, cancel := context.WithTimeout(ctx, s.lockTimeout)
	defer cancel()

	release, err := s.locks.acquire(lockCtx, reference, true)
	if err != nil {
		return nil, err
	}
	defer release()

	dirLock := s.dirs.get(ownerID)
	ownerDir := s.ownerDir(ownerID)

	dirLock.RLock()
	if _, err := os.Stat(ownerDir); err != nil {
		// Upgrade to the exclusive directory lock and re-check: a racing
		// goroutine may have created the subdirectory in between.
		dirLock.RUnlock()
		dirLock.Lock()
		if _, err := os.Stat(ownerDir); err != nil {
			if err := os.MkdirAll(ownerDir, dirPerm); err != nil {
				dirLock.Unlock()
				return nil, apperrors.Wrap(domain.ErrStorageFailure, "failed to create owner directory")
			}
		}
		dirLock.Unlock()
		dirLock.RLock()
	}
	defer dirLock.RUnlock()

	envelope, err := s.sealer.Seal(plaintext)
	if err != nil {
		return nil, err
	}

	path := filepath.Join(ownerDir, reference+storedSuffix)
	if err := atomicWrite(path, envelope); err != nil {
		s.logger.Error("object write failed",
			slog.Int64("owner_id", ownerID),
			slog.String("reference", reference),
			slog.Any("error", err),
		)
		return nil, apperrors.Wrap(domain.ErrStorageFailure, "failed to write object")
	}

	s.writes.Add(1)
	s.logger.Debug("object saved",
		slog.Int64("owner_id", ownerID),
		slog.String("reference", reference),
		slog.Int("envelope_size", len(envelope)),
	)

	return &domain.StoredObject{
		OwnerID:   ownerID,
		Reference: reference,
		Path:      path,
		Size:      int64(len(plaintext)),
	}, nil
}

// Read loads the sealed envelope for a reference and opens it.
// A missing file is ErrObjectNotFound; a failed envelope authentication
// propagates unchanged so callers can audit tamper attempts.
func (s *FileStore) Read(ctx context.Context, ownerID int64, reference string) ([]byte, error) {
	if err := checkReference(reference); err != nil {
		return nil, err
	}

	lockCtx, cancel := context.WithTimeout(ctx, s.lockTimeout)
	defer cancel()

	release, err := s.locks.acquire(lockCtx, reference, false)
	if err != nil {
		return nil, err
	}
	defer release()

	dirLock := s.dirs.get(ownerID)
	dirLock.RLock()
	defer dirLock.RUnlock()

	envelope, err := os.ReadFile(s.objectPath(ownerID, reference))
	if err != nil {
		if apperrors.Is(err, fs.ErrNotExist) {
			return nil, domain.ErrObjectNotFound
		}
		return nil, apperrors.Wrap(domain.ErrStorageFailure, "failed to read object")
	}

	return s.sealer.Open(envelope)
}

// Delete removes the stored object if present and reports whether a removal
// occurred. Deleting an absent object returns false, not an error.
func (s *FileStore) Delete(ctx context.Context, ownerID int64, reference string) (bool, error) {
	if err := checkReference(reference); err != nil {
		return false, err
	}

	lockCtx, cancel := context.WithTimeout(ctx, s.lockTimeout)
	defer cancel()

	release, err := s.locks.acquire(lockCtx, reference, true)
	if err != nil {
		return false, err
	}
	defer release()

	dirLock := s.dirs.get(ownerID)
	dirLock.Lock()
	defer dirLock.Unlock()

	if err := os.Remove(s.objectPath(ownerID, reference)); err != nil {
		if apperrors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, apperrors.Wrap(domain.ErrStorageFailure, "failed to remove object")
	}

	s.logger.Debug("object deleted",
		slog.Int64("owner_id", ownerID),
		slog.String("reference", reference),
	)
	return true, nil
}

// List returns the references of all objects stored for an owner. An owner
// without a subdirectory has no objects; entries that are not sealed objects
// are skipped.
func (s *FileStore) List(ctx context.Context, ownerID int64) ([]string, error) {
	dirLock := s.dirs.get(ownerID)
	dirLock.RLock()
	defer dirLock.RUnlock()

	entries, err := os.ReadDir(s.ownerDir(ownerID))
	if err != nil {
		if apperrors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, apperrors.Wrap(domain.ErrStorageFailure, "failed to list owner directory")
	}

	references := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, storedSuffix) {
			continue
		}
		references = append(references, strings.TrimSuffix(name, storedSuffix))
	}
	return references, nil
}

// Exists reports whether an object is present for the owner and reference.
func (s *FileStore) Exists(ctx context.Context, ownerID int64, reference string) (bool, error) {
	if err := checkReference(reference); err != nil {
		return false, err
	}

	dirLock := s.dirs.get(ownerID)
	dirLock.RLock()
	defer dirLock.RUnlock()

	if _, err := os.Stat(s.objectPath(ownerID, reference)); err != nil {
		if apperrors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, apperrors.Wrap(domain.ErrStorageFailure, "failed to stat object")
	}
	return true, nil
}

// TotalWrites returns the number of successful saves since the store was
// created.
func (s *FileStore) TotalWrites() uint64 {
	return s.writes.Load()
}

// Close stops accepting asynchronous saves and waits for in-flight ones to
// finish.
func (s *FileStore) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.wg.Wait()
	return nil
}

func (s *FileStore) ownerDir(ownerID int64) string {
	return filepath.Join(s.root, strconv.FormatInt(ownerID, 10))
}

func (s *FileStore) objectPath(ownerID int64, reference string) string {
	return filepath.Join(s.ownerDir(ownerID), reference+storedSuffix)
}

// checkReference rejects anything that is not a token this store could have
// issued. Tokens are canonical UUID strings, so alternate encodings accepted
// by uuid.Parse (urn prefix, braces, bare hex) are rejected as well. This
// also rules out path traversal.
func checkReference(reference string) error {
	parsed, err := uuid.Parse(reference)
	if err != nil || parsed.String() != reference {
		return domain.ErrInvalidReference
	}
	return nil
}

// atomicWrite commits data to path with write-to-temp-then-rename so readers
// can never observe a partially written file.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	cleanup := func(err error) error {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}

	if err := tmp.Chmod(filePerm); err != nil {
		return cleanup(err)
	}
	if _, err := tmp.Write(data); err != nil {
		return cleanup(err)
	}
	if err := tmp.Sync(); err != nil {
		return cleanup(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
