// Package file stores each key as a JSON document in a directory.
// Writes are atomic (temp file plus rename) and guarded by a cross-process
// lock file so several CLI invocations can share one data directory.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/arthur-debert/nanotable/nanotable/storage"
)

// Constants for file locking
const (
	lockTimeout    = 3 * time.Second
	lockMaxRetries = 3
	lockRetryDelay = 100 * time.Millisecond
)

const (
	lockFileName = ".lock"
	extension    = ".json"
	tmpSuffix    = ".tmp"
)

// Store implements storage.Blob on top of a directory
type Store struct {
	dir string

	fs          FileSystem
	lockFactory FileLockFactory
	fileLock    FileLock
	lockManager *storage.LockManager
}

// New creates a store rooted at dir, creating the directory when needed
func New(dir string, opts ...Option) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("data directory is required")
	}

	s := &Store{
		dir:         dir,
		fs:          OSFileSystem{},
		lockFactory: FlockFactory{},
		lockManager: storage.NewLockManager(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	s.fileLock = s.lockFactory.New(filepath.Join(dir, lockFileName))
	return s, nil
}

// Dir returns the root directory
func (s *Store) Dir() string { return s.dir }

// sanitizeKey keeps keys flat: no separators, no traversal, no hidden files.
func sanitizeKey(key string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", fmt.Errorf("empty key")
	}
	if strings.Contains(key, "..") {
		return "", fmt.Errorf("invalid key %q contains '..'", key)
	}
	if strings.ContainsAny(key, `/\`) {
		return "", fmt.Errorf("invalid key %q contains a path separator", key)
	}
	if strings.HasPrefix(key, ".") {
		return "", fmt.Errorf("invalid key %q starts with '.'", key)
	}
	return key, nil
}

func (s *Store) pathFor(key string) (string, error) {
	k, err := sanitizeKey(key)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.dir, k+extension), nil
}

// Get implements storage.Blob
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	path, err := s.pathFor(key)
	if err != nil {
		return nil, err
	}

	// The file lock is exclusive, so reads are serialized like writes.
	return storage.Locked(s.lockManager, storage.WriteOperation, func() ([]byte, error) {
		var data []byte
		err := s.withFileLock(ctx, func() error {
			var readErr error
			data, readErr = s.fs.ReadFile(path)
			return readErr
		})
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", key, storage.ErrNotExist)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", key, err)
		}
		return data, nil
	})
}

// Put implements storage.Blob
func (s *Store) Put(ctx context.Context, key string, data []byte) error {
	path, err := s.pathFor(key)
	if err != nil {
		return err
	}

	return s.lockManager.Execute(storage.WriteOperation, func() error {
		return s.withFileLock(ctx, func() error {
			// Write to temp file first
			tmpFile := path + tmpSuffix
			if err := s.fs.WriteFile(tmpFile, data, 0o644); err != nil {
				return fmt.Errorf("failed to write temp file: %w", err)
			}

			// Atomic rename
			if err := s.fs.Rename(tmpFile, path); err != nil {
				_ = s.fs.Remove(tmpFile) // Clean up temp file
				return fmt.Errorf("failed to rename temp file: %w", err)
			}
			return nil
		})
	})
}

// Delete implements storage.Blob
func (s *Store) Delete(ctx context.Context, key string) error {
	path, err := s.pathFor(key)
	if err != nil {
		return err
	}

	return s.lockManager.Execute(storage.WriteOperation, func() error {
		return s.withFileLock(ctx, func() error {
			if err := s.fs.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("failed to remove %s: %w", key, err)
			}
			return nil
		})
	})
}

// Keys implements storage.Blob
func (s *Store) Keys(_ context.Context) ([]string, error) {
	return storage.Locked(s.lockManager, storage.ReadOperation, func() ([]string, error) {
		entries, err := s.fs.ReadDir(s.dir)
		if err != nil {
			return nil, fmt.Errorf("failed to list data directory: %w", err)
		}

		var keys []string
		for _, entry := range entries {
			name := entry.Name()
			if entry.IsDir() || strings.HasPrefix(name, ".") || !strings.HasSuffix(name, extension) {
				continue
			}
			keys = append(keys, strings.TrimSuffix(name, extension))
		}
		sort.Strings(keys)
		return keys, nil
	})
}

// Close implements storage.Blob
func (s *Store) Close() error { return nil }

// withFileLock runs fn while holding the cross-process lock
func (s *Store) withFileLock(ctx context.Context, fn func() error) error {
	ctx, cancel := context.WithTimeout(ctx, lockTimeout)
	defer cancel()

	if err := s.acquireLock(ctx); err != nil {
		return err
	}
	defer func() { _ = s.fileLock.Unlock() }()

	return fn()
}

// acquireLock attempts to acquire an exclusive file lock with retry logic
func (s *Store) acquireLock(ctx context.Context) error {
	for i := 0; i < lockMaxRetries; i++ {
		locked, err := s.fileLock.TryLockContext(ctx, lockRetryDelay)
		if err != nil {
			return fmt.Errorf("failed to acquire lock: %w", err)
		}
		if locked {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(lockRetryDelay):
		}
	}

	return fmt.Errorf("failed to acquire lock after %d attempts", lockMaxRetries)
}
