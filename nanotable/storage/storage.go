// Package storage provides the persistence layer for nanotable.
// It defines the key-value Blob interface implemented by the backends under
// this directory and the Adapter that snapshots collections into them.
package storage

import (
	"context"
	"errors"
)

// ErrNotExist is returned by Blob.Get when no value is stored under a key.
// Backends must wrap or return it so callers can use errors.Is.
var ErrNotExist = errors.New("key does not exist")

// Blob is a namespaced key-value store holding one serialized value per key.
// Each collection owns exactly one key and every write replaces the whole
// value, which matches how snapshots are taken.
type Blob interface {
	// Get returns the value stored under key or ErrNotExist
	Get(ctx context.Context, key string) ([]byte, error)

	// Put replaces the value stored under key
	Put(ctx context.Context, key string, data []byte) error

	// Delete removes key; deleting a missing key is not an error
	Delete(ctx context.Context, key string) error

	// Keys lists the stored keys in lexical order
	Keys(ctx context.Context) ([]string, error)

	// Close releases any resources held by the backend
	Close() error
}
