package storage

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"
)

const defaultTimeout = 3 * time.Second

// Adapter snapshots values into a Blob as JSON and restores them.
//
// Persistence is best-effort caching, not the system of record: Save never
// returns an error and Load reports a missing or malformed value the same way,
// so callers fall back to seed data. A nil *Adapter is valid and behaves as a
// store that never holds anything.
type Adapter struct {
	blob    Blob
	logger  *slog.Logger
	timeout time.Duration
}

// AdapterOption modifies Adapter configuration
type AdapterOption func(*Adapter)

// WithLogger sets the logger used for persistence failures
func WithLogger(logger *slog.Logger) AdapterOption {
	return func(a *Adapter) {
		a.logger = logger
	}
}

// WithTimeout bounds every backend call
func WithTimeout(d time.Duration) AdapterOption {
	return func(a *Adapter) {
		a.timeout = d
	}
}

// NewAdapter wraps a blob backend
func NewAdapter(blob Blob, opts ...AdapterOption) *Adapter {
	a := &Adapter{
		blob:    blob,
		logger:  slog.Default(),
		timeout: defaultTimeout,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Blob returns the underlying backend
func (a *Adapter) Blob() Blob {
	if a == nil {
		return nil
	}
	return a.blob
}

// Save serializes v and writes it under key. Failures are logged and
// counted, never returned.
func (a *Adapter) Save(key string, v any) {
	if a == nil || a.blob == nil {
		return
	}

	data, err := json.Marshal(v)
	if err != nil {
		PersistFailures.WithLabelValues(key, "encode").Inc()
		a.logger.Error("failed to encode snapshot", "key", key, "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
	defer cancel()

	if err := a.blob.Put(ctx, key, data); err != nil {
		PersistFailures.WithLabelValues(key, "write").Inc()
		a.logger.Error("failed to write snapshot", "key", key, "bytes", len(data), "error", err)
		return
	}

	PersistSaves.WithLabelValues(key).Inc()
	a.logger.Debug("snapshot saved", "key", key, "bytes", len(data))
}

// Delete removes the value stored under key, logging failures
func (a *Adapter) Delete(key string) {
	if a == nil || a.blob == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
	defer cancel()

	if err := a.blob.Delete(ctx, key); err != nil {
		PersistFailures.WithLabelValues(key, "delete").Inc()
		a.logger.Error("failed to delete snapshot", "key", key, "error", err)
	}
}

// Load reads and decodes the value stored under key.
// The second result is false when the key is missing, unreadable or holds
// malformed data; all three are treated as never persisted.
func Load[T any](a *Adapter, key string) (T, bool) {
	var zero T
	if a == nil || a.blob == nil {
		return zero, false
	}

	ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
	defer cancel()

	data, err := a.blob.Get(ctx, key)
	if errors.Is(err, ErrNotExist) {
		return zero, false
	}
	if err != nil {
		PersistFailures.WithLabelValues(key, "read").Inc()
		a.logger.Warn("failed to read snapshot, using seed data", "key", key, "error", err)
		return zero, false
	}

	// Empty value is OK, it just means nothing was saved
	if len(data) == 0 {
		return zero, false
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		PersistFailures.WithLabelValues(key, "decode").Inc()
		a.logger.Warn("corrupt snapshot, using seed data", "key", key, "error", err)
		return zero, false
	}
	return v, true
}
