package collection

import (
	"fmt"
	"log/slog"

	"github.com/arthur-debert/nanotable/nanotable/storage"
)

// Singleton is a single persisted document, such as a settings form
type Singleton[T any] struct {
	key     string
	value   T
	adapter *storage.Adapter
	logger  *slog.Logger

	lockManager *storage.LockManager
}

// NewSingleton creates a document persisted under key holding initial
// until hydrated. Only the adapter and logger options apply.
func NewSingleton[T any](key string, initial T, opts ...Option) *Singleton[T] {
	o := buildOptions(opts)
	return &Singleton[T]{
		key:         key,
		value:       initial,
		adapter:     o.adapter,
		logger:      o.logger.With("document", key),
		lockManager: storage.NewLockManager(),
	}
}

// Key returns the persistence key
func (s *Singleton[T]) Key() string { return s.key }

// Hydrate loads the persisted document or falls back to seed, reporting
// whether the persisted value was used. A document that fails validation
// is treated as never persisted.
func (s *Singleton[T]) Hydrate(seed T) bool {
	v, ok := storage.Load[T](s.adapter, s.key)
	if ok {
		if err := validate(v); err != nil {
			storage.PersistFailures.WithLabelValues(s.key, "decode").Inc()
			s.logger.Warn("invalid document, using seed data", "error", err)
			ok = false
		}
	}
	if !ok {
		v = seed
	}
	_ = s.lockManager.Execute(storage.WriteOperation, func() error {
		s.value = v
		return nil
	})
	return ok
}

// Get returns the current value
func (s *Singleton[T]) Get() T {
	v, _ := storage.Locked(s.lockManager, storage.ReadOperation, func() (T, error) {
		return s.value, nil
	})
	return v
}

// Set validates and stores v, then persists it
func (s *Singleton[T]) Set(v T) error {
	if err := validate(v); err != nil {
		return fmt.Errorf("%s: %w", s.key, err)
	}
	return s.lockManager.Execute(storage.WriteOperation, func() error {
		s.value = v
		s.adapter.Save(s.key, v)
		Mutations.WithLabelValues(s.key, "set").Inc()
		s.logger.Info("document saved")
		return nil
	})
}

// Update applies fn to the current value and stores the result
func (s *Singleton[T]) Update(fn func(T) (T, error)) (T, error) {
	return storage.Locked(s.lockManager, storage.WriteOperation, func() (T, error) {
		next, err := fn(s.value)
		if err != nil {
			var zero T
			return zero, err
		}
		if err := validate(next); err != nil {
			var zero T
			return zero, fmt.Errorf("%s: %w", s.key, err)
		}
		s.value = next
		s.adapter.Save(s.key, next)
		Mutations.WithLabelValues(s.key, "set").Inc()
		s.logger.Info("document saved")
		return next, nil
	})
}
