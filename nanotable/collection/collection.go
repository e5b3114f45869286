// Package collection is the local collection controller: an ordered,
// in-memory store of one record type whose only writer is the mutation
// gateway, which keeps a full snapshot persisted after every change.
package collection

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/arthur-debert/nanotable/nanotable/storage"
	"github.com/arthur-debert/nanotable/types"
)

// maxIDAttempts bounds retries when a generated id is already taken
const maxIDAttempts = 16

// Collection holds the records of one entity type in insertion order
type Collection[T types.Record[T]] struct {
	key       string
	records   []T
	selection *Selection

	adapter   *storage.Adapter
	lifecycle *Lifecycle
	newID     IDGenerator
	now       func() time.Time
	logger    *slog.Logger
	prepend   bool

	lockManager *storage.LockManager
}

// New creates an empty collection persisted under key
func New[T types.Record[T]](key string, opts ...Option) (*Collection[T], error) {
	if key == "" {
		return nil, fmt.Errorf("collection key is required")
	}
	o := buildOptions(opts)
	if o.lifecycle != nil {
		if err := o.lifecycle.Check(); err != nil {
			return nil, fmt.Errorf("collection %s: invalid lifecycle: %w", key, err)
		}
	}
	return &Collection[T]{
		key:         key,
		selection:   NewSelection(),
		adapter:     o.adapter,
		lifecycle:   o.lifecycle,
		newID:       o.newID,
		now:         o.now,
		logger:      o.logger.With("collection", key),
		prepend:     o.prepend,
		lockManager: storage.NewLockManager(),
	}, nil
}

// Key returns the persistence key
func (c *Collection[T]) Key() string { return c.key }

// Lifecycle returns the status state machine, nil for collections without
// a status
func (c *Collection[T]) Lifecycle() *Lifecycle { return c.lifecycle }

// Selection returns the ids checked for bulk actions
func (c *Collection[T]) Selection() *Selection { return c.selection }

// Load replaces the contents with records. It does not persist.
func (c *Collection[T]) Load(records []T) {
	_ = c.lockManager.Execute(storage.WriteOperation, func() error {
		c.records = append([]T(nil), records...)
		c.selection.Retain(func(id string) bool { return c.indexOf(id) >= 0 })
		return nil
	})
}

// Hydrate loads the persisted snapshot, falling back to seed when nothing
// usable was persisted. A snapshot with duplicate ids, statuses outside the
// lifecycle or records that fail validation is not usable. It reports
// whether the snapshot was used.
func (c *Collection[T]) Hydrate(seed []T) bool {
	if persisted, ok := storage.Load[[]T](c.adapter, c.key); ok {
		if err := c.checkSnapshot(persisted); err != nil {
			storage.PersistFailures.WithLabelValues(c.key, "decode").Inc()
			c.logger.Warn("snapshot breaks record invariants, using seed data", "error", err)
		} else {
			c.Load(persisted)
			c.logger.Debug("hydrated from snapshot", "records", len(persisted))
			return true
		}
	}
	c.Load(seed)
	c.logger.Debug("hydrated from seed data", "records", len(seed))
	return false
}

// All returns a copy of the records in insertion order
func (c *Collection[T]) All() []T {
	records, _ := storage.Locked(c.lockManager, storage.ReadOperation, func() ([]T, error) {
		return append([]T{}, c.records...), nil
	})
	return records
}

// Len returns the number of records
func (c *Collection[T]) Len() int {
	n, _ := storage.Locked(c.lockManager, storage.ReadOperation, func() (int, error) {
		return len(c.records), nil
	})
	return n
}

// Get returns the record with id
func (c *Collection[T]) Get(id string) (T, error) {
	return storage.Locked(c.lockManager, storage.ReadOperation, func() (T, error) {
		i := c.indexOf(id)
		if i < 0 {
			var zero T
			return zero, c.notFound(id)
		}
		return c.records[i], nil
	})
}

// Add assigns a fresh id to partial, appends it (or prepends it for
// newest-first collections) and persists. Records with
// a status start in the lifecycle's initial state; supplying any other
// status is a validation error.
func (c *Collection[T]) Add(partial T) (T, error) {
	return storage.Locked(c.lockManager, storage.WriteOperation, func() (T, error) {
		var zero T
		if partial.GetID() != "" {
			return zero, fmt.Errorf("%w: id %q is assigned by the collection", types.ErrValidation, partial.GetID())
		}

		rec := partial
		if s, ok := any(rec).(types.Statused[T]); ok && c.lifecycle != nil {
			initial := c.lifecycle.Initial()
			switch s.GetStatus() {
			case "":
				rec = s.WithStatus(initial)
			case initial:
			default:
				return zero, fmt.Errorf("%w: new records start as %q, got %q", types.ErrValidation, initial, s.GetStatus())
			}
		}

		id, err := c.freshID()
		if err != nil {
			return zero, err
		}
		rec = rec.WithID(id)

		if err := validate(rec); err != nil {
			return zero, err
		}

		if c.prepend {
			c.records = append([]T{rec}, c.records...)
		} else {
			c.records = append(c.records, rec)
		}
		c.persist("add")
		c.logger.Info("record added", "id", id)
		return rec, nil
	})
}

// Update applies patch to the record with id. The patch may not change the
// id or the status; statuses only move through Transition.
func (c *Collection[T]) Update(id string, patch func(T) T) (T, error) {
	return storage.Locked(c.lockManager, storage.WriteOperation, func() (T, error) {
		var zero T
		i := c.indexOf(id)
		if i < 0 {
			return zero, c.notFound(id)
		}

		current := c.records[i]
		updated := patch(current)
		if err := checkImmutable(current, updated); err != nil {
			return zero, err
		}
		if err := validate(updated); err != nil {
			return zero, err
		}

		c.records[i] = updated
		c.persist("update")
		c.logger.Info("record updated", "id", id)
		return updated, nil
	})
}

// Remove deletes the record with id and drops it from the selection
func (c *Collection[T]) Remove(id string) error {
	return c.lockManager.Execute(storage.WriteOperation, func() error {
		i := c.indexOf(id)
		if i < 0 {
			return c.notFound(id)
		}
		c.records = append(c.records[:i:i], c.records[i+1:]...)
		c.selection.Drop(id)
		c.persist("remove")
		c.logger.Info("record removed", "id", id)
		return nil
	})
}

// RemoveMany deletes every listed record that exists, ignoring the rest,
// and returns how many were removed. The snapshot is saved once.
func (c *Collection[T]) RemoveMany(ids []string) int {
	removed, _ := storage.Locked(c.lockManager, storage.WriteOperation, func() (int, error) {
		drop := make(map[string]bool, len(ids))
		for _, id := range ids {
			drop[id] = true
		}

		kept := make([]T, 0, len(c.records))
		for _, rec := range c.records {
			if !drop[rec.GetID()] {
				kept = append(kept, rec)
			}
		}
		removed := len(c.records) - len(kept)
		c.selection.Drop(ids...)
		if removed == 0 {
			return 0, nil
		}

		c.records = kept
		c.persist("remove_many")
		c.logger.Info("records removed", "requested", len(ids), "removed", removed)
		return removed, nil
	})
	return removed
}

// Transition applies a named lifecycle action to the record with id. Records
// implementing types.TransitionHook update their side fields from the
// transition; note is passed through to the hook.
func (c *Collection[T]) Transition(id, action, note string) (T, error) {
	return storage.Locked(c.lockManager, storage.WriteOperation, func() (T, error) {
		var zero T
		if c.lifecycle == nil {
			return zero, fmt.Errorf("%w: %s", types.ErrNoLifecycle, c.key)
		}
		i := c.indexOf(id)
		if i < 0 {
			return zero, c.notFound(id)
		}

		current, ok := any(c.records[i]).(types.Statused[T])
		if !ok {
			return zero, fmt.Errorf("%w: %s records have no status", types.ErrNoLifecycle, c.key)
		}
		from := current.GetStatus()
		to, err := c.lifecycle.Next(from, action)
		if err != nil {
			return zero, fmt.Errorf("%s %s: %w", c.key, id, err)
		}

		rec := current.WithStatus(to)
		if hook, ok := any(rec).(types.TransitionHook[T]); ok {
			rec = hook.OnTransition(types.Transition{
				Action: action,
				From:   from,
				To:     to,
				At:     c.now().UTC(),
				Note:   note,
			})
		}
		if rec.GetID() != id {
			return zero, fmt.Errorf("%w: transition changed id of %s", types.ErrImmutableField, id)
		}
		if s, ok := any(rec).(types.Statused[T]); ok && s.GetStatus() != to {
			return zero, fmt.Errorf("%w: transition hook changed status of %s", types.ErrImmutableField, id)
		}
		if err := validate(rec); err != nil {
			return zero, err
		}

		c.records[i] = rec
		c.persist("transition")
		c.logger.Info("status changed", "id", id, "action", action, "from", from, "to", to)
		return rec, nil
	})
}

// Actions lists the lifecycle actions available to the record with id
func (c *Collection[T]) Actions(id string) ([]string, error) {
	rec, err := c.Get(id)
	if err != nil {
		return nil, err
	}
	s, ok := any(rec).(types.Statused[T])
	if c.lifecycle == nil || !ok {
		return nil, nil
	}
	return c.lifecycle.Actions(s.GetStatus()), nil
}

// Save persists the current snapshot without mutating it
func (c *Collection[T]) Save() {
	_ = c.lockManager.Execute(storage.ReadOperation, func() error {
		c.adapter.Save(c.key, c.records)
		return nil
	})
}

// persist saves the full snapshot; callers hold the write lock
func (c *Collection[T]) persist(op string) {
	snapshot := append([]T{}, c.records...)
	c.adapter.Save(c.key, snapshot)
	Mutations.WithLabelValues(c.key, op).Inc()
}

// checkSnapshot applies the invariants the mutation gateway keeps to
// records read back from storage
func (c *Collection[T]) checkSnapshot(records []T) error {
	seen := make(map[string]bool, len(records))
	for _, rec := range records {
		id := rec.GetID()
		if id == "" {
			return fmt.Errorf("%w: record without id", types.ErrValidation)
		}
		if seen[id] {
			return fmt.Errorf("%w: duplicate id %q", types.ErrValidation, id)
		}
		seen[id] = true

		if s, ok := any(rec).(types.Statused[T]); ok && c.lifecycle != nil && !c.lifecycle.Valid(s.GetStatus()) {
			return fmt.Errorf("%w: %q has unknown status %q", types.ErrValidation, id, s.GetStatus())
		}
		if err := validate(rec); err != nil {
			return fmt.Errorf("record %q: %w", id, err)
		}
	}
	return nil
}

func (c *Collection[T]) indexOf(id string) int {
	for i, rec := range c.records {
		if rec.GetID() == id {
			return i
		}
	}
	return -1
}

func (c *Collection[T]) freshID() (string, error) {
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id := c.newID()
		if id != "" && c.indexOf(id) < 0 {
			return id, nil
		}
	}
	return "", fmt.Errorf("could not generate a unique id for %s after %d attempts", c.key, maxIDAttempts)
}

func (c *Collection[T]) notFound(id string) error {
	return fmt.Errorf("%w: %s %q", types.ErrNotFound, c.key, id)
}

func checkImmutable[T types.Record[T]](before, after T) error {
	if before.GetID() != after.GetID() {
		return fmt.Errorf("%w: id %q", types.ErrImmutableField, before.GetID())
	}
	b, ok := any(before).(types.Statused[T])
	if !ok {
		return nil
	}
	a := any(after).(types.Statused[T])
	if b.GetStatus() != a.GetStatus() {
		return fmt.Errorf("%w: status of %q (use a transition)", types.ErrImmutableField, before.GetID())
	}
	return nil
}

func validate(rec any) error {
	v, ok := rec.(types.Validator)
	if !ok {
		return nil
	}
	if err := v.Validate(); err != nil {
		return fmt.Errorf("%w: %v", types.ErrValidation, err)
	}
	return nil
}
