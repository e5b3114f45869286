package types

import "errors"

var (
	// ErrNotFound is returned when a mutation targets an id that is not stored
	ErrNotFound = errors.New("record not found")

	// ErrValidation is returned when a record fails its invariants
	ErrValidation = errors.New("validation failed")

	// ErrInvalidTransition is returned when an action is not allowed from the
	// record's current status
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrImmutableField is returned when an update tries to change id or status
	ErrImmutableField = errors.New("field cannot be changed by update")

	// ErrNoLifecycle is returned when a transition is requested on a
	// collection without a status lifecycle
	ErrNoLifecycle = errors.New("collection has no status lifecycle")
)
