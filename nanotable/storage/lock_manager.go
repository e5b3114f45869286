package storage

import (
	"sync"
)

// OperationType defines whether an operation is read or write.
// Reads share the lock, writes hold it exclusively.
type OperationType int

const (
	// ReadOperation indicates an operation that only reads data.
	ReadOperation OperationType = iota

	// WriteOperation indicates an operation that modifies data.
	WriteOperation
)

// LockManager centralizes the locking strategy for in-memory state so every
// collection operation takes the right kind of lock and never relocks.
//
// The store is driven by one logical actor, but library users are free to
// share a collection between goroutines; the RWMutex keeps that safe.
type LockManager struct {
	mu sync.RWMutex
}

// NewLockManager creates a new lock manager instance.
func NewLockManager() *LockManager {
	return &LockManager{}
}

// Execute runs fn while holding the lock matching opType.
//
//	err := lm.Execute(WriteOperation, func() error {
//	    records = append(records, r)
//	    return nil
//	})
func (lm *LockManager) Execute(opType OperationType, fn func() error) error {
	lm.lock(opType)
	defer lm.unlock(opType)
	return fn()
}

// Locked runs fn under the lock matching opType and returns its result.
// It replaces the interface{}-returning variant so callers keep static types.
func Locked[T any](lm *LockManager, opType OperationType, fn func() (T, error)) (T, error) {
	lm.lock(opType)
	defer lm.unlock(opType)
	return fn()
}

func (lm *LockManager) lock(opType OperationType) {
	if opType == ReadOperation {
		lm.mu.RLock()
		return
	}
	lm.mu.Lock()
}

func (lm *LockManager) unlock(opType OperationType) {
	if opType == ReadOperation {
		lm.mu.RUnlock()
		return
	}
	lm.mu.Unlock()
}
