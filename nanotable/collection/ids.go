package collection

import (
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
)

// IDGenerator returns a fresh identifier on each call
type IDGenerator func() string

// TimestampIDs derives ids from the current time in milliseconds, like the
// console did, but never hands out the same value twice: a call within the
// same millisecond as the previous one gets the previous value plus one.
func TimestampIDs(now func() time.Time) IDGenerator {
	var (
		mu   sync.Mutex
		last int64
	)
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		v := now().UnixMilli()
		if v <= last {
			v = last + 1
		}
		last = v
		return strconv.FormatInt(v, 10)
	}
}

// UUIDs generates random version 4 UUIDs
func UUIDs() IDGenerator {
	return uuid.NewString
}
