package collection

import (
	"log/slog"
	"time"

	"github.com/arthur-debert/nanotable/nanotable/storage"
)

type options struct {
	adapter   *storage.Adapter
	lifecycle *Lifecycle
	newID     IDGenerator
	now       func() time.Time
	logger    *slog.Logger
	prepend   bool
}

// Option modifies collection configuration
type Option func(*options)

// WithAdapter persists every mutation through adapter
func WithAdapter(adapter *storage.Adapter) Option {
	return func(o *options) {
		o.adapter = adapter
	}
}

// WithLifecycle attaches a status state machine
func WithLifecycle(l *Lifecycle) Option {
	return func(o *options) {
		o.lifecycle = l
	}
}

// WithIDGenerator replaces the default timestamp ids
func WithIDGenerator(gen IDGenerator) Option {
	return func(o *options) {
		o.newID = gen
	}
}

// WithTimeFunc sets the clock used for ids and transition timestamps
func WithTimeFunc(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// WithNewestFirst makes Add insert at the front, as feeds and audit
// trails list their latest entry first
func WithNewestFirst() Option {
	return func(o *options) {
		o.prepend = true
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func buildOptions(opts []Option) options {
	o := options{
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.newID == nil {
		o.newID = TimestampIDs(o.now)
	}
	return o
}
