// Package testutil builds the seeded admin console, finance hub and
// vetting center that command tests run against, plus assertion helpers
// for collections and persisted snapshots.
package testutil

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/arthur-debert/nanotable/internal/admin"
	"github.com/arthur-debert/nanotable/internal/finance"
	"github.com/arthur-debert/nanotable/internal/vetting"
	"github.com/arthur-debert/nanotable/nanotable/collection"
	"github.com/arthur-debert/nanotable/nanotable/storage"
	"github.com/arthur-debert/nanotable/nanotable/storage/memory"
)

// Now is the frozen clock of every fixture
var Now = time.Date(2024, 1, 20, 12, 0, 0, 0, time.UTC)

// Clock returns Now
func Clock() time.Time { return Now }

// QuietLogger discards everything
func QuietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Universe is a seeded console, hub and vetting center sharing one
// in-memory store
type Universe struct {
	Blob    *memory.Store
	Adapter *storage.Adapter
	Admin   *admin.Console
	Finance *finance.Hub
	Vetting *vetting.Center
}

// LoadUniverse hydrates a fresh universe from seed data
func LoadUniverse(t *testing.T) *Universe {
	t.Helper()
	return Reopen(t, memory.New())
}

// Reopen builds a universe over an existing store, as a restarted process
// would
func Reopen(t *testing.T, blob *memory.Store) *Universe {
	t.Helper()
	logger := QuietLogger()
	adapter := storage.NewAdapter(blob, storage.WithLogger(logger))

	console, err := admin.New(logger, Clock, collection.WithAdapter(adapter))
	if err != nil {
		t.Fatalf("failed to create console: %v", err)
	}
	hub, err := finance.New(logger, collection.WithAdapter(adapter), collection.WithTimeFunc(Clock))
	if err != nil {
		t.Fatalf("failed to create finance hub: %v", err)
	}
	center, err := vetting.New(logger, Clock, collection.WithAdapter(adapter))
	if err != nil {
		t.Fatalf("failed to create vetting center: %v", err)
	}

	ctx := context.Background()
	if err := console.Refresh(ctx); err != nil {
		t.Fatalf("failed to refresh console: %v", err)
	}
	if err := hub.Refresh(ctx); err != nil {
		t.Fatalf("failed to refresh finance hub: %v", err)
	}
	if err := center.Refresh(ctx); err != nil {
		t.Fatalf("failed to refresh vetting center: %v", err)
	}
	return &Universe{Blob: blob, Adapter: adapter, Admin: console, Finance: hub, Vetting: center}
}
