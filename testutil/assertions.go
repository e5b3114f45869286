package testutil

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/arthur-debert/nanotable/nanotable/storage"
	"github.com/arthur-debert/nanotable/types"
)

// AssertIDs checks the ids of records, in order
func AssertIDs[T types.Record[T]](t *testing.T, records []T, want ...string) {
	t.Helper()
	if want == nil {
		want = []string{}
	}
	if diff := cmp.Diff(want, types.IDs(records)); diff != "" {
		t.Errorf("ids mismatch (-want +got):\n%s", diff)
	}
}

// AssertStatus checks the status of one record
func AssertStatus[T types.Statused[T]](t *testing.T, rec T, want string) {
	t.Helper()
	if got := rec.GetStatus(); got != want {
		t.Errorf("%s: status = %q, want %q", rec.GetID(), got, want)
	}
}

// AssertErrorIs fails unless err wraps target
func AssertErrorIs(t *testing.T, err, target error) {
	t.Helper()
	if !errors.Is(err, target) {
		t.Errorf("error = %v, want %v", err, target)
	}
}

// SnapshotIDs decodes the ids of the collection persisted under key
func SnapshotIDs(t *testing.T, blob storage.Blob, key string) []string {
	t.Helper()
	data, err := blob.Get(context.Background(), key)
	if err != nil {
		t.Fatalf("no snapshot under %s: %v", key, err)
	}
	var records []struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(data, &records); err != nil {
		t.Fatalf("snapshot %s is not a JSON array: %v", key, err)
	}
	ids := make([]string, len(records))
	for i, r := range records {
		ids[i] = r.ID
	}
	return ids
}

// AssertSnapshot checks the ids persisted under key, in order
func AssertSnapshot(t *testing.T, blob storage.Blob, key string, want ...string) {
	t.Helper()
	if want == nil {
		want = []string{}
	}
	if diff := cmp.Diff(want, SnapshotIDs(t, blob, key)); diff != "" {
		t.Errorf("snapshot %s mismatch (-want +got):\n%s", key, diff)
	}
}
