package file

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/arthur-debert/nanotable/nanotable/storage"
)

func newMockStore(t *testing.T) (*Store, *mockFileSystem, *mockFileLock) {
	t.Helper()
	mfs := newMockFileSystem()
	lock := &mockFileLock{}
	s, err := New("/data", WithFileSystem(mfs), WithFileLockFactory(&mockLockFactory{lock: lock}))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return s, mfs, lock
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, mfs, lock := newMockStore(t)

	if err := s.Put(ctx, "admin_users", []byte(`[{"id":"1"}]`)); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if !mfs.exists(filepath.Join("/data", "admin_users.json")) {
		t.Fatal("expected admin_users.json to be written")
	}
	if mfs.exists(filepath.Join("/data", "admin_users.json.tmp")) {
		t.Error("temp file left behind")
	}

	got, err := s.Get(ctx, "admin_users")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(got) != `[{"id":"1"}]` {
		t.Errorf("Get() = %s", got)
	}

	if lock.held {
		t.Error("file lock still held after operations")
	}
	if lock.lockAttempts != lock.unlockAttempts {
		t.Errorf("lock attempts %d != unlock attempts %d", lock.lockAttempts, lock.unlockAttempts)
	}
}

func TestStoreGetMissing(t *testing.T) {
	s, _, _ := newMockStore(t)

	_, err := s.Get(context.Background(), "api_keys")
	if !errors.Is(err, storage.ErrNotExist) {
		t.Errorf("Get() error = %v, want ErrNotExist", err)
	}
}

func TestStoreKeys(t *testing.T) {
	ctx := context.Background()
	s, mfs, _ := newMockStore(t)

	for _, key := range []string{"system_settings", "admin_users", "api_keys"} {
		if err := s.Put(ctx, key, []byte("{}")); err != nil {
			t.Fatalf("Put(%s) error = %v", key, err)
		}
	}
	// stray files are ignored
	_ = mfs.WriteFile(filepath.Join("/data", ".lock"), nil, 0o644)
	_ = mfs.WriteFile(filepath.Join("/data", "notes.txt"), nil, 0o644)

	keys, err := s.Keys(ctx)
	if err != nil {
		t.Fatalf("Keys() error = %v", err)
	}
	want := []string{"admin_users", "api_keys", "system_settings"}
	if diff := cmp.Diff(want, keys); diff != "" {
		t.Errorf("Keys() mismatch (-want +got):\n%s", diff)
	}
}

func TestStoreDelete(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newMockStore(t)

	if err := s.Put(ctx, "activity_logs", []byte("[]")); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if err := s.Delete(ctx, "activity_logs"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := s.Get(ctx, "activity_logs"); !errors.Is(err, storage.ErrNotExist) {
		t.Errorf("Get() after Delete error = %v", err)
	}
	// deleting again is fine
	if err := s.Delete(ctx, "activity_logs"); err != nil {
		t.Errorf("second Delete() error = %v", err)
	}
}

func TestStoreWriteErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("write failure", func(t *testing.T) {
		s, mfs, _ := newMockStore(t)
		mfs.WriteFileError = errors.New("disk full")
		if err := s.Put(ctx, "k", []byte("{}")); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("rename failure cleans temp file", func(t *testing.T) {
		s, mfs, _ := newMockStore(t)
		mfs.RenameError = errors.New("rename failed")
		if err := s.Put(ctx, "k", []byte("{}")); err == nil {
			t.Error("expected error")
		}
		if mfs.exists(filepath.Join("/data", "k.json.tmp")) {
			t.Error("temp file not cleaned up")
		}
	})
}

func TestStoreLocking(t *testing.T) {
	ctx := context.Background()

	t.Run("lock error", func(t *testing.T) {
		s, _, lock := newMockStore(t)
		lock.lockError = errors.New("permission denied")
		if err := s.Put(ctx, "k", []byte("{}")); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("lock contention retries then gives up", func(t *testing.T) {
		s, _, lock := newMockStore(t)
		lock.refuse = true
		if err := s.Put(ctx, "k", []byte("{}")); err == nil {
			t.Error("expected error")
		}
		if lock.lockAttempts != lockMaxRetries {
			t.Errorf("lock attempts = %d, want %d", lock.lockAttempts, lockMaxRetries)
		}
	})
}

func TestSanitizeKey(t *testing.T) {
	tests := []struct {
		key     string
		wantErr bool
	}{
		{"admin_users", false},
		{"finance_escrow_transactions", false},
		{"", true},
		{"   ", true},
		{"../etc/passwd", true},
		{"a/b", true},
		{`a\b`, true},
		{".lock", true},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			_, err := sanitizeKey(tt.key)
			if (err != nil) != tt.wantErr {
				t.Errorf("sanitizeKey(%q) error = %v, wantErr %v", tt.key, err, tt.wantErr)
			}
		})
	}
}

func TestStoreOnDisk(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "nested", "data")

	s, err := New(dir)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := s.Put(ctx, "system_settings", []byte(`{"maintenanceMode":false}`)); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(dir, "system_settings.json"))
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(raw) != `{"maintenanceMode":false}` {
		t.Errorf("file content = %s", raw)
	}

	// a second store over the same directory sees the value
	other, err := New(dir)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	got, err := other.Get(ctx, "system_settings")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(got) != string(raw) {
		t.Errorf("Get() = %s, want %s", got, raw)
	}
}
