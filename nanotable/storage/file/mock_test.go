package file

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

var (
	_ FileSystem = OSFileSystem{}
	_ FileSystem = (*mockFileSystem)(nil)
)

// mockFileSystem is an in-memory FileSystem with injectable errors
type mockFileSystem struct {
	mu    sync.RWMutex
	files map[string][]byte

	ReadFileError  error
	WriteFileError error
	RenameError    error
	RemoveError    error
}

type mockFileInfo struct {
	name string
	size int64
}

func (fi mockFileInfo) Name() string       { return fi.name }
func (fi mockFileInfo) Size() int64        { return fi.size }
func (fi mockFileInfo) Mode() fs.FileMode  { return 0o644 }
func (fi mockFileInfo) ModTime() time.Time { return time.Time{} }
func (fi mockFileInfo) IsDir() bool        { return false }
func (fi mockFileInfo) Sys() interface{}   { return nil }

func newMockFileSystem() *mockFileSystem {
	return &mockFileSystem{files: make(map[string][]byte)}
}

func (m *mockFileSystem) ReadFile(name string) ([]byte, error) {
	if m.ReadFileError != nil {
		return nil, m.ReadFileError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.files[name]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	return append([]byte(nil), data...), nil
}

func (m *mockFileSystem) WriteFile(name string, data []byte, _ fs.FileMode) error {
	if m.WriteFileError != nil {
		return m.WriteFileError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[name] = append([]byte(nil), data...)
	return nil
}

func (m *mockFileSystem) Rename(oldpath, newpath string) error {
	if m.RenameError != nil {
		return m.RenameError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.files[oldpath]
	if !ok {
		return os.ErrNotExist
	}
	m.files[newpath] = data
	delete(m.files, oldpath)
	return nil
}

func (m *mockFileSystem) Remove(name string) error {
	if m.RemoveError != nil {
		return m.RemoveError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.files[name]; !ok {
		return os.ErrNotExist
	}
	delete(m.files, name)
	return nil
}

func (m *mockFileSystem) MkdirAll(string, fs.FileMode) error { return nil }

func (m *mockFileSystem) ReadDir(name string) ([]fs.DirEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var entries []fs.DirEntry
	prefix := name + string(filepath.Separator)
	for path, data := range m.files {
		if !strings.HasPrefix(path, prefix) {
			continue
		}
		base := strings.TrimPrefix(path, prefix)
		entries = append(entries, fs.FileInfoToDirEntry(mockFileInfo{name: base, size: int64(len(data))}))
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	return entries, nil
}

func (m *mockFileSystem) exists(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.files[name]
	return ok
}

// mockFileLock records lock traffic and can refuse or fail to lock
type mockFileLock struct {
	mu        sync.Mutex
	held      bool
	refuse    bool
	lockError error

	lockAttempts   int
	unlockAttempts int
}

func (l *mockFileLock) TryLockContext(_ context.Context, _ time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lockAttempts++
	if l.lockError != nil {
		return false, l.lockError
	}
	if l.refuse || l.held {
		return false, nil
	}
	l.held = true
	return true, nil
}

func (l *mockFileLock) Unlock() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.unlockAttempts++
	l.held = false
	return nil
}

type mockLockFactory struct {
	lock *mockFileLock
}

func (f *mockLockFactory) New(string) FileLock { return f.lock }
