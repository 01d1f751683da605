// ABOUTME: Durable string key-value storage backing the session store
// ABOUTME: File-backed implementation in the XDG config dir plus an in-memory one

package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// Storage is a string-valued key-value store that survives process restarts
type Storage interface {
	GetItem(key string) (string, bool)
	SetItem(key, value string) error
	RemoveItem(keys ...string) error
}

// FileStorage persists items as a JSON object in a single file.
// Every read goes to disk so writes from another invocation are seen immediately.
type FileStorage struct {
	dir string
	mu  sync.Mutex
}

// NewFileStorage creates storage rooted at the given config directory
func NewFileStorage(dir string) *FileStorage {
	return &FileStorage{dir: dir}
}

// Path returns the location of the backing file
func (fs *FileStorage) Path() string {
	return filepath.Join(fs.dir, "session.json")
}

// load reads the whole file; a missing or corrupt file reads as empty
func (fs *FileStorage) load() map[string]string {
	items := map[string]string{}

	data, err := os.ReadFile(fs.Path())
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			slog.Warn("Session storage unreadable", "path", fs.Path(), "error", err)
		}
		return items
	}

	if err := json.Unmarshal(data, &items); err != nil {
		slog.Warn("Session storage corrupt, treating as empty", "path", fs.Path(), "error", err)
		return map[string]string{}
	}
	return items
}

func (fs *FileStorage) save(items map[string]string) error {
	if err := os.MkdirAll(fs.dir, 0700); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}

	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session storage: %w", err)
	}

	// Write-then-rename so a crash never leaves a half-written file
	tmp := fs.Path() + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write session storage: %w", err)
	}
	if err := os.Rename(tmp, fs.Path()); err != nil {
		return fmt.Errorf("failed to replace session storage: %w", err)
	}
	return nil
}

// GetItem implements Storage
func (fs *FileStorage) GetItem(key string) (string, bool) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	v, ok := fs.load()[key]
	return v, ok
}

// SetItem implements Storage
func (fs *FileStorage) SetItem(key, value string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	items := fs.load()
	items[key] = value
	return fs.save(items)
}

// RemoveItem implements Storage
func (fs *FileStorage) RemoveItem(keys ...string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	items := fs.load()
	changed := false
	for _, k := range keys {
		if _, ok := items[k]; ok {
			delete(items, k)
			changed = true
		}
	}
	if !changed {
		return nil
	}
	if len(items) == 0 {
		if err := os.Remove(fs.Path()); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to remove session storage: %w", err)
		}
		return nil
	}
	return fs.save(items)
}

// MemoryStorage keeps items in process memory
type MemoryStorage struct {
	mu    sync.Mutex
	items map[string]string
}

// NewMemoryStorage creates empty in-memory storage
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{items: map[string]string{}}
}

// GetItem implements Storage
func (ms *MemoryStorage) GetItem(key string) (string, bool) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	v, ok := ms.items[key]
	return v, ok
}

// SetItem implements Storage
func (ms *MemoryStorage) SetItem(key, value string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.items[key] = value
	return nil
}

// RemoveItem implements Storage
func (ms *MemoryStorage) RemoveItem(keys ...string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	for _, k := range keys {
		delete(ms.items, k)
	}
	return nil
}
