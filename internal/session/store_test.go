// ABOUTME: Tests for the session store and its storage backends
// ABOUTME: Validates both-or-neither session semantics and file persistence

package session

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStoreSetAndGet(t *testing.T) {
	s := NewStore(NewMemoryStorage())

	if err := s.Set("abc", "42"); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	got := s.Get()
	if got.Token != "abc" || got.UserID != "42" {
		t.Errorf("expected {abc 42}, got %+v", got)
	}
	if !got.Present() {
		t.Error("expected session to be present")
	}
}

func TestStoreGetEmpty(t *testing.T) {
	s := NewStore(NewMemoryStorage())

	if s.Get().Present() {
		t.Error("expected absent session on empty storage")
	}
}

func TestStorePartialStateIsAbsent(t *testing.T) {
	tests := []struct {
		name  string
		items map[string]string
	}{
		{"token only", map[string]string{TokenKey: "abc"}},
		{"user id only", map[string]string{UserIDKey: "42"}},
		{"empty token", map[string]string{TokenKey: "", UserIDKey: "42"}},
		{"empty user id", map[string]string{TokenKey: "abc", UserIDKey: ""}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			storage := NewMemoryStorage()
			for k, v := range tc.items {
				storage.SetItem(k, v)
			}

			got := NewStore(storage).Get()
			if got.Present() {
				t.Errorf("expected absent session, got %+v", got)
			}
			if got != (Session{}) {
				t.Errorf("expected zero session, got %+v", got)
			}
		})
	}
}

func TestStoreSetOverwrites(t *testing.T) {
	s := NewStore(NewMemoryStorage())
	s.Set("old", "1")
	s.Set("new", "2")

	got := s.Get()
	if got.Token != "new" || got.UserID != "2" {
		t.Errorf("expected latest session, got %+v", got)
	}
}

func TestStoreClear(t *testing.T) {
	storage := NewMemoryStorage()
	s := NewStore(storage)
	s.Set("abc", "42")

	if err := s.Clear(); err != nil {
		t.Fatalf("Clear() error: %v", err)
	}
	if s.Get().Present() {
		t.Error("expected absent session after Clear")
	}
	if _, ok := storage.GetItem(TokenKey); ok {
		t.Error("expected token key removed")
	}
	if _, ok := storage.GetItem(UserIDKey); ok {
		t.Error("expected user_id key removed")
	}
}

func TestFileStorageSurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	if err := NewStore(NewFileStorage(dir)).Set("t1", "u1"); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	// A fresh store over the same directory sees the session
	got := NewStore(NewFileStorage(dir)).Get()
	if got.Token != "t1" || got.UserID != "u1" {
		t.Errorf("expected persisted session, got %+v", got)
	}
}

func TestFileStorageNoCaching(t *testing.T) {
	dir := t.TempDir()
	reader := NewStore(NewFileStorage(dir))
	writer := NewStore(NewFileStorage(dir))

	writer.Set("t1", "u1")
	if !reader.Get().Present() {
		t.Fatal("expected reader to observe write")
	}

	writer.Clear()
	if reader.Get().Present() {
		t.Error("expected reader to observe clear immediately")
	}
}

func TestFileStoragePermissions(t *testing.T) {
	dir := t.TempDir()
	fs := NewFileStorage(dir)
	fs.SetItem(TokenKey, "secret")

	info, err := os.Stat(fs.Path())
	if err != nil {
		t.Fatalf("stat error: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("expected 0600 permissions, got %o", info.Mode().Perm())
	}
}

func TestFileStorageCorruptFile(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "session.json"), []byte("{not json"), 0600)

	s := NewStore(NewFileStorage(dir))
	if s.Get().Present() {
		t.Error("expected corrupt file to read as absent session")
	}

	// Writing recovers the file
	if err := s.Set("t1", "u1"); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if !s.Get().Present() {
		t.Error("expected session after rewrite")
	}
}

func TestFileStorageClearRemovesFile(t *testing.T) {
	dir := t.TempDir()
	fs := NewFileStorage(dir)
	s := NewStore(fs)
	s.Set("t1", "u1")

	if err := s.Clear(); err != nil {
		t.Fatalf("Clear() error: %v", err)
	}
	if _, err := os.Stat(fs.Path()); !os.IsNotExist(err) {
		t.Error("expected session file to be removed")
	}

	// Clearing twice is fine
	if err := s.Clear(); err != nil {
		t.Errorf("second Clear() error: %v", err)
	}
}

func TestFileStorageKeepsUnrelatedKeys(t *testing.T) {
	dir := t.TempDir()
	fs := NewFileStorage(dir)
	fs.SetItem("theme", "dark")

	s := NewStore(fs)
	s.Set("t1", "u1")
	s.Clear()

	if v, ok := fs.GetItem("theme"); !ok || v != "dark" {
		t.Errorf("expected unrelated key kept, got %q (%v)", v, ok)
	}
}
