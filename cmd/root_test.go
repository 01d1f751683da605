// ABOUTME: Tests for the root command and global flag handling
// ABOUTME: Verifies environment variable, config file and flag configuration

package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/DAVEMANUJ/skill-genome-2/internal/client"
	"github.com/DAVEMANUJ/skill-genome-2/internal/form"
	"github.com/DAVEMANUJ/skill-genome-2/internal/session"
)

// isolate points every command at a fresh config directory and resets
// global flags and test seams afterwards
func isolate(t *testing.T) string {
	t.Helper()
	for _, env := range []string{
		"SKILLGENOME_API_URL",
		"SKILLGENOME_REQUEST_TIMEOUT",
		"SKILLGENOME_ALL_PROXY",
		"SKILLGENOME_LOG_LEVEL",
		"SKILLGENOME_LOG_FORMAT",
	} {
		t.Setenv(env, "")
	}

	dir := t.TempDir()
	t.Setenv("SKILLGENOME_CONFIG_DIR", dir)

	origInteractive := interactive
	origAskCredentials := askCredentials
	origAskConfirm := askConfirm
	interactive = func() bool { return false }

	t.Cleanup(func() {
		apiURL = ""
		jsonOutput = false
		configDir = ""
		ephemeral = false
		interactive = origInteractive
		askCredentials = origAskCredentials
		askConfirm = origAskConfirm
	})
	return dir
}

// storeIn opens the file-backed session store a command would use
func storeIn(dir string) session.Store {
	return session.NewStore(session.NewFileStorage(dir))
}

func TestGetAPIURL_Default(t *testing.T) {
	isolate(t)

	url := GetAPIURL()
	if url != "http://localhost:5000" {
		t.Errorf("expected default URL http://localhost:5000, got %s", url)
	}
}

func TestGetAPIURL_FromEnv(t *testing.T) {
	isolate(t)
	t.Setenv("SKILLGENOME_API_URL", "http://backend.example.com/")

	url := GetAPIURL()
	if url != "http://backend.example.com" {
		t.Errorf("expected http://backend.example.com, got %s", url)
	}
}

func TestGetAPIURL_FromConfigFile(t *testing.T) {
	dir := isolate(t)
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("api_url: http://file.example.com\n"), 0600); err != nil {
		t.Fatal(err)
	}

	url := GetAPIURL()
	if url != "http://file.example.com" {
		t.Errorf("expected config file URL, got %s", url)
	}
}

func TestGetAPIURL_FlagOverridesEnv(t *testing.T) {
	isolate(t)
	t.Setenv("SKILLGENOME_API_URL", "http://backend.example.com")
	apiURL = "http://flag-override.example.com"

	url := GetAPIURL()
	if url != "http://flag-override.example.com" {
		t.Errorf("expected flag to override env, got %s", url)
	}
}

func TestConfigDirFlagOverridesEnv(t *testing.T) {
	isolate(t)
	configDir = t.TempDir()

	cfg, err := resolveConfig()
	if err != nil {
		t.Fatalf("resolveConfig() error: %v", err)
	}
	if cfg.ConfigDir != configDir {
		t.Errorf("expected config dir %s, got %s", configDir, cfg.ConfigDir)
	}
}

func TestJSONOutput(t *testing.T) {
	isolate(t)
	jsonOutput = true

	if !IsJSONOutput() {
		t.Error("expected IsJSONOutput to return true")
	}
}

func TestNewStore_EphemeralLeavesNoFile(t *testing.T) {
	dir := isolate(t)
	ephemeral = true

	cfg, err := resolveConfig()
	if err != nil {
		t.Fatal(err)
	}
	store, err := newStore(cfg)
	if err != nil {
		t.Fatalf("newStore() error: %v", err)
	}
	store.Set("abc", "42")

	if storeIn(dir).Get().Present() {
		t.Error("ephemeral session must not be written to disk")
	}
}

func TestNewStore_FileBacked(t *testing.T) {
	dir := isolate(t)

	cfg, err := resolveConfig()
	if err != nil {
		t.Fatal(err)
	}
	store, err := newStore(cfg)
	if err != nil {
		t.Fatalf("newStore() error: %v", err)
	}
	store.Set("abc", "42")

	if got := storeIn(dir).Get(); got.Token != "abc" || got.UserID != "42" {
		t.Errorf("expected session on disk, got %+v", got)
	}
}

func TestSetup_InvalidTimeout(t *testing.T) {
	isolate(t)
	t.Setenv("SKILLGENOME_REQUEST_TIMEOUT", "soon")

	if _, _, _, err := setup(); err == nil {
		t.Error("expected error for invalid timeout")
	}
}

// Interface assertions keep the command wiring honest
var (
	_ form.Authenticator = (*client.Client)(nil)
	_ session.Store      = (*session.KVStore)(nil)
)
