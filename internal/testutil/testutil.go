// Package testutil provides shared test helpers for setting up vaults.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/starford/obi/internal/storage"
)

// WriteFiles writes files (slash-separated relative path -> content) below dir.
func WriteFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

// TestVault creates a temporary vault directory holding files and returns
// it together with a storage provider that ignores .obsidian.
func TestVault(t *testing.T, files map[string]string) (string, *storage.FS) {
	t.Helper()
	vaultDir := t.TempDir()
	WriteFiles(t, vaultDir, files)
	store, err := storage.NewFS(vaultDir, []string{".obsidian"})
	if err != nil {
		t.Fatal(err)
	}
	return vaultDir, store
}

// TestVaults creates a temporary vaults directory with one Obsidian vault
// (a directory holding .obsidian/) per entry and returns its path.
func TestVaults(t *testing.T, vaults map[string]map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, files := range vaults {
		dir := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Join(dir, ".obsidian"), 0o755); err != nil {
			t.Fatal(err)
		}
		WriteFiles(t, dir, files)
	}
	return root
}
