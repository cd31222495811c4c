package storage

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/starford/obi/internal/models"
)

// FS implements Provider backed by the local file system.
type FS struct {
	root   string // absolute path to vault directory
	ignore []string
}

// NewFS creates a new FS provider rooted at the given directory.
// The directory must already exist. Paths matching ignore are hidden from
// List and Folders.
func NewFS(root string, ignore []string) (*FS, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("storage: resolve root: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("storage: stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("storage: root is not a directory: %s", abs)
	}
	return &FS{root: abs, ignore: ignore}, nil
}

// Root returns the absolute vault directory.
func (f *FS) Root() string {
	return f.root
}

// safePath resolves a relative path against the vault root and rejects
// any result that escapes it (directory traversal).
func (f *FS) safePath(rel string) (string, error) {
	if rel == "" {
		return f.root, nil
	}
	cleaned := filepath.Clean(filepath.FromSlash(rel))
	if filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("storage: absolute paths not allowed: %s", rel)
	}
	abs, err := filepath.Abs(filepath.Join(f.root, cleaned))
	if err != nil {
		return "", fmt.Errorf("storage: resolve path: %w", err)
	}
	// Ensure the resolved path is still under root.
	if !strings.HasPrefix(abs, f.root+string(os.PathSeparator)) && abs != f.root {
		return "", fmt.Errorf("storage: path escapes vault root: %s", rel)
	}
	return abs, nil
}

// List walks the vault and returns every non-ignored note path.
func (f *FS) List() ([]string, error) {
	var out []string
	err := f.walk(func(rel string, d fs.DirEntry) {
		if d.Type().IsRegular() && strings.HasSuffix(d.Name(), models.NoteExt) {
			out = append(out, rel)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("storage: list: %w", err)
	}
	sort.Strings(out)
	return out, nil
}

// Folders walks the vault and returns every non-ignored directory.
func (f *FS) Folders() ([]string, error) {
	var out []string
	err := f.walk(func(rel string, d fs.DirEntry) {
		if d.IsDir() {
			out = append(out, rel)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("storage: folders: %w", err)
	}
	sort.Strings(out)
	return out, nil
}

// walk visits every non-ignored entry below root, pruning ignored
// directories. Symlinks are reported but never followed.
func (f *FS) walk(visit func(rel string, d fs.DirEntry)) error {
	return filepath.WalkDir(f.root, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if p == f.root {
			return nil
		}
		rel, err := filepath.Rel(f.root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if IsIgnored(rel, f.ignore) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		visit(rel, d)
		return nil
	})
}

// Read returns the raw bytes of a vault file.
func (f *FS) Read(path string) ([]byte, error) {
	abs, err := f.safePath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("storage: read %s: %w", path, err)
	}
	return data, nil
}

// Exists reports whether path names a regular file inside the vault.
func (f *FS) Exists(path string) bool {
	abs, err := f.safePath(path)
	if err != nil {
		return false
	}
	info, err := os.Stat(abs)
	return err == nil && info.Mode().IsRegular()
}
