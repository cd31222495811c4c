// Package storage defines the read-only vault file-system abstraction.
package storage

// Reader fetches note content.
type Reader interface {
	// Read returns the raw bytes of the file at path (relative to vault root).
	Read(path string) ([]byte, error)
}

// Provider is the interface for vault file operations.
type Provider interface {
	Reader
	// List returns every non-ignored .md path (slash-separated, relative to
	// vault root), sorted lexicographically.
	List() ([]string, error)
	// Folders returns every non-ignored directory, sorted lexicographically.
	Folders() ([]string, error)
	// Exists reports whether a regular file exists at path.
	Exists(path string) bool
}
