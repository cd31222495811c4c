// Package apperr defines the failures obi reports to its callers.
package apperr

import "fmt"

// Error codes.
const (
	CodeNoteNotFound      = "NOTE_NOT_FOUND"
	CodeSectionNotFound   = "SECTION_NOT_FOUND"
	CodeVaultNotFound     = "VAULT_NOT_FOUND"
	CodeNoVault           = "NO_VAULT"
	CodeVaultsPathMissing = "VAULTS_PATH_MISSING"
)

// Error is a failure carrying a stable code and the context needed to render
// an actionable message (attempted path, requested section, ...).
type Error struct {
	Code    string
	Message string
	Data    map[string]any
}

func (e *Error) Error() string {
	return e.Message
}

// Is matches any *Error with the same code, so errors.Is(err, ErrNoteNotFound)
// works without comparing context.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

var (
	ErrNoteNotFound      = &Error{Code: CodeNoteNotFound, Message: "note not found"}
	ErrSectionNotFound   = &Error{Code: CodeSectionNotFound, Message: "section not found"}
	ErrVaultNotFound     = &Error{Code: CodeVaultNotFound, Message: "vault not found"}
	ErrNoVault           = &Error{Code: CodeNoVault, Message: "no vault specified"}
	ErrVaultsPathMissing = &Error{Code: CodeVaultsPathMissing, Message: "vaults path missing"}
)

// NoteNotFound reports that no note exists at path.
func NoteNotFound(path string) *Error {
	return &Error{
		Code:    CodeNoteNotFound,
		Message: "Note not found: " + path,
		Data:    map[string]any{"path": path},
	}
}

// SectionNotFound reports that the note at path has no heading named section.
func SectionNotFound(path, section string) *Error {
	return &Error{
		Code:    CodeSectionNotFound,
		Message: fmt.Sprintf("Section %q not found in %s", section, path),
		Data:    map[string]any{"path": path, "section": section},
	}
}

// VaultNotFound reports an unknown vault name.
func VaultNotFound(name string, available []string) *Error {
	return &Error{
		Code:    CodeVaultNotFound,
		Message: fmt.Sprintf("Vault %q not found", name),
		Data:    map[string]any{"available": available},
	}
}

// DefaultVaultNotFound reports that the configured default vault is missing.
func DefaultVaultNotFound(name string) *Error {
	return &Error{
		Code:    CodeVaultNotFound,
		Message: fmt.Sprintf("Default vault %q not found", name),
	}
}

// NoVault reports that no vault could be selected.
func NoVault(available []string) *Error {
	return &Error{
		Code:    CodeNoVault,
		Message: "No vault specified. Use --vault or set vaults.default in config.",
		Data:    map[string]any{"available": available},
	}
}

// VaultsPathMissing reports that the vaults directory does not exist. path is
// empty when nothing was configured and no default location was found.
func VaultsPathMissing(path string) *Error {
	if path == "" {
		return &Error{
			Code:    CodeVaultsPathMissing,
			Message: "No vaults path found. Set OBI_VAULTS_PATH or use iCloud Obsidian sync.",
		}
	}
	return &Error{
		Code:    CodeVaultsPathMissing,
		Message: "Vaults path does not exist",
		Data:    map[string]any{"path": path},
	}
}
