// Package vault discovers Obsidian vaults below a vaults directory and
// resolves which one a command runs against, including its ignore rules.
package vault

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/starford/obi/internal/apperr"
)

// HardIgnored directories are never part of a vault's note set.
var HardIgnored = []string{".obsidian", ".git", ".pi", "node_modules"}

const obsidianDir = ".obsidian"

// Vault is a resolved vault with its effective ignore patterns.
type Vault struct {
	Name            string
	Path            string
	IgnorePatterns  []string
	TemplatesFolder string // empty when Obsidian templates are not configured
}

// Info names a discovered vault.
type Info struct {
	Name string
	Path string
}

// Options controls vault resolution.
type Options struct {
	VaultsPath string              // resolved vaults directory
	Name       string              // explicit vault name; wins over everything
	Default    string              // configured default vault
	Cwd        string              // working directory used for detection
	Ignore     map[string][]string // configured ignore patterns per vault name
}

// ICloudPath returns Obsidian's iCloud Drive vaults directory.
func ICloudPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, "Library", "Mobile Documents", "iCloud~md~obsidian", "Documents")
}

// ResolveVaultsPath returns the absolute vaults directory. A configured path
// must exist; without one the iCloud location is used when present.
func ResolveVaultsPath(configured string) (string, error) {
	if configured != "" {
		abs, err := filepath.Abs(configured)
		if err != nil {
			return "", err
		}
		if !isDir(abs) {
			return "", apperr.VaultsPathMissing(abs)
		}
		return abs, nil
	}
	if p := ICloudPath(); p != "" && isDir(p) {
		return p, nil
	}
	return "", apperr.VaultsPathMissing("")
}

// List returns every directory directly below vaultsPath that contains a
// .obsidian folder, sorted by name.
func List(vaultsPath string) ([]Info, error) {
	entries, err := os.ReadDir(vaultsPath)
	if err != nil {
		return nil, err
	}
	var out []Info
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		p := filepath.Join(vaultsPath, e.Name())
		if isVault(p) {
			out = append(out, Info{Name: e.Name(), Path: p})
		}
	}
	return out, nil
}

// Names returns the names of the vaults below vaultsPath.
func Names(vaultsPath string) []string {
	infos, _ := List(vaultsPath)
	names := make([]string, 0, len(infos))
	for _, v := range infos {
		names = append(names, v.Name)
	}
	return names
}

// Resolve picks the vault to run against: the explicit name, else the vault
// containing the working directory, else the configured default.
func Resolve(opts Options) (*Vault, error) {
	var name, path string

	switch {
	case opts.Name != "":
		name = opts.Name
		path = filepath.Join(opts.VaultsPath, name)
		if !isVault(path) {
			return nil, apperr.VaultNotFound(name, Names(opts.VaultsPath))
		}
	default:
		if n, p, ok := detectFromCwd(opts.VaultsPath, opts.Cwd); ok {
			name, path = n, p
			break
		}
		if opts.Default == "" {
			return nil, apperr.NoVault(Names(opts.VaultsPath))
		}
		name = opts.Default
		path = filepath.Join(opts.VaultsPath, name)
		if !isVault(path) {
			return nil, apperr.DefaultVaultNotFound(name)
		}
	}

	// Vault-local ignore wins over configured ignore.
	ignore := opts.Ignore[name]
	if local, ok := readLocalIgnore(path); ok {
		ignore = local
	}

	templates := readTemplatesFolder(path)
	patterns := append([]string{}, HardIgnored...)
	if templates != "" {
		patterns = append(patterns, templates)
	}
	patterns = append(patterns, ignore...)

	return &Vault{
		Name:            name,
		Path:            path,
		IgnorePatterns:  patterns,
		TemplatesFolder: templates,
	}, nil
}

// detectFromCwd walks up from cwd towards vaultsPath looking for a vault root.
func detectFromCwd(vaultsPath, cwd string) (string, string, bool) {
	if cwd == "" {
		return "", "", false
	}
	current, err := filepath.Abs(cwd)
	if err != nil {
		return "", "", false
	}
	for within(vaultsPath, current) && current != vaultsPath {
		if isVault(current) {
			return filepath.Base(current), current, true
		}
		parent := filepath.Dir(current)
		if parent == current {
			break
		}
		current = parent
	}
	return "", "", false
}

func within(root, p string) bool {
	rel, err := filepath.Rel(root, p)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// readLocalIgnore reads the "ignore" list of .obsidian/obi.json. ok is false
// when the file or the key is absent or unreadable.
func readLocalIgnore(vaultPath string) ([]string, bool) {
	var cfg struct {
		Ignore []string `json:"ignore"`
	}
	if !readObsidianJSON(vaultPath, "obi.json", &cfg) || cfg.Ignore == nil {
		return nil, false
	}
	return cfg.Ignore, true
}

// readTemplatesFolder returns the folder of Obsidian's core templates plugin.
func readTemplatesFolder(vaultPath string) string {
	var cfg struct {
		Folder string `json:"folder"`
	}
	if !readObsidianJSON(vaultPath, "templates.json", &cfg) {
		return ""
	}
	return cfg.Folder
}

func readObsidianJSON(vaultPath, name string, v any) bool {
	data, err := os.ReadFile(filepath.Join(vaultPath, obsidianDir, name))
	if err != nil {
		return false
	}
	return json.Unmarshal(data, v) == nil
}

func isVault(p string) bool {
	return isDir(filepath.Join(p, obsidianDir))
}

func isDir(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.IsDir()
}
