package internal

import (
	"fmt"
	"log/slog"

	"github.com/starford/obi/internal/noteservice"
	"github.com/starford/obi/internal/storage"
	"github.com/starford/obi/internal/vault"
)

// VaultsPath resolves the vaults directory from the configuration.
func VaultsPath(cfg *Config) (string, error) {
	return vault.ResolveVaultsPath(cfg.Vaults.Path)
}

// OpenVault resolves the target vault and returns a note service over it.
// name selects a vault explicitly; otherwise workDir detection and then the
// configured default apply.
func OpenVault(cfg *Config, name, workDir string, logger *slog.Logger) (*vault.Vault, *noteservice.Service, error) {
	vaultsPath, err := VaultsPath(cfg)
	if err != nil {
		return nil, nil, err
	}

	v, err := vault.Resolve(vault.Options{
		VaultsPath: vaultsPath,
		Name:       name,
		Default:    cfg.Vaults.Default,
		Cwd:        workDir,
		Ignore:     cfg.Vaults.IgnoreByVault(),
	})
	if err != nil {
		return nil, nil, err
	}

	store, err := storage.NewFS(v.Path, v.IgnorePatterns)
	if err != nil {
		return nil, nil, fmt.Errorf("init storage: %w", err)
	}

	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug("vault resolved",
		slog.String("vault", v.Name),
		slog.String("path", v.Path),
		slog.Any("ignore", v.IgnorePatterns))

	return v, noteservice.NewService(v.Name, store, logger), nil
}
