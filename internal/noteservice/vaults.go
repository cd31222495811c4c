package noteservice

import (
	"context"

	"github.com/starford/obi/internal/models"
	"github.com/starford/obi/internal/storage"
	"github.com/starford/obi/internal/vault"
)

// Vaults lists every vault below vaultsPath with its note count, honouring
// each vault's own ignore rules.
func Vaults(_ context.Context, vaultsPath, defaultVault string, ignore map[string][]string) (*models.VaultsResult, error) {
	infos, err := vault.List(vaultsPath)
	if err != nil {
		return nil, err
	}

	res := &models.VaultsResult{
		VaultsPath: vaultsPath,
		Vaults:     make([]models.VaultInfo, 0, len(infos)),
	}
	if defaultVault != "" {
		res.DefaultVault = &defaultVault
	}

	for _, info := range infos {
		v, err := vault.Resolve(vault.Options{VaultsPath: vaultsPath, Name: info.Name, Ignore: ignore})
		if err != nil {
			return nil, err
		}
		store, err := storage.NewFS(v.Path, v.IgnorePatterns)
		if err != nil {
			return nil, err
		}
		notes, err := store.List()
		if err != nil {
			return nil, err
		}
		res.Vaults = append(res.Vaults, models.VaultInfo{
			Name:      info.Name,
			Path:      info.Path,
			NoteCount: len(notes),
		})
	}
	return res, nil
}
