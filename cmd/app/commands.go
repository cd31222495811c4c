package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/starford/obi/internal"
	"github.com/starford/obi/internal/noteservice"
	"github.com/starford/obi/internal/output"
)

// vaultAction adapts a command that runs against a single resolved vault.
func vaultAction(fn func(ctx context.Context, cmd *cli.Command, svc *noteservice.Service) (any, error)) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		if err := setupLogger(cmd); err != nil {
			return err
		}
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		_, svc, err := internal.OpenVault(cfg, cmd.String("vault"), workDir(), nil)
		if err != nil {
			return err
		}
		res, err := fn(ctx, cmd, svc)
		if err != nil {
			return err
		}
		return output.Write(cmd.Root().Writer, res, cmd.Bool("json"))
	}
}

func requireArg(cmd *cli.Command, name string) (string, error) {
	arg := cmd.Args().First()
	if arg == "" {
		return "", fmt.Errorf("missing required argument <%s>", name)
	}
	return arg, nil
}

// parseFilters turns repeated key=value flags into a filter map. Entries
// without "=" are skipped; values may themselves contain "=".
func parseFilters(raw []string) map[string]string {
	filters := make(map[string]string, len(raw))
	for _, kv := range raw {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			continue
		}
		filters[key] = value
	}
	return filters
}

func commands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "vaults",
			Usage: "List all available vaults with paths and note counts",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				if err := setupLogger(cmd); err != nil {
					return err
				}
				cfg, err := loadConfig(cmd)
				if err != nil {
					return err
				}
				vaultsPath, err := internal.VaultsPath(cfg)
				if err != nil {
					return err
				}
				res, err := noteservice.Vaults(ctx, vaultsPath, cfg.Vaults.Default, cfg.Vaults.IgnoreByVault())
				if err != nil {
					return err
				}
				return output.Write(cmd.Root().Writer, res, cmd.Bool("json"))
			},
		},
		{
			Name:  "map",
			Usage: "Vault structure: folders and files with frontmatter metadata",
			Action: vaultAction(func(ctx context.Context, _ *cli.Command, svc *noteservice.Service) (any, error) {
				return svc.Map(ctx)
			}),
		},
		{
			Name:  "context",
			Usage: "Current workspace state: active file, recent files, search, tabs",
			Action: vaultAction(func(ctx context.Context, _ *cli.Command, svc *noteservice.Service) (any, error) {
				return svc.Context(ctx)
			}),
		},
		{
			Name:  "schema",
			Usage: "Property types, types in use, tags in use",
			Action: vaultAction(func(ctx context.Context, _ *cli.Command, svc *noteservice.Service) (any, error) {
				return svc.Schema(ctx)
			}),
		},
		{
			Name:      "read",
			Usage:     "Read a note: frontmatter, body, outgoing and incoming links",
			ArgsUsage: "<path>",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "section",
					Aliases: []string{"s"},
					Usage:   "Extract only the section under this heading",
				},
			},
			Action: vaultAction(func(ctx context.Context, cmd *cli.Command, svc *noteservice.Service) (any, error) {
				path, err := requireArg(cmd, "path")
				if err != nil {
					return nil, err
				}
				return svc.Read(ctx, path, cmd.String("section"))
			}),
		},
		{
			Name:      "toc",
			Usage:     "Heading tree for a note",
			ArgsUsage: "<path>",
			Action: vaultAction(func(ctx context.Context, cmd *cli.Command, svc *noteservice.Service) (any, error) {
				path, err := requireArg(cmd, "path")
				if err != nil {
					return nil, err
				}
				return svc.TOC(ctx, path)
			}),
		},
		{
			Name:      "links",
			Usage:     "Outgoing links, incoming links (backlinks), 2-hop connections",
			ArgsUsage: "<path>",
			Action: vaultAction(func(ctx context.Context, cmd *cli.Command, svc *noteservice.Service) (any, error) {
				path, err := requireArg(cmd, "path")
				if err != nil {
					return nil, err
				}
				return svc.Links(ctx, path)
			}),
		},
		{
			Name:      "list",
			Usage:     "Folder contents with title, type, tags from frontmatter",
			ArgsUsage: "[folder]",
			Action: vaultAction(func(ctx context.Context, cmd *cli.Command, svc *noteservice.Service) (any, error) {
				return svc.List(ctx, cmd.Args().First())
			}),
		},
		{
			Name:  "query",
			Usage: "Filter notes by frontmatter field values",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "type", Usage: "Filter by type field"},
				&cli.StringFlag{Name: "tag", Usage: "Filter by tag"},
				&cli.StringFlag{Name: "status", Usage: "Filter by status field"},
				&cli.StringSliceFlag{
					Name:    "filter",
					Aliases: []string{"f"},
					Usage:   "Generic frontmatter filter key=value (repeatable)",
				},
			},
			Action: vaultAction(func(ctx context.Context, cmd *cli.Command, svc *noteservice.Service) (any, error) {
				filters := parseFilters(cmd.StringSlice("filter"))
				for _, key := range []string{"type", "tag", "status"} {
					if v := cmd.String(key); v != "" {
						filters[key] = v
					}
				}
				return svc.Query(ctx, filters)
			}),
		},
		{
			Name:      "search",
			Usage:     "Content search with file, line, and context",
			ArgsUsage: "<term>",
			Action: vaultAction(func(ctx context.Context, cmd *cli.Command, svc *noteservice.Service) (any, error) {
				term, err := requireArg(cmd, "term")
				if err != nil {
					return nil, err
				}
				return svc.Search(ctx, term)
			}),
		},
		{
			Name:  "recent",
			Usage: "Notes sorted by updated_at from frontmatter",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:    "limit",
					Aliases: []string{"l"},
					Usage:   "Maximum number of results",
					Value:   10,
				},
			},
			Action: vaultAction(func(ctx context.Context, cmd *cli.Command, svc *noteservice.Service) (any, error) {
				limit := int(cmd.Int("limit"))
				if limit < 0 {
					return nil, errors.New("limit must not be negative")
				}
				return svc.Recent(ctx, limit)
			}),
		},
		{
			Name:  "unread",
			Usage: "Notes where read: false in frontmatter",
			Action: vaultAction(func(ctx context.Context, _ *cli.Command, svc *noteservice.Service) (any, error) {
				return svc.Unread(ctx)
			}),
		},
		{
			Name:  "serve",
			Usage: "Serve the vault over a read-only HTTP API",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "port",
					Usage: "HTTP port (overrides app.http.port)",
				},
			},
			Action: serve,
		},
		{
			Name:   "mcp",
			Usage:  "Serve the vault as an MCP server over stdio",
			Action: serveMCP,
		},
	}
}
