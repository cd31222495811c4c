package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/obi/internal"
	"github.com/starford/obi/internal/output"
	pkgconfig "github.com/starford/obi/pkg/config"
)

var version = "dev"

// loadConfig reads the config file and applies flag and environment
// overrides on top of it.
func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	cfg := internal.NewDefaultConfig()
	if err := pkgconfig.LoadIfExists(cmd.String("config"), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if p := cmd.String("vaults-path"); p != "" {
		cfg.Vaults.Path = p
	}
	return cfg, nil
}

// setupLogger installs a text logger on stderr so stdout stays parseable.
func setupLogger(cmd *cli.Command) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cmd.String("log-level"))); err != nil {
		return fmt.Errorf("invalid log level %q: %w", cmd.String("log-level"), err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}

// workDir is used for current-vault detection; an unknown cwd disables it.
func workDir() string {
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return wd
}

func appOptions(cmd *cli.Command, cfg *internal.Config) []internal.Option {
	return []internal.Option{
		internal.WithConfig(cfg),
		internal.WithVault(cmd.String("vault")),
		internal.WithWorkDir(workDir()),
		internal.WithVersion(version),
	}
}

func serve(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.IsSet("port") {
		cfg.App.HTTP.Port = int(cmd.Int("port"))
		if err := cfg.App.HTTP.Validate(); err != nil {
			return fmt.Errorf("invalid port: %w", err)
		}
	}
	if err := internal.Run(ctx, appOptions(cmd, cfg)...); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}
	return nil
}

func serveMCP(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return internal.RunMCP(ctx, appOptions(cmd, cfg)...)
}

func newApp(stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "obi",
		Usage:     "Read-only Obsidian vault queries for LLM consumption",
		Version:   version,
		Writer:    stdout,
		ErrWriter: stderr,
		// Filter values such as "title=Hello, world" must survive intact.
		DisableSliceFlagSeparator: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: "~/.config/obi/config.yaml",
				Value:       internal.DefaultConfigPath(),
				Sources:     cli.EnvVars("OBI_CONFIG_FILE"),
			},
			&cli.StringFlag{
				Name:  "vault",
				Usage: "Target vault name",
			},
			&cli.StringFlag{
				Name:    "vaults-path",
				Usage:   "Directory containing the vaults",
				Sources: cli.EnvVars("OBI_VAULTS_PATH"),
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output single-line JSON instead of YAML",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level for diagnostics on stderr",
				Value:   "warn",
				Sources: cli.EnvVars("OBI_LOG_LEVEL"),
			},
		},
		Commands: commands(),
	}
}

// run executes the CLI and returns the process exit code. Errors are
// rendered as single-line JSON on stderr.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if err := newApp(stdout, stderr).Run(ctx, args); err != nil {
		output.Error(stderr, err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(run(context.Background(), os.Args, os.Stdout, os.Stderr))
}
