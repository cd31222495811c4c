package internal

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Auth modes.
const (
	AuthModeDisabled = "disabled"
	AuthModeToken    = "token"
)

// Config represents the application configuration.
type Config struct {
	App    ApplicationConfig `yaml:"app" toml:"app"`
	Vaults VaultsConfig      `yaml:"vaults" toml:"vaults"`
	Auth   AuthConfig        `yaml:"auth" toml:"auth"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Vaults.Validate(); err != nil {
		return err
	}
	return c.Auth.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level" toml:"log_level"`
	HTTP     HTTPConfig `yaml:"http" toml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port" toml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// VaultsConfig locates the vaults directory and carries per-vault settings.
// An empty Path falls back to Obsidian's iCloud directory.
type VaultsConfig struct {
	Path      string                   `yaml:"path" toml:"path"`
	Default   string                   `yaml:"default" toml:"default"`
	Overrides map[string]VaultOverride `yaml:"overrides" toml:"overrides"`
}

// VaultOverride holds settings for a single vault.
type VaultOverride struct {
	Ignore []string `yaml:"ignore" toml:"ignore"`
}

// Validate validates the vaults configuration.
func (c *VaultsConfig) Validate() error {
	for name, o := range c.Overrides {
		if name == "" {
			return fmt.Errorf("vaults: override with empty vault name")
		}
		if err := validation.Validate(o.Ignore, validation.Each(validation.Required)); err != nil {
			return fmt.Errorf("vaults: overrides.%s.ignore: %w", name, err)
		}
	}
	return nil
}

// IgnoreByVault returns the configured ignore patterns keyed by vault name.
func (c *VaultsConfig) IgnoreByVault() map[string][]string {
	out := make(map[string][]string, len(c.Overrides))
	for name, o := range c.Overrides {
		out[name] = o.Ignore
	}
	return out
}

// AuthConfig holds authentication configuration for the HTTP API.
//
// Mode controls how authentication is enforced:
//   - "disabled" (default): no authentication required.
//   - "token": Bearer token authentication; Token must be non-empty.
type AuthConfig struct {
	Mode  string `yaml:"mode" toml:"mode"`
	Token string `yaml:"token" toml:"token"`
}

// Validate validates the auth configuration.
func (c *AuthConfig) Validate() error {
	if c.Mode == "" {
		c.Mode = AuthModeDisabled
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required, validation.In(AuthModeDisabled, AuthModeToken)),
	); err != nil {
		return err
	}
	if c.Mode == AuthModeToken && c.Token == "" {
		return fmt.Errorf("auth: mode is %q but token is empty", AuthModeToken)
	}
	return nil
}

// AuthEnabled returns true when authentication is active.
func (c *AuthConfig) AuthEnabled() bool {
	return c.Mode == AuthModeToken
}

// DefaultConfigPath returns ~/.config/obi/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", "obi", "config.yaml")
	}
	return filepath.Join(home, ".config", "obi", "config.yaml")
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		Vaults: VaultsConfig{
			Overrides: map[string]VaultOverride{},
		},
		Auth: AuthConfig{
			Mode: AuthModeDisabled,
		},
	}
}
