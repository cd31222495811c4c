package internal

// Option is a functional option for configuring the application.
type Option func(*application)

type application struct {
	config  *Config
	vault   string
	workDir string
	version string
}

// WithConfig sets the application configuration.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// WithVault selects a vault by name, overriding detection and the default.
func WithVault(name string) Option {
	return func(a *application) {
		a.vault = name
	}
}

// WithWorkDir sets the directory used to detect the current vault.
func WithWorkDir(dir string) Option {
	return func(a *application) {
		a.workDir = dir
	}
}

// WithVersion sets the version reported by the MCP server.
func WithVersion(v string) Option {
	return func(a *application) {
		a.version = v
	}
}

func newApplication(opts []Option) *application {
	app := &application{version: "dev"}
	for _, opt := range opts {
		opt(app)
	}
	return app
}
