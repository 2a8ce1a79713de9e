package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	foundationerrors "git.home.luguber.info/inful/layoutrender/internal/foundation/errors"
)

// DefaultPath is the configuration file looked up when none is given.
const DefaultPath = "layoutrender.yaml"

// Config represents the application configuration.
type Config struct {
	LayoutsDir  string         `yaml:"layouts_dir"`
	OutputDir   string         `yaml:"output_dir"`
	Concurrency int            `yaml:"concurrency"`
	Markdown    MarkdownConfig `yaml:"markdown"`
	Logging     LoggingConfig  `yaml:"logging"`
	Metrics     MetricsConfig  `yaml:"metrics"`
}

// MarkdownConfig controls which extensions are rendered as markdown and how.
type MarkdownConfig struct {
	// Extensions are normalized with NormalizeExtension when loaded. Renderer
	// lookups then match them exactly, case included, against the file
	// extension the loader reports.
	Extensions  []string `yaml:"extensions"`
	GFM         bool     `yaml:"gfm"`
	Typographer bool     `yaml:"typographer"`
	Unsafe      bool     `yaml:"unsafe"`
	HardWraps   bool     `yaml:"hard_wraps"`
	HeadingIDs  bool     `yaml:"heading_ids"`
	Sanitize    bool     `yaml:"sanitize"`
}

// LoggingConfig selects the slog handler.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig enables the Prometheus endpoint in watch mode.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Listen  string `yaml:"listen"`
}

// Load reads configPath on top of Default(). A missing file yields the defaults.
// ${VAR} references are expanded from the environment (after .env loading).
func Load(configPath string) (*Config, error) {
	loadEnvFile()

	cfg := Default()
	if configPath == "" {
		configPath = DefaultPath
	}

	data, err := os.ReadFile(configPath)
	if os.IsNotExist(err) {
		return cfg, cfg.normalize()
	}
	if err != nil {
		return nil, foundationerrors.WrapError(err, foundationerrors.CategoryConfig, "failed to read config file").
			WithContext("path", configPath).
			Fatal().
			Build()
	}

	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, foundationerrors.WrapError(err, foundationerrors.CategoryConfig, "failed to unmarshal config").
			WithContext("path", configPath).
			Fatal().
			Build()
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Init writes a configuration file populated with the defaults.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return foundationerrors.ConfigError(fmt.Sprintf("configuration file already exists: %s (use --force to overwrite)", configPath)).Build()
	}

	data, err := yaml.Marshal(Default())
	if err != nil {
		return foundationerrors.WrapError(err, foundationerrors.CategoryInternal, "failed to marshal config").Build()
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return foundationerrors.WrapError(err, foundationerrors.CategoryFileSystem, "failed to write config file").
			WithContext("path", configPath).
			Build()
	}
	return nil
}
