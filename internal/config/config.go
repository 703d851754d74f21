package config

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	apperrors "zappy/internal/errors"
	"zappy/internal/logger"
	"zappy/internal/ui"
	"zappy/internal/versionstore"
)

// DefaultStorePath is where the version log lives relative to the working directory.
const DefaultStorePath = versionstore.DefaultPath

// DefaultFileName is the optional configuration file read by the zappy host program.
const DefaultFileName = "zappy.yaml"

// Backend names accepted by store.backend.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Config holds everything needed to assemble a run wrapper.
type Config struct {
	Store  StoreConfig  `yaml:"store"`
	Output OutputConfig `yaml:"output"`
	Log    LogConfig    `yaml:"log"`
}

// StoreConfig selects the version log backend.
type StoreConfig struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"`
}

// OutputConfig controls the presentation sink.
type OutputConfig struct {
	Color ui.ColorMode `yaml:"color"`
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Store: StoreConfig{
			Backend: BackendJSON,
			Path:    DefaultStorePath,
		},
		Output: OutputConfig{Color: ui.ColorAuto},
		Log:    LogConfig{Level: "warn"},
	}
}

// Load reads a YAML configuration file. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, apperrors.ConfigError(apperrors.CodeConfigGeneric, "failed to read configuration",
			errors.Wrapf(err, "read %s", path)).WithField("path", path)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if len(strings.TrimSpace(string(data))) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, apperrors.ConfigError(apperrors.CodeConfigGeneric, "failed to parse configuration",
				errors.Wrap(err, "decode yaml"))
		}
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	c.Store.Backend = strings.ToLower(strings.TrimSpace(c.Store.Backend))
	if c.Store.Backend == "" {
		c.Store.Backend = BackendJSON
	}
	if strings.TrimSpace(c.Store.Path) == "" {
		c.Store.Path = DefaultStorePath
	}
	if c.Output.Color == "" {
		c.Output.Color = ui.ColorAuto
	}
	if strings.TrimSpace(c.Log.Level) == "" {
		c.Log.Level = "warn"
	}
}

// Validate checks enumerated fields.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case BackendJSON, BackendSQLite:
	default:
		return apperrors.ConfigError(apperrors.CodeConfigGeneric, "unsupported store backend", nil).
			WithField("backend", c.Store.Backend)
	}
	if !c.Output.Color.Valid() {
		return apperrors.ConfigError(apperrors.CodeConfigGeneric, "unsupported colour mode", nil).
			WithField("color", string(c.Output.Color))
	}
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return apperrors.ConfigError(apperrors.CodeConfigGeneric, "unsupported log level", err)
	}
	return nil
}

// LogLevel returns the parsed diagnostic log level.
func (c *Config) LogLevel() logger.Level {
	level, err := logger.ParseLevel(c.Log.Level)
	if err != nil {
		return logger.LevelWarn
	}
	return level
}
