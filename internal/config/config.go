package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// EnvConfigPath names the variable that points the library at a config file.
const EnvConfigPath = "SNAPCHECK_CONFIG"

// ErrConfigExists is returned by Save when it must not replace a file.
var ErrConfigExists = errors.New("config file already exists")

// DefaultStrictEnv is the variable consulted on every assertion to pick the
// strict or lenient policy.
const DefaultStrictEnv = "RAISE_SNAPSHOT_ERRORS"

// Config holds all snapcheck configuration.
type Config struct {
	// Snapshot file layout and reporting
	Snapshot SnapshotConfig `yaml:"snapshot"`

	// HTML content adapter stages
	HTML HTMLConfig `yaml:"html"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// SnapshotConfig configures naming and diff rendering.
type SnapshotConfig struct {
	Marker       string `yaml:"marker" validate:"required,startswith=.,excludesall=/\\"`
	StrictEnv    string `yaml:"strict_env" validate:"required"`
	FromFile     string `yaml:"from_file" validate:"required"`
	ToFile       string `yaml:"to_file" validate:"required"`
	Diff         string `yaml:"diff" validate:"oneof=unified ndiff"` // unified, ndiff
	ContextLines int    `yaml:"context_lines" validate:"gte=0,lte=100"`
}

// HTMLConfig holds the default on/off state of each HTML stage.
type HTMLConfig struct {
	Validate bool `yaml:"validate"`
	Pretty   bool `yaml:"pretty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Snapshot: SnapshotConfig{
			Marker:       ".snapshot",
			StrictEnv:    DefaultStrictEnv,
			FromFile:     "got",
			ToFile:       "expected",
			Diff:         "unified",
			ContextLines: 3,
		},

		HTML: HTMLConfig{
			Validate: true,
			Pretty:   true,
		},

		Logging: LoggingConfig{
			DebugMode: false,
			Level:     "info",
			Format:    "console",
		},
	}
}

// Load loads configuration from a YAML file.
// An empty path or a missing file yields the defaults; environment
// overrides are applied in every case.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		case os.IsNotExist(err):
			// Defaults
		default:
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromEnv loads the file named by SNAPCHECK_CONFIG, or the defaults.
func FromEnv() (*Config, error) {
	return Load(os.Getenv(EnvConfigPath))
}

// Encode writes c as YAML. An invalid configuration is not written.
func (c *Config) Encode(w io.Writer) error {
	if err := c.Validate(); err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return enc.Close()
}

// Save writes c to path, creating parent directories. An existing file is
// only replaced when overwrite is set.
func (c *Config) Save(path string, overwrite bool) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !overwrite {
		flags |= os.O_EXCL
	}
	f, err := os.OpenFile(path, flags, 0644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%w: %s", ErrConfigExists, path)
		}
		return fmt.Errorf("failed to create config: %w", err)
	}
	if err := c.Encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if level := os.Getenv("SNAPCHECK_LOG_LEVEL"); level != "" {
		c.Logging.Level = strings.ToLower(level)
	}
	if debug := os.Getenv("SNAPCHECK_DEBUG"); debug != "" {
		c.Logging.DebugMode = debug == "1" || strings.EqualFold(debug, "true")
	}
	if name := os.Getenv("SNAPCHECK_STRICT_ENV"); name != "" {
		c.Snapshot.StrictEnv = name
	}
}

var validate = validator.New()

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
