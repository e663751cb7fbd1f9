// Package config loads the open-normal runtime configuration.
//
// Settings come from an optional YAML file and are then overridden by
// OPENNORMAL_* environment variables. The native host channel identifier is
// deliberately absent: it is a constant of the protocol.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "OPENNORMAL"

// DefaultFile is read when no --config flag is given.
const DefaultFile = "opennormal.yaml"

// Config is the full runtime configuration.
type Config struct {
	// Origin identifies this extension to native hosts, e.g.
	// "chrome-extension://<id>/". Hosts refuse requests from origins missing
	// from their manifest.
	Origin string `yaml:"origin"`
	// ManifestDirs overrides the browser manifest search path.
	ManifestDirs []string `yaml:"manifest_dirs" split_words:"true"`
	// Listen is the address of the HTTP bridge.
	Listen string `yaml:"listen"`
	// ExitGrace bounds how long a host may run after answering.
	ExitGrace time.Duration `yaml:"exit_grace" split_words:"true"`

	Log LogConfig `yaml:"log"`
}

// LogConfig configures the slog handler.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Listen:    "127.0.0.1:8765",
		ExitGrace: 2 * time.Second,
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads path (YAML) over the defaults and applies environment overrides.
// A missing file is not an error: defaults and environment still apply.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			// Nothing to merge.
		case err != nil:
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("failed to parse %s: %w", path, err)
			}
		}
	}

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to apply environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values the rest of the program cannot use.
func (c Config) Validate() error {
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format %q (want text or json)", c.Log.Format)
	}
	if c.ExitGrace < 0 {
		return fmt.Errorf("exit_grace must not be negative")
	}
	if c.Listen == "" {
		return fmt.Errorf("listen address must not be empty")
	}
	return nil
}
