package config

import (
	"fmt"
	"io"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

const defaultPath = "./config.yaml"

// Load reads the configuration from the file named by CONFIG_PATH.
// See LoadFrom.
func Load() (*Config, error) {
	return LoadFrom(os.Getenv("CONFIG_PATH"))
}

// LoadFrom reads the YAML file at path, then the environment, then applies
// env-default tags, and validates the result. Environment values override the
// file. An empty path means ./config.yaml, which may be absent; an explicit
// path must exist.
func LoadFrom(path string) (*Config, error) {
	var cfg Config

	explicit := path != ""
	if !explicit {
		path = defaultPath
	}

	_, statErr := os.Stat(path)
	switch {
	case statErr == nil:
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	case explicit:
		return nil, fmt.Errorf("config: file %s: %w", path, statErr)
	default:
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}

	return &cfg, nil
}

// Describe writes the environment variables understood by Load, with their
// defaults, to w.
func Describe(w io.Writer) {
	var cfg Config
	header := "Environment variables (override the config file):"
	cleanenv.FUsage(w, &cfg, &header)()
}
