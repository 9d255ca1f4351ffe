// Package config loads the host configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config points recap at the vault and the settings database.
type Config struct {
	Vault string `yaml:"vault"`
	DB    string `yaml:"db"`
}

// Default returns the built-in configuration. The vault has no default:
// it must come from the config file, a flag, or the environment.
func Default() Config {
	home, _ := os.UserHomeDir()
	return Config{
		DB: filepath.Join(home, ".recap", "recap.db"),
	}
}

// DefaultPath is the config file location used when --config is not given.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".recap", "config.yaml")
}

// Load reads the YAML config at path. A missing file is not an error and
// yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
