// Package config loads user settings from a YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all configurable timecard settings.
type Config struct {
	// DataDir overrides the directory holding log.csv and exported
	// reports. Empty means the built-in default under Documents.
	DataDir string `yaml:"data_dir"`
}

// Defaults returns the default configuration values.
func Defaults() Config {
	return Config{}
}

// Load reads ~/.config/timecard/config.yaml. Returns defaults when the
// file is absent; a file that exists but does not parse is an error.
func Load() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Defaults(), err
	}
	return loadFile(filepath.Join(home, ".config", "timecard", "config.yaml"))
}

func loadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Defaults(), nil
		}
		return Defaults(), fmt.Errorf("read config file: %w", err)
	}

	cfg := Defaults()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Defaults(), fmt.Errorf("parse config file %s: %w", path, err)
	}
	return cfg, nil
}
