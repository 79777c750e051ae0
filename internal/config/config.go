// Package config loads optional defaults from a YAML file. Flags always win
// over file values.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const defaultFileName = ".clawstats.yaml"

// Config holds the file-configurable defaults.
type Config struct {
	SessionsDir string `yaml:"sessions_dir"`
	Days        int    `yaml:"days"`
	Output      string `yaml:"output"`
	LogFile     string `yaml:"log_file"`
}

// DefaultPath returns the config file location in the user's home directory.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, defaultFileName), nil
}

// Load reads the config at path, or the default location when path is empty.
// A missing file yields a zero config, not an error.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return &Config{}, nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
