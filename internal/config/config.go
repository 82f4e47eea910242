// Package config loads the epanet-out command line configuration.
//
// Config file locations (priority order):
//  1. $EPANET_OUT_CONFIG
//  2. ./epanet-out.yaml
//  3. $XDG_CONFIG_HOME/epanet-out/config.yaml
//  4. ~/.config/epanet-out/config.yaml
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	// EnvConfigPath is the environment variable for an explicit config path
	EnvConfigPath = "EPANET_OUT_CONFIG"
	// ConfigFileName is the config file looked up in the working directory
	ConfigFileName = "epanet-out.yaml"
	// ConfigDirName is the config directory name under XDG
	ConfigDirName = "epanet-out"
)

// Config holds the command defaults. Flags override every field.
type Config struct {
	Decode DecodeConfig `yaml:"decode"`
	Export ExportConfig `yaml:"export"`
	Log    LogConfig    `yaml:"log"`
}

// DecodeConfig mirrors epanetout.DecodeOptions.
type DecodeConfig struct {
	Workers int  `yaml:"workers"`
	Strict  bool `yaml:"strict"`
}

// ExportConfig selects the default output.
type ExportConfig struct {
	Format string `yaml:"format"`
	Output string `yaml:"output,omitempty"`
}

// LogConfig configures logrus.
type LogConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Export: ExportConfig{Format: "json"},
		Log:    LogConfig{Level: "info"},
	}
}

// Load finds and loads the config file, or returns defaults if none found.
func Load() (*Config, string, error) {
	path := FindConfigPath()
	if path == "" {
		return DefaultConfig(), "", nil
	}
	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path.
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

// Save writes config to path.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func (c *Config) applyDefaults() {
	if c.Export.Format == "" {
		c.Export.Format = "json"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// Validate rejects values the commands cannot use.
func (c *Config) Validate() error {
	if c.Decode.Workers < 0 {
		return fmt.Errorf("decode.workers must not be negative, got %d", c.Decode.Workers)
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

// FindConfigPath returns the first existing config file, or "".
func FindConfigPath() string {
	if path := os.Getenv(EnvConfigPath); path != "" {
		if fileExists(path) {
			return path
		}
	}
	if fileExists(ConfigFileName) {
		if abs, err := filepath.Abs(ConfigFileName); err == nil {
			return abs
		}
		return ConfigFileName
	}
	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		path := filepath.Join(xdgHome, ConfigDirName, "config.yaml")
		if fileExists(path) {
			return path
		}
	}
	if home := os.Getenv("HOME"); home != "" {
		path := filepath.Join(home, ".config", ConfigDirName, "config.yaml")
		if fileExists(path) {
			return path
		}
	}
	return ""
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
