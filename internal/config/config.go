// Package config loads user settings for the todo CLI.
//
// Sources, lowest priority first:
//  1. Defaults
//  2. TOML file ($TODO_CONFIG, or <user config dir>/todo/config.toml)
//  3. Environment variables (TODO_LOG_LEVEL, TODO_LOG_FORMAT, TODO_THEME, TODO_COLOR)
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	envConfig    = "TODO_CONFIG"
	envLogLevel  = "TODO_LOG_LEVEL"
	envLogFormat = "TODO_LOG_FORMAT"
	envTheme     = "TODO_THEME"
	envColor     = "TODO_COLOR"

	appDir     = "todo"
	configName = "config.toml"
)

// Config holds settings that shape diagnostics and styling. It never
// affects what the storage commands print on stdout.
type Config struct {
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`
	Theme     string `toml:"theme"`
	Color     string `toml:"color"` // auto | always | never
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		LogLevel:  "warn",
		LogFormat: "text",
		Theme:     "classic",
		Color:     "auto",
	}
}

// Load applies defaults, the config file if one exists, then the environment.
func Load() (*Config, error) {
	cfg := Default()
	path, err := Path()
	if err != nil {
		return nil, err
	}
	if err := loadFile(cfg, path); err != nil {
		return nil, err
	}
	loadFromEnv(cfg)
	return cfg, nil
}

// LoadFile applies defaults then the given file. A missing file is not an error.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if err := loadFile(cfg, path); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Path returns the config file location.
func Path() (string, error) {
	if p := strings.TrimSpace(os.Getenv(envConfig)); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config dir: %w", err)
	}
	return filepath.Join(dir, appDir, configName), nil
}

func loadFile(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading config file %s: %w", path, err)
	}
	return nil
}

func loadFromEnv(cfg *Config) {
	if v := os.Getenv(envLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv(envLogFormat); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv(envTheme); v != "" {
		cfg.Theme = v
	}
	if v := os.Getenv(envColor); v != "" {
		cfg.Color = v
	}
}
