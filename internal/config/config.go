// Package config provides configuration management for rshell.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Default configuration values.
const (
	// DefaultHistorySize is the number of history entries kept on disk.
	DefaultHistorySize = 1000

	// HistoryFileName is the history file created in the home directory.
	HistoryFileName = ".rshell_history"

	// HistoryFileEnv overrides the history file location when set.
	HistoryFileEnv = "RSHELL_HISTFILE"

	// DefaultTerminalWidth is the default terminal width when auto-detection fails.
	DefaultTerminalWidth = 80
)

// Config holds the application configuration that is persisted to disk.
type Config struct {
	HistoryFile string `json:"history_file,omitempty"`
	HistorySize int    `json:"history_size,omitempty"`
}

// GetConfigDir returns the platform-specific config directory for rshell.
// This is a variable to allow mocking in tests.
var GetConfigDir = func() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(configDir, "rshell"), nil
}

// GetHomeDir returns the user's home directory.
// This is a variable to allow mocking in tests.
var GetHomeDir = func() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return home, nil
}

// GetConfigPath returns the full path to the config file.
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.json"), nil
}

// Exists reports whether the config file is present.
func Exists() bool {
	configPath, err := GetConfigPath()
	if err != nil {
		return false
	}
	_, err = os.Stat(configPath)
	return err == nil
}

// Load reads the config file and returns the Config struct.
// Returns a Config with defaults if the file doesn't exist.
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{HistorySize: DefaultHistorySize}, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.HistorySize <= 0 {
		cfg.HistorySize = DefaultHistorySize
	}

	return &cfg, nil
}

// Save writes the config to disk with secure permissions.
func Save(cfg *Config) error {
	configDir, err := GetConfigDir()
	if err != nil {
		return err
	}

	// Create config directory with user-only permissions
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// HistoryPath resolves the history file location using the following
// precedence:
// 1. RSHELL_HISTFILE environment variable
// 2. history_file from the config file
// 3. ~/.rshell_history
func (c *Config) HistoryPath() (string, error) {
	if path := os.Getenv(HistoryFileEnv); path != "" {
		return path, nil
	}

	if c.HistoryFile != "" {
		return expandHome(c.HistoryFile)
	}

	home, err := GetHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, HistoryFileName), nil
}

// expandHome replaces a leading "~/" with the home directory.
func expandHome(path string) (string, error) {
	if path != "~" && !hasHomePrefix(path) {
		return path, nil
	}

	home, err := GetHomeDir()
	if err != nil {
		return "", err
	}
	if path == "~" {
		return home, nil
	}
	return filepath.Join(home, path[2:]), nil
}

func hasHomePrefix(path string) bool {
	return len(path) >= 2 && path[0] == '~' && (path[1] == '/' || path[1] == filepath.Separator)
}
