package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vstratful/rshell/internal/config"
)

// withConfigDir points the config package at a temp directory.
func withConfigDir(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "rshell")

	original := config.GetConfigDir
	config.GetConfigDir = func() (string, error) { return dir, nil }
	t.Cleanup(func() { config.GetConfigDir = original })

	return dir
}

func TestLoadConfig(t *testing.T) {
	t.Run("first run writes defaults", func(t *testing.T) {
		dir := withConfigDir(t)
		var errOut bytes.Buffer

		cfg := loadConfig(&errOut)

		if cfg.HistorySize != config.DefaultHistorySize {
			t.Errorf("cfg.HistorySize = %d, want %d", cfg.HistorySize, config.DefaultHistorySize)
		}
		if errOut.Len() != 0 {
			t.Errorf("unexpected warnings: %q", errOut.String())
		}

		data, err := os.ReadFile(filepath.Join(dir, "config.json"))
		if err != nil {
			t.Fatalf("config file not written: %v", err)
		}
		var saved config.Config
		if err := json.Unmarshal(data, &saved); err != nil {
			t.Fatalf("failed to parse config file: %v", err)
		}
		if saved.HistorySize != config.DefaultHistorySize {
			t.Errorf("saved history_size = %d, want %d", saved.HistorySize, config.DefaultHistorySize)
		}
	})

	t.Run("existing file is not rewritten", func(t *testing.T) {
		dir := withConfigDir(t)
		if err := os.MkdirAll(dir, 0700); err != nil {
			t.Fatalf("failed to create config dir: %v", err)
		}
		path := filepath.Join(dir, "config.json")
		content := `{"history_file": "/tmp/h", "history_size": 5}`
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		cfg := loadConfig(&bytes.Buffer{})

		if cfg.HistorySize != 5 || cfg.HistoryFile != "/tmp/h" {
			t.Errorf("cfg = %+v, want file values", cfg)
		}
		data, _ := os.ReadFile(path)
		if string(data) != content {
			t.Errorf("config file rewritten: %q", data)
		}
	})

	t.Run("broken file warns and uses defaults", func(t *testing.T) {
		dir := withConfigDir(t)
		if err := os.MkdirAll(dir, 0700); err != nil {
			t.Fatalf("failed to create config dir: %v", err)
		}
		path := filepath.Join(dir, "config.json")
		if err := os.WriteFile(path, []byte("not json"), 0600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}
		var errOut bytes.Buffer

		cfg := loadConfig(&errOut)

		if cfg.HistorySize != config.DefaultHistorySize {
			t.Errorf("cfg.HistorySize = %d, want default", cfg.HistorySize)
		}
		if !strings.Contains(errOut.String(), "Warning:") {
			t.Errorf("errOut = %q, want warning", errOut.String())
		}
		data, _ := os.ReadFile(path)
		if string(data) != "not json" {
			t.Errorf("broken config file rewritten: %q", data)
		}
	})
}
