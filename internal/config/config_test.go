package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// withConfigDir points GetConfigDir and GetHomeDir at temp directories.
func withConfigDir(t *testing.T) (configDir, homeDir string) {
	t.Helper()
	tmpDir := t.TempDir()
	configDir = filepath.Join(tmpDir, "rshell")
	homeDir = filepath.Join(tmpDir, "home")

	originalGetConfigDir := GetConfigDir
	originalGetHomeDir := GetHomeDir
	GetConfigDir = func() (string, error) { return configDir, nil }
	GetHomeDir = func() (string, error) { return homeDir, nil }
	t.Cleanup(func() {
		GetConfigDir = originalGetConfigDir
		GetHomeDir = originalGetHomeDir
	})

	return configDir, homeDir
}

func TestLoad(t *testing.T) {
	configDir, _ := withConfigDir(t)

	t.Run("returns defaults when file does not exist", func(t *testing.T) {
		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}
		if cfg.HistorySize != DefaultHistorySize {
			t.Errorf("cfg.HistorySize = %d, want %d", cfg.HistorySize, DefaultHistorySize)
		}
		if cfg.HistoryFile != "" {
			t.Errorf("cfg.HistoryFile = %q, want empty string", cfg.HistoryFile)
		}
	})

	t.Run("loads config from file", func(t *testing.T) {
		if err := os.MkdirAll(configDir, 0700); err != nil {
			t.Fatalf("failed to create test config dir: %v", err)
		}
		data, _ := json.MarshalIndent(Config{HistoryFile: "/tmp/h", HistorySize: 50}, "", "  ")
		if err := os.WriteFile(filepath.Join(configDir, "config.json"), data, 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}
		if cfg.HistoryFile != "/tmp/h" {
			t.Errorf("cfg.HistoryFile = %q, want %q", cfg.HistoryFile, "/tmp/h")
		}
		if cfg.HistorySize != 50 {
			t.Errorf("cfg.HistorySize = %d, want 50", cfg.HistorySize)
		}
	})

	t.Run("applies default size for non-positive values", func(t *testing.T) {
		if err := os.WriteFile(filepath.Join(configDir, "config.json"), []byte(`{"history_size": -3}`), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}
		if cfg.HistorySize != DefaultHistorySize {
			t.Errorf("cfg.HistorySize = %d, want %d", cfg.HistorySize, DefaultHistorySize)
		}
	})

	t.Run("returns error for invalid JSON", func(t *testing.T) {
		if err := os.WriteFile(filepath.Join(configDir, "config.json"), []byte("not valid json"), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if _, err := Load(); err == nil {
			t.Error("Load() error = nil, want parse error")
		}
	})
}

func TestSave(t *testing.T) {
	configDir, _ := withConfigDir(t)

	t.Run("creates config directory and file", func(t *testing.T) {
		cfg := &Config{HistorySize: 10}
		if err := Save(cfg); err != nil {
			t.Fatalf("Save() error = %v, want nil", err)
		}

		data, err := os.ReadFile(filepath.Join(configDir, "config.json"))
		if err != nil {
			t.Fatalf("failed to read config file: %v", err)
		}

		var loaded Config
		if err := json.Unmarshal(data, &loaded); err != nil {
			t.Fatalf("failed to parse config file: %v", err)
		}
		if loaded.HistorySize != 10 {
			t.Errorf("loaded.HistorySize = %d, want 10", loaded.HistorySize)
		}
	})

	t.Run("file has secure permissions", func(t *testing.T) {
		if err := Save(&Config{}); err != nil {
			t.Fatalf("Save() error = %v, want nil", err)
		}

		info, err := os.Stat(filepath.Join(configDir, "config.json"))
		if err != nil {
			t.Fatalf("failed to stat config file: %v", err)
		}
		if perm := info.Mode().Perm(); perm != 0600 {
			t.Errorf("file permissions = %o, want %o", perm, 0600)
		}
	})
}

func TestHistoryPath(t *testing.T) {
	_, homeDir := withConfigDir(t)

	tests := []struct {
		name string
		env  string
		file string
		want string
	}{
		{name: "default in home directory", want: filepath.Join(homeDir, HistoryFileName)},
		{name: "config file value", file: "/var/tmp/hist", want: "/var/tmp/hist"},
		{name: "config value with tilde", file: "~/.config/rshell/history", want: filepath.Join(homeDir, ".config/rshell/history")},
		{name: "environment wins", env: "/env/hist", file: "/var/tmp/hist", want: "/env/hist"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(HistoryFileEnv, tt.env)

			cfg := &Config{HistoryFile: tt.file}
			got, err := cfg.HistoryPath()
			if err != nil {
				t.Fatalf("HistoryPath() error = %v, want nil", err)
			}
			if got != tt.want {
				t.Errorf("HistoryPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExists(t *testing.T) {
	configDir, _ := withConfigDir(t)

	if Exists() {
		t.Fatal("Exists() = true before Save, want false")
	}
	if err := Save(&Config{HistorySize: DefaultHistorySize}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if !Exists() {
		t.Errorf("Exists() = false after Save to %s, want true", configDir)
	}
}

func TestGetConfigDir(t *testing.T) {
	dir, err := GetConfigDir()
	if err != nil {
		t.Skipf("no user config dir available: %v", err)
	}

	if !filepath.IsAbs(dir) {
		t.Errorf("GetConfigDir() = %q, want absolute path", dir)
	}
	if filepath.Base(dir) != "rshell" {
		t.Errorf("GetConfigDir() = %q, want path ending in 'rshell'", dir)
	}
}

func TestConstants(t *testing.T) {
	if DefaultHistorySize <= 0 {
		t.Errorf("DefaultHistorySize = %d, want positive value", DefaultHistorySize)
	}

	if DefaultTerminalWidth <= 0 {
		t.Errorf("DefaultTerminalWidth = %d, want positive value", DefaultTerminalWidth)
	}
}
