package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Port != DefaultPort {
		t.Errorf("Port = %d, want %d", cfg.Port, DefaultPort)
	}
	if cfg.HistoryWindow != DefaultHistoryWindow {
		t.Errorf("HistoryWindow = %d, want %d", cfg.HistoryWindow, DefaultHistoryWindow)
	}
	if cfg.ToolTimeoutSeconds != DefaultToolTimeoutSeconds {
		t.Errorf("ToolTimeoutSeconds = %d, want %d", cfg.ToolTimeoutSeconds, DefaultToolTimeoutSeconds)
	}
	if cfg.AnthropicModel != DefaultAnthropicModel {
		t.Errorf("AnthropicModel = %q", cfg.AnthropicModel)
	}
}

func TestLoadJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{"port": 9999, "log_level": "debug", "history_window": 5}`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("ORCH_CONFIG", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Port != 9999 {
		t.Errorf("Port = %d, want 9999", cfg.Port)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
	if cfg.HistoryWindow != 5 {
		t.Errorf("HistoryWindow = %d, want 5", cfg.HistoryWindow)
	}
	// Untouched keys keep their defaults.
	if cfg.Host != DefaultHost {
		t.Errorf("Host = %q, want default", cfg.Host)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"port": 9999}`), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("ORCH_CONFIG", path)
	t.Setenv("ORCH_PORT", "7777")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Port != 7777 {
		t.Errorf("Port = %d, want env override 7777", cfg.Port)
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("ORCH_CONFIG", "/nonexistent/config.json")
	if _, err := Load(); err == nil {
		t.Error("Load() with missing config file succeeded, want error")
	}
}

func TestParsedLogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"bogus", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		cfg := &Config{LogLevel: tt.level}
		if got := cfg.ParsedLogLevel(); got != tt.want {
			t.Errorf("ParsedLogLevel(%q) = %v, want %v", tt.level, got, tt.want)
		}
	}
}
