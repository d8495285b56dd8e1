// ABOUTME: Tests for configuration loading and parsing
// ABOUTME: Covers YAML loading, env var expansion, duration parsing, and defaults

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return configPath
}

func TestLoad_ValidConfig(t *testing.T) {
	configPath := writeConfig(t, `
database:
  path: "./test.db"

history:
  max_age_days: 7
  max_record_size_mb: 2
  max_display_items: 100
  cleanup_interval: "30m"
  dedup_window: "90s"

watcher:
  enabled: false

logging:
  level: "debug"
  format: "json"
`)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Database.Path != "./test.db" {
		t.Errorf("Database.Path = %q, want %q", cfg.Database.Path, "./test.db")
	}

	if cfg.History.MaxAgeDays != 7 {
		t.Errorf("History.MaxAgeDays = %d, want 7", cfg.History.MaxAgeDays)
	}
	if cfg.History.MaxRecordSizeMB != 2 {
		t.Errorf("History.MaxRecordSizeMB = %d, want 2", cfg.History.MaxRecordSizeMB)
	}
	if cfg.History.MaxDisplayItems != 100 {
		t.Errorf("History.MaxDisplayItems = %d, want 100", cfg.History.MaxDisplayItems)
	}
	if cfg.History.CleanupInterval != 30*time.Minute {
		t.Errorf("History.CleanupInterval = %v, want %v", cfg.History.CleanupInterval, 30*time.Minute)
	}
	if cfg.History.DedupWindow != 90*time.Second {
		t.Errorf("History.DedupWindow = %v, want %v", cfg.History.DedupWindow, 90*time.Second)
	}

	if cfg.Watcher.Enabled {
		t.Error("Watcher.Enabled = true, want false")
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Logging.Format = %q, want %q", cfg.Logging.Format, "json")
	}
}

func TestLoad_DefaultsFillUnsetFields(t *testing.T) {
	configPath := writeConfig(t, `
database:
  path: "./test.db"
`)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.History.MaxAgeDays != 3 {
		t.Errorf("History.MaxAgeDays = %d, want default 3", cfg.History.MaxAgeDays)
	}
	if cfg.History.MaxRecordSizeMB != 1 {
		t.Errorf("History.MaxRecordSizeMB = %d, want default 1", cfg.History.MaxRecordSizeMB)
	}
	if cfg.History.MaxDisplayItems != 50 {
		t.Errorf("History.MaxDisplayItems = %d, want default 50", cfg.History.MaxDisplayItems)
	}
	if cfg.History.CleanupInterval != time.Hour {
		t.Errorf("History.CleanupInterval = %v, want default 1h", cfg.History.CleanupInterval)
	}
	if cfg.History.DedupWindow != 60*time.Second {
		t.Errorf("History.DedupWindow = %v, want default 60s", cfg.History.DedupWindow)
	}
	if !cfg.Watcher.Enabled {
		t.Error("Watcher.Enabled = false, want default true")
	}
}

func TestLoad_EnvVarExpansion(t *testing.T) {
	t.Setenv("COPYU_TEST_DB_PATH", "/tmp/expanded.db")

	configPath := writeConfig(t, `
database:
  path: "${COPYU_TEST_DB_PATH}"
`)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Database.Path != "/tmp/expanded.db" {
		t.Errorf("Database.Path = %q, want %q", cfg.Database.Path, "/tmp/expanded.db")
	}
}

func TestLoad_UnsetEnvVarBecomesEmpty(t *testing.T) {
	configPath := writeConfig(t, `
database:
  path: "${COPYU_TEST_UNSET_VAR}"
`)

	_, err := Load(configPath)
	if err == nil {
		t.Fatal("Load() expected validation error for empty database path")
	}
	if !strings.Contains(err.Error(), "database.path is required") {
		t.Errorf("Load() error = %v, want database.path validation failure", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	if err == nil {
		t.Fatal("Load() expected error for missing file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	configPath := writeConfig(t, "database: [not: valid: yaml")

	_, err := Load(configPath)
	if err == nil {
		t.Fatal("Load() expected error for invalid YAML")
	}
}

func TestLoad_InvalidDuration(t *testing.T) {
	configPath := writeConfig(t, `
database:
  path: "./test.db"

history:
  cleanup_interval: "not-a-duration"
`)

	_, err := Load(configPath)
	if err == nil {
		t.Fatal("Load() expected error for invalid duration")
	}
	if !strings.Contains(err.Error(), "cleanup_interval") {
		t.Errorf("Load() error = %v, want cleanup_interval parse failure", err)
	}
}

func TestValidate_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"empty database path", func(c *Config) { c.Database.Path = "" }, "database.path"},
		{"zero max age", func(c *Config) { c.History.MaxAgeDays = 0 }, "max_age_days"},
		{"negative record size", func(c *Config) { c.History.MaxRecordSizeMB = -1 }, "max_record_size_mb"},
		{"zero display items", func(c *Config) { c.History.MaxDisplayItems = 0 }, "max_display_items"},
		{"zero cleanup interval", func(c *Config) { c.History.CleanupInterval = 0 }, "cleanup_interval"},
		{"negative dedup window", func(c *Config) { c.History.DedupWindow = -time.Second }, "dedup_window"},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }, "logging.level"},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default(t.TempDir())
			tt.mutate(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Validate() error = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestWriteDefault_CreatesFileOnce(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "copyu", "config.yaml")

	created, err := WriteDefault(configPath)
	if err != nil {
		t.Fatalf("WriteDefault() error = %v", err)
	}
	if !created {
		t.Error("WriteDefault() created = false, want true on first call")
	}

	// The written file must round-trip through Load
	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() of written default error = %v", err)
	}
	if cfg.History.MaxAgeDays != 3 {
		t.Errorf("History.MaxAgeDays = %d, want 3", cfg.History.MaxAgeDays)
	}
	if cfg.Database.Path == "" {
		t.Error("Database.Path is empty in written default")
	}

	created, err = WriteDefault(configPath)
	if err != nil {
		t.Fatalf("WriteDefault() second call error = %v", err)
	}
	if created {
		t.Error("WriteDefault() created = true on second call, want false")
	}
}

func TestConfig_DerivedValues(t *testing.T) {
	cfg := Default(t.TempDir())

	if got := cfg.MaxRecordSize(); got != 1<<20 {
		t.Errorf("MaxRecordSize() = %d, want %d", got, 1<<20)
	}
	if got := cfg.MaxAge(); got != 72*time.Hour {
		t.Errorf("MaxAge() = %v, want 72h", got)
	}
}
