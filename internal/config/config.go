// ABOUTME: Configuration loading and parsing for copyu
// ABOUTME: Supports YAML files with environment variable expansion and duration parsing

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete copyu configuration
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	History  HistoryConfig  `yaml:"history"`
	Watcher  WatcherConfig  `yaml:"watcher"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// HistoryConfig holds retention and display policy for clipboard history
type HistoryConfig struct {
	// MaxAgeDays is how long records are kept before the retention sweep
	// deletes them
	MaxAgeDays int `yaml:"max_age_days"`

	// MaxRecordSizeMB caps the combined HTML+plain payload of a record
	MaxRecordSizeMB int `yaml:"max_record_size_mb"`

	// MaxDisplayItems is the default limit for history queries
	MaxDisplayItems int `yaml:"max_display_items"`

	CleanupInterval time.Duration `yaml:"-"`
	DedupWindow     time.Duration `yaml:"-"`

	// Raw string values for YAML unmarshaling
	CleanupIntervalRaw string `yaml:"cleanup_interval"`
	DedupWindowRaw     string `yaml:"dedup_window"`
}

// WatcherConfig holds clipboard watcher configuration
type WatcherConfig struct {
	Enabled bool `yaml:"enabled"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when no file exists yet.
// The database lives next to the config file under dir.
func Default(dir string) *Config {
	return &Config{
		Database: DatabaseConfig{
			Path: filepath.Join(dir, "copyu.db"),
		},
		History: HistoryConfig{
			MaxAgeDays:      3,
			MaxRecordSizeMB: 1,
			MaxDisplayItems: 50,
			CleanupInterval: time.Hour,
			DedupWindow:     60 * time.Second,
		},
		Watcher: WatcherConfig{Enabled: true},
		Logging: LoggingConfig{Level: "info", Format: "text"},
	}
}

// Load reads a configuration file from the given path and returns a parsed Config.
// Environment variables in the format ${VAR_NAME} are expanded.
// Duration strings are parsed into time.Duration values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the raw YAML content
	expandedData := expandEnvVars(string(data))

	cfg := Default(filepath.Dir(path))
	if err := yaml.Unmarshal([]byte(expandedData), cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Parse duration fields
	if err := parseDurations(cfg); err != nil {
		return nil, fmt.Errorf("parsing durations: %w", err)
	}

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// WriteDefault creates a default config file at path if one does not exist.
// It reports whether a new file was written.
func WriteDefault(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("checking config file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("creating config directory: %w", err)
	}

	cfg := Default(filepath.Dir(path))
	cfg.History.CleanupIntervalRaw = cfg.History.CleanupInterval.String()
	cfg.History.DedupWindowRaw = cfg.History.DedupWindow.String()

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return false, fmt.Errorf("encoding default config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return false, fmt.Errorf("writing default config: %w", err)
	}

	return true, nil
}

// expandEnvVars replaces ${VAR_NAME} patterns with the corresponding environment variable values.
// If the environment variable is not set, it is replaced with an empty string.
func expandEnvVars(s string) string {
	// Match ${VAR_NAME} pattern
	re := regexp.MustCompile(`\$\{([^}]+)\}`)

	return re.ReplaceAllStringFunc(s, func(match string) string {
		// Extract variable name from ${VAR_NAME}
		varName := re.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
}

// Validate checks that all required configuration fields are present and valid.
// Returns an error describing the first validation failure encountered.
func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}

	if c.History.MaxAgeDays <= 0 {
		return fmt.Errorf("history.max_age_days must be positive, got %d", c.History.MaxAgeDays)
	}

	if c.History.MaxRecordSizeMB <= 0 {
		return fmt.Errorf("history.max_record_size_mb must be positive, got %d", c.History.MaxRecordSizeMB)
	}

	if c.History.MaxDisplayItems <= 0 {
		return fmt.Errorf("history.max_display_items must be positive, got %d", c.History.MaxDisplayItems)
	}

	if c.History.CleanupInterval <= 0 {
		return fmt.Errorf("history.cleanup_interval must be positive")
	}

	if c.History.DedupWindow < 0 {
		return fmt.Errorf("history.dedup_window must not be negative")
	}

	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level)
	}

	switch c.Logging.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json, got %q", c.Logging.Format)
	}

	return nil
}

// MaxRecordSize returns the record size cap in bytes.
func (c *Config) MaxRecordSize() int {
	return c.History.MaxRecordSizeMB << 20
}

// MaxAge returns the retention window as a duration.
func (c *Config) MaxAge() time.Duration {
	return time.Duration(c.History.MaxAgeDays) * 24 * time.Hour
}

// parseDurations converts the raw duration strings into time.Duration values
func parseDurations(cfg *Config) error {
	var err error

	if cfg.History.CleanupIntervalRaw != "" {
		cfg.History.CleanupInterval, err = time.ParseDuration(cfg.History.CleanupIntervalRaw)
		if err != nil {
			return fmt.Errorf("parsing cleanup_interval %q: %w", cfg.History.CleanupIntervalRaw, err)
		}
	}

	if cfg.History.DedupWindowRaw != "" {
		cfg.History.DedupWindow, err = time.ParseDuration(cfg.History.DedupWindowRaw)
		if err != nil {
			return fmt.Errorf("parsing dedup_window %q: %w", cfg.History.DedupWindowRaw, err)
		}
	}

	return nil
}
