// Package config handles configuration loading for copyu.
//
// # Overview
//
// Configuration is loaded from YAML files with environment variable expansion.
// The package provides validation and sensible defaults, and can write a
// default config file on first run.
//
// # Configuration File
//
// The file lives at ~/.config/copyu/config.yaml by default. WriteDefault
// creates it with default values when it does not exist yet.
//
// # Environment Variable Expansion
//
// Configuration values can reference environment variables:
//
//	database:
//	  path: "${COPYU_DB_PATH}"
//
// Syntax: ${VAR_NAME}
//
// # Duration Parsing
//
// Duration values use Go's time.ParseDuration syntax:
//
//	history:
//	  cleanup_interval: "1h"
//	  dedup_window: "60s"
//
// Supported units: ns, us, ms, s, m, h
//
// # Configuration Sections
//
// Database:
//
//	database:
//	  path: "~/.config/copyu/copyu.db"
//
// History policy:
//
//	history:
//	  max_age_days: 3        # retention window
//	  max_record_size_mb: 1  # per-record payload cap
//	  max_display_items: 50  # default query limit
//	  cleanup_interval: "1h"
//	  dedup_window: "60s"
//
// Clipboard watcher:
//
//	watcher:
//	  enabled: true
//
// Logging:
//
//	logging:
//	  level: "info"   # debug, info, warn, error
//	  format: "text"  # text, json
//
// # Validation
//
// Load() validates:
//
//   - Database path presence
//   - Positive retention, size, and display limits
//   - Duration format validity
//   - Logging level and format values
//
// # Usage
//
// Load configuration:
//
//	cfg, err := config.Load("/home/user/.config/copyu/config.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
package config
