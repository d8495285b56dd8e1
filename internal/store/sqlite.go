// ABOUTME: SQLite implementation of the Store interface using modernc.org/sqlite
// ABOUTME: Provides record/tab/pin persistence with automatic schema creation

package store

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Options tunes storage policy. Zero values fall back to the documented defaults.
type Options struct {
	// MaxRecordSize is the byte cap on len(html)+len(plain) per record.
	// Default 1 MiB.
	MaxRecordSize int

	// DedupWindow is how far back identical plain-text content suppresses a
	// new insert. Default 60 seconds.
	DedupWindow time.Duration

	// DefaultLimit caps list queries when the caller passes limit <= 0.
	// Default 50.
	DefaultLimit int
}

const (
	defaultMaxRecordSize = 1 << 20
	defaultDedupWindow   = 60 * time.Second
	defaultListLimit     = 50
)

// SQLiteStore implements the Store interface using SQLite
type SQLiteStore struct {
	db            *sql.DB
	logger        *slog.Logger
	maxRecordSize int
	dedupWindow   time.Duration
	defaultLimit  int
}

// NewSQLiteStore creates a new SQLite store at the given path.
// The schema is automatically created if it doesn't exist and the default
// tab is seeded on first initialization. Parent directories are created if
// needed.
func NewSQLiteStore(path string, opts Options) (*SQLiteStore, error) {
	logger := slog.Default().With("component", "store")

	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable WAL mode for better concurrent read performance
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &SQLiteStore{
		db:            db,
		logger:        logger,
		maxRecordSize: opts.MaxRecordSize,
		dedupWindow:   opts.DedupWindow,
		defaultLimit:  opts.DefaultLimit,
	}
	if s.maxRecordSize <= 0 {
		s.maxRecordSize = defaultMaxRecordSize
	}
	if s.dedupWindow <= 0 {
		s.dedupWindow = defaultDedupWindow
	}
	if s.defaultLimit <= 0 {
		s.defaultLimit = defaultListLimit
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	if err := s.seedDefaultTab(); err != nil {
		db.Close()
		return nil, fmt.Errorf("seeding default tab: %w", err)
	}

	logger.Info("SQLite store initialized", "path", path)
	return s, nil
}

// createSchema creates the database tables if they don't exist.
// The schema is versionless: it evolves through idempotent IF NOT EXISTS
// statements, not migrations.
func (s *SQLiteStore) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS clipboard_records (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			html_content TEXT,
			plain_text TEXT,
			timestamp REAL NOT NULL,
			app_name TEXT,
			content_size INTEGER
		);

		CREATE INDEX IF NOT EXISTS idx_records_timestamp
			ON clipboard_records(timestamp);

		CREATE TABLE IF NOT EXISTS tabs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			sort_order INTEGER NOT NULL DEFAULT 0,
			is_default INTEGER NOT NULL DEFAULT 0,
			created_at REAL NOT NULL
		);

		CREATE TABLE IF NOT EXISTS pinned_records (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			record_id INTEGER NOT NULL,
			tab_id INTEGER NOT NULL,
			sort_order INTEGER NOT NULL DEFAULT 0,
			pinned_at REAL NOT NULL,

			UNIQUE(record_id, tab_id)
		);

		CREATE INDEX IF NOT EXISTS idx_pinned_tab_order
			ON pinned_records(tab_id, sort_order);

		CREATE INDEX IF NOT EXISTS idx_pinned_record
			ON pinned_records(record_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// seedDefaultTab inserts the default tab if no default exists yet.
// Safe to run on every startup.
func (s *SQLiteStore) seedDefaultTab() error {
	_, err := s.db.Exec(`
		INSERT INTO tabs (name, sort_order, is_default, created_at)
		SELECT ?, 0, 1, ?
		WHERE NOT EXISTS (SELECT 1 FROM tabs WHERE is_default = 1)
	`, DefaultTabName, unixSeconds(time.Now()))
	return err
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	s.logger.Info("closing SQLite store")
	return s.db.Close()
}

// unixSeconds converts a time to fractional seconds since the epoch,
// matching the REAL timestamp columns.
func unixSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / 1e9
}

// fromUnixSeconds converts a REAL timestamp column back to a time.Time.
func fromUnixSeconds(sec float64) time.Time {
	return time.Unix(0, int64(sec*1e9))
}

// clampLimit applies the default limit when the caller passes limit <= 0.
func (s *SQLiteStore) clampLimit(limit int) int {
	if limit <= 0 {
		return s.defaultLimit
	}
	return limit
}

// scanRecord scans one clipboard_records row. Text columns are scanned
// NULL-tolerant for databases written before empty strings were stored
// as ''; the timestamp column is REAL seconds.
func scanRecord(scan func(dest ...any) error) (*Record, error) {
	var rec Record
	var html, plain, app sql.NullString
	var ts float64
	var size sql.NullInt64

	if err := scan(&rec.ID, &html, &plain, &ts, &app, &size); err != nil {
		return nil, err
	}

	rec.HTML = html.String
	rec.Plain = plain.String
	rec.AppName = app.String
	rec.Timestamp = fromUnixSeconds(ts)
	rec.ContentSize = int(size.Int64)
	return &rec, nil
}

// Ensure SQLiteStore implements the Store interface
var _ Store = (*SQLiteStore)(nil)
