// ABOUTME: Clipboard record operations: insert with size/dedup policy, queries, retention delete
// ABOUTME: All timestamps are REAL seconds since the epoch with float precision

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// InsertRecord stores one clipboard snapshot and returns its freshly assigned id.
//
// It fails with ErrSizeExceeded when the combined byte length of both payloads
// is over the configured cap, and with ErrDuplicateRecord when an identical
// plain_text was stored within the dedup window (callers drop that case
// silently: no new row, no notification).
func (s *SQLiteStore) InsertRecord(ctx context.Context, html, plain, appName string) (int64, error) {
	contentSize := len(html) + len(plain)
	if contentSize > s.maxRecordSize {
		return 0, fmt.Errorf("%w: %d bytes over %d byte cap", ErrSizeExceeded, contentSize, s.maxRecordSize)
	}

	now := time.Now()

	// Tier-2 dedup: identical plain text within the window means the same
	// underlying copy arrived through a second path.
	windowStart := unixSeconds(now.Add(-s.dedupWindow))
	var existing int64
	err := s.db.QueryRowContext(ctx, `
		SELECT id FROM clipboard_records
		WHERE plain_text = ? AND timestamp > ?
		LIMIT 1
	`, plain, windowStart).Scan(&existing)
	if err == nil {
		return 0, ErrDuplicateRecord
	}
	if err != sql.ErrNoRows {
		return 0, fmt.Errorf("checking for duplicate record: %w", err)
	}

	// Payloads are stored as empty strings, never NULL, so the dedup
	// equality check above also covers HTML-only records.
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO clipboard_records (html_content, plain_text, timestamp, app_name, content_size)
		VALUES (?, ?, ?, ?, ?)
	`, html, plain, unixSeconds(now), appName, contentSize)
	if err != nil {
		return 0, fmt.Errorf("inserting record: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading inserted record id: %w", err)
	}

	s.logger.Debug("saved record", "id", id, "size", contentSize)
	return id, nil
}

// GetRecord retrieves a record by id.
// Returns ErrNotFound if the record doesn't exist.
func (s *SQLiteStore) GetRecord(ctx context.Context, id int64) (*Record, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, html_content, plain_text, timestamp, app_name, content_size
		FROM clipboard_records
		WHERE id = ?
	`, id)

	rec, err := scanRecord(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying record: %w", err)
	}
	return rec, nil
}

// ListRecords returns up to limit records ordered by timestamp descending.
// A non-empty search restricts results to records whose plain_text contains
// it (case-sensitive containment, no tokenization). limit <= 0 uses the
// configured default.
func (s *SQLiteStore) ListRecords(ctx context.Context, limit int, search string) ([]*Record, error) {
	limit = s.clampLimit(limit)

	var rows *sql.Rows
	var err error
	if search != "" {
		rows, err = s.db.QueryContext(ctx, `
			SELECT id, html_content, plain_text, timestamp, app_name, content_size
			FROM clipboard_records
			WHERE instr(plain_text, ?) > 0
			ORDER BY timestamp DESC
			LIMIT ?
		`, search, limit)
	} else {
		rows, err = s.db.QueryContext(ctx, `
			SELECT id, html_content, plain_text, timestamp, app_name, content_size
			FROM clipboard_records
			ORDER BY timestamp DESC
			LIMIT ?
		`, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	defer rows.Close()

	return collectRecords(rows)
}

// DeleteRecordsOlderThan deletes records with timestamp strictly before the
// cutoff, removing their pin associations first. Referential integrity is
// enforced here, not assumed from the underlying storage. Returns the number
// of deleted records.
func (s *SQLiteStore) DeleteRecordsOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning retention delete: %w", err)
	}
	defer tx.Rollback()

	cut := unixSeconds(cutoff)

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM pinned_records
		WHERE record_id IN (SELECT id FROM clipboard_records WHERE timestamp < ?)
	`, cut); err != nil {
		return 0, fmt.Errorf("deleting expired pin associations: %w", err)
	}

	res, err := tx.ExecContext(ctx, `
		DELETE FROM clipboard_records WHERE timestamp < ?
	`, cut)
	if err != nil {
		return 0, fmt.Errorf("deleting expired records: %w", err)
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting deleted records: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing retention delete: %w", err)
	}

	if deleted > 0 {
		s.logger.Debug("deleted expired records", "count", deleted)
	}
	return deleted, nil
}

// collectRecords drains a record result set
func collectRecords(rows *sql.Rows) ([]*Record, error) {
	var records []*Record
	for rows.Next() {
		rec, err := scanRecord(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning record row: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating record rows: %w", err)
	}
	return records, nil
}
