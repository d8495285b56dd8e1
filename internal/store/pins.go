// ABOUTME: Pin association operations: pin/unpin/move/reorder and per-tab record queries
// ABOUTME: (record_id, tab_id) is unique; pin/unpin are idempotent, missing rows are no-ops

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// ListTabRecords returns records for a tab, capped at limit.
//
// For the default tab this is the plain time-ordered history (identical to
// ListRecords with no filter). For custom tabs it joins through the pin
// associations, ordered by sort_order ascending then pinned_at descending.
func (s *SQLiteStore) ListTabRecords(ctx context.Context, tabID int64, limit int) ([]*Record, error) {
	isDefault, err := s.isDefaultTab(ctx, tabID)
	if err != nil {
		return nil, err
	}
	if isDefault {
		return s.ListRecords(ctx, limit, "")
	}

	limit = s.clampLimit(limit)

	rows, err := s.db.QueryContext(ctx, `
		SELECT r.id, r.html_content, r.plain_text, r.timestamp, r.app_name, r.content_size
		FROM clipboard_records r
		JOIN pinned_records p ON p.record_id = r.id
		WHERE p.tab_id = ?
		ORDER BY p.sort_order ASC, p.pinned_at DESC
		LIMIT ?
	`, tabID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying tab records: %w", err)
	}
	defer rows.Close()

	return collectRecords(rows)
}

// PinRecord links a record into a custom tab at the end of the tab's order.
// Pinning is idempotent: an existing association is left untouched with no
// error. Pinning into the default tab is rejected with ErrProtectedTab; a
// missing record id is a no-op.
func (s *SQLiteStore) PinRecord(ctx context.Context, recordID, tabID int64) error {
	isDefault, err := s.isDefaultTab(ctx, tabID)
	if err != nil {
		return err
	}
	if isDefault {
		return ErrProtectedTab
	}

	if ok, err := s.recordExists(ctx, recordID); err != nil || !ok {
		return err
	}
	if ok, err := s.tabExists(ctx, tabID); err != nil || !ok {
		return err
	}

	var maxOrder sql.NullInt64
	if err := s.db.QueryRowContext(ctx,
		`SELECT MAX(sort_order) FROM pinned_records WHERE tab_id = ?`, tabID).Scan(&maxOrder); err != nil {
		return fmt.Errorf("reading pin sort order: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO pinned_records (record_id, tab_id, sort_order, pinned_at)
		VALUES (?, ?, ?, ?)
	`, recordID, tabID, int(maxOrder.Int64)+1, unixSeconds(time.Now()))
	if err != nil {
		return fmt.Errorf("inserting pin association: %w", err)
	}

	s.logger.Debug("pinned record", "record_id", recordID, "tab_id", tabID)
	return nil
}

// UnpinRecord removes the association between a record and a tab.
// Absence of the association is not an error.
func (s *SQLiteStore) UnpinRecord(ctx context.Context, recordID, tabID int64) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM pinned_records WHERE record_id = ? AND tab_id = ?`, recordID, tabID)
	if err != nil {
		return fmt.Errorf("deleting pin association: %w", err)
	}

	s.logger.Debug("unpinned record", "record_id", recordID, "tab_id", tabID)
	return nil
}

// MoveRecord removes a record's pin from the source tab and pins it into the
// destination. If the destination already holds the record, the move is a
// no-op beyond removing it from the source. A move into the default tab is
// rejected with ErrProtectedTab and a move into a missing tab is a no-op;
// neither touches the source pin.
func (s *SQLiteStore) MoveRecord(ctx context.Context, recordID, fromTabID, toTabID int64) error {
	// Validate the destination before unpinning: a rejected move must leave
	// the source association intact.
	isDefault, err := s.isDefaultTab(ctx, toTabID)
	if err != nil {
		return err
	}
	if isDefault {
		return ErrProtectedTab
	}
	if ok, err := s.tabExists(ctx, toTabID); err != nil || !ok {
		return err
	}

	if err := s.UnpinRecord(ctx, recordID, fromTabID); err != nil {
		return err
	}
	return s.PinRecord(ctx, recordID, toTabID)
}

// ReorderPinned applies bulk sort_order updates to a tab's pin associations.
// Requests against the default tab are ignored: it has no independent
// ordering.
func (s *SQLiteStore) ReorderPinned(ctx context.Context, tabID int64, order []PinOrder) error {
	if len(order) == 0 {
		return nil
	}

	isDefault, err := s.isDefaultTab(ctx, tabID)
	if err != nil {
		return err
	}
	if isDefault {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning pin reorder: %w", err)
	}
	defer tx.Rollback()

	for _, o := range order {
		if _, err := tx.ExecContext(ctx,
			`UPDATE pinned_records SET sort_order = ? WHERE tab_id = ? AND record_id = ?`,
			o.SortOrder, tabID, o.RecordID); err != nil {
			return fmt.Errorf("updating pin order for record %d: %w", o.RecordID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing pin reorder: %w", err)
	}
	return nil
}

// recordExists reports whether a record id is present
func (s *SQLiteStore) recordExists(ctx context.Context, recordID int64) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM clipboard_records WHERE id = ?`, recordID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking record existence: %w", err)
	}
	return true, nil
}

// tabExists reports whether a tab id is present
func (s *SQLiteStore) tabExists(ctx context.Context, tabID int64) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM tabs WHERE id = ?`, tabID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking tab existence: %w", err)
	}
	return true, nil
}
