// ABOUTME: Tab operations enforcing the default-tab and capacity invariants
// ABOUTME: Rename/delete of the default tab is rejected; missing ids are no-ops

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// ListTabs returns all tabs, default first, then custom tabs by sort_order.
func (s *SQLiteStore) ListTabs(ctx context.Context) ([]*Tab, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, sort_order, is_default, created_at
		FROM tabs
		ORDER BY is_default DESC, sort_order ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying tabs: %w", err)
	}
	defer rows.Close()

	var tabs []*Tab
	for rows.Next() {
		tab, err := scanTab(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning tab row: %w", err)
		}
		tabs = append(tabs, tab)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tab rows: %w", err)
	}
	return tabs, nil
}

// GetTab retrieves a tab by id.
// Returns ErrNotFound if the tab doesn't exist.
func (s *SQLiteStore) GetTab(ctx context.Context, id int64) (*Tab, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, sort_order, is_default, created_at
		FROM tabs
		WHERE id = ?
	`, id)

	tab, err := scanTab(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying tab: %w", err)
	}
	return tab, nil
}

// DefaultTab returns the single default tab. The store seeds it at
// initialization, so it always exists.
func (s *SQLiteStore) DefaultTab(ctx context.Context) (*Tab, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, sort_order, is_default, created_at
		FROM tabs
		WHERE is_default = 1
	`)

	tab, err := scanTab(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying default tab: %w", err)
	}
	return tab, nil
}

// CreateTab inserts a new custom tab at the end of the custom-tab order.
// Fails with ErrTabCapacity once MaxCustomTabs non-default tabs exist.
func (s *SQLiteStore) CreateTab(ctx context.Context, name string) (*Tab, error) {
	if name == "" {
		return nil, fmt.Errorf("tab name must not be empty")
	}

	var count int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tabs WHERE is_default = 0`).Scan(&count); err != nil {
		return nil, fmt.Errorf("counting custom tabs: %w", err)
	}
	if count >= MaxCustomTabs {
		return nil, ErrTabCapacity
	}

	var maxOrder sql.NullInt64
	if err := s.db.QueryRowContext(ctx,
		`SELECT MAX(sort_order) FROM tabs WHERE is_default = 0`).Scan(&maxOrder); err != nil {
		return nil, fmt.Errorf("reading tab sort order: %w", err)
	}

	now := time.Now()
	sortOrder := int(maxOrder.Int64) + 1

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO tabs (name, sort_order, is_default, created_at)
		VALUES (?, ?, 0, ?)
	`, name, sortOrder, unixSeconds(now))
	if err != nil {
		return nil, fmt.Errorf("inserting tab: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading inserted tab id: %w", err)
	}

	s.logger.Debug("created tab", "id", id, "name", name)
	return &Tab{
		ID:        id,
		Name:      name,
		SortOrder: sortOrder,
		CreatedAt: fromUnixSeconds(unixSeconds(now)),
	}, nil
}

// RenameTab changes a custom tab's name.
// Returns ErrProtectedTab for the default tab; a missing tab id is a no-op
// (stale UI state racing a delete is expected, not an error).
func (s *SQLiteStore) RenameTab(ctx context.Context, tabID int64, name string) error {
	if name == "" {
		return fmt.Errorf("tab name must not be empty")
	}

	protected, err := s.isDefaultTab(ctx, tabID)
	if err != nil {
		return err
	}
	if protected {
		return ErrProtectedTab
	}

	_, err = s.db.ExecContext(ctx,
		`UPDATE tabs SET name = ? WHERE id = ? AND is_default = 0`, name, tabID)
	if err != nil {
		return fmt.Errorf("renaming tab: %w", err)
	}

	s.logger.Debug("renamed tab", "id", tabID, "name", name)
	return nil
}

// DeleteTab removes a custom tab and cascades deletion of its pin
// associations only; the underlying records survive. Returns ErrProtectedTab
// for the default tab; a missing tab id is a no-op.
func (s *SQLiteStore) DeleteTab(ctx context.Context, tabID int64) error {
	protected, err := s.isDefaultTab(ctx, tabID)
	if err != nil {
		return err
	}
	if protected {
		return ErrProtectedTab
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning tab delete: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM pinned_records WHERE tab_id = ?`, tabID); err != nil {
		return fmt.Errorf("deleting tab pin associations: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM tabs WHERE id = ? AND is_default = 0`, tabID); err != nil {
		return fmt.Errorf("deleting tab: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing tab delete: %w", err)
	}

	s.logger.Debug("deleted tab", "id", tabID)
	return nil
}

// ReorderTabs applies bulk sort_order updates to custom tabs. Entries
// referencing the default tab are ignored: it has no independent ordering.
func (s *SQLiteStore) ReorderTabs(ctx context.Context, order []TabOrder) error {
	if len(order) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning tab reorder: %w", err)
	}
	defer tx.Rollback()

	for _, o := range order {
		if _, err := tx.ExecContext(ctx,
			`UPDATE tabs SET sort_order = ? WHERE id = ? AND is_default = 0`,
			o.SortOrder, o.TabID); err != nil {
			return fmt.Errorf("updating tab %d order: %w", o.TabID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing tab reorder: %w", err)
	}
	return nil
}

// isDefaultTab reports whether tabID refers to the default tab.
// A missing tab is not the default tab.
func (s *SQLiteStore) isDefaultTab(ctx context.Context, tabID int64) (bool, error) {
	var isDefault bool
	err := s.db.QueryRowContext(ctx,
		`SELECT is_default FROM tabs WHERE id = ?`, tabID).Scan(&isDefault)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking default tab: %w", err)
	}
	return isDefault, nil
}

// scanTab scans one tabs row
func scanTab(scan func(dest ...any) error) (*Tab, error) {
	var tab Tab
	var createdAt float64

	if err := scan(&tab.ID, &tab.Name, &tab.SortOrder, &tab.IsDefault, &createdAt); err != nil {
		return nil, err
	}
	tab.CreatedAt = fromUnixSeconds(createdAt)
	return &tab, nil
}
