// ABOUTME: Tests for tab operations
// ABOUTME: Covers capacity limit, default-tab protection, cascade delete, and reorder

package store

import (
	"context"
	"errors"
	"testing"
)

func TestCreateTab_CapacityLimit(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()
	ctx := context.Background()

	for _, name := range []string{"Work", "Home", "Travel"} {
		if _, err := store.CreateTab(ctx, name); err != nil {
			t.Fatalf("CreateTab(%q) failed: %v", name, err)
		}
	}

	// Fourth custom tab is rejected and existing tabs are unaffected
	_, err := store.CreateTab(ctx, "Extra")
	if !errors.Is(err, ErrTabCapacity) {
		t.Fatalf("expected ErrTabCapacity, got %v", err)
	}

	tabs, err := store.ListTabs(ctx)
	if err != nil {
		t.Fatalf("ListTabs failed: %v", err)
	}
	// 1 default + 3 custom
	if len(tabs) != 4 {
		t.Errorf("expected 4 tabs total, got %d", len(tabs))
	}
}

func TestCreateTab_AssignsIncreasingSortOrder(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()
	ctx := context.Background()

	first, err := store.CreateTab(ctx, "Work")
	if err != nil {
		t.Fatalf("CreateTab failed: %v", err)
	}
	second, err := store.CreateTab(ctx, "Home")
	if err != nil {
		t.Fatalf("CreateTab failed: %v", err)
	}

	if second.SortOrder <= first.SortOrder {
		t.Errorf("sort order not increasing: first=%d second=%d", first.SortOrder, second.SortOrder)
	}
}

func TestCreateTab_EmptyName(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()

	if _, err := store.CreateTab(context.Background(), ""); err == nil {
		t.Error("expected error for empty tab name")
	}
}

func TestRenameTab(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()
	ctx := context.Background()

	tab, err := store.CreateTab(ctx, "Work")
	if err != nil {
		t.Fatalf("CreateTab failed: %v", err)
	}

	if err := store.RenameTab(ctx, tab.ID, "Projects"); err != nil {
		t.Fatalf("RenameTab failed: %v", err)
	}

	got, err := store.GetTab(ctx, tab.ID)
	if err != nil {
		t.Fatalf("GetTab failed: %v", err)
	}
	if got.Name != "Projects" {
		t.Errorf("Name = %q, want %q", got.Name, "Projects")
	}
}

func TestRenameTab_DefaultIsProtected(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()
	ctx := context.Background()

	def, err := store.DefaultTab(ctx)
	if err != nil {
		t.Fatalf("DefaultTab failed: %v", err)
	}

	err = store.RenameTab(ctx, def.ID, "Renamed")
	if !errors.Is(err, ErrProtectedTab) {
		t.Fatalf("expected ErrProtectedTab, got %v", err)
	}

	got, err := store.GetTab(ctx, def.ID)
	if err != nil {
		t.Fatalf("GetTab failed: %v", err)
	}
	if got.Name != DefaultTabName {
		t.Errorf("default tab name changed to %q", got.Name)
	}
}

func TestRenameTab_MissingIsNoop(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()

	if err := store.RenameTab(context.Background(), 999, "Ghost"); err != nil {
		t.Errorf("expected no-op for missing tab, got %v", err)
	}
}

func TestDeleteTab_DefaultIsProtected(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()
	ctx := context.Background()

	def, err := store.DefaultTab(ctx)
	if err != nil {
		t.Fatalf("DefaultTab failed: %v", err)
	}

	err = store.DeleteTab(ctx, def.ID)
	if !errors.Is(err, ErrProtectedTab) {
		t.Fatalf("expected ErrProtectedTab, got %v", err)
	}

	if _, err := store.DefaultTab(ctx); err != nil {
		t.Errorf("default tab gone after rejected delete: %v", err)
	}
}

func TestDeleteTab_CascadesPinsButKeepsRecords(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()
	ctx := context.Background()

	tab, err := store.CreateTab(ctx, "Work")
	if err != nil {
		t.Fatalf("CreateTab failed: %v", err)
	}

	id, err := store.InsertRecord(ctx, "", "keep me", "")
	if err != nil {
		t.Fatalf("InsertRecord failed: %v", err)
	}
	if err := store.PinRecord(ctx, id, tab.ID); err != nil {
		t.Fatalf("PinRecord failed: %v", err)
	}

	if err := store.DeleteTab(ctx, tab.ID); err != nil {
		t.Fatalf("DeleteTab failed: %v", err)
	}

	// The association is gone but the record is still visible in history
	if _, err := store.GetTab(ctx, tab.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("tab still present after delete: %v", err)
	}

	records, err := store.ListRecords(ctx, 10, "")
	if err != nil {
		t.Fatalf("ListRecords failed: %v", err)
	}
	if len(records) != 1 || records[0].ID != id {
		t.Errorf("record lost on tab delete: got %d records", len(records))
	}

	var pins int
	if err := store.db.QueryRow(`SELECT COUNT(*) FROM pinned_records`).Scan(&pins); err != nil {
		t.Fatalf("counting pins: %v", err)
	}
	if pins != 0 {
		t.Errorf("expected 0 pin rows after tab delete, got %d", pins)
	}
}

func TestDeleteTab_MissingIsNoop(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()

	if err := store.DeleteTab(context.Background(), 999); err != nil {
		t.Errorf("expected no-op for missing tab, got %v", err)
	}
}

func TestReorderTabs(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()
	ctx := context.Background()

	work, err := store.CreateTab(ctx, "Work")
	if err != nil {
		t.Fatalf("CreateTab failed: %v", err)
	}
	home, err := store.CreateTab(ctx, "Home")
	if err != nil {
		t.Fatalf("CreateTab failed: %v", err)
	}

	err = store.ReorderTabs(ctx, []TabOrder{
		{TabID: work.ID, SortOrder: 2},
		{TabID: home.ID, SortOrder: 1},
	})
	if err != nil {
		t.Fatalf("ReorderTabs failed: %v", err)
	}

	tabs, err := store.ListTabs(ctx)
	if err != nil {
		t.Fatalf("ListTabs failed: %v", err)
	}
	// default, then Home (1), then Work (2)
	if len(tabs) != 3 {
		t.Fatalf("expected 3 tabs, got %d", len(tabs))
	}
	if tabs[1].ID != home.ID || tabs[2].ID != work.ID {
		t.Errorf("custom tab order after reorder: got %q, %q", tabs[1].Name, tabs[2].Name)
	}
}

func TestReorderTabs_IgnoresDefaultTab(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()
	ctx := context.Background()

	def, err := store.DefaultTab(ctx)
	if err != nil {
		t.Fatalf("DefaultTab failed: %v", err)
	}

	err = store.ReorderTabs(ctx, []TabOrder{{TabID: def.ID, SortOrder: 42}})
	if err != nil {
		t.Fatalf("ReorderTabs failed: %v", err)
	}

	got, err := store.DefaultTab(ctx)
	if err != nil {
		t.Fatalf("DefaultTab failed: %v", err)
	}
	if got.SortOrder != 0 {
		t.Errorf("default tab sort order changed to %d", got.SortOrder)
	}
}
