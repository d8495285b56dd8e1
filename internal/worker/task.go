// ABOUTME: Typed task vocabulary submitted to the worker queue
// ABOUTME: One struct per task type replaces the loosely-typed payload maps of older designs

package worker

import "github.com/copyu/copyu/internal/store"

// Task is the sealed union of requests the worker executes. Each task type
// maps to exactly one notification type on the result stream.
type Task interface {
	taskName() string
}

// SaveTask stores one observed clipboard snapshot
type SaveTask struct {
	HTML    string
	Plain   string
	AppName string
}

// LoadTask retrieves recent records, optionally filtered by substring
type LoadTask struct {
	Limit  int
	Search string
}

// CleanupTask triggers a retention sweep on demand
type CleanupTask struct{}

// LoadTabsTask retrieves all tabs
type LoadTabsTask struct{}

// LoadTabRecordsTask retrieves the records shown on one tab
type LoadTabRecordsTask struct {
	TabID int64
	Limit int
}

// CreateTabTask creates a custom tab
type CreateTabTask struct {
	Name string
}

// RenameTabTask renames a custom tab
type RenameTabTask struct {
	TabID int64
	Name  string
}

// DeleteTabTask deletes a custom tab and its pin associations
type DeleteTabTask struct {
	TabID int64
}

// ReorderTabsTask applies a bulk custom-tab ordering
type ReorderTabsTask struct {
	Order []store.TabOrder
}

// PinRecordTask pins a record into a custom tab
type PinRecordTask struct {
	RecordID int64
	TabID    int64
}

// UnpinRecordTask removes a record's pin from a tab
type UnpinRecordTask struct {
	RecordID int64
	TabID    int64
}

// MoveRecordTask moves a record's pin from one tab to another
type MoveRecordTask struct {
	RecordID  int64
	FromTabID int64
	ToTabID   int64
}

// ReorderPinnedTask applies a bulk pin ordering within one tab
type ReorderPinnedTask struct {
	TabID int64
	Order []store.PinOrder
}

func (SaveTask) taskName() string           { return "save" }
func (LoadTask) taskName() string           { return "load" }
func (CleanupTask) taskName() string        { return "cleanup" }
func (LoadTabsTask) taskName() string       { return "load_tabs" }
func (LoadTabRecordsTask) taskName() string { return "load_tab_records" }
func (CreateTabTask) taskName() string      { return "create_tab" }
func (RenameTabTask) taskName() string      { return "rename_tab" }
func (DeleteTabTask) taskName() string      { return "delete_tab" }
func (ReorderTabsTask) taskName() string    { return "reorder_tabs" }
func (PinRecordTask) taskName() string      { return "pin_record" }
func (UnpinRecordTask) taskName() string    { return "unpin_record" }
func (MoveRecordTask) taskName() string     { return "move_record" }
func (ReorderPinnedTask) taskName() string  { return "reorder_pinned" }
