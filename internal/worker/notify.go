// ABOUTME: Typed notification vocabulary published on the worker's result stream
// ABOUTME: One notification type per task type, delivered after the mutation is committed

package worker

import "github.com/copyu/copyu/internal/store"

// Notification is the sealed union of results the worker publishes. Callers
// correlate responses by notification type and, where relevant, the echoed
// record/tab id.
type Notification interface {
	notificationName() string
}

// RecordSaved reports a successful save with the freshly assigned id
type RecordSaved struct {
	ID int64
}

// RecordsLoaded carries the result of a LoadTask
type RecordsLoaded struct {
	Records []*store.Record
}

// CleanupDone reports a retention sweep that deleted at least one record.
// Sweeps that delete nothing stay silent.
type CleanupDone struct {
	Count int64
}

// ErrorOccurred reports a per-task failure. TaskID correlates with the id
// returned by Submit; TaskName is the failing task's type.
type ErrorOccurred struct {
	TaskID   string
	TaskName string
	Message  string
}

// TabsLoaded carries the result of a LoadTabsTask
type TabsLoaded struct {
	Tabs []*store.Tab
}

// TabRecordsLoaded carries the result of a LoadTabRecordsTask
type TabRecordsLoaded struct {
	TabID   int64
	Records []*store.Record
}

// TabCreated reports a successful tab creation
type TabCreated struct {
	Tab *store.Tab
}

// TabRenamed reports a successful tab rename
type TabRenamed struct {
	TabID int64
	Name  string
}

// TabDeleted reports a successful tab deletion
type TabDeleted struct {
	TabID int64
}

// TabsReordered reports a completed bulk tab reorder
type TabsReordered struct{}

// RecordPinned reports a completed pin
type RecordPinned struct {
	RecordID int64
	TabID    int64
}

// RecordUnpinned reports a completed unpin
type RecordUnpinned struct {
	RecordID int64
	TabID    int64
}

// RecordMoved reports a completed move between tabs
type RecordMoved struct {
	RecordID  int64
	FromTabID int64
	ToTabID   int64
}

// PinnedReordered reports a completed bulk pin reorder within a tab
type PinnedReordered struct {
	TabID int64
}

func (RecordSaved) notificationName() string      { return "record_saved" }
func (RecordsLoaded) notificationName() string    { return "records_loaded" }
func (CleanupDone) notificationName() string      { return "cleanup_done" }
func (ErrorOccurred) notificationName() string    { return "error_occurred" }
func (TabsLoaded) notificationName() string       { return "tabs_loaded" }
func (TabRecordsLoaded) notificationName() string { return "tab_records_loaded" }
func (TabCreated) notificationName() string       { return "tab_created" }
func (TabRenamed) notificationName() string       { return "tab_renamed" }
func (TabDeleted) notificationName() string       { return "tab_deleted" }
func (TabsReordered) notificationName() string    { return "tabs_reordered" }
func (RecordPinned) notificationName() string     { return "record_pinned" }
func (RecordUnpinned) notificationName() string   { return "record_unpinned" }
func (RecordMoved) notificationName() string      { return "record_moved" }
func (PinnedReordered) notificationName() string  { return "pinned_reordered" }
