// ABOUTME: Store interface and data types for copyu persistence
// ABOUTME: Defines Record, Tab, Pin structs and the Store interface for database operations

package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// ErrSizeExceeded is returned when a record's combined payload exceeds the configured cap
var ErrSizeExceeded = errors.New("record content exceeds size limit")

// ErrDuplicateRecord is returned when an identical plain-text payload was saved
// within the dedup window; callers are expected to drop the save silently
var ErrDuplicateRecord = errors.New("duplicate record within dedup window")

// ErrTabCapacity is returned when creating a tab would exceed the custom-tab limit
var ErrTabCapacity = errors.New("custom tab limit reached")

// ErrProtectedTab is returned when a mutation targets the default tab
var ErrProtectedTab = errors.New("default tab is protected")

// DefaultTabName is the name seeded for the default tab at first initialization
const DefaultTabName = "Default"

// MaxCustomTabs is the maximum number of non-default tabs that may exist
const MaxCustomTabs = 3

// Record represents one captured clipboard snapshot.
// At least one of HTML/Plain is non-empty at capture time; records are never
// updated after insertion.
type Record struct {
	ID          int64
	HTML        string
	Plain       string
	Timestamp   time.Time
	AppName     string
	ContentSize int
}

// Tab is a named view grouping records. Exactly one tab is the default;
// it is created at store initialization and cannot be renamed or deleted.
type Tab struct {
	ID        int64
	Name      string
	SortOrder int
	IsDefault bool
	CreatedAt time.Time
}

// Pin is a many-to-many link between a record and a non-default tab,
// with per-tab ordering. (record_id, tab_id) is unique.
type Pin struct {
	ID        int64
	RecordID  int64
	TabID     int64
	SortOrder int
	PinnedAt  time.Time
}

// TabOrder is one entry of a bulk tab reordering request
type TabOrder struct {
	TabID     int64
	SortOrder int
}

// PinOrder is one entry of a bulk pinned-record reordering request
type PinOrder struct {
	RecordID  int64
	SortOrder int
}

// Store defines the interface for clipboard record, tab, and pin persistence.
// Implementations need no internal locking: the task worker serializes access.
type Store interface {
	// Records
	InsertRecord(ctx context.Context, html, plain, appName string) (int64, error)
	GetRecord(ctx context.Context, id int64) (*Record, error)
	ListRecords(ctx context.Context, limit int, search string) ([]*Record, error)
	ListTabRecords(ctx context.Context, tabID int64, limit int) ([]*Record, error)
	DeleteRecordsOlderThan(ctx context.Context, cutoff time.Time) (int64, error)

	// Tabs
	ListTabs(ctx context.Context) ([]*Tab, error)
	GetTab(ctx context.Context, id int64) (*Tab, error)
	DefaultTab(ctx context.Context) (*Tab, error)
	CreateTab(ctx context.Context, name string) (*Tab, error)
	RenameTab(ctx context.Context, tabID int64, name string) error
	DeleteTab(ctx context.Context, tabID int64) error
	ReorderTabs(ctx context.Context, order []TabOrder) error

	// Pins
	PinRecord(ctx context.Context, recordID, tabID int64) error
	UnpinRecord(ctx context.Context, recordID, tabID int64) error
	MoveRecord(ctx context.Context, recordID, fromTabID, toTabID int64) error
	ReorderPinned(ctx context.Context, tabID int64, order []PinOrder) error

	// Close releases any resources held by the store
	Close() error
}
