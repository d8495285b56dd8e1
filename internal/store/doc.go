// Package store provides persistent storage for clipboard history using SQLite.
//
// # Architecture
//
// SQLiteStore implements the Store interface across several files:
//
//   - records.go: clipboard record insert/query/retention-delete
//   - tabs.go: tab CRUD with default-tab and capacity invariants
//   - pins.go: pin associations and per-tab ordered queries
//
// The store performs no internal locking. All access is serialized by the
// task worker (internal/worker), which is the only component that touches
// the store at runtime.
//
// # Data Models
//
//   - Record: one captured clipboard snapshot (html + plain payloads,
//     capture timestamp with float-second precision, provenance, byte size).
//     Records are immutable after insertion.
//   - Tab: a named view over records. Exactly one tab is the default; it is
//     seeded at initialization and protected from rename/delete. At most
//     MaxCustomTabs non-default tabs may exist.
//   - Pin: a (record, tab) association with per-tab ordering, unique per
//     pair. Deleting a tab or expiring a record removes its pins only.
//
// # Policies
//
//   - Size cap: InsertRecord rejects payloads over Options.MaxRecordSize
//     (default 1 MiB) with ErrSizeExceeded.
//   - Dedup window: identical plain text within Options.DedupWindow
//     (default 60s) yields ErrDuplicateRecord and no new row.
//   - Retention: DeleteRecordsOlderThan removes expired records and their
//     pins in one transaction.
//
// # SQLite Configuration
//
// The store uses SQLite with WAL mode:
//
//	PRAGMA journal_mode=WAL;
//	PRAGMA foreign_keys=ON;
//
// The schema is versionless and evolves through idempotent
// CREATE TABLE IF NOT EXISTS statements.
//
// # Error Handling
//
// Sentinel errors: ErrNotFound, ErrSizeExceeded, ErrDuplicateRecord,
// ErrTabCapacity, ErrProtectedTab. Mutations referencing missing rows
// (rename/delete/pin/unpin against stale ids) are deliberate no-ops, since
// the UI routinely races retention cleanup.
//
// All methods accept context.Context for cancellation support.
package store
