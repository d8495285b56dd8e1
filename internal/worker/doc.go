// Package worker implements the single-threaded task executor that owns all
// store access.
//
// Exactly one goroutine drains the queue; every other component (capture,
// UI, hotkey) only submits tasks and consumes notifications. This
// single-writer design removes the need for any locking inside the store.
//
// # Contract
//
//   - Submit never blocks and never fails; the queue is unbounded.
//   - Tasks execute in strict FIFO submission order within a batch. Tasks
//     submitted before a drain begins run before anything submitted after.
//   - A task's failure is caught per task, surfaced as an ErrorOccurred
//     notification, and does not abort the rest of the batch.
//   - Each task type maps to exactly one notification type; all results
//     travel on the single typed channel returned by Notifications.
//   - A notification is published only after the corresponding store
//     mutation committed.
//   - Individual tasks cannot be cancelled; Shutdown finishes the in-flight
//     batch and then exits, blocking the caller until the goroutine is gone.
//
// The queue wait is bounded by Options.IdleTimeout so retention sweeps run
// even when nothing is copied; a sweep also follows every drained batch and
// one runs at startup.
package worker
