// Package clipboard defines the clipboard abstraction and the watcher that
// feeds new clipboard content into the task queue.
//
// # Architecture
//
// The Board interface hides the platform clipboard. Two implementations
// exist: sysboard (the real system clipboard) and mockboard (for tests).
// The Watcher consumes a Board's change events, drops empty payloads and
// immediate repeats via the dedupe guard, and submits a save task for
// everything else. Copying a record back to the clipboard goes through
// Watcher.CopyRecord so the resulting change event is not saved again.
package clipboard
