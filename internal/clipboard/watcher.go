// ABOUTME: Watches a clipboard Board and submits save tasks for new content
// ABOUTME: Applies the last-content guard so platform re-fires are dropped before the queue

package clipboard

import (
	"context"
	"log/slog"

	"github.com/copyu/copyu/internal/dedupe"
	"github.com/copyu/copyu/internal/worker"
)

// Submitter accepts tasks for asynchronous execution. *worker.Worker
// satisfies it.
type Submitter interface {
	Submit(worker.Task) string
}

// Watcher turns clipboard change events into save tasks. Empty content and
// immediate repeats of the last accepted content are dropped without ever
// reaching the task queue.
type Watcher struct {
	board  Board
	tasks  Submitter
	guard  *dedupe.Guard
	logger *slog.Logger
	done   chan struct{}
}

// NewWatcher creates a watcher over board that submits to tasks.
func NewWatcher(board Board, tasks Submitter) *Watcher {
	return &Watcher{
		board:  board,
		tasks:  tasks,
		guard:  dedupe.NewGuard(),
		logger: slog.Default().With("component", "watcher"),
		done:   make(chan struct{}),
	}
}

// Start begins watching in a background goroutine. Cancel ctx to stop; Wait
// blocks until the goroutine has exited.
func (w *Watcher) Start(ctx context.Context) {
	events := w.board.Watch(ctx)

	go func() {
		defer close(w.done)
		w.logger.Info("clipboard watcher started")

		for content := range events {
			w.handle(content)
		}

		w.logger.Info("clipboard watcher stopped")
	}()
}

// Wait blocks until the watch goroutine has exited.
func (w *Watcher) Wait() {
	<-w.done
}

// CopyRecord writes content back to the clipboard, priming the guard so the
// resulting change event is not re-saved as a new record.
func (w *Watcher) CopyRecord(content Content) error {
	w.guard.CheckAndMark(content.Text)
	if err := w.board.Write(content); err != nil {
		return err
	}
	w.logger.Debug("record copied to clipboard", "size", len(content.Text))
	return nil
}

func (w *Watcher) handle(content Content) {
	if content.Empty() {
		w.logger.Debug("ignoring empty clipboard content")
		return
	}

	if w.guard.CheckAndMark(content.Text) {
		w.logger.Debug("ignoring repeated clipboard content")
		return
	}

	taskID := w.tasks.Submit(worker.SaveTask{
		HTML:    content.HTML,
		Plain:   content.Text,
		AppName: content.AppName,
	})
	w.logger.Debug("submitted save for clipboard content",
		"task_id", taskID,
		"size", len(content.Text))
}
