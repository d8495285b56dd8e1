// ABOUTME: Single-threaded task worker that serializes all store access
// ABOUTME: Drains a FIFO queue in batches, isolates per-task failures, and sweeps retention

package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/copyu/copyu/internal/store"
)

// Options tunes worker behavior. Zero values fall back to the documented
// defaults.
type Options struct {
	// IdleTimeout bounds the wait on the queue so retention sweeps run even
	// absent activity. Default 60 seconds.
	IdleTimeout time.Duration

	// RetentionAge is how long records are kept before sweeps delete them.
	// Default 72 hours.
	RetentionAge time.Duration

	// NotifyBuffer sizes the notification channel. Default 128.
	NotifyBuffer int
}

const (
	defaultIdleTimeout  = 60 * time.Second
	defaultRetentionAge = 3 * 24 * time.Hour
	defaultNotifyBuffer = 128
)

// submission pairs a queued task with its correlation id
type submission struct {
	id   string
	task Task
}

// Worker owns all storage mutation and query execution. External components
// submit tasks and receive asynchronous notifications; they never touch the
// store directly. Tasks execute strictly in submission order.
type Worker struct {
	store        store.Store
	logger       *slog.Logger
	idleTimeout  time.Duration
	retentionAge time.Duration

	mu    sync.Mutex
	queue []submission

	wake   chan struct{}
	stop   chan struct{}
	done   chan struct{}
	notifs chan Notification

	startOnce sync.Once
	stopOnce  sync.Once
}

// New creates a worker bound to the given store. Call Start to begin
// processing.
func New(st store.Store, opts Options) *Worker {
	w := &Worker{
		store:        st,
		logger:       slog.Default().With("component", "worker"),
		idleTimeout:  opts.IdleTimeout,
		retentionAge: opts.RetentionAge,
		wake:         make(chan struct{}, 1),
		stop:         make(chan struct{}),
		done:         make(chan struct{}),
	}
	if w.idleTimeout <= 0 {
		w.idleTimeout = defaultIdleTimeout
	}
	if w.retentionAge <= 0 {
		w.retentionAge = defaultRetentionAge
	}
	buf := opts.NotifyBuffer
	if buf <= 0 {
		buf = defaultNotifyBuffer
	}
	w.notifs = make(chan Notification, buf)
	return w
}

// Start launches the worker goroutine. Subsequent calls are no-ops.
func (w *Worker) Start() {
	w.startOnce.Do(func() {
		go w.run()
	})
}

// Notifications returns the stream of task results. The owner of the worker
// is expected to drain it for the worker's lifetime.
func (w *Worker) Notifications() <-chan Notification {
	return w.notifs
}

// Submit appends a task to the queue and wakes the worker. It never blocks
// and never fails; the queue is unbounded. The returned id correlates error
// notifications with their originating task.
func (w *Worker) Submit(task Task) string {
	id := uuid.NewString()

	w.mu.Lock()
	w.queue = append(w.queue, submission{id: id, task: task})
	w.mu.Unlock()

	select {
	case w.wake <- struct{}{}:
	default:
		// A wakeup is already pending; the drain will pick this task up too.
	}

	w.logger.Debug("task submitted", "task", task.taskName(), "task_id", id)
	return id
}

// Shutdown stops the worker and blocks until its goroutine has fully exited.
// The batch being executed finishes first; tasks still queued but not yet
// drained are dropped.
func (w *Worker) Shutdown() {
	w.stopOnce.Do(func() {
		close(w.stop)
	})
	<-w.done
	w.logger.Info("worker stopped")
}

// run is the worker loop: wait (bounded), drain, execute FIFO, sweep.
func (w *Worker) run() {
	defer close(w.done)

	ctx := context.Background()

	// Startup sweep so a long-stopped store is pruned immediately
	w.sweep(ctx)

	timer := time.NewTimer(w.idleTimeout)
	defer timer.Stop()

	for {
		select {
		case <-w.stop:
			return
		case <-w.wake:
		case <-timer.C:
		}

		// Observe shutdown promptly even when woken with work pending
		select {
		case <-w.stop:
			return
		default:
		}

		for _, sub := range w.drain() {
			w.execute(ctx, sub)
		}
		w.sweep(ctx)

		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(w.idleTimeout)
	}
}

// drain atomically takes the current queue contents as one batch
func (w *Worker) drain() []submission {
	w.mu.Lock()
	defer w.mu.Unlock()

	batch := w.queue
	w.queue = nil
	return batch
}

// execute runs one task. Failures are caught here, converted to an error
// notification, and never abort the rest of the batch.
func (w *Worker) execute(ctx context.Context, sub submission) {
	var err error

	switch task := sub.task.(type) {
	case SaveTask:
		var id int64
		id, err = w.store.InsertRecord(ctx, task.HTML, task.Plain, task.AppName)
		if errors.Is(err, store.ErrDuplicateRecord) {
			// Same content saved through a second path moments ago: drop
			// silently, no row and no notification.
			w.logger.Debug("duplicate save dropped", "task_id", sub.id)
			return
		}
		if err == nil {
			w.notify(RecordSaved{ID: id})
		}

	case LoadTask:
		var records []*store.Record
		records, err = w.store.ListRecords(ctx, task.Limit, task.Search)
		if err == nil {
			w.notify(RecordsLoaded{Records: records})
		}

	case CleanupTask:
		w.sweep(ctx)

	case LoadTabsTask:
		var tabs []*store.Tab
		tabs, err = w.store.ListTabs(ctx)
		if err == nil {
			w.notify(TabsLoaded{Tabs: tabs})
		}

	case LoadTabRecordsTask:
		var records []*store.Record
		records, err = w.store.ListTabRecords(ctx, task.TabID, task.Limit)
		if err == nil {
			w.notify(TabRecordsLoaded{TabID: task.TabID, Records: records})
		}

	case CreateTabTask:
		var tab *store.Tab
		tab, err = w.store.CreateTab(ctx, task.Name)
		if err == nil {
			w.notify(TabCreated{Tab: tab})
		}

	case RenameTabTask:
		err = w.store.RenameTab(ctx, task.TabID, task.Name)
		if err == nil {
			w.notify(TabRenamed{TabID: task.TabID, Name: task.Name})
		}

	case DeleteTabTask:
		err = w.store.DeleteTab(ctx, task.TabID)
		if err == nil {
			w.notify(TabDeleted{TabID: task.TabID})
		}

	case ReorderTabsTask:
		err = w.store.ReorderTabs(ctx, task.Order)
		if err == nil {
			w.notify(TabsReordered{})
		}

	case PinRecordTask:
		err = w.store.PinRecord(ctx, task.RecordID, task.TabID)
		if err == nil {
			w.notify(RecordPinned{RecordID: task.RecordID, TabID: task.TabID})
		}

	case UnpinRecordTask:
		err = w.store.UnpinRecord(ctx, task.RecordID, task.TabID)
		if err == nil {
			w.notify(RecordUnpinned{RecordID: task.RecordID, TabID: task.TabID})
		}

	case MoveRecordTask:
		err = w.store.MoveRecord(ctx, task.RecordID, task.FromTabID, task.ToTabID)
		if err == nil {
			w.notify(RecordMoved{RecordID: task.RecordID, FromTabID: task.FromTabID, ToTabID: task.ToTabID})
		}

	case ReorderPinnedTask:
		err = w.store.ReorderPinned(ctx, task.TabID, task.Order)
		if err == nil {
			w.notify(PinnedReordered{TabID: task.TabID})
		}
	}

	if err != nil {
		w.logger.Warn("task failed", "task", sub.task.taskName(), "task_id", sub.id, "error", err)
		w.notify(ErrorOccurred{TaskID: sub.id, TaskName: sub.task.taskName(), Message: err.Error()})
	}
}

// sweep deletes records past the retention window. A sweep that deletes
// nothing stays silent to avoid notification noise.
func (w *Worker) sweep(ctx context.Context) {
	cutoff := time.Now().Add(-w.retentionAge)
	deleted, err := w.store.DeleteRecordsOlderThan(ctx, cutoff)
	if err != nil {
		w.logger.Warn("retention sweep failed", "error", err)
		w.notify(ErrorOccurred{TaskName: "cleanup", Message: err.Error()})
		return
	}
	if deleted > 0 {
		w.logger.Info("retention sweep deleted records", "count", deleted)
		w.notify(CleanupDone{Count: deleted})
	}
}

// notify publishes a notification without risking a hang on shutdown
func (w *Worker) notify(n Notification) {
	select {
	case w.notifs <- n:
	case <-w.stop:
	}
}
