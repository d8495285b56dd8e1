// ABOUTME: Entry point for the copyu clipboard history daemon
// ABOUTME: Watches the clipboard, persists history, and serves CLI queries

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/fatih/color"

	"github.com/copyu/copyu/internal/clipboard"
	"github.com/copyu/copyu/internal/clipboard/sysboard"
	"github.com/copyu/copyu/internal/config"
	"github.com/copyu/copyu/internal/store"
	"github.com/copyu/copyu/internal/worker"
)

// Version is set by goreleaser at build time.
var version = "dev"

const banner = `
  ___ ___  _ __  _   _ _   _
 / __/ _ \| '_ \| | | | | | |
| (_| (_) | |_) | |_| | |_| |
 \___\___/| .__/ \__, |\__,_|
          |_|    |___/
`

// getConfigPath returns the path to the copyu config file.
// Priority: COPYU_CONFIG env var > XDG_CONFIG_HOME/copyu/config.yaml > ~/.config/copyu/config.yaml
func getConfigPath() string {
	if envPath := os.Getenv("COPYU_CONFIG"); envPath != "" {
		return envPath
	}

	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "config.yaml" // fallback
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	return filepath.Join(configDir, "copyu", "config.yaml")
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: copyu <command>")
		fmt.Println()
		fmt.Println("Commands:")
		fmt.Println("  run              Start the clipboard watcher daemon")
		fmt.Println("  history [query]  Show recent clipboard history")
		fmt.Println("  tabs             List tabs")
		fmt.Println("  copy <id>        Copy a history record back to the clipboard")
		fmt.Println("  cleanup          Delete records past the retention window")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var err error
	switch os.Args[1] {
	case "run":
		err = runDaemon(ctx)
	case "history":
		err = runHistory()
	case "tabs":
		err = runTabs()
	case "copy":
		err = runCopy()
	case "cleanup":
		err = runCleanup()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig loads the config file, writing a default one on first run.
func loadConfig() (*config.Config, string, error) {
	configPath := getConfigPath()

	created, err := config.WriteDefault(configPath)
	if err != nil {
		return nil, "", fmt.Errorf("preparing config: %w", err)
	}
	if created {
		fmt.Printf("Created default config at %s\n", configPath)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, "", fmt.Errorf("loading config: %w", err)
	}
	return cfg, configPath, nil
}

func openStore(cfg *config.Config) (*store.SQLiteStore, error) {
	return store.NewSQLiteStore(cfg.Database.Path, store.Options{
		MaxRecordSize: cfg.MaxRecordSize(),
		DedupWindow:   cfg.History.DedupWindow,
		DefaultLimit:  cfg.History.MaxDisplayItems,
	})
}

func runDaemon(ctx context.Context) error {
	// Print banner
	cyan := color.New(color.FgCyan)
	cyan.Print(banner)

	gray := color.New(color.FgHiBlack)
	gray.Printf("    version: %s\n\n", version)

	cfg, configPath, err := loadConfig()
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Logging)
	slog.SetDefault(logger)

	green := color.New(color.FgGreen)
	green.Print("    ▶ ")
	fmt.Printf("Config:    %s\n", configPath)
	green.Print("    ▶ ")
	fmt.Printf("Database:  %s\n", cfg.Database.Path)
	green.Print("    ▶ ")
	fmt.Printf("Retention: %dd\n", cfg.History.MaxAgeDays)
	fmt.Println()

	logger.Info("starting copyu",
		"config", configPath,
		"database", cfg.Database.Path,
		"max_age_days", cfg.History.MaxAgeDays,
	)

	st, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer st.Close()

	w := worker.New(st, worker.Options{
		RetentionAge: cfg.MaxAge(),
	})
	w.Start()
	defer w.Shutdown()

	// Drain notifications so the queue never backs up; failures surface in
	// the log.
	go drainNotifications(w, logger)

	if cfg.Watcher.Enabled {
		board := sysboard.New()
		if err := board.Init(); err != nil {
			return fmt.Errorf("initializing clipboard: %w", err)
		}

		watcher := clipboard.NewWatcher(board, w)
		watcher.Start(ctx)
		defer watcher.Wait()
	} else {
		logger.Warn("clipboard watcher disabled by config")
	}

	// Periodic retention sweep on top of the worker's own idle sweeps
	ticker := time.NewTicker(cfg.History.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("shutting down")
			return nil
		case <-ticker.C:
			w.Submit(worker.CleanupTask{})
		}
	}
}

func drainNotifications(w *worker.Worker, logger *slog.Logger) {
	for n := range w.Notifications() {
		switch n := n.(type) {
		case worker.ErrorOccurred:
			logger.Error("task failed",
				"task_id", n.TaskID,
				"task", n.TaskName,
				"error", n.Message)
		case worker.CleanupDone:
			logger.Info("retention sweep deleted records", "count", n.Count)
		}
	}
}

func runHistory() error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	st, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer st.Close()

	search := ""
	if len(os.Args) > 2 {
		search = os.Args[2]
	}

	records, err := st.ListRecords(context.Background(), cfg.History.MaxDisplayItems, search)
	if err != nil {
		return fmt.Errorf("listing records: %w", err)
	}

	if len(records) == 0 {
		fmt.Println("No clipboard history.")
		return nil
	}

	gray := color.New(color.FgHiBlack)
	for _, r := range records {
		gray.Printf("%6d  %s  ", r.ID, r.Timestamp.Format("2006-01-02 15:04:05"))
		fmt.Println(preview(r.Plain))
	}
	return nil
}

func runTabs() error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	st, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer st.Close()

	tabs, err := st.ListTabs(context.Background())
	if err != nil {
		return fmt.Errorf("listing tabs: %w", err)
	}

	gray := color.New(color.FgHiBlack)
	for _, tab := range tabs {
		fmt.Printf("%s", tab.Name)
		if tab.IsDefault {
			gray.Print("  (default)")
		}
		fmt.Println()
	}
	return nil
}

func runCopy() error {
	if len(os.Args) < 3 {
		return fmt.Errorf("usage: copyu copy <id>")
	}

	id, err := strconv.ParseInt(os.Args[2], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid record id %q", os.Args[2])
	}

	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	st, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer st.Close()

	record, err := st.GetRecord(context.Background(), id)
	if err != nil {
		return fmt.Errorf("fetching record %d: %w", id, err)
	}

	board := sysboard.New()
	if err := board.Init(); err != nil {
		return fmt.Errorf("initializing clipboard: %w", err)
	}
	if err := board.Write(clipboard.Content{Text: record.Plain, HTML: record.HTML}); err != nil {
		return fmt.Errorf("writing clipboard: %w", err)
	}

	fmt.Printf("Copied record %d to clipboard.\n", id)
	return nil
}

func runCleanup() error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	st, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer st.Close()

	count, err := st.DeleteRecordsOlderThan(context.Background(), time.Now().Add(-cfg.MaxAge()))
	if err != nil {
		return fmt.Errorf("deleting expired records: %w", err)
	}

	fmt.Printf("Deleted %d expired record(s).\n", count)
	return nil
}

// preview flattens a record's plain text to a single displayable line.
func preview(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\t", " ")
	if len(s) > 80 {
		s = s[:77] + "..."
	}
	return s
}

func setupLogger(cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = &colorHandler{
			level: level,
		}
	}

	return slog.New(handler)
}

// colorHandler provides colorized log output with thread-safe writes.
type colorHandler struct {
	mu     sync.Mutex
	level  slog.Level
	attrs  []slog.Attr
	groups []string
}

func (h *colorHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *colorHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	var buf strings.Builder

	buf.WriteString(color.HiBlackString(r.Time.Format("15:04:05") + " "))

	switch r.Level {
	case slog.LevelDebug:
		buf.WriteString(color.MagentaString("DBG "))
	case slog.LevelInfo:
		buf.WriteString(color.CyanString("INF "))
	case slog.LevelWarn:
		buf.WriteString(color.YellowString("WRN "))
	case slog.LevelError:
		buf.WriteString(color.New(color.FgRed, color.Bold).Sprint("ERR "))
	default:
		buf.WriteString("??? ")
	}

	buf.WriteString(r.Message)

	// Handler-level attrs first (from WithAttrs), then record attrs
	for _, a := range h.attrs {
		buf.WriteString(color.HiBlackString(" " + a.Key + "="))
		buf.WriteString(a.Value.String())
	}
	r.Attrs(func(a slog.Attr) bool {
		buf.WriteString(color.HiBlackString(" " + a.Key + "="))
		buf.WriteString(a.Value.String())
		return true
	})

	buf.WriteString("\n")
	fmt.Print(buf.String())
	return nil
}

func (h *colorHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newAttrs := make([]slog.Attr, len(h.attrs), len(h.attrs)+len(attrs))
	copy(newAttrs, h.attrs)
	newAttrs = append(newAttrs, attrs...)
	return &colorHandler{
		level:  h.level,
		attrs:  newAttrs,
		groups: h.groups,
	}
}

func (h *colorHandler) WithGroup(name string) slog.Handler {
	newGroups := make([]string, len(h.groups), len(h.groups)+1)
	copy(newGroups, h.groups)
	newGroups = append(newGroups, name)
	return &colorHandler{
		level:  h.level,
		attrs:  h.attrs,
		groups: newGroups,
	}
}
