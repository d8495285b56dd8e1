// ABOUTME: System clipboard implementation backed by golang.design/x/clipboard
// ABOUTME: Delivers plain-text change events; HTML and source app are not available here

// Package sysboard implements the clipboard Board against the real system
// clipboard. Only plain text is supported: the underlying library exposes
// text and image formats, and images are out of scope for the history store.
package sysboard

import (
	"context"
	"fmt"

	"golang.design/x/clipboard"

	clip "github.com/copyu/copyu/internal/clipboard"
)

// SystemBoard reads and writes the OS clipboard.
type SystemBoard struct{}

// New creates a new SystemBoard instance
func New() *SystemBoard {
	return &SystemBoard{}
}

// Init initializes the underlying clipboard library. It fails when the
// platform has no usable clipboard (e.g. a headless Linux session without X).
func (s *SystemBoard) Init() error {
	if err := clipboard.Init(); err != nil {
		return fmt.Errorf("initializing system clipboard: %w", err)
	}
	return nil
}

// Read returns the current plain-text clipboard content.
func (s *SystemBoard) Read() clip.Content {
	return clip.Content{Text: string(clipboard.Read(clipboard.FmtText))}
}

// Write replaces the clipboard with the plain-text rendition of c.
func (s *SystemBoard) Write(c clip.Content) error {
	clipboard.Write(clipboard.FmtText, []byte(c.Text))
	return nil
}

// Watch converts the library's raw byte stream into Content values. The
// returned channel closes when ctx is cancelled.
func (s *SystemBoard) Watch(ctx context.Context) <-chan clip.Content {
	raw := clipboard.Watch(ctx, clipboard.FmtText)

	out := make(chan clip.Content)
	go func() {
		defer close(out)
		for data := range raw {
			select {
			case out <- clip.Content{Text: string(data)}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}
