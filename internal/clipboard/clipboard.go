// ABOUTME: Clipboard abstraction shared by the system and mock implementations
// ABOUTME: Defines the Content payload and the Board interface the watcher consumes

package clipboard

import "context"

// Content is a single clipboard payload. Text is always the plain-text
// rendition; HTML and AppName are filled only when the underlying board can
// provide them.
type Content struct {
	HTML    string
	Text    string
	AppName string
}

// Empty reports whether the content carries nothing worth persisting.
func (c Content) Empty() bool {
	return c.Text == "" && c.HTML == ""
}

// Board is a clipboard a Watcher can observe. Implementations live in the
// sysboard and mockboard subpackages.
type Board interface {
	// Init prepares the board for use. It must be called once before any
	// other method.
	Init() error

	// Read returns the current clipboard content.
	Read() Content

	// Write replaces the clipboard content.
	Write(Content) error

	// Watch returns a channel that delivers clipboard content each time it
	// changes. The channel is closed when ctx is cancelled.
	Watch(ctx context.Context) <-chan Content
}
