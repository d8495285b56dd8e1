// ABOUTME: In-memory clipboard implementation for tests
// ABOUTME: Change events are pushed explicitly via SetContent

// Package mockboard provides a mock clipboard implementation for testing.
package mockboard

import (
	"context"
	"sync"

	clip "github.com/copyu/copyu/internal/clipboard"
)

// MockBoard implements Board for testing. SetContent both updates the stored
// content and delivers a change event to any active watcher.
type MockBoard struct {
	mu      sync.Mutex
	content clip.Content
	watch   chan clip.Content
}

// New creates a new MockBoard instance
func New() *MockBoard {
	return &MockBoard{}
}

// Init implements Board.Init; it never fails.
func (m *MockBoard) Init() error {
	return nil
}

// Read returns the current mock content.
func (m *MockBoard) Read() clip.Content {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.content
}

// Write stores the content without emitting a change event, mirroring how
// watching one's own writes is suppressed in real use.
func (m *MockBoard) Write(c clip.Content) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.content = c
	return nil
}

// Watch returns a channel fed by SetContent. Only one watcher is supported.
func (m *MockBoard) Watch(ctx context.Context) <-chan clip.Content {
	m.mu.Lock()
	m.watch = make(chan clip.Content, 16)
	ch := m.watch
	m.mu.Unlock()

	go func() {
		<-ctx.Done()
		m.mu.Lock()
		if m.watch == ch {
			close(ch)
			m.watch = nil
		}
		m.mu.Unlock()
	}()
	return ch
}

// SetContent simulates a copy: it stores the content and notifies the watcher.
func (m *MockBoard) SetContent(c clip.Content) {
	m.mu.Lock()
	m.content = c
	ch := m.watch
	m.mu.Unlock()

	if ch != nil {
		ch <- c
	}
}
