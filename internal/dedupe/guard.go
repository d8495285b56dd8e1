// ABOUTME: Thread-safe last-content guard for suppressing clipboard re-fires.
// ABOUTME: First tier of deduplication; the store's time-window check is the second.

package dedupe

import "sync"

// Guard remembers the most recently accepted clipboard content and rejects
// an immediate repeat of it. Some platforms fire several change events for a
// single copy; the guard collapses those into one save. It does not look any
// further back than the last accepted value, so alternating content always
// passes (the store's time-window dedup handles that case).
type Guard struct {
	mu   sync.Mutex
	last string
	seen bool
}

// NewGuard creates an empty guard. The first value offered is always accepted.
func NewGuard() *Guard {
	return &Guard{}
}

// CheckAndMark atomically checks whether plain matches the last accepted
// content and records it if not. Returns true if the content is a repeat
// (caller should drop it), false if it is new and now remembered.
func (g *Guard) CheckAndMark(plain string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.seen && g.last == plain {
		return true
	}

	g.last = plain
	g.seen = true
	return false
}

// Reset forgets the last accepted content. The next offer of any value,
// including the one just forgotten, will be accepted.
func (g *Guard) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.last = ""
	g.seen = false
}
