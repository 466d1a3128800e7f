package router

import "sync"

// Display is the shared region views are rendered into, the terminal
// equivalent of the app container element.
//
// Writes carry the navigation token they belong to; a write older than the
// newest one seen is dropped, which is what keeps a slow controller from
// overwriting a faster subsequent navigation.
type Display struct {
	mu      sync.Mutex
	latest  uint64
	content string
}

// NewDisplay creates an empty display region.
func NewDisplay() *Display {
	return &Display{}
}

// render writes content for the given navigation token.
// Returns false when the write was stale and dropped.
func (d *Display) render(token uint64, content string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if token < d.latest {
		return false
	}
	d.latest = token
	d.content = content
	return true
}

// View returns the currently displayed content.
func (d *Display) View() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.content
}

// Screen is a token-bound handle controllers render through.
type Screen struct {
	display *Display
	token   uint64
}

// Render writes content to the display; returns false when this screen's
// navigation has been superseded and the write was dropped.
func (s Screen) Render(content string) bool {
	if s.display == nil {
		return false
	}
	return s.display.render(s.token, content)
}
