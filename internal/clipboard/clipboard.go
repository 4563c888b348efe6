// Package clipboard provides a single-slot store for styled text spans.
//
// The clipboard holds the most recent cut or copied span with full font
// attribution, so a paste reproduces the original styling. Writing
// replaces the previous contents entirely. The store is safe for use
// from multiple goroutines and keeps its own copy of every span, so
// later edits to the source document never change what was captured.
package clipboard

import (
	"sync"

	"github.com/cmathes/inkwell/internal/style"
)

// Clipboard is a single-slot store for a styled span.
// The zero value is an empty clipboard ready for use.
type Clipboard struct {
	mu    sync.RWMutex
	chars []style.StyledChar
}

// defaultClipboard is shared by every document not given its own handle.
var defaultClipboard = New()

// New creates a new empty clipboard.
func New() *Clipboard {
	return &Clipboard{}
}

// Default returns the process-wide shared clipboard. Cut and copied
// spans placed here survive across documents for the process lifetime.
func Default() *Clipboard {
	return defaultClipboard
}

// Write replaces the clipboard contents with the given span.
// The span is copied; the caller's slice stays independent.
func (c *Clipboard) Write(chars []style.StyledChar) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(chars) == 0 {
		c.chars = nil
		return
	}

	c.chars = make([]style.StyledChar, len(chars))
	copy(c.chars, chars)
}

// Read returns a copy of the clipboard contents, or nil when empty.
func (c *Clipboard) Read() []style.StyledChar {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if len(c.chars) == 0 {
		return nil
	}

	out := make([]style.StyledChar, len(c.chars))
	copy(out, c.chars)
	return out
}

// Text returns the plain text of the clipboard contents.
func (c *Clipboard) Text() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return style.Text(c.chars)
}

// Len returns the number of characters held.
func (c *Clipboard) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.chars)
}

// IsEmpty returns true if the clipboard holds nothing.
func (c *Clipboard) IsEmpty() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.chars) == 0
}

// Clear empties the clipboard.
func (c *Clipboard) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.chars = nil
}
