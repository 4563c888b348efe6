package engine

import (
	"github.com/cmathes/inkwell/internal/clipboard"
	"github.com/cmathes/inkwell/internal/style"
)

// DefaultTabWidth is the tab width used when no option overrides it.
const DefaultTabWidth = 4

// Option configures a Document during creation.
type Option func(*Document)

// WithBaseline sets the baseline font applied to unstyled text.
// Zero fonts are ignored.
func WithBaseline(f style.Font) Option {
	return func(d *Document) {
		if !f.IsZero() {
			d.baseline = f
		}
	}
}

// WithClipboard shares an explicit clipboard handle with the document.
// Documents without one use the process-wide default clipboard.
func WithClipboard(c *clipboard.Clipboard) Option {
	return func(d *Document) {
		if c != nil {
			d.clip = c
		}
	}
}

// WithPath associates the document with a file path.
func WithPath(path string) Option {
	return func(d *Document) {
		d.path = path
	}
}

// WithTabWidth sets the document's tab width.
func WithTabWidth(width int) Option {
	return func(d *Document) {
		d.buf.SetTabWidth(width)
	}
}
