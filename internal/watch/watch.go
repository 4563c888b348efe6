// Package watch reports external changes to a document's backing file.
//
// A Watcher observes a single file through the operating system's change
// notification facility and delivers debounced events on a channel. Rapid
// bursts of operations, such as an editor save that truncates and rewrites,
// collapse into one event per debounce window. The watcher registers the
// file's parent directory rather than the file itself, so saves that replace
// the file through a rename, and deletions followed by re-creation, are
// still observed.
package watch

import (
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/cmathes/inkwell/internal/logging"
)

// Op is a bitmask of file operations observed within one debounce window.
type Op uint32

const (
	// OpCreate indicates the file was created, including rename targets.
	OpCreate Op = 1 << iota
	// OpWrite indicates the file content was modified.
	OpWrite
	// OpRemove indicates the file was deleted.
	OpRemove
	// OpRename indicates the file was moved away.
	OpRename
	// OpChmod indicates the file permissions or metadata changed.
	OpChmod
)

// Has reports whether op includes the given operation.
func (op Op) Has(o Op) bool {
	return op&o != 0
}

// String returns the operations in op as a pipe-separated list.
func (op Op) String() string {
	if op == 0 {
		return "NONE"
	}
	var parts []string
	if op.Has(OpCreate) {
		parts = append(parts, "CREATE")
	}
	if op.Has(OpWrite) {
		parts = append(parts, "WRITE")
	}
	if op.Has(OpRemove) {
		parts = append(parts, "REMOVE")
	}
	if op.Has(OpRename) {
		parts = append(parts, "RENAME")
	}
	if op.Has(OpChmod) {
		parts = append(parts, "CHMOD")
	}
	return strings.Join(parts, "|")
}

// Event describes the changes to the watched file within one debounce window.
type Event struct {
	// Path is the absolute path of the watched file.
	Path string
	// Op is the union of all operations observed in the window.
	Op Op
	// Timestamp is when the event was delivered.
	Timestamp time.Time
}

// Config controls watcher behavior.
type Config struct {
	// Debounce is how long to wait after the last observed operation before
	// delivering an event. Values of zero or less fall back to 100ms.
	Debounce time.Duration
	// BufferSize is the capacity of the events and errors channels.
	BufferSize int
	// Logger receives lifecycle output at debug level.
	Logger *log.Logger
}

// DefaultConfig returns the default watcher configuration.
func DefaultConfig() Config {
	return Config{
		Debounce:   100 * time.Millisecond,
		BufferSize: 16,
		Logger:     logging.Default(),
	}
}

// Option configures a Watcher.
type Option func(*Config)

// WithDebounce sets the debounce delay.
func WithDebounce(d time.Duration) Option {
	return func(c *Config) {
		c.Debounce = d
	}
}

// WithBufferSize sets the capacity of the events and errors channels.
func WithBufferSize(n int) Option {
	return func(c *Config) {
		c.BufferSize = n
	}
}

// WithLogger sets the logger used for lifecycle output.
func WithLogger(logger *log.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}
