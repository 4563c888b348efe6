package watch

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/cmathes/inkwell/internal/logging"
)

// Watcher reports changes to a single file as debounced events.
type Watcher struct {
	path   string
	delay  time.Duration
	logger *log.Logger

	fsw     *fsnotify.Watcher
	events  chan Event
	errors  chan error
	closeCh chan struct{}
	wg      sync.WaitGroup

	mu      sync.Mutex
	pending Op
	timer   *time.Timer
	closed  bool
}

// New starts watching the file at path for external changes.
//
// The parent directory must exist; the file itself does not, in which case
// the first event reports its creation.
func New(path string, opts ...Option) (*Watcher, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = 100 * time.Millisecond
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = 16
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}
	dir := filepath.Dir(abs)
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", dir, err)
	}

	w := &Watcher{
		path:    abs,
		delay:   cfg.Debounce,
		logger:  cfg.Logger,
		fsw:     fsw,
		events:  make(chan Event, cfg.BufferSize),
		errors:  make(chan error, cfg.BufferSize),
		closeCh: make(chan struct{}),
	}

	w.wg.Add(1)
	go w.processLoop()

	w.logger.Debug("watching file",
		logging.FieldPath, abs,
		logging.FieldDebounce, cfg.Debounce)
	return w, nil
}

// Path returns the absolute path of the watched file.
func (w *Watcher) Path() string {
	return w.path
}

// Events returns the channel on which debounced events are delivered.
// The channel is closed by Close.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Errors returns the channel on which watch errors are delivered.
// The channel is closed by Close.
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// Close stops watching, releases the OS watcher, and closes the event and
// error channels. Operations still pending in the debounce window are
// discarded. Close is safe to call more than once.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.pending = 0
	w.mu.Unlock()

	close(w.closeCh)
	w.wg.Wait()
	close(w.events)
	close(w.errors)

	err := w.fsw.Close()
	w.logger.Debug("watcher closed", logging.FieldPath, w.path)
	return err
}

// processLoop forwards raw notifications until the watcher is closed.
func (w *Watcher) processLoop() {
	defer w.wg.Done()
	for {
		select {
		case <-w.closeCh:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleEvent(ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.sendError(err)
		}
	}
}

// handleEvent folds a raw notification into the pending debounce window.
// Notifications for sibling files in the watched directory are ignored.
func (w *Watcher) handleEvent(ev fsnotify.Event) {
	if ev.Name != w.path {
		return
	}
	op := convertOp(ev.Op)
	if op == 0 {
		return
	}
	w.logger.Debug("file changed",
		logging.FieldPath, ev.Name,
		logging.FieldOp, op)

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	w.pending |= op
	if w.timer != nil {
		w.timer.Reset(w.delay)
		return
	}
	w.timer = time.AfterFunc(w.delay, w.fire)
}

// fire delivers the coalesced event once the debounce window expires.
func (w *Watcher) fire() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed || w.pending == 0 {
		return
	}
	event := Event{Path: w.path, Op: w.pending, Timestamp: time.Now()}
	w.pending = 0
	w.timer = nil

	select {
	case w.events <- event:
	default:
		w.logger.Warn("dropping event, buffer full",
			logging.FieldPath, event.Path,
			logging.FieldOp, event.Op)
	}
}

func (w *Watcher) sendError(err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	select {
	case w.errors <- err:
	default:
	}
}

// convertOp translates fsnotify operations to the package's Op bitmask.
func convertOp(op fsnotify.Op) Op {
	var result Op
	if op.Has(fsnotify.Create) {
		result |= OpCreate
	}
	if op.Has(fsnotify.Write) {
		result |= OpWrite
	}
	if op.Has(fsnotify.Remove) {
		result |= OpRemove
	}
	if op.Has(fsnotify.Rename) {
		result |= OpRename
	}
	if op.Has(fsnotify.Chmod) {
		result |= OpChmod
	}
	return result
}
