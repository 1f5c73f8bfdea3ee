// Package watcher provides file watching for configuration live reload.
//
// The watcher monitors one configuration file through fsnotify and calls a
// handler once a burst of changes has settled. The parent directory is
// watched rather than the file itself, so editors that save by writing a
// temporary file and renaming it over the original are still observed.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/dshills/notifycenter/internal/logging"
)

// ErrWatcherClosed is returned by Run after Close.
var ErrWatcherClosed = errors.New("watcher closed")

// Event represents a file change event.
type Event struct {
	// Path is the absolute path to the changed file.
	Path string

	// Op is the last operation seen before the debounce settled.
	Op Operation

	// Time is when the event occurred.
	Time time.Time
}

// Operation represents the type of file operation.
type Operation int

const (
	// OpWrite indicates the file was modified.
	OpWrite Operation = iota

	// OpCreate indicates a new file was created.
	OpCreate

	// OpRemove indicates the file was deleted.
	OpRemove

	// OpRename indicates the file was renamed.
	OpRename
)

// String returns the operation name.
func (op Operation) String() string {
	switch op {
	case OpWrite:
		return "write"
	case OpCreate:
		return "create"
	case OpRemove:
		return "remove"
	case OpRename:
		return "rename"
	default:
		return "unknown"
	}
}

// Handler is called when a file change is detected.
type Handler func(event Event)

// Watcher monitors a single file for changes.
type Watcher struct {
	path     string
	debounce time.Duration
	logger   *zap.Logger

	fsw       *fsnotify.Watcher
	closeOnce sync.Once
	closed    chan struct{}
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period that must pass after the last change
// before the handler runs. Zero delivers every change immediately.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d >= 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets the logger used for watch errors.
func WithLogger(l *zap.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// New creates a watcher for path. The parent directory must exist; the file
// itself may not exist yet.
func New(path string, opts ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		path:     abs,
		debounce: 100 * time.Millisecond,
		logger:   zap.NewNop(),
		closed:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.logger = logging.Component(w.logger, logging.ComponentWatcher).With(zap.String("path", abs))

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}
	w.fsw = fsw

	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Run delivers change events to h until ctx is done or the watcher is
// closed. Handlers run on the calling goroutine, one at a time.
// Returns nil when ctx is done and ErrWatcherClosed after Close.
func (w *Watcher) Run(ctx context.Context, h Handler) error {
	var (
		timer   *time.Timer
		timerC  <-chan time.Time
		pending Event
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-w.closed:
			return ErrWatcherClosed

		case fsEvent, ok := <-w.fsw.Events:
			if !ok {
				return ErrWatcherClosed
			}
			if filepath.Clean(fsEvent.Name) != w.path {
				continue
			}
			op, ok := convertOp(fsEvent.Op)
			if !ok {
				continue
			}

			pending = Event{Path: w.path, Op: op, Time: time.Now()}
			w.logger.Debug("file changed", zap.Stringer("op", op))

			if w.debounce == 0 {
				h(pending)
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			timerC = timer.C

		case <-timerC:
			timerC = nil
			h(pending)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return ErrWatcherClosed
			}
			w.logger.Warn("watch error", zap.Error(err))
		}
	}
}

// Close stops the watcher. It is safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.closed)
		err = w.fsw.Close()
	})
	return err
}

// convertOp maps an fsnotify operation. Chmod-only events are dropped.
func convertOp(fsOp fsnotify.Op) (Operation, bool) {
	switch {
	case fsOp.Has(fsnotify.Remove):
		return OpRemove, true
	case fsOp.Has(fsnotify.Rename):
		return OpRename, true
	case fsOp.Has(fsnotify.Create):
		return OpCreate, true
	case fsOp.Has(fsnotify.Write):
		return OpWrite, true
	default:
		return 0, false
	}
}
