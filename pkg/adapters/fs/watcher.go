package fs

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/lifecycle/pkg/core/worker"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/GeminiLight/KiddleMentor-dev/pkg/core"
)

// Watcher observes the workspace memory tree and emits document-change
// events for files matching a doublestar pattern (relative to the memory
// root), e.g. "*/profile.json" or "learner_*/*.json".
type Watcher struct {
	*worker.BaseWorker

	layout     Layout
	pattern    string
	logger     *slog.Logger
	errHandler func(error)

	events    chan core.Event
	watcher   *fsnotify.Watcher
	debouncer *debouncer
	cancel    context.CancelFunc

	mu     sync.RWMutex
	active bool
}

// NewWatcher creates a watcher for the given workspace layout.
// logger and errHandler may be nil.
func NewWatcher(layout Layout, pattern string, buffer int, logger *slog.Logger, errHandler func(error)) *Watcher {
	if buffer <= 0 {
		buffer = 100
	}
	return &Watcher{
		BaseWorker: worker.NewBaseWorker("memory-watcher"),
		layout:     layout,
		pattern:    pattern,
		logger:     logger,
		errHandler: errHandler,
		events:     make(chan core.Event, buffer),
	}
}

// Events returns the channel on which document events are delivered.
// It is closed when the watcher stops.
func (w *Watcher) Events() <-chan core.Event {
	return w.events
}

// Start begins watching. The watcher stops when ctx is cancelled or Stop is
// called.
func (w *Watcher) Start(ctx context.Context) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	status := w.State().Status
	if status != worker.StatusCreated && status != worker.StatusPending {
		return fmt.Errorf("watcher already started (status: %s)", status)
	}

	// The memory root must exist before fsnotify can watch it.
	if err := os.MkdirAll(w.layout.MemoryDir(), 0755); err != nil {
		return fmt.Errorf("failed to create memory directory: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := w.recursiveAdd(watcher); err != nil {
		_ = watcher.Close()
		return err
	}

	w.watcher = watcher
	w.debouncer = newDebouncer(50 * time.Millisecond)
	w.setActive(true)

	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	w.SetStatus(worker.StatusRunning)
	return w.StartFunc(runCtx, w.run)
}

// Stop requests shutdown and waits for the worker to finish.
func (w *Watcher) Stop(ctx context.Context) error {
	if w.cancel != nil {
		w.StopRequested = true
		w.cancel()
	}
	return w.BaseWorker.Stop(ctx)
}

// State implements the worker state export with goroutine metadata.
func (w *Watcher) State() worker.State {
	return w.ExportState(func(s *worker.State) {
		s.Metadata = map[string]string{
			worker.MetadataType: string(worker.TypeGoroutine),
		}
	})
}

func (w *Watcher) setActive(active bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.active = active
}

// recursiveAdd registers the memory root and every learner subdirectory.
// New learner directories created later are added from the event loop.
func (w *Watcher) recursiveAdd(watcher *fsnotify.Watcher) error {
	root := w.layout.MemoryDir()
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if err := watcher.Add(path); err != nil {
				return fmt.Errorf("failed to watch %s: %w", path, err)
			}
		}
		return nil
	})
}

// resolveID maps an absolute event path to a document id relative to the
// memory root, in slash form.
func (w *Watcher) resolveID(path string) (string, error) {
	rel, err := filepath.Rel(w.layout.MemoryDir(), path)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}

func (w *Watcher) mapEventType(event fsnotify.Event) core.EventType {
	switch {
	case event.Has(fsnotify.Create):
		return core.EventCreate
	case event.Has(fsnotify.Write):
		return core.EventModify
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		return core.EventDelete
	default:
		return ""
	}
}

// shouldIgnore filters out temp files and documents outside the pattern.
func (w *Watcher) shouldIgnore(id string) bool {
	if strings.HasPrefix(filepath.Base(id), TempFilePrefix) {
		return true
	}
	if w.pattern == "" {
		return false
	}
	ok, err := doublestar.Match(w.pattern, id)
	if err != nil {
		// Invalid pattern: surface once per event rather than silently
		// swallowing every document.
		w.handleError(fmt.Errorf("invalid watch pattern %q: %w", w.pattern, err))
		return true
	}
	return !ok
}

func (w *Watcher) handleError(err error) {
	if w.logger != nil {
		w.logger.Error("watcher error", "error", err)
	}
	if w.errHandler != nil {
		w.errHandler(err)
	}
}

// processEvent handles filtering, mapping, and debouncing of one
// filesystem event. Returns true if the event was forwarded.
func (w *Watcher) processEvent(ctx context.Context, event fsnotify.Event) bool {
	if w.logger != nil {
		w.logger.Debug("event received", "name", event.Name)
	}

	// A freshly created learner directory must itself be watched.
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.watcher.Add(event.Name); err != nil {
				w.handleError(fmt.Errorf("failed to watch new directory %s: %w", event.Name, err))
			}
			return false
		}
	}

	id, err := w.resolveID(event.Name)
	if err != nil {
		w.handleError(fmt.Errorf("failed to resolve id for %s: %w", event.Name, err))
		return false
	}

	if w.shouldIgnore(id) {
		return false
	}

	eType := w.mapEventType(event)
	if eType == "" {
		return false
	}

	w.sendEvent(ctx, core.Event{
		Type:      eType,
		ID:        id,
		Timestamp: time.Now().Unix(),
	})
	return true
}

// sendEvent enqueues an event via the debouncer, protecting against channel
// closure during shutdown.
func (w *Watcher) sendEvent(ctx context.Context, event core.Event) {
	w.debouncer.add(event, func(e core.Event) {
		defer func() {
			// Recover if the channel was closed while a timer was in flight.
			_ = recover()
		}()
		select {
		case w.events <- e:
		case <-ctx.Done():
		}
	})
}

// run is the main event loop.
func (w *Watcher) run(ctx context.Context) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			panicErr := fmt.Errorf("watcher panic: %v", recovered)
			if w.logger != nil && w.logger.Enabled(ctx, slog.LevelDebug) {
				w.logger.Error("watcher panic", "error", panicErr, "stack", string(debug.Stack()))
			} else if w.logger != nil {
				w.logger.Error("watcher panic", "error", panicErr)
			}
		}
	}()
	defer w.setActive(false)
	defer w.watcher.Close()

	err = w.mainEventLoop(ctx)

	// Stop accepting new events and wait for in-flight timers before the
	// channel is closed.
	w.debouncer.stopAndWait(5 * time.Second)
	close(w.events)

	return err
}

func (w *Watcher) mainEventLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				if w.StopRequested || ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}
			w.processEvent(ctx, event)

		case wErr, ok := <-w.watcher.Errors:
			if !ok {
				if w.StopRequested || ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			w.handleError(wErr)
		}
	}
}
