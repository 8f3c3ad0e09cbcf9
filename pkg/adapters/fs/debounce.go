package fs

import (
	"sync"
	"time"

	"github.com/GeminiLight/KiddleMentor-dev/pkg/core"
)

// debouncer coalesces bursts of events for the same document id.
// Editors and atomic renames produce several fsnotify events per logical
// write; only the last one within the interval is delivered.
type debouncer struct {
	interval time.Duration

	mu      sync.Mutex
	timers  map[string]*time.Timer
	wg      sync.WaitGroup
	stopped bool
}

func newDebouncer(interval time.Duration) *debouncer {
	return &debouncer{
		interval: interval,
		timers:   make(map[string]*time.Timer),
	}
}

// add schedules fire(e), replacing any pending event for the same id.
func (d *debouncer) add(e core.Event, fire func(core.Event)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	if t, ok := d.timers[e.ID]; ok {
		if t.Stop() {
			d.wg.Done()
		}
	}

	d.wg.Add(1)
	d.timers[e.ID] = time.AfterFunc(d.interval, func() {
		defer d.wg.Done()
		d.mu.Lock()
		delete(d.timers, e.ID)
		d.mu.Unlock()
		fire(e)
	})
}

// stopAndWait stops accepting new events and waits for in-flight timers to
// finish, up to the given timeout. This synchronizes shutdown with any
// callbacks still running.
func (d *debouncer) stopAndWait(timeout time.Duration) {
	d.mu.Lock()
	d.stopped = true
	for id, t := range d.timers {
		if t.Stop() {
			d.wg.Done()
		}
		delete(d.timers, id)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(timeout):
	}
}
