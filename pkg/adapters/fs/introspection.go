package fs

import (
	"github.com/aretw0/introspection"
)

// WatcherState exposes internal watcher state for observability.
type WatcherState struct {
	Workspace string `json:"workspace"`
	Pattern   string `json:"pattern"`
	Active    bool   `json:"active"`
	Buffered  int    `json:"buffered_events"`
}

// IntrospectionState implements introspection.Introspectable for the watcher.
// Named to avoid colliding with the worker State export.
func (w *Watcher) IntrospectionState() any {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return WatcherState{
		Workspace: w.layout.Workspace,
		Pattern:   w.pattern,
		Active:    w.active,
		Buffered:  len(w.events),
	}
}

// ComponentType implements introspection.Component.
func (w *Watcher) ComponentType() string {
	return "watcher"
}

var _ introspection.Component = (*Watcher)(nil)
