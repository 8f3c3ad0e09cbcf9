package platform

import (
	"log/slog"
)

// options holds the internal configuration for the memory system.
type options struct {
	logger       *slog.Logger
	watchPattern string
	eventBuffer  int
	watchErrFn   func(error)
	autoSync     bool
}

// Option defines a functional option for configuring the memory system.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		logger:       nil,
		watchPattern: "**/*.json",
		eventBuffer:  0, // 0 means the watcher default (100)
		autoSync:     true,
	}
}

// WithLogger sets the logger for all components.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithWatchPattern sets the glob pattern (relative to the memory root) that
// document events are filtered against. Defaults to "**/*.json".
func WithWatchPattern(pattern string) Option {
	return func(o *options) {
		o.watchPattern = pattern
	}
}

// WithEventBuffer sets the size of the watcher event buffer.
// Zero means default (100).
func WithEventBuffer(size int) Option {
	return func(o *options) {
		o.eventBuffer = size
	}
}

// WithWatcherErrorHandler registers a callback for errors occurring inside
// the watch loop (e.g. permission denied), which are otherwise only logged.
func WithWatcherErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.watchErrFn = fn
	}
}

// WithAutoSync controls whether a running System keeps the user registry in
// step with profile changes observed by the watcher. Enabled by default.
func WithAutoSync(enabled bool) Option {
	return func(o *options) {
		o.autoSync = enabled
	}
}
