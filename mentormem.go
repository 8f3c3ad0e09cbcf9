package mentormem

import (
	"context"
	"log/slog"

	"github.com/aretw0/lifecycle"

	"github.com/GeminiLight/KiddleMentor-dev/internal/platform"
	memfs "github.com/GeminiLight/KiddleMentor-dev/pkg/adapters/fs"
	memlifecycle "github.com/GeminiLight/KiddleMentor-dev/pkg/adapters/lifecycle"
	"github.com/GeminiLight/KiddleMentor-dev/pkg/core"
	"github.com/GeminiLight/KiddleMentor-dev/pkg/memory"
	"github.com/GeminiLight/KiddleMentor-dev/pkg/registry"
	"github.com/GeminiLight/KiddleMentor-dev/pkg/repository"
)

// --- Types ---

// Document is a public alias for the schemaless document type.
type Document = core.Document

// GoalRecord is a public alias for one goal ledger entry.
type GoalRecord = core.GoalRecord

// Ledger is a public alias for the goal ledger.
type Ledger = core.Ledger

// HistoryEntry is a public alias for one interaction log entry.
type HistoryEntry = core.HistoryEntry

// UserRecord is a public alias for one registry entry.
type UserRecord = core.UserRecord

// Event is a public alias for a workspace document event.
type Event = core.Event

// ContextBundle is a public alias for the aggregate learner context.
type ContextBundle = repository.ContextBundle

// System bundles the repository, registry and watcher for one workspace.
type System = platform.System

// --- Configuration ---

// Option defines a functional option for configuring the memory system.
type Option = platform.Option

// WithLogger sets the logger for all components.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithWatchPattern sets the glob pattern document events are filtered
// against, relative to the memory root.
func WithWatchPattern(pattern string) Option {
	return platform.WithWatchPattern(pattern)
}

// WithEventBuffer sets the size of the watcher event buffer.
func WithEventBuffer(size int) Option {
	return platform.WithEventBuffer(size)
}

// WithWatcherErrorHandler registers a callback for watch loop errors.
func WithWatcherErrorHandler(fn func(error)) Option {
	return platform.WithWatcherErrorHandler(fn)
}

// WithAutoSync controls registry auto-sync from watcher events.
func WithAutoSync(enabled bool) Option {
	return platform.WithAutoSync(enabled)
}

// --- Factories ---

// New assembles a full memory system over the given workspace root.
func New(workspace string, opts ...Option) *System {
	return platform.New(workspace, opts...)
}

// NewRepository creates the learner repository alone.
func NewRepository(workspace string, opts ...Option) *repository.LearnerRepository {
	return platform.NewRepository(workspace, opts...)
}

// NewRegistry creates the user registry service alone.
func NewRegistry(workspace string, opts ...Option) *registry.Service {
	return platform.NewRegistry(workspace, opts...)
}

// OpenStore opens the goal-agnostic workspace store directly.
func OpenStore(workspace string, opts ...memory.Option) (*memory.Store, error) {
	return memory.NewStore(workspace, opts...)
}

// OpenLearnerStore opens the store of one learner directly.
func OpenLearnerStore(workspace, learnerID string, opts ...memory.Option) (*memory.LearnerStore, error) {
	return memory.NewLearnerStore(workspace, learnerID, opts...)
}

// --- Operations ---

// Watch starts a standalone watcher over a workspace and returns its event
// channel. For registry auto-sync, assemble a System and call its Watch.
func Watch(ctx context.Context, workspace string, opts ...Option) (<-chan core.Event, error) {
	return platform.New(workspace, append(opts, platform.WithAutoSync(false))...).Watch(ctx)
}

// NewLifecycleSource bridges a document event channel to a lifecycle.Source,
// so the watcher feed can drive application lifecycles.
func NewLifecycleSource(events <-chan core.Event) lifecycle.Source {
	return memlifecycle.NewSource(events)
}

// --- Utils ---

// ExpandPath expands a leading ~ and $VAR references in a workspace path.
func ExpandPath(path string) string {
	return memfs.ExpandPath(path)
}

// FindWorkspaceRoot looks upwards from startDir for a workspace root
// indicator (a memory directory or users.json).
func FindWorkspaceRoot(startDir string) (string, error) {
	return platform.FindRoot(startDir)
}
