package platform

import (
	"context"
	"fmt"

	"github.com/aretw0/lifecycle"

	"github.com/GeminiLight/KiddleMentor-dev/pkg/adapters/fs"
	"github.com/GeminiLight/KiddleMentor-dev/pkg/core"
	"github.com/GeminiLight/KiddleMentor-dev/pkg/registry"
	"github.com/GeminiLight/KiddleMentor-dev/pkg/repository"
)

// System bundles the assembled components of one memory workspace: the
// learner repository, the user registry, and (once Watch is called) the
// document watcher.
type System struct {
	Repository *repository.LearnerRepository
	Registry   *registry.Service

	layout  fs.Layout
	opts    *options
	watcher *fs.Watcher
}

// New assembles a memory system over the given workspace root.
//
// Storage trouble does not fail assembly: the repository constructs in a
// degraded mode and reports Available() == false.
func New(workspace string, opts ...Option) *System {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	var repoOpts []repository.Option
	var regOpts []registry.Option
	if o.logger != nil {
		repoOpts = append(repoOpts, repository.WithLogger(o.logger))
		regOpts = append(regOpts, registry.WithLogger(o.logger))
	}

	return &System{
		Repository: repository.New(workspace, repoOpts...),
		Registry:   registry.NewService(workspace, regOpts...),
		layout:     fs.NewLayout(workspace),
		opts:       o,
	}
}

// NewRepository builds only the learner repository.
func NewRepository(workspace string, opts ...Option) *repository.LearnerRepository {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	var repoOpts []repository.Option
	if o.logger != nil {
		repoOpts = append(repoOpts, repository.WithLogger(o.logger))
	}
	return repository.New(workspace, repoOpts...)
}

// NewRegistry builds only the user registry service.
func NewRegistry(workspace string, opts ...Option) *registry.Service {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	var regOpts []registry.Option
	if o.logger != nil {
		regOpts = append(regOpts, registry.WithLogger(o.logger))
	}
	return registry.NewService(workspace, regOpts...)
}

// Watch starts the workspace document watcher and returns its event channel.
// When auto-sync is enabled (the default) the events are teed into the
// registry so profile changes keep users.json up to date; the returned
// channel still receives every event.
//
// The watcher stops when ctx is cancelled; the returned channel is closed on
// shutdown.
func (s *System) Watch(ctx context.Context) (<-chan core.Event, error) {
	if s.watcher != nil {
		return nil, fmt.Errorf("watch already started")
	}

	w := fs.NewWatcher(s.layout, s.opts.watchPattern, s.opts.eventBuffer, s.opts.logger, s.opts.watchErrFn)
	if err := w.Start(ctx); err != nil {
		return nil, err
	}
	s.watcher = w

	if !s.opts.autoSync {
		return w.Events(), nil
	}

	buffer := s.opts.eventBuffer
	if buffer <= 0 {
		buffer = 100
	}
	out := make(chan core.Event, buffer)
	syncCh := make(chan core.Event, buffer)
	s.Registry.AutoSync(ctx, syncCh)

	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(out)
		defer close(syncCh)
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-w.Events():
				if !ok {
					return nil
				}
				select {
				case syncCh <- e:
				default:
					// A stalled registry must not block the caller's feed.
				}
				select {
				case out <- e:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})
	return out, nil
}

// Watcher returns the running watcher, or nil before Watch is called.
func (s *System) Watcher() *fs.Watcher {
	return s.watcher
}

// Stop shuts the watcher down, if one is running.
func (s *System) Stop(ctx context.Context) error {
	if s.watcher == nil {
		return nil
	}
	return s.watcher.Stop(ctx)
}
