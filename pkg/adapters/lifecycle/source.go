package lifecycle

import (
	"context"

	"github.com/aretw0/lifecycle"

	"github.com/GeminiLight/KiddleMentor-dev/pkg/core"
)

type memorySource struct {
	events <-chan core.Event
	out    chan lifecycle.Event
}

// NewSource creates a lifecycle.Source that emits learner-document events.
// It bridges the typed memory event channel to the generic lifecycle Event
// interface so the watcher can participate in application lifecycles.
func NewSource(events <-chan core.Event) lifecycle.Source {
	return &memorySource{
		events: events,
		out:    make(chan lifecycle.Event),
	}
}

func (s *memorySource) Events() <-chan lifecycle.Event {
	return s.out
}

func (s *memorySource) Start(ctx context.Context) error {
	// lifecycle.Go tracks the bridge goroutine so shutdown drains it.
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-s.events:
				if !ok {
					return nil
				}
				// core.Event implements lifecycle.Event (has String())
				select {
				case s.out <- e:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})
	return nil
}
