package registry

import (
	"context"
	"path"
	"time"

	"github.com/aretw0/lifecycle"

	"github.com/GeminiLight/KiddleMentor-dev/pkg/adapters/fs"
	"github.com/GeminiLight/KiddleMentor-dev/pkg/core"
)

// AutoSync consumes workspace document events and keeps the registry in
// step with profile changes: whenever a learner's profile.json is created
// or modified, its registry entry is re-upserted. Deletions are left alone;
// removing a user is an explicit operator action (DeleteUser).
//
// The loop runs until ctx is cancelled or the event channel closes. It is
// supervised via lifecycle.Go, so a panic in the sync path is contained and
// logged instead of taking the process down.
func (s *Service) AutoSync(ctx context.Context, events <-chan core.Event) {
	lifecycle.Go(ctx, func(ctx context.Context) error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-events:
				if !ok {
					return nil
				}
				s.handleEvent(e)
			}
		}
	}, lifecycle.WithErrorHandler(func(err error) {
		if s.logger != nil {
			s.logger.Error("registry auto-sync failed", "error", err)
		}
	}))
}

func (s *Service) handleEvent(e core.Event) {
	if path.Base(e.ID) != fs.FileProfile {
		return
	}
	if e.Type == core.EventDelete {
		return
	}

	learnerDir := path.Dir(e.ID)
	profilePath := s.layout.LearnerFile(learnerDir, fs.FileProfile)
	if s.syncProfile(profilePath) && s.logger != nil {
		s.logger.Debug("registry entry synced", "learner_dir", learnerDir)
	}
}

func nowTimestamp() string {
	return time.Now().Format(time.RFC3339)
}
