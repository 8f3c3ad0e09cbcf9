package memory

import (
	"github.com/aretw0/introspection"
)

// StoreState exposes internal store state for observability.
type StoreState struct {
	Workspace string `json:"workspace"`
	Dir       string `json:"dir"`
	LearnerID string `json:"learner_id,omitempty"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	return StoreState{
		Workspace: s.layout.Workspace,
		Dir:       s.dir,
	}
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "memory-store"
}

// State implements introspection.Introspectable.
func (s *LearnerStore) State() any {
	return StoreState{
		Workspace: s.layout.Workspace,
		Dir:       s.dir,
		LearnerID: s.learnerID,
	}
}

// ComponentType implements introspection.Component.
func (s *LearnerStore) ComponentType() string {
	return "learner-store"
}

var _ introspection.Introspectable = (*Store)(nil)
var _ introspection.Component = (*Store)(nil)
var _ introspection.Introspectable = (*LearnerStore)(nil)
var _ introspection.Component = (*LearnerStore)(nil)
