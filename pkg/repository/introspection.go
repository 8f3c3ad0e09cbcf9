package repository

import (
	"github.com/aretw0/introspection"
)

// RepositoryState exposes internal repository state for observability.
type RepositoryState struct {
	Workspace string `json:"workspace"`
	Available bool   `json:"available"`
	Learners  int    `json:"tracked_learners"`
}

// State implements introspection.Introspectable.
func (r *LearnerRepository) State() any {
	r.mu.Lock()
	defer r.mu.Unlock()
	return RepositoryState{
		Workspace: r.layout.Workspace,
		Available: r.available,
		Learners:  len(r.locks),
	}
}

// ComponentType implements introspection.Component.
func (r *LearnerRepository) ComponentType() string {
	return "learner-repository"
}

var _ introspection.Introspectable = (*LearnerRepository)(nil)
var _ introspection.Component = (*LearnerRepository)(nil)
