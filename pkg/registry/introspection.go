package registry

import (
	"github.com/aretw0/introspection"
)

// ServiceState exposes internal registry state for observability.
type ServiceState struct {
	Workspace string `json:"workspace"`
	Users     int    `json:"users"`
}

// State implements introspection.Introspectable.
func (s *Service) State() any {
	return ServiceState{
		Workspace: s.layout.Workspace,
		Users:     len(s.ListUsers()),
	}
}

// ComponentType implements introspection.Component.
func (s *Service) ComponentType() string {
	return "user-registry"
}

var _ introspection.Introspectable = (*Service)(nil)
var _ introspection.Component = (*Service)(nil)
