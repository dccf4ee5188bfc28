package core

import (
	"github.com/aretw0/introspection"
)

// ServiceState exposes internal state for observability.
type ServiceState struct {
	SourceType string      `json:"source_type"`
	Site       SiteInfo    `json:"site"`
	LastBuild  *BuildStats `json:"last_build,omitempty"`
}

// State implements introspection.Introspectable.
func (s *Service) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sourceType := "unknown"
	if s.source != nil {
		sourceType = "source"
		if comp, ok := s.source.(introspection.Component); ok {
			sourceType = comp.ComponentType()
		}
	}

	var last *BuildStats
	if s.lastBuild != nil {
		copied := *s.lastBuild
		last = &copied
	}

	return ServiceState{
		SourceType: sourceType,
		Site:       s.site,
		LastBuild:  last,
	}
}

// ComponentType implements introspection.Component.
func (s *Service) ComponentType() string {
	return "service"
}

var _ introspection.Introspectable = (*Service)(nil)
var _ introspection.Component = (*Service)(nil)
