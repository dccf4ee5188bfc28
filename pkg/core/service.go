package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// BuildStats summarizes the last build run by a Service.
type BuildStats struct {
	Documents  int           `json:"documents"`
	Routes     int           `json:"routes"`
	NavItems   int           `json:"nav_items"`
	Duration   time.Duration `json:"duration"`
	FinishedAt time.Time     `json:"finished_at"`
	Err        string        `json:"error,omitempty"`
}

// Service runs the content pipeline: discovery, validation, derivation.
type Service struct {
	source Source
	site   SiteInfo
	logger *slog.Logger

	mu        sync.RWMutex
	lastBuild *BuildStats
}

// NewService creates a new Service. A nil logger falls back to slog.Default().
func NewService(source Source, site SiteInfo, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{source: source, site: site, logger: logger}
}

// Site returns the site-wide values the service was configured with.
func (s *Service) Site() SiteInfo { return s.site }

// Validate discovers and validates every document.
func (s *Service) Validate(ctx context.Context) ([]Page, error) {
	if s.source == nil {
		return nil, errors.New("service has no content source")
	}

	docs, err := s.source.Discover(ctx)
	if err != nil {
		return nil, fmt.Errorf("discover content: %w", err)
	}
	s.logger.Debug("content discovered", "documents", len(docs))

	pages, err := ValidateAll(docs)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("frontmatter validated", "pages", len(pages))
	return pages, nil
}

// Build runs the full pipeline and returns the routes and navigation.
// There is no partial result: any error aborts the build.
func (s *Service) Build(ctx context.Context) (*Site, error) {
	start := time.Now()
	stats := &BuildStats{}
	defer func() {
		stats.Duration = time.Since(start)
		stats.FinishedAt = time.Now()
		s.mu.Lock()
		s.lastBuild = stats
		s.mu.Unlock()
	}()

	pages, err := s.Validate(ctx)
	if err != nil {
		stats.Err = err.Error()
		return nil, err
	}
	stats.Documents = len(pages)

	routes, err := DeriveRoutes(pages)
	if err != nil {
		stats.Err = err.Error()
		return nil, err
	}
	nav := DeriveNavigation(pages)

	stats.Routes = routes.Len()
	stats.NavItems = len(nav)
	s.logger.Info("site built",
		"routes", stats.Routes,
		"nav_items", stats.NavItems,
		"duration", time.Since(start),
	)

	return &Site{Info: s.site, Routes: routes, Navigation: nav}, nil
}

// Watch observes changes in the content source if supported.
func (s *Service) Watch(ctx context.Context, pattern string) (<-chan Event, error) {
	w, ok := s.source.(Watchable)
	if !ok {
		return nil, ErrNotWatchable
	}
	return w.Watch(ctx, pattern)
}

// LastBuild returns a copy of the stats of the most recent build, if any.
func (s *Service) LastBuild() (BuildStats, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.lastBuild == nil {
		return BuildStats{}, false
	}
	return *s.lastBuild, true
}
