package sitegen

import (
	"context"
	"log/slog"

	"github.com/assonuovavita/sitegen/internal/platform"
	"github.com/assonuovavita/sitegen/pkg/core"
)

// --- Types ---

type (
	Document       = core.Document
	PageMetadata   = core.PageMetadata
	Page           = core.Page
	Route          = core.Route
	RouteTable     = core.RouteTable
	NavigationItem = core.NavigationItem
	Site           = core.Site
	SiteInfo       = core.SiteInfo
	Service        = core.Service
	Config         = platform.Config
)

// --- Configuration ---

// Option defines a functional option for configuring sitegen.
type Option = platform.Option

// WithRoots sets the content directories.
func WithRoots(roots ...string) Option {
	return platform.WithRoots(roots...)
}

// WithExtensions sets the recognized content extensions.
func WithExtensions(exts ...string) Option {
	return platform.WithExtensions(exts...)
}

// WithIgnore excludes files matching any of the doublestar globs.
func WithIgnore(patterns ...string) Option {
	return platform.WithIgnore(patterns...)
}

// WithConcurrency bounds parallel file reads during discovery.
func WithConcurrency(n int) Option {
	return platform.WithConcurrency(n)
}

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithSite sets the site-wide values used for head tags.
func WithSite(site SiteInfo) Option {
	return platform.WithSite(site)
}

// WithSource allows injecting a custom content source.
func WithSource(source core.Source) Option {
	return platform.WithSource(source)
}

// WithEventBuffer sets the size of the watch event channel.
func WithEventBuffer(size int) Option {
	return platform.WithEventBuffer(size)
}

// LoadConfig reads sitegen.yaml; see platform.LoadConfig.
func LoadConfig(path, baseDir string) (Config, string, error) {
	return platform.LoadConfig(path, baseDir)
}

// FindRoot looks upwards from dir for sitegen.yaml or .git.
func FindRoot(dir string) (string, error) {
	return platform.FindRoot(dir)
}

// --- Factory ---

// New creates a new sitegen Service.
func New(opts ...Option) (*Service, error) {
	return platform.New(opts...)
}

// Build runs discovery, validation and derivation once.
func Build(ctx context.Context, opts ...Option) (*Site, error) {
	svc, err := New(opts...)
	if err != nil {
		return nil, err
	}
	return svc.Build(ctx)
}
