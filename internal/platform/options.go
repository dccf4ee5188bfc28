package platform

import (
	"log/slog"

	"github.com/assonuovavita/sitegen/pkg/core"
)

// options holds the internal configuration for the sitegen service.
type options struct {
	source       core.Source
	logger       *slog.Logger
	site         core.SiteInfo
	roots        []string
	extensions   []string
	ignore       []string
	concurrency  int
	eventBuffer  int
	errorHandler func(error)
}

// Option defines a functional option for configuring sitegen.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		site:  DefaultSite,
		roots: []string{DefaultContentRoot},
	}
}

// WithRoots sets the content directories. They replace the default root.
func WithRoots(roots ...string) Option {
	return func(o *options) {
		o.roots = append([]string(nil), roots...)
	}
}

// WithExtensions sets the recognized content extensions (e.g. ".md", ".mdx").
func WithExtensions(exts ...string) Option {
	return func(o *options) {
		o.extensions = append([]string(nil), exts...)
	}
}

// WithIgnore excludes files matching any doublestar glob, relative to their root.
func WithIgnore(patterns ...string) Option {
	return func(o *options) {
		o.ignore = append(o.ignore, patterns...)
	}
}

// WithConcurrency bounds parallel file reads during discovery.
// Zero means default (8).
func WithConcurrency(n int) Option {
	return func(o *options) {
		o.concurrency = n
	}
}

// WithLogger sets the logger for the service and the content source.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithSite sets the site-wide values used for head tags and the manifest.
func WithSite(site core.SiteInfo) Option {
	return func(o *options) {
		o.site = site
	}
}

// WithSource injects a custom content source (e.g. an in-memory one in tests).
// If provided, the filesystem adapter is skipped.
func WithSource(source core.Source) Option {
	return func(o *options) {
		o.source = source
	}
}

// WithEventBuffer sets the size of the watch event channel.
// Zero means default (100).
func WithEventBuffer(size int) Option {
	return func(o *options) {
		o.eventBuffer = size
	}
}

// WithWatcherErrorHandler registers a callback for errors raised while watching
// (e.g. permission denied on a new directory), which are otherwise only logged.
func WithWatcherErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.errorHandler = fn
	}
}
