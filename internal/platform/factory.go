package platform

import (
	"context"
	"log/slog"

	"github.com/assonuovavita/sitegen/pkg/adapters/fs"
	"github.com/assonuovavita/sitegen/pkg/core"
)

// New wires a content source and the domain service.
//
//	svc, err := platform.New(platform.WithRoots("content/pages", "src/pages"))
func New(opts ...Option) (*core.Service, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}

	source, err := Init(o)
	if err != nil {
		return nil, err
	}
	return core.NewService(source, o.site, o.logger), nil
}

// Init returns the injected source, or a filesystem repository checked with
// Initialize.
func Init(o *options) (core.Source, error) {
	if o.source != nil {
		return o.source, nil
	}

	repo := fs.NewRepository(fs.Config{
		Roots:        o.roots,
		Extensions:   o.extensions,
		Ignore:       o.ignore,
		Concurrency:  o.concurrency,
		EventBuffer:  o.eventBuffer,
		Logger:       o.logger,
		ErrorHandler: o.errorHandler,
	})
	if err := repo.Initialize(context.Background()); err != nil {
		return nil, err
	}
	return repo, nil
}
