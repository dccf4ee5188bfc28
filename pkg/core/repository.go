package core

import "context"

// Source defines the contract for discovering content documents.
// Adhering to this interface keeps the pipeline independent of where
// documents live (filesystem, embedded FS, memory).
type Source interface {
	// Discover returns every document, sorted by source path.
	Discover(ctx context.Context) ([]Document, error)
}

// Watchable is implemented by sources that can report content changes.
type Watchable interface {
	// Watch emits an Event for each change matching pattern until ctx is done.
	Watch(ctx context.Context, pattern string) (<-chan Event, error)
}
