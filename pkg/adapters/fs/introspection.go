package fs

import (
	"sort"
	"time"

	"github.com/aretw0/introspection"
)

// RepositoryState exposes internal state for observability.
type RepositoryState struct {
	Roots         []string   `json:"roots"`
	Extensions    []string   `json:"extensions"`
	Ignore        []string   `json:"ignore,omitempty"`
	Concurrency   int        `json:"concurrency"`
	Serializers   []string   `json:"serializers"`
	WatcherActive bool       `json:"watcher_active"`
	LastDiscover  *time.Time `json:"last_discover,omitempty"`
	Documents     int        `json:"documents"`
}

// State implements introspection.Introspectable.
func (r *Repository) State() any {
	r.mu.RLock()
	defer r.mu.RUnlock()

	serializers := make([]string, 0, len(r.serializers))
	for ext := range r.serializers {
		serializers = append(serializers, ext)
	}
	sort.Strings(serializers)

	return RepositoryState{
		Roots:         append([]string(nil), r.config.Roots...),
		Extensions:    append([]string(nil), r.config.Extensions...),
		Ignore:        append([]string(nil), r.config.Ignore...),
		Concurrency:   r.config.Concurrency,
		Serializers:   serializers,
		WatcherActive: r.watcherActive,
		LastDiscover:  r.lastDiscover,
		Documents:     r.lastCount,
	}
}

// ComponentType implements introspection.Component.
func (r *Repository) ComponentType() string {
	return "repository"
}

var _ introspection.Introspectable = (*Repository)(nil)
var _ introspection.Component = (*Repository)(nil)

func (r *Repository) setWatcherActive(active bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.watcherActive = active
}
