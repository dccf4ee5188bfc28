package lifecycle

import (
	"context"
	"fmt"

	"github.com/aretw0/lifecycle"

	"github.com/assonuovavita/sitegen/pkg/core"
)

// Batch is the set of content changes that arrived while the consumer was
// busy with the previous one.
type Batch struct {
	Events []core.Event
}

func (b Batch) String() string {
	if len(b.Events) == 1 {
		return b.Events[0].String()
	}
	return fmt.Sprintf("%d content changes", len(b.Events))
}

// Paths lists the changed source paths once each, in arrival order.
func (b Batch) Paths() []string {
	seen := make(map[string]bool, len(b.Events))
	paths := make([]string, 0, len(b.Events))
	for _, e := range b.Events {
		if seen[e.ID] {
			continue
		}
		seen[e.ID] = true
		paths = append(paths, e.ID)
	}
	return paths
}

type batchingSource struct {
	events <-chan core.Event
	out    chan lifecycle.Event
}

// NewSource creates a lifecycle.Source emitting a Batch per consumer turn.
// Changes keep accumulating until the consumer receives them, so a slow
// rebuild is followed by exactly one more. The output channel closes once the
// input is closed and drained, or when the start context ends.
func NewSource(events <-chan core.Event) lifecycle.Source {
	return &batchingSource{
		events: events,
		out:    make(chan lifecycle.Event),
	}
}

func (s *batchingSource) Events() <-chan lifecycle.Event {
	return s.out
}

func (s *batchingSource) Start(ctx context.Context) error {
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)

		in := s.events
		var pending []core.Event
		for {
			if in == nil && len(pending) == 0 {
				return nil
			}
			// A nil channel disables its case.
			var out chan lifecycle.Event
			if len(pending) > 0 {
				out = s.out
			}

			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-in:
				if !ok {
					in = nil
					continue
				}
				pending = append(pending, e)
			case out <- Batch{Events: pending}:
				pending = nil
			}
		}
	})
	return nil
}
