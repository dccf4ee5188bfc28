package fs

import (
	"sync"
	"time"

	"github.com/assonuovavita/sitegen/pkg/core"
)

// debouncer coalesces bursts of events per ID. The last event of a burst wins.
type debouncer struct {
	delay time.Duration

	mu      sync.Mutex
	timers  map[string]*time.Timer
	pending map[string]core.Event
	stopped bool
	wg      sync.WaitGroup
}

func newDebouncer(delay time.Duration) *debouncer {
	return &debouncer{
		delay:   delay,
		timers:  make(map[string]*time.Timer),
		pending: make(map[string]core.Event),
	}
}

// add schedules fn for event, replacing any pending event with the same ID.
func (d *debouncer) add(event core.Event, fn func(core.Event)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}

	d.pending[event.ID] = mergeEvent(d.pending[event.ID], event)
	if t, ok := d.timers[event.ID]; ok {
		if t.Stop() {
			t.Reset(d.delay)
			return
		}
	}

	d.wg.Add(1)
	d.timers[event.ID] = time.AfterFunc(d.delay, func() {
		defer d.wg.Done()
		d.mu.Lock()
		e, ok := d.pending[event.ID]
		delete(d.pending, event.ID)
		delete(d.timers, event.ID)
		d.mu.Unlock()
		if ok {
			fn(e)
		}
	})
}

// stopAndWait drops pending events and waits up to timeout for running callbacks.
func (d *debouncer) stopAndWait(timeout time.Duration) {
	d.mu.Lock()
	d.stopped = true
	for id, t := range d.timers {
		if t.Stop() {
			d.wg.Done()
		}
		delete(d.timers, id)
	}
	d.pending = make(map[string]core.Event)
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(timeout):
	}
}

// mergeEvent keeps CREATE when a new file is written several times in a burst.
func mergeEvent(prev, next core.Event) core.Event {
	if prev.Type == core.EventCreate && next.Type == core.EventModify {
		next.Type = core.EventCreate
	}
	return next
}
