package components

import (
	"context"
	"sync"

	"github.com/devnullvoid/pixgrid/internal/store"
)

// stateRelay hands store notifications to the UI goroutine without blocking
// the notifier. QueueUpdateDraw waits for the event loop, so calling it from
// a store observer would deadlock whenever the action ran on the event loop
// itself (deleting, for one). Only the latest state is kept; intermediate
// states are dropped.
type stateRelay struct {
	mu      sync.Mutex
	latest  store.State
	pending chan struct{}
}

func newStateRelay() *stateRelay {
	return &stateRelay{pending: make(chan struct{}, 1)}
}

// push records st and wakes the pump. It never blocks.
func (r *stateRelay) push(st store.State) {
	r.mu.Lock()
	r.latest = st
	r.mu.Unlock()

	select {
	case r.pending <- struct{}{}:
	default:
	}
}

func (r *stateRelay) take() store.State {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.latest
}

// run delivers the latest state to apply each time push is called, until
// ctx is done.
func (r *stateRelay) run(ctx context.Context, apply func(store.State)) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-r.pending:
			apply(r.take())
		}
	}
}
