package pubsub

import (
	"sync"
	"sync/atomic"
)

// Registry is a set of observer callbacks. Notify invokes every live
// subscriber with no payload; observers pull whatever state they watch, so
// the cost of a notification does not grow with the size of the change.
//
// Re-entrancy contract: Subscribe, Cancel and Notify may all be called from
// inside a notification callback. A subscription cancelled during a notify
// pass is never invoked after Cancel returns, including later in the same
// pass. A subscription added during a pass is not invoked until the next one.
type Registry struct {
	mu   sync.Mutex
	subs []*Subscription
}

// Subscription is the handle returned by Subscribe. Cancel is O(1) and
// idempotent.
type Subscription struct {
	fn     func()
	active atomic.Bool
}

func (s *Subscription) Cancel() {
	s.active.Store(false)
}

func (r *Registry) Subscribe(fn func()) *Subscription {
	sub := &Subscription{
		fn: fn,
	}
	sub.active.Store(true)
	r.mu.Lock()
	r.subs = append(r.subs, sub)
	r.mu.Unlock()
	return sub
}

func (r *Registry) Notify() {
	// compact into a fresh slice so the iteration below never shares a
	// backing array with a concurrent compaction
	r.mu.Lock()
	live := make([]*Subscription, 0, len(r.subs))
	for _, sub := range r.subs {
		if sub.active.Load() {
			live = append(live, sub)
		}
	}
	r.subs = live
	r.mu.Unlock()

	for _, sub := range live {
		if sub.active.Load() {
			sub.fn()
		}
	}
}

// Len reports the number of live subscriptions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, sub := range r.subs {
		if sub.active.Load() {
			n++
		}
	}
	return n
}
