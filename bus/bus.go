// Package bus implements the process-wide change notification channel that
// keeps independently mounted views consistent after a write. The signal
// carries no payload: receivers must re-read the store, not trust a value.
package bus

import "sync"

// ChangeBus broadcasts "something changed" to every open subscription.
// Publish never blocks; pending signals for a slow subscriber coalesce
// into one, which is safe because the signal is only a hint to re-read.
type ChangeBus struct {
	mu   sync.Mutex
	subs map[*Subscription]struct{}
}

// Subscription is one listener's handle on the bus. It must be closed when
// the owning view unmounts so handlers do not leak across navigation.
type Subscription struct {
	C   <-chan struct{}
	c   chan struct{}
	bus *ChangeBus

	once sync.Once
}

func NewChangeBus() *ChangeBus {
	return &ChangeBus{subs: make(map[*Subscription]struct{})}
}

// Subscribe registers a new listener. The returned subscription's channel
// holds at most one pending signal.
func (b *ChangeBus) Subscribe() *Subscription {
	c := make(chan struct{}, 1)
	sub := &Subscription{C: c, c: c, bus: b}

	b.mu.Lock()
	b.subs[sub] = struct{}{}
	b.mu.Unlock()
	return sub
}

// Publish signals every open subscription that persisted data changed.
func (b *ChangeBus) Publish() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for sub := range b.subs {
		select {
		case sub.c <- struct{}{}:
		default: // a signal is already pending, coalesce
		}
	}
}

// Close deregisters the subscription and closes its channel.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.bus.mu.Lock()
		delete(s.bus.subs, s)
		s.bus.mu.Unlock()
		close(s.c)
	})
}
