// Package cache holds the per-view in-memory mirrors of a collection. A
// mirror is loaded once when the view mounts, patched optimistically on
// local writes, and reloaded wholesale whenever the change bus signals a
// write made elsewhere.
package cache

import (
	"context"
	"log"
	"sync"

	"soulpatterns-backend/bus"
)

// LoadFunc re-reads the full collection from the store.
type LoadFunc[T any] func(ctx context.Context) ([]T, error)

// Mirror is one view's copy of a collection. It never holds authoritative
// state: anything in it can be rebuilt by re-reading the store.
type Mirror[T any] struct {
	mu    sync.RWMutex
	items []T

	load LoadFunc[T]
	sub  *bus.Subscription
	done chan struct{}
}

// NewMirror loads the collection and starts watching the bus. Close must be
// called when the owning view unmounts.
func NewMirror[T any](ctx context.Context, load LoadFunc[T], b *bus.ChangeBus) (*Mirror[T], error) {
	items, err := load(ctx)
	if err != nil {
		return nil, err
	}

	m := &Mirror[T]{
		items: items,
		load:  load,
		sub:   b.Subscribe(),
		done:  make(chan struct{}),
	}
	go m.watch()
	return m, nil
}

// watch reloads the mirror on every change signal. The signal carries no
// payload, it is only a hint that the store moved on.
func (m *Mirror[T]) watch() {
	for {
		select {
		case _, ok := <-m.sub.C:
			if !ok {
				return
			}
			if err := m.Reload(context.Background()); err != nil {
				// Keep serving the stale copy; the next signal retries.
				log.Printf("mirror reload failed: %v", err)
			}
		case <-m.done:
			return
		}
	}
}

// Items returns a copy of the current snapshot.
func (m *Mirror[T]) Items() []T {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]T, len(m.items))
	copy(out, m.items)
	return out
}

// Reload replaces the snapshot with a fresh read of the store.
func (m *Mirror[T]) Reload(ctx context.Context) error {
	items, err := m.load(ctx)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.items = items
	m.mu.Unlock()
	return nil
}

// Patches are idempotent on purpose: the writing view's mirror sees both
// the optimistic patch and the bus-triggered reload, in either order.

// Prepend optimistically inserts a just-written item at the front, for
// collections displayed most-recent-first. If an item already matches, it
// is replaced in place instead.
func (m *Mirror[T]) Prepend(item T, same func(T) bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.items {
		if same(m.items[i]) {
			m.items[i] = item
			return
		}
	}
	m.items = append([]T{item}, m.items...)
}

// Upsert optimistically replaces the first item matched by same, or appends
// when no item matches.
func (m *Mirror[T]) Upsert(item T, same func(T) bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.items {
		if same(m.items[i]) {
			m.items[i] = item
			return
		}
	}
	m.items = append(m.items, item)
}

// Drop optimistically removes every item matched by match.
func (m *Mirror[T]) Drop(match func(T) bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.items[:0]
	for _, item := range m.items {
		if !match(item) {
			kept = append(kept, item)
		}
	}
	m.items = kept
}

// Close stops the watcher and releases the bus subscription.
func (m *Mirror[T]) Close() {
	close(m.done)
	m.sub.Close()
}
