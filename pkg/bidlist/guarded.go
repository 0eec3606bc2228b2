package bidlist

import (
	"iter"
	"slices"
	"sync"

	"github.com/shunichi-ikebuchi/bidlist/pkg/bid"
)

// Guarded is a List safe for concurrent use.
// Mutations take the write lock; lookups share the read lock.
type Guarded struct {
	mu   sync.RWMutex
	list *List
}

// NewGuarded creates an empty Guarded list.
func NewGuarded() *Guarded {
	return &Guarded{list: New()}
}

// Append adds b at the end of the list.
func (g *Guarded) Append(b bid.Bid) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.list.Append(b)
}

// Prepend adds b at the front of the list.
func (g *Guarded) Prepend(b bid.Bid) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.list.Prepend(b)
}

// Remove deletes the first bid whose ID equals key.
// It returns ErrEmptyList or ErrNotFound when nothing is removed.
func (g *Guarded) Remove(key string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.list.Remove(key)
}

// Clear removes every bid.
func (g *Guarded) Clear() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.list.Clear()
}

// Find returns a copy of the first bid whose ID equals key.
func (g *Guarded) Find(key string) (bid.Bid, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.list.Find(key)
}

// Size returns the number of bids.
func (g *Guarded) Size() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.list.Size()
}

// Snapshot copies the bids in list order.
func (g *Guarded) Snapshot() []bid.Bid {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return slices.Collect(g.list.All())
}

// All iterates over a snapshot taken when iteration starts, so the lock is
// not held while the caller's loop body runs.
func (g *Guarded) All() iter.Seq[bid.Bid] {
	return func(yield func(bid.Bid) bool) {
		for _, b := range g.Snapshot() {
			if !yield(b) {
				return
			}
		}
	}
}
