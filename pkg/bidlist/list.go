// Package bidlist provides a singly linked list of bids keyed by bid ID.
//
// Nodes are stored in a slot table and linked by index instead of by pointer.
// A released slot is zeroed and kept on a free list for the next insert, so
// the list never holds a reference to a removed bid.
package bidlist

import (
	"errors"
	"fmt"
	"iter"

	"github.com/shunichi-ikebuchi/bidlist/pkg/bid"
)

var (
	// ErrNotFound is returned when no bid matches the requested key.
	ErrNotFound = errors.New("bid not found")

	// ErrEmptyList is returned when removing from an empty list.
	// It wraps ErrNotFound, so errors.Is(err, ErrNotFound) holds for both.
	ErrEmptyList = fmt.Errorf("list is empty: %w", ErrNotFound)
)

// none marks an absent link.
const none = -1

type node struct {
	bid  bid.Bid
	next int
}

// List is an ordered sequence of bids with O(1) append and prepend.
// The zero value is not ready for use; call New.
type List struct {
	slots []node
	free  []int
	head  int
	tail  int
	size  int
}

// New creates an empty List.
func New() *List {
	return &List{head: none, tail: none}
}

// alloc stores b in a free slot (or a new one) and returns its index.
func (l *List) alloc(b bid.Bid) int {
	if n := len(l.free); n > 0 {
		idx := l.free[n-1]
		l.free = l.free[:n-1]
		l.slots[idx] = node{bid: b, next: none}
		return idx
	}
	l.slots = append(l.slots, node{bid: b, next: none})
	return len(l.slots) - 1
}

// release zeroes a slot and returns it to the free list.
func (l *List) release(idx int) {
	l.slots[idx] = node{next: none}
	l.free = append(l.free, idx)
}

// Append adds a bid to the end of the list.
func (l *List) Append(b bid.Bid) {
	idx := l.alloc(b)
	if l.head == none {
		l.head = idx
	} else {
		l.slots[l.tail].next = idx
	}
	l.tail = idx
	l.size++
}

// Prepend adds a bid to the start of the list.
func (l *List) Prepend(b bid.Bid) {
	idx := l.alloc(b)
	l.slots[idx].next = l.head
	l.head = idx
	if l.tail == none {
		l.tail = idx
	}
	l.size++
}

// Find returns a copy of the first bid whose ID equals key.
// The second result is false when no bid matches.
func (l *List) Find(key string) (bid.Bid, bool) {
	for cur := l.head; cur != none; cur = l.slots[cur].next {
		if l.slots[cur].bid.ID == key {
			return l.slots[cur].bid, true
		}
	}
	return bid.Bid{}, false
}

// Remove deletes the first bid whose ID equals key.
// It returns ErrEmptyList when the list has no bids and ErrNotFound when
// no bid matches; the list is unchanged in both cases.
func (l *List) Remove(key string) error {
	if l.head == none {
		return ErrEmptyList
	}

	// Head removal
	if l.slots[l.head].bid.ID == key {
		removed := l.head
		l.head = l.slots[removed].next
		if l.head == none {
			l.tail = none
		}
		l.release(removed)
		l.size--
		return nil
	}

	for prev := l.head; l.slots[prev].next != none; prev = l.slots[prev].next {
		cur := l.slots[prev].next
		if l.slots[cur].bid.ID != key {
			continue
		}

		l.slots[prev].next = l.slots[cur].next
		if cur == l.tail {
			l.tail = prev
		}
		l.release(cur)
		l.size--
		return nil
	}

	return ErrNotFound
}

// All returns an iterator over copies of the bids in list order.
// Each call starts a fresh traversal from the head.
func (l *List) All() iter.Seq[bid.Bid] {
	return func(yield func(bid.Bid) bool) {
		for cur := l.head; cur != none; cur = l.slots[cur].next {
			if !yield(l.slots[cur].bid) {
				return
			}
		}
	}
}

// Size returns the number of bids in the list.
func (l *List) Size() int {
	return l.size
}

// Clear releases every node.
func (l *List) Clear() {
	l.slots = nil
	l.free = nil
	l.head = none
	l.tail = none
	l.size = 0
}
