// Package cell provides an atomic slot publishing a shared handle to
// concurrent readers.
//
// A Cell holds one grip.Shared handle. Readers take their own clone
// with Load; writers install a replacement with Store or Swap, and the
// previous handle is released once the slot no longer references it.
// Readers never block writers beyond the brief view lock, and a reader
// that obtained a clone keeps its resource alive regardless of how
// many replacements happen after.
//
// Supports concurrent reads (Load) and serialized writes (Swap).
package cell

import (
	"sync"

	"github.com/dacapoday/grip"
)

// Cell manages the current handle and the handoff to its replacement.
//
// Zero value is an empty cell. Load on an empty cell returns an empty
// handle.
type Cell[T any] struct {
	cur   grip.Shared[T]
	view  sync.RWMutex
	mutex sync.Mutex
}

// Load returns a clone of the current handle.
//
// Important: the caller owns the clone and must Release it when done.
func (c *Cell[T]) Load() (s grip.Shared[T]) {
	c.view.RLock()
	s = c.cur.Clone()
	c.view.RUnlock()
	return
}

// Store installs s as the current handle, taking ownership of it, and
// releases the previous one. Store(grip.Shared[T]{}) empties the cell.
func (c *Cell[T]) Store(s grip.Shared[T]) {
	c.mutex.Lock()
	c.view.Lock()
	prev := c.cur
	c.cur = s
	c.view.Unlock()
	prev.Release()
	c.mutex.Unlock()
}

// Swap atomically replaces the current handle via callback.
//
// The swap function receives the current handle as a borrow: it must
// not release it. It returns the replacement (which the cell takes
// ownership of) or an error, which aborts the swap and leaves the cell
// unchanged.
func (c *Cell[T]) Swap(swap func(cur grip.Shared[T]) (next grip.Shared[T], err error)) (err error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	next, err := swap(c.cur)
	if err != nil {
		return
	}

	c.view.Lock()
	prev := c.cur
	c.cur = next
	c.view.Unlock()

	prev.Release()
	return
}

// Close empties the cell, releasing the current handle.
// No-op if already empty.
func (c *Cell[T]) Close() {
	c.Store(grip.Shared[T]{})
}
