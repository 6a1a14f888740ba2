// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

package grip

// Weak is a non-owning observer of a resource managed by Shared
// handles. It does not keep the resource alive; it keeps only the
// control block alive, so that Lock can answer "is the resource still
// there" without ever racing its finalization.
//
// The zero value is an empty observer. Weak handles are only created
// from a Shared handle (Downgrade) or from another Weak (Clone).
type Weak[T any] struct {
	res *T
	c   *ctrl[T]
}

// Clone returns a new observer of the same resource.
func (w Weak[T]) Clone() Weak[T] {
	if w.c == nil {
		return Weak[T]{}
	}
	w.c.incWeak()
	return Weak[T]{res: w.res, c: w.c}
}

// Assign replaces the receiver with a clone of other, releasing
// whatever the receiver observed.
func (w *Weak[T]) Assign(other Weak[T]) {
	next := other.Clone()
	w.Release()
	*w = next
}

// Move transfers the observation out of the receiver without touching
// the counter. The receiver becomes empty.
func (w *Weak[T]) Move() Weak[T] {
	out := *w
	w.res, w.c = nil, nil
	return out
}

// Swap exchanges the referents of two observers. No counter traffic.
func (w *Weak[T]) Swap(other *Weak[T]) {
	*w, *other = *other, *w
}

// Release drops the observation and empties the receiver. Releasing an
// empty observer is a no-op.
func (w *Weak[T]) Release() {
	if w.c != nil {
		w.c.decWeak()
	}
	w.res, w.c = nil, nil
}

// Lock attempts to promote the observer to an owner. On success the
// returned handle owns the resource, which is guaranteed unfinalized
// until that handle itself releases. If the resource is already gone
// (or the observer is empty), Lock returns an empty Shared handle.
//
// Lock never blocks and is safe to call at any time, from any number
// of goroutines, including concurrently with the final release of the
// last owner.
func (w Weak[T]) Lock() Shared[T] {
	if w.c == nil || !w.c.tryIncStrong() {
		return Shared[T]{}
	}
	return Shared[T]{res: w.res, c: w.c}
}

// Valid reports whether the observer references a control block. It
// says nothing about the resource still being alive; only Lock can
// establish liveness.
func (w Weak[T]) Valid() bool {
	return w.res != nil
}

// Expired reports whether the observed resource has been finalized.
// Like UseCount, this is a racy snapshot: a false result may be stale
// by the time the caller acts on it, so acting on the resource still
// requires Lock.
func (w Weak[T]) Expired() bool {
	return w.c == nil || w.c.strong.Load() == 0
}

// UseCount returns the number of live owners of the observed resource,
// or 0 if it has expired or the observer is empty.
func (w Weak[T]) UseCount() int64 {
	if w.c == nil {
		return 0
	}
	return w.c.strong.Load()
}
