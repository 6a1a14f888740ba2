// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

package grip

// Shared is an owning reference to a resource. All Shared handles
// cloned from one another share a single control block; the last one
// released finalizes the resource.
//
// The zero value is an empty handle: Get returns nil, Release is a
// no-op, Clone yields another empty handle.
//
// Handles may be used from any number of goroutines, but a single
// handle value is not a shared mutable object: give each goroutine its
// own Clone rather than calling Release or Assign on one handle
// concurrently.
type Shared[T any] struct {
	res *T
	c   *ctrl[T]
}

// New adopts res into a fresh control block with one owner and the
// default CloseFinalizer. New(nil) returns an empty handle.
func New[T any](res *T) Shared[T] {
	return NewWithFinalizer(res, CloseFinalizer[T])
}

// NewWithFinalizer adopts res with a custom finalizer, which the last
// owner's release invokes exactly once with res.
func NewWithFinalizer[T any](res *T, fin Finalizer[T]) Shared[T] {
	if res == nil {
		return Shared[T]{}
	}
	return Shared[T]{res: res, c: newCtrl(res, fin)}
}

// Clone returns a new owning handle to the same resource.
func (s Shared[T]) Clone() Shared[T] {
	if s.c == nil {
		return Shared[T]{}
	}
	s.c.incStrong()
	return Shared[T]{res: s.res, c: s.c}
}

// Assign replaces the receiver with a clone of other, releasing
// whatever the receiver held. Self-assignment is harmless: the new
// reference is retained before the old one is dropped.
func (s *Shared[T]) Assign(other Shared[T]) {
	next := other.Clone()
	s.Release()
	*s = next
}

// Move transfers ownership out of the receiver without touching the
// counter. The receiver becomes empty.
func (s *Shared[T]) Move() Shared[T] {
	out := *s
	s.res, s.c = nil, nil
	return out
}

// Swap exchanges the referents of two handles. No counter traffic.
func (s *Shared[T]) Swap(other *Shared[T]) {
	*s, *other = *other, *s
}

// Release drops the receiver's ownership and empties it. If this was
// the last owner, the finalizer runs before Release returns. Releasing
// an empty handle is a no-op, so Release is safe to defer
// unconditionally.
func (s *Shared[T]) Release() {
	if s.c != nil {
		s.c.decStrong()
	}
	s.res, s.c = nil, nil
}

// Get returns the resource pointer, or nil for an empty handle. The
// pointer is valid for as long as the handle (or any clone of it)
// remains unreleased.
func (s Shared[T]) Get() *T {
	return s.res
}

// MustGet is Get for callers that have already established the handle
// is non-empty. Dereferencing the result of MustGet on an empty handle
// is a programming error; builds with -tags debug panic here instead.
func (s Shared[T]) MustGet() *T {
	assertHandle("Shared.MustGet", s.res != nil)
	return s.res
}

// Valid reports whether the handle references a resource.
func (s Shared[T]) Valid() bool {
	return s.res != nil
}

// UseCount returns the number of live owners, or 0 for an empty
// handle. The value is a snapshot: concurrent clones and releases can
// make it stale immediately.
func (s Shared[T]) UseCount() int64 {
	if s.c == nil {
		return 0
	}
	return s.c.strong.Load()
}

// Downgrade returns a Weak observer of the same resource. The observer
// does not keep the resource alive.
func (s Shared[T]) Downgrade() Weak[T] {
	if s.c == nil {
		return Weak[T]{}
	}
	s.c.incWeak()
	return Weak[T]{res: s.res, c: s.c}
}
