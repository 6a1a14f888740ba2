// Package own provides a move-only owning handle for resources with a
// single owner at a time.
//
// Unlike grip.Shared there is no counting and no concurrency: a Ptr is
// plain sequential resource transfer. Ownership moves between handles
// with Move, Swap, and Release; whoever holds the resource when Reset
// or Close runs finalizes it.
package own

import "github.com/dacapoday/grip"

// Ptr is a move-only owning handle. The zero value is empty.
//
// A Ptr must have one owner: pass it by pointer, or transfer it with
// Move. Copying the struct aliases the resource and makes the
// finalizer run once per copy.
type Ptr[T any] struct {
	res *T
	fin grip.Finalizer[T]
}

// New adopts res with the default grip.CloseFinalizer.
// New(nil) returns an empty handle.
func New[T any](res *T) Ptr[T] {
	return NewWithFinalizer(res, grip.CloseFinalizer[T])
}

// NewWithFinalizer adopts res with a custom finalizer.
func NewWithFinalizer[T any](res *T, fin grip.Finalizer[T]) Ptr[T] {
	if res == nil {
		return Ptr[T]{}
	}
	return Ptr[T]{res: res, fin: fin}
}

// Get returns the resource pointer, or nil for an empty handle.
// Ownership stays with the handle.
func (p *Ptr[T]) Get() *T {
	return p.res
}

// Valid reports whether the handle owns a resource.
func (p *Ptr[T]) Valid() bool {
	return p.res != nil
}

// Reset finalizes the current resource, if any, and adopts res in its
// place. The finalizer carries over; Reset(nil) just empties the
// handle.
func (p *Ptr[T]) Reset(res *T) {
	if p.res != nil && p.fin != nil {
		p.fin(p.res)
	}
	p.res = res
}

// Release relinquishes the resource without finalizing it and empties
// the handle. The caller takes over the resource's lifetime.
func (p *Ptr[T]) Release() *T {
	res := p.res
	p.res = nil
	return res
}

// Move transfers ownership out of the receiver. The receiver becomes
// empty.
func (p *Ptr[T]) Move() Ptr[T] {
	out := *p
	p.res, p.fin = nil, nil
	return out
}

// Swap exchanges the resources and finalizers of two handles.
func (p *Ptr[T]) Swap(other *Ptr[T]) {
	*p, *other = *other, *p
}

// Close finalizes the resource and empties the handle, satisfying
// io.Closer so a Ptr slots into defer chains. It always returns nil.
func (p *Ptr[T]) Close() error {
	p.Reset(nil)
	return nil
}

// Share moves the resource into shared ownership, keeping the same
// finalizer. The receiver becomes empty; the returned Shared handle is
// the sole owner.
func (p *Ptr[T]) Share() grip.Shared[T] {
	if p.res == nil {
		return grip.Shared[T]{}
	}
	fin := p.fin
	if fin == nil {
		fin = grip.NopFinalizer[T]
	}
	s := grip.NewWithFinalizer(p.Release(), fin)
	p.fin = nil
	return s
}
