// Package grip provides atomically reference-counted ownership handles
// for resources that need deterministic release.
//
// A Shared handle owns a resource together with every other Shared
// handle cloned from it; the last owner to release runs the resource's
// finalizer exactly once. A Weak handle observes the same resource
// without keeping it alive and can be promoted back to an owner with
// Lock, which never hands out an already-finalized resource.
//
// Bookkeeping lives in a side control block shared by all handles to
// one resource. All counter traffic is lock-free; no operation in this
// package blocks.
//
// Handles are small structs. Share them by calling Clone, not by
// copying the struct: a plain copy aliases the same reference without
// retaining it, and releasing both copies over-releases the count.
package grip

import "io"

// Finalizer releases a resource. It is invoked at most once, with the
// raw resource pointer, by the last owner's release. Finalizers must
// not fail; a panicking finalizer propagates to the releasing caller.
type Finalizer[T any] func(res *T)

// CloseFinalizer closes the resource if it implements io.Closer and
// does nothing otherwise. It is the default finalizer of New and Make.
// A Close error is discarded; resources whose Close can meaningfully
// fail should use a custom Finalizer.
func CloseFinalizer[T any](res *T) {
	if closer, ok := any(res).(io.Closer); ok {
		closer.Close()
	}
}

// NopFinalizer leaves the resource to the garbage collector.
func NopFinalizer[T any](*T) {}

// ChainFinalizer runs the given finalizers in order.
func ChainFinalizer[T any](fins ...Finalizer[T]) Finalizer[T] {
	return func(res *T) {
		for _, fin := range fins {
			if fin != nil {
				fin(res)
			}
		}
	}
}
