// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

package grip

// embed lays the resource out in the same allocation as its control
// block. The handle's cached pointer and the block's resource pointer
// are two typed views into the one allocation.
type embed[T any] struct {
	ctrl[T]
	val T
}

// Make constructs the resource and its control block as a single
// allocation and returns the first owning handle, with the default
// CloseFinalizer. This is the factory path: one allocation instead of
// the two behind New.
func Make[T any](val T) Shared[T] {
	return MakeWith(CloseFinalizer[T], val)
}

// MakeWith is Make with a custom finalizer.
func MakeWith[T any](fin Finalizer[T], val T) Shared[T] {
	e := &embed[T]{val: val}
	e.init(&e.val, fin)
	return Shared[T]{res: &e.val, c: &e.ctrl}
}
