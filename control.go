// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

package grip

import (
	"fmt"
	"sync/atomic"

	"github.com/dacapoday/grip/leak"
)

// Control block lifecycle. Transitions are one-directional and each
// edge fires at most once:
//
//	live     strong > 0, resource usable
//	expiring strong == 0, resource finalized, observers keep the block
//	dead     both counters drained, block retired
const (
	stateLive int32 = iota
	stateExpiring
	stateDead
)

// ctrl is the side allocation shared by every handle to one resource.
// strong counts owning handles, weak counts observers. The cached
// resource pointer is kept after finalization for identity, but is
// never dereferenced once strong has reached zero.
type ctrl[T any] struct {
	strong atomic.Int64
	weak   atomic.Int64
	state  atomic.Int32
	fin    Finalizer[T]
	res    *T
}

// init primes a block for its first owner: strong=1, weak=0, live.
// Used by both the two-allocation constructors and the embedded Make
// layout.
func (c *ctrl[T]) init(res *T, fin Finalizer[T]) {
	c.res = res
	c.fin = fin
	c.strong.Store(1)
	if leak.Enabled() {
		leak.Register(c, fmt.Sprintf("%T", res)[1:])
	}
}

func newCtrl[T any](res *T, fin Finalizer[T]) *ctrl[T] {
	c := new(ctrl[T])
	c.init(res, fin)
	return c
}

// incStrong retains on behalf of a caller that already holds an owner,
// so the count can never be observed at zero here.
func (c *ctrl[T]) incStrong() {
	if c.strong.Add(1) < 2 {
		panic("grip: retained a released handle")
	}
}

// tryIncStrong retains only if at least one owner still exists. Once
// the count is observed at zero it can never rise again, so failure is
// final. The CAS loop is lock-free: it only retries when another
// handle won the race with its own increment or decrement.
func (c *ctrl[T]) tryIncStrong() bool {
	for {
		n := c.strong.Load()
		if n == 0 {
			return false
		}
		if c.strong.CompareAndSwap(n, n+1) {
			return true
		}
	}
}

// decStrong releases one owner. The decrement that reaches zero runs
// the finalizer, publishes the expiring state, and retires the block
// if no observer remains. Publishing expiring strictly after the
// finalizer returns is what keeps teardown from racing finalization.
func (c *ctrl[T]) decStrong() {
	n := c.strong.Add(-1)
	switch {
	case n < 0:
		panic("grip: strong count released below zero")
	case n == 0:
		if c.fin != nil {
			c.fin(c.res)
		}
		c.state.Store(stateExpiring)
		if c.weak.Load() == 0 {
			c.retire()
		}
	}
}

func (c *ctrl[T]) incWeak() {
	if c.weak.Add(1) < 1 {
		panic("grip: observed a released handle")
	}
}

// decWeak releases one observer. It never finalizes; it only retires
// the block when the owners are already gone.
func (c *ctrl[T]) decWeak() {
	n := c.weak.Add(-1)
	switch {
	case n < 0:
		panic("grip: weak count released below zero")
	case n == 0:
		if c.strong.Load() == 0 {
			c.retire()
		}
	}
}

// retire moves the block to the dead state. Both decrement paths reach
// here when their zero-crossing observes the other counter already at
// zero; the CAS picks exactly one winner. The loser either lost to the
// winner outright or arrived before the finalizer published expiring,
// in which case the strong side retires on its own weak recheck.
func (c *ctrl[T]) retire() {
	if c.state.CompareAndSwap(stateExpiring, stateDead) {
		c.fin = nil
		leak.Unregister(c)
	}
}
