package grip

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestConcurrentCopyStorm distributes copies of one handle across many
// goroutines, mixes in reassignments, and verifies the finalizer runs
// exactly once no matter the interleaving.
func TestConcurrentCopyStorm(t *testing.T) {
	const goroutines = 50
	const copies = 100

	var finalized atomic.Int32
	handle := NewWithFinalizer(new(int), func(*int) { finalized.Add(1) })

	var wg sync.WaitGroup
	for _i := 0; _i < goroutines; _i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			local := make([]Shared[int], 0, copies)
			for j := 0; j < copies; j++ {
				local = append(local, handle.Clone())
				if j%10 == 0 {
					tmp := handle.Clone()
					local[len(local)-1].Assign(tmp)
					tmp.Release()
				}
			}
			for i := range local {
				local[i].Release()
			}
		}()
	}
	wg.Wait()

	require.Zero(t, finalized.Load(), "finalized while the original owner is live")
	handle.Release()
	require.EqualValues(t, 1, finalized.Load(), "finalizer must run exactly once")
}

// TestConcurrentCustomFinalizer is the same storm over a custom
// finalizer and checks it receives the original resource pointer.
func TestConcurrentCustomFinalizer(t *testing.T) {
	const goroutines = 20
	const copies = 200

	res := new(closeCounted)
	var finalized atomic.Int32
	var gotRes atomic.Pointer[closeCounted]
	handle := NewWithFinalizer(res, func(r *closeCounted) {
		finalized.Add(1)
		gotRes.Store(r)
	})

	var wg sync.WaitGroup
	for _i := 0; _i < goroutines; _i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _i := 0; _i < copies; _i++ {
				c := handle.Clone()
				c.Release()
			}
		}()
	}
	wg.Wait()
	handle.Release()

	require.EqualValues(t, 1, finalized.Load())
	require.Same(t, res, gotRes.Load(), "finalizer must receive the original resource")
}

// TestConcurrentUseCountSnapshot clones and releases from many
// goroutines and checks the count lands back where it started.
func TestConcurrentUseCountSnapshot(t *testing.T) {
	const goroutines = 32

	handle := Make(0)
	var wg sync.WaitGroup
	for _i := 0; _i < goroutines; _i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _i := 0; _i < 1000; _i++ {
				c := handle.Clone()
				c.Release()
			}
		}()
	}
	wg.Wait()

	require.EqualValues(t, 1, handle.UseCount())
	handle.Release()
}
