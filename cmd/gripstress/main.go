// gripstress hammers the grip handle types from many goroutines and
// verifies single-finalization, upgrade safety, and leak-freedom.
//
// Usage:
//
//	gripstress                      # default load
//	gripstress -g 100 -copies 500   # heavier copy storm
//	gripstress -locks 10000         # heavier lock storm
//
// Run it with -race while developing; the scenarios are shaped to give
// the race detector something to find if an ordering is wrong.
package main

import (
	"flag"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/dacapoday/grip"
	"github.com/dacapoday/grip/leak"
	"github.com/dacapoday/grip/mem"
)

func main() {
	goroutines := flag.Int("g", 50, "goroutines per scenario")
	copies := flag.Int("copies", 100, "handle copies per goroutine")
	locks := flag.Int("locks", 1000, "lock attempts per goroutine")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	leak.SetLogger(logger)
	leak.Enable()

	failed := false
	run := func(name string, scenario func(*zap.Logger) error) {
		start := time.Now()
		if err := scenario(logger); err != nil {
			logger.Error(name, zap.Error(err), zap.Duration("took", time.Since(start)))
			failed = true
			return
		}
		logger.Info(name, zap.Duration("took", time.Since(start)))
	}

	run("copy storm", func(l *zap.Logger) error {
		return copyStorm(*goroutines, *copies)
	})
	run("lock storm", func(l *zap.Logger) error {
		return lockStorm(l, *goroutines, *locks)
	})
	run("factory", func(*zap.Logger) error {
		return factory()
	})

	if n := leak.Report(); n > 0 {
		logger.Error("control blocks leaked", zap.Int("count", n))
		failed = true
	}
	if failed {
		os.Exit(1)
	}
	logger.Info("all scenarios passed")
}

// copyStorm distributes copies of one handle across goroutines, mixes
// in reassignments, drops everything, and checks the resource was
// finalized exactly once.
func copyStorm(goroutines, copies int) error {
	var finalized atomic.Int32
	res := new(mem.Buffer)
	res.Write(make([]byte, 256<<10))

	handle := grip.NewWithFinalizer(res, func(b *mem.Buffer) {
		finalized.Add(1)
		b.Close()
	})

	var wg sync.WaitGroup
	for _i := 0; _i < goroutines; _i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			local := make([]grip.Shared[mem.Buffer], 0, copies)
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
	handle.Release()

	if n := finalized.Load(); n != 1 {
		return fmt.Errorf("finalized %d times, want 1", n)
	}
	return nil
}

// lockStorm races weak upgrades against the final release of the last
// owner. Every successful lock must observe an unfinalized resource,
// and locks after the release must start failing.
func lockStorm(logger *zap.Logger, goroutines, locks int) error {
	var finalized atomic.Bool
	var hits, misses atomic.Int64

	handle := grip.MakeWith(func(*int) { finalized.Store(true) }, 0)
	weak := handle.Downgrade()
	defer weak.Release()

	var bad atomic.Int64
	storm := func(wg *sync.WaitGroup) {
		for _i := 0; _i < goroutines; _i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for _i := 0; _i < locks; _i++ {
					locked := weak.Lock()
					if !locked.Valid() {
						misses.Add(1)
						continue
					}
					if finalized.Load() {
						bad.Add(1)
					}
					hits.Add(1)
					locked.Release()
				}
			}()
		}
	}

	// The final release lands in the middle of the first storm.
	var first sync.WaitGroup
	storm(&first)
	time.Sleep(50 * time.Millisecond)
	handle.Release()
	first.Wait()

	var second sync.WaitGroup
	storm(&second)
	second.Wait()

	if n := bad.Load(); n > 0 {
		return fmt.Errorf("%d locks observed a finalized resource", n)
	}

	if !finalized.Load() {
		return fmt.Errorf("resource never finalized")
	}
	if misses.Load() == 0 {
		return fmt.Errorf("no lock failed after the final release")
	}
	logger.Debug("lock storm counts",
		zap.Int64("hits", hits.Load()),
		zap.Int64("misses", misses.Load()))
	return nil
}

type payload struct {
	Value int
	Pair  float64
	Text  string
}

// factory checks the combined-allocation path end to end.
func factory() error {
	var finalized atomic.Int32
	handle := grip.MakeWith(func(*payload) { finalized.Add(1) },
		payload{Value: 10, Pair: 3.14, Text: "hello"})

	got := handle.Get()
	if got.Value != 10 || got.Pair != 3.14 || got.Text != "hello" {
		handle.Release()
		return fmt.Errorf("payload %+v, want {10 3.14 hello}", *got)
	}

	second := handle.Clone()
	handle.Release()
	if finalized.Load() != 0 {
		return fmt.Errorf("finalized with an owner still live")
	}
	second.Release()
	if n := finalized.Load(); n != 1 {
		return fmt.Errorf("finalized %d times, want 1", n)
	}
	return nil
}
