// Package leak provides opt-in tracking of live control blocks for
// hunting handle leaks.
//
// Tracking is off by default and costs one atomic load per block
// creation while off. With tracking enabled, every control block
// created by grip is registered until its last handle releases; Report
// logs whatever is still registered, which after an orderly shutdown
// should be nothing.
//
// Typical use in a test or at process exit:
//
//	leak.Enable()
//	defer func() {
//		if n := leak.Report(); n > 0 {
//			// n handles were never released
//		}
//	}()
package leak

import (
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the leak package's logger instance.
// It uses a no-op logger by default.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
	})
	return logger
}

// SetLogger configures the leak package's logger.
// This must be called before any leak reporting.
func SetLogger(l *zap.Logger) {
	logger = l
}

var (
	enabled atomic.Bool
	mu      sync.Mutex
	live    map[any]string
)

// Enable turns tracking on. Blocks created while tracking was off are
// not retroactively tracked.
func Enable() {
	mu.Lock()
	if live == nil {
		live = make(map[any]string)
	}
	enabled.Store(true)
	mu.Unlock()
}

// Disable turns tracking off and forgets all registered blocks.
func Disable() {
	mu.Lock()
	enabled.Store(false)
	live = nil
	mu.Unlock()
}

// Enabled reports whether tracking is on.
func Enabled() bool {
	return enabled.Load()
}

// Register records a live control block under a human-readable
// resource label. Called by grip on block creation.
func Register(block any, label string) {
	if !enabled.Load() {
		return
	}
	mu.Lock()
	if live != nil {
		live[block] = label
	}
	mu.Unlock()
}

// Unregister forgets a control block. Called by grip when the block
// reaches its dead state.
func Unregister(block any) {
	if !enabled.Load() {
		return
	}
	mu.Lock()
	delete(live, block)
	mu.Unlock()
}

// Live returns the number of tracked control blocks still alive.
func Live() int {
	mu.Lock()
	defer mu.Unlock()
	return len(live)
}

// Report logs every tracked control block still alive and returns how
// many there were.
func Report() int {
	mu.Lock()
	defer mu.Unlock()
	for block, label := range live {
		Logger().Warn("live control block",
			zap.String("resource", label),
			zap.String("block", fmt.Sprintf("%p", block)))
	}
	return len(live)
}
