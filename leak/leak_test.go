package leak_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/dacapoday/grip"
	"github.com/dacapoday/grip/leak"
)

func TestTrackingLifecycle(t *testing.T) {
	leak.Enable()
	defer leak.Disable()

	require.Zero(t, leak.Live())

	s := grip.Make(1)
	w := s.Downgrade()
	require.Equal(t, 1, leak.Live(), "one live control block")

	s.Release()
	require.Equal(t, 1, leak.Live(), "observers keep the block tracked")

	w.Release()
	require.Zero(t, leak.Live(), "retired block is untracked")
}

func TestReportLogsLiveBlocks(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	leak.SetLogger(zap.New(core))

	leak.Enable()
	defer leak.Disable()

	s := grip.Make("leaky")
	n := leak.Report()
	require.Equal(t, 1, n)
	require.Equal(t, 1, logs.Len())

	entry := logs.All()[0]
	require.Equal(t, "live control block", entry.Message)
	require.Equal(t, "string", entry.ContextMap()["resource"])

	s.Release()
	require.Zero(t, leak.Report())
}

func TestDisabledTrackingIsFree(t *testing.T) {
	leak.Disable()

	s := grip.Make(1)
	require.Zero(t, leak.Live())
	s.Release()
	require.Zero(t, leak.Report())
}
