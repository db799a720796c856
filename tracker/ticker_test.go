package tracker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type countingTarget struct{ n atomic.Int64 }

func (c *countingTarget) Tick() { c.n.Add(1) }

func TestTicker_TicksUntilStopped(t *testing.T) {
	target := &countingTarget{}
	tk := NewTicker(target, 5*time.Millisecond, zap.NewNop())
	require.NoError(t, tk.Start(context.Background()))

	require.Eventually(t, func() bool { return target.n.Load() >= 3 }, time.Second, time.Millisecond)
	tk.Stop()

	after := target.n.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, target.n.Load(), "tick fired after Stop returned")
}

func TestTicker_StopIsIdempotent(t *testing.T) {
	tk := NewTicker(&countingTarget{}, time.Millisecond, nil)
	tk.Stop()
	require.NoError(t, tk.Start(context.Background()))
	tk.Stop()
	tk.Stop()
}

func TestTicker_StartTwiceFails(t *testing.T) {
	tk := NewTicker(&countingTarget{}, time.Hour, nil)
	require.NoError(t, tk.Start(context.Background()))
	defer tk.Stop()

	assert.ErrorIs(t, tk.Start(context.Background()), ErrTickerRunning)
}

func TestTicker_RestartAfterStop(t *testing.T) {
	target := &countingTarget{}
	tk := NewTicker(target, 2*time.Millisecond, nil)
	require.NoError(t, tk.Start(context.Background()))
	tk.Stop()
	require.NoError(t, tk.Start(context.Background()))
	defer tk.Stop()

	before := target.n.Load()
	require.Eventually(t, func() bool { return target.n.Load() > before }, time.Second, time.Millisecond)
}

func TestTicker_ContextCancelStops(t *testing.T) {
	target := &countingTarget{}
	tk := NewTicker(target, 2*time.Millisecond, nil)
	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, tk.Start(ctx))
	require.Eventually(t, func() bool { return target.n.Load() >= 1 }, time.Second, time.Millisecond)

	cancel()
	tk.Stop()
	after := target.n.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, after, target.n.Load())
}

func TestTicker_DrivesTracker(t *testing.T) {
	tr := New(IDPolicyLength)
	tr.Place(vegMediumThin)
	tk := NewTicker(tr, 2*time.Millisecond, nil)
	require.NoError(t, tk.Start(context.Background()))

	require.Eventually(t, func() bool { return tr.Orders()[0].TimeSpent >= 2 }, time.Second, time.Millisecond)
	tk.Stop()
}

func TestNewTicker_DefaultInterval(t *testing.T) {
	tk := NewTicker(&countingTarget{}, 0, nil)
	assert.Equal(t, time.Minute, tk.Interval())
}
