package clock

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLiveClockFiresImmediatelyAndPeriodically(t *testing.T) {
	fixed := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	lc := New(10*time.Millisecond, Func(func() time.Time { return fixed }), nil)
	defer lc.Stop()

	var mu sync.Mutex
	var seen []time.Time
	require.True(t, lc.Start(func(now time.Time) {
		mu.Lock()
		seen = append(seen, now)
		mu.Unlock()
	}))

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(seen) >= 3
	}, time.Second, 5*time.Millisecond)

	mu.Lock()
	assert.Equal(t, fixed, seen[0])
	mu.Unlock()
}

func TestLiveClockDoubleStartKeepsOneLoop(t *testing.T) {
	lc := New(time.Hour, nil, nil)
	defer lc.Stop()

	var first, second atomic.Int32
	assert.True(t, lc.Start(func(time.Time) { first.Add(1) }))
	assert.False(t, lc.Start(func(time.Time) { second.Add(1) }))

	assert.Eventually(t, func() bool { return first.Load() == 1 }, time.Second, time.Millisecond)
	assert.Equal(t, int32(0), second.Load())
	assert.True(t, lc.Running())
}

func TestLiveClockStopLeavesNoWork(t *testing.T) {
	lc := New(5*time.Millisecond, nil, nil)

	var ticks atomic.Int32
	lc.Start(func(time.Time) { ticks.Add(1) })
	assert.Eventually(t, func() bool { return ticks.Load() >= 2 }, time.Second, time.Millisecond)

	lc.Stop()
	assert.False(t, lc.Running())
	after := ticks.Load()

	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, ticks.Load())

	// repeated stops are safe
	lc.Stop()
	lc.Stop()
}

func TestLiveClockRestart(t *testing.T) {
	lc := New(time.Hour, nil, nil)

	var ticks atomic.Int32
	fn := func(time.Time) { ticks.Add(1) }

	require.True(t, lc.Start(fn))
	lc.Stop()
	require.True(t, lc.Start(fn))
	lc.Stop()

	assert.Equal(t, int32(2), ticks.Load())
}

func TestLiveClockSync(t *testing.T) {
	lc := New(time.Hour, nil, nil)
	fn := func(time.Time) {}

	lc.Sync(true, fn)
	assert.True(t, lc.Running())
	lc.Sync(true, fn)
	assert.True(t, lc.Running())
	lc.Sync(false, fn)
	assert.False(t, lc.Running())
}

func TestNewDefaults(t *testing.T) {
	lc := New(0, nil, nil)
	assert.Equal(t, DefaultInterval, lc.Interval())
}
