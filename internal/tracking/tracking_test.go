package tracking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balkashynov/tock/internal/models"
)

var t0 = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func at(ms int64) time.Time {
	return t0.Add(time.Duration(ms) * time.Millisecond)
}

func TestToggleStopwatchPausesRunning(t *testing.T) {
	sw := models.Stopwatch{ID: 1, Name: "run", StartTime: t0}

	paused := ToggleStopwatch(sw, at(4000))

	require.NotNil(t, paused.StopTime)
	assert.Equal(t, at(4000), *paused.StopTime)
	assert.Equal(t, t0, paused.StartTime)
	assert.Equal(t, 4*time.Second, paused.Elapsed(at(60000)))
	assert.Nil(t, sw.StopTime, "input must not be mutated")
}

func TestToggleStopwatchPreservesElapsed(t *testing.T) {
	sw := models.Stopwatch{StartTime: t0}

	for _, t2 := range []int64{7000, 60000, 3600000} {
		paused := ToggleStopwatch(sw, at(7000))
		resumed := ToggleStopwatch(paused, at(t2))

		assert.True(t, resumed.IsRunning())
		assert.Equal(t, 7*time.Second, resumed.Elapsed(at(t2)), "t2=%d", t2)
	}
}

func TestStopwatchSeveralPauseCycles(t *testing.T) {
	sw := models.Stopwatch{StartTime: t0}

	sw = ToggleStopwatch(sw, at(1000))  // 1s counted
	sw = ToggleStopwatch(sw, at(5000))  // resume
	sw = ToggleStopwatch(sw, at(7000))  // 2s more
	sw = ToggleStopwatch(sw, at(20000)) // resume

	assert.Equal(t, 3*time.Second, sw.Elapsed(at(20000)))
	assert.Equal(t, 4*time.Second, sw.Elapsed(at(21000)))
}

func TestResetStopwatch(t *testing.T) {
	stop := at(9000)
	cases := []models.Stopwatch{
		{StartTime: t0},
		{StartTime: t0, StopTime: &stop},
	}

	for _, sw := range cases {
		reset := ResetStopwatch(sw, at(12000))
		assert.False(t, reset.IsRunning())
		assert.Equal(t, time.Duration(0), reset.Elapsed(at(99000)))
	}
}

func TestToggleTimerCountsDown(t *testing.T) {
	timer := models.Timer{InitialDurationMillis: 30000, RemainingTimeMillis: 30000}

	running := ToggleTimer(timer, at(0))
	require.True(t, running.IsRunning)
	require.NotNil(t, running.StartTime)

	paused := ToggleTimer(running, at(5000))
	assert.False(t, paused.IsRunning)
	assert.Nil(t, paused.StartTime)
	assert.Equal(t, int64(25000), paused.RemainingTimeMillis)
}

func TestToggleTimerClampsAtZero(t *testing.T) {
	timer := models.Timer{InitialDurationMillis: 2000, RemainingTimeMillis: 2000}

	running := ToggleTimer(timer, at(0))
	assert.Equal(t, int64(-8000), running.RemainingMillisAt(at(10000)))

	paused := ToggleTimer(running, at(10000))
	assert.Equal(t, int64(0), paused.RemainingTimeMillis)
}

func TestToggleTimerWithoutStartTime(t *testing.T) {
	// Inconsistent row: running but no start time. Nothing elapsed.
	timer := models.Timer{InitialDurationMillis: 5000, RemainingTimeMillis: 4000, IsRunning: true}

	paused := ToggleTimer(timer, at(3000))
	assert.Equal(t, int64(4000), paused.RemainingTimeMillis)
	assert.False(t, paused.IsRunning)
}

func TestResetTimer(t *testing.T) {
	start := at(0)
	timer := models.Timer{InitialDurationMillis: 30000, RemainingTimeMillis: 1200, IsRunning: true, StartTime: &start}

	assert.True(t, Resettable(timer))

	reset := ResetTimer(timer)
	assert.Equal(t, int64(30000), reset.RemainingTimeMillis)
	assert.False(t, reset.IsRunning)
	assert.Nil(t, reset.StartTime)
	assert.False(t, Resettable(reset))
}

func TestAnyRunning(t *testing.T) {
	stop := at(1)
	start := at(0)

	assert.False(t, AnyStopwatchRunning(nil))
	assert.False(t, AnyStopwatchRunning([]models.Stopwatch{{StopTime: &stop}}))
	assert.True(t, AnyStopwatchRunning([]models.Stopwatch{{StopTime: &stop}, {}}))

	assert.False(t, AnyTimerRunning([]models.Timer{{}}))
	assert.True(t, AnyTimerRunning([]models.Timer{{}, {IsRunning: true, StartTime: &start}}))
}
