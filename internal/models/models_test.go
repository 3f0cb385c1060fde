package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var epoch = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func TestStopwatchElapsed(t *testing.T) {
	stopped := epoch.Add(90 * time.Second)

	running := Stopwatch{StartTime: epoch}
	assert.True(t, running.IsRunning())
	assert.Equal(t, 2*time.Minute, running.Elapsed(epoch.Add(2*time.Minute)))

	paused := Stopwatch{StartTime: epoch, StopTime: &stopped}
	assert.False(t, paused.IsRunning())
	assert.Equal(t, 90*time.Second, paused.Elapsed(epoch.Add(time.Hour)))
}

func TestTimerRemaining(t *testing.T) {
	start := epoch

	tests := []struct {
		name  string
		timer Timer
		now   time.Time
		want  int64
	}{
		{
			name:  "paused timer ignores clock",
			timer: Timer{InitialDurationMillis: 30000, RemainingTimeMillis: 12000},
			now:   epoch.Add(time.Hour),
			want:  12000,
		},
		{
			name:  "running timer counts down",
			timer: Timer{InitialDurationMillis: 30000, RemainingTimeMillis: 30000, IsRunning: true, StartTime: &start},
			now:   epoch.Add(5 * time.Second),
			want:  25000,
		},
		{
			name:  "expired timer goes negative",
			timer: Timer{InitialDurationMillis: 1000, RemainingTimeMillis: 1000, IsRunning: true, StartTime: &start},
			now:   epoch.Add(3 * time.Second),
			want:  -2000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.timer.RemainingMillisAt(tt.now))
			assert.Equal(t, tt.want < 0, tt.timer.Expired(tt.now))
		})
	}
}

func TestTimerProgress(t *testing.T) {
	start := epoch
	timer := Timer{InitialDurationMillis: 10000, RemainingTimeMillis: 10000, IsRunning: true, StartTime: &start}

	assert.InDelta(t, 1.0, timer.Progress(epoch), 0.0001)
	assert.InDelta(t, 0.25, timer.Progress(epoch.Add(7500*time.Millisecond)), 0.0001)
	assert.Equal(t, 0.0, timer.Progress(epoch.Add(time.Minute)))
	assert.Equal(t, 0.0, Timer{}.Progress(epoch))
}
