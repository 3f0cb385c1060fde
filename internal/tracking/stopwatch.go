package tracking

import (
	"time"

	"github.com/balkashynov/tock/internal/models"
)

// ToggleStopwatch pauses a running stopwatch or resumes a paused one.
// Resuming shifts StartTime forward so the elapsed time is carried over.
func ToggleStopwatch(sw models.Stopwatch, now time.Time) models.Stopwatch {
	if sw.StopTime == nil {
		stop := now
		sw.StopTime = &stop
		return sw
	}

	elapsed := sw.StopTime.Sub(sw.StartTime)
	sw.StartTime = now.Add(-elapsed)
	sw.StopTime = nil
	return sw
}

// ResetStopwatch stops the stopwatch at zero elapsed time
func ResetStopwatch(sw models.Stopwatch, now time.Time) models.Stopwatch {
	stop := now
	sw.StartTime = now
	sw.StopTime = &stop
	return sw
}

// AnyStopwatchRunning reports whether a screen showing stopwatches needs live updates
func AnyStopwatchRunning(stopwatches []models.Stopwatch) bool {
	for _, sw := range stopwatches {
		if sw.IsRunning() {
			return true
		}
	}
	return false
}
