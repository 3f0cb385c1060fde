package tracking

import (
	"time"

	"github.com/balkashynov/tock/internal/models"
)

// ToggleTimer pauses a running timer, folding the time spent running into
// RemainingTimeMillis (never below zero), or starts a paused one.
func ToggleTimer(t models.Timer, now time.Time) models.Timer {
	if t.IsRunning {
		started := now
		if t.StartTime != nil {
			started = *t.StartTime
		}
		elapsed := now.Sub(started).Milliseconds()

		t.RemainingTimeMillis = max(0, t.RemainingTimeMillis-elapsed)
		t.IsRunning = false
		t.StartTime = nil
		return t
	}

	start := now
	t.IsRunning = true
	t.StartTime = &start
	return t
}

// ResetTimer stops the timer and restores its initial duration
func ResetTimer(t models.Timer) models.Timer {
	t.RemainingTimeMillis = t.InitialDurationMillis
	t.IsRunning = false
	t.StartTime = nil
	return t
}

// Resettable reports whether ResetTimer would change anything
func Resettable(t models.Timer) bool {
	return t.IsRunning || t.RemainingTimeMillis != t.InitialDurationMillis
}

// AnyTimerRunning reports whether a screen showing timers needs live updates
func AnyTimerRunning(timers []models.Timer) bool {
	for _, t := range timers {
		if t.IsRunning {
			return true
		}
	}
	return false
}
