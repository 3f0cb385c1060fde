package models

import (
	"time"
)

// Timer counts down from InitialDurationMillis. RemainingTimeMillis is the
// amount left at the moment the timer was last paused; while running the live
// value is derived from StartTime. StartTime is set exactly when IsRunning.
type Timer struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name                  string     `gorm:"not null" json:"name"`
	InitialDurationMillis int64      `gorm:"not null;default:0" json:"initial_duration_millis"`
	RemainingTimeMillis   int64      `gorm:"not null;default:0" json:"remaining_time_millis"`
	IsRunning             bool       `gorm:"not null;default:false" json:"is_running"`
	StartTime             *time.Time `json:"start_time"`
}

// InitialDuration returns the configured countdown length
func (t Timer) InitialDuration() time.Duration {
	return time.Duration(t.InitialDurationMillis) * time.Millisecond
}

// RemainingMillisAt returns the remaining milliseconds at now. The result goes
// negative once a running timer has expired.
func (t Timer) RemainingMillisAt(now time.Time) int64 {
	if !t.IsRunning || t.StartTime == nil {
		return t.RemainingTimeMillis
	}
	return t.RemainingTimeMillis - now.Sub(*t.StartTime).Milliseconds()
}

// RemainingAt is RemainingMillisAt as a time.Duration
func (t Timer) RemainingAt(now time.Time) time.Duration {
	return time.Duration(t.RemainingMillisAt(now)) * time.Millisecond
}

// Expired reports whether the countdown has passed zero
func (t Timer) Expired(now time.Time) bool {
	return t.RemainingMillisAt(now) < 0
}

// Progress is the remaining fraction of the initial duration, clamped to [0, 1]
func (t Timer) Progress(now time.Time) float64 {
	if t.InitialDurationMillis <= 0 {
		return 0
	}
	p := float64(t.RemainingMillisAt(now)) / float64(t.InitialDurationMillis)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
