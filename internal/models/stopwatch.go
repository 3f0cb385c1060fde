package models

import (
	"time"
)

// Stopwatch tracks time elapsed since StartTime. A nil StopTime means it is running.
type Stopwatch struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name      string     `gorm:"not null" json:"name"`
	StartTime time.Time  `gorm:"not null" json:"start_time"`
	StopTime  *time.Time `json:"stop_time"`
}

// IsRunning reports whether the stopwatch is counting
func (s Stopwatch) IsRunning() bool {
	return s.StopTime == nil
}

// Elapsed returns (StopTime or now) - StartTime
func (s Stopwatch) Elapsed(now time.Time) time.Duration {
	end := now
	if s.StopTime != nil {
		end = *s.StopTime
	}
	return end.Sub(s.StartTime)
}
