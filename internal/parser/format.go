package parser

import (
	"fmt"
	"time"
)

// FormatClock renders d as HH:MM:SS, dropping sub-second precision. Hours
// are not wrapped at 24. Negative durations get a leading minus.
func FormatClock(d time.Duration) string {
	d = d.Truncate(time.Second)

	sign := ""
	if d < 0 {
		sign = "-"
		d = -d
	}

	total := int64(d / time.Second)
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	return fmt.Sprintf("%s%02d:%02d:%02d", sign, hours, minutes, seconds)
}

// FormatMillis is FormatClock for a millisecond count
func FormatMillis(ms int64) string {
	return FormatClock(time.Duration(ms) * time.Millisecond)
}

// FormatShort formats a duration in a compact human-readable way
func FormatShort(d time.Duration) string {
	if d < 0 {
		return "-" + FormatShort(-d)
	}
	if d.Hours() >= 1 {
		return fmt.Sprintf("%.1fh", d.Hours())
	} else if d.Minutes() >= 1 {
		return fmt.Sprintf("%.0fm", d.Minutes())
	} else {
		return fmt.Sprintf("%.0fs", d.Seconds())
	}
}
