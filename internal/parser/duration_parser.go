package parser

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	clockRegex    = regexp.MustCompile(`^(\d{1,2}):(\d{1,2})(?::(\d{1,2}))?$`)
	relativeRegex = regexp.MustCompile(`^(\d+)\s*(s|sec|secs|second|seconds|m|min|mins|minute|minutes|h|hr|hrs|hour|hours)$`)
	numberRegex   = regexp.MustCompile(`^\d+$`)
)

// ParseDuration parses a countdown length typed by the user
// Supported formats:
// - HH:MM:SS or MM:SS (e.g., "1:30:00", "05:00")
// - X unit (e.g., "90 seconds", "5 min", "2h")
// - Go durations (e.g., "1h30m", "45s")
// - a bare number of minutes (e.g., "25")
func ParseDuration(input string) (time.Duration, error) {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return 0, fmt.Errorf("duration is required")
	}

	if matches := clockRegex.FindStringSubmatch(input); matches != nil {
		return parseClock(matches)
	}

	if matches := relativeRegex.FindStringSubmatch(input); matches != nil {
		return parseRelative(matches[1], matches[2])
	}

	if numberRegex.MatchString(input) {
		return parseRelative(input, "minutes")
	}

	if d, err := time.ParseDuration(input); err == nil {
		if d < 0 {
			return 0, fmt.Errorf("duration must not be negative")
		}
		return d, nil
	}

	return 0, fmt.Errorf("invalid duration. Use: HH:MM:SS, MM:SS, X minutes, X seconds, X hours or 1h30m")
}

// parseClock handles HH:MM:SS and MM:SS
func parseClock(matches []string) (time.Duration, error) {
	parts := []string{matches[1], matches[2]}
	if matches[3] != "" {
		parts = append(parts, matches[3])
	} else {
		parts = append([]string{"0"}, parts...)
	}

	hours, _ := strconv.Atoi(parts[0])
	minutes, _ := strconv.Atoi(parts[1])
	seconds, _ := strconv.Atoi(parts[2])

	if minutes > 59 {
		return 0, fmt.Errorf("minutes must be between 0 and 59")
	}
	if seconds > 59 {
		return 0, fmt.Errorf("seconds must be between 0 and 59")
	}

	return time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second, nil
}

// parseRelative handles "X unit"
func parseRelative(amountStr, unit string) (time.Duration, error) {
	amount, err := strconv.Atoi(amountStr)
	if err != nil {
		return 0, fmt.Errorf("invalid number")
	}

	var scale time.Duration
	switch unit {
	case "s", "sec", "secs", "second", "seconds":
		scale = time.Second
	case "m", "min", "mins", "minute", "minutes":
		scale = time.Minute
	case "h", "hr", "hrs", "hour", "hours":
		scale = time.Hour
	default:
		return 0, fmt.Errorf("unsupported time unit")
	}

	if int64(amount) > math.MaxInt64/int64(scale) {
		return 0, fmt.Errorf("duration %s %s is too large", amountStr, unit)
	}
	return time.Duration(amount) * scale, nil
}
