package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		input string
		want  time.Duration
	}{
		{"1:30:00", 90 * time.Minute},
		{"05:00", 5 * time.Minute},
		{"0:0:7", 7 * time.Second},
		{"99:59:59", 99*time.Hour + 59*time.Minute + 59*time.Second},
		{"90 seconds", 90 * time.Second},
		{"1 second", time.Second},
		{"5 min", 5 * time.Minute},
		{"2h", 2 * time.Hour},
		{"  3 Hours ", 3 * time.Hour},
		{"25", 25 * time.Minute},
		{"1h30m", 90 * time.Minute},
		{"1500ms", 1500 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDuration(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDurationErrors(t *testing.T) {
	for _, input := range []string{"", "soon", "1:60", "1:00:61", "-5m", "5 days", "1:2:3:4"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseDuration(input)
			assert.Error(t, err)
		})
	}
}

func TestParseDurationTooLarge(t *testing.T) {
	// Each of these wraps around int64 nanoseconds if multiplied unchecked
	for _, input := range []string{"5124096 hours", "5124096h", "307445735 min", "307445735", "9223372037 seconds"} {
		t.Run(input, func(t *testing.T) {
			got, err := ParseDuration(input)
			assert.ErrorContains(t, err, "too large")
			assert.Zero(t, got)
		})
	}
}

func TestParseDurationLargestUnitAmounts(t *testing.T) {
	got, err := ParseDuration("2562047 hours")
	require.NoError(t, err)
	assert.Equal(t, 2562047*time.Hour, got)
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00:00"},
		{999 * time.Millisecond, "00:00:00"},
		{61 * time.Second, "00:01:01"},
		{25*time.Hour + 2*time.Second, "25:00:02"},
		{-1500 * time.Millisecond, "-00:00:01"},
		{-400 * time.Millisecond, "00:00:00"},
		{-(time.Hour + time.Minute), "-01:01:00"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatClock(tt.d), tt.d.String())
	}
}

func TestFormatMillis(t *testing.T) {
	assert.Equal(t, "00:00:25", FormatMillis(25000))
	assert.Equal(t, "-00:00:02", FormatMillis(-2500))
}

func TestFormatShort(t *testing.T) {
	assert.Equal(t, "45s", FormatShort(45*time.Second))
	assert.Equal(t, "3m", FormatShort(3*time.Minute))
	assert.Equal(t, "1.5h", FormatShort(90*time.Minute))
	assert.Equal(t, "-10s", FormatShort(-10*time.Second))
}
