package clock

import "time"

// Clock abstracts time.Now so screens and commands can be tested deterministically
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// System is the wall clock
var System Clock = systemClock{}

// Func adapts a plain function to Clock
type Func func() time.Time

// Now calls f
func (f Func) Now() time.Time {
	return f()
}
