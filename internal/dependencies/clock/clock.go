package clock

import "time"

// Clock supplies the current time; entry timestamps and session expiry read it
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the system clock
type RealClock struct{}

// New creates a new RealClock
func New() *RealClock {
	return &RealClock{}
}

// Now returns the current local time
func (c *RealClock) Now() time.Time {
	return time.Now()
}
