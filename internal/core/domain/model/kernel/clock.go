package kernel

import "time"

// Clock supplies the current time to domain services and command handlers.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in UTC.
type SystemClock struct{}

// NewSystemClock returns the production clock.
func NewSystemClock() SystemClock {
	return SystemClock{}
}

// Now returns time.Now in UTC.
func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// FixedClock always returns the same instant. Used by tests and by batch jobs
// that must stamp a whole run with one time.
type FixedClock struct {
	at time.Time
}

// NewFixedClock returns a clock frozen at t.
func NewFixedClock(t time.Time) FixedClock {
	return FixedClock{at: t}
}

// Now returns the frozen instant.
func (c FixedClock) Now() time.Time {
	return c.at
}
