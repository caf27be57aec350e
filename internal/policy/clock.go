package policy

import "time"

// Clock provides the current time to the guard loop and the log store.
// It exists so tests can drive the schedule with fixed timestamps.
type Clock interface {
	Now() time.Time
}

// RealClock reads the system clock.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// FixedClock returns a settable time, for tests.
type FixedClock struct {
	Current time.Time
}

func (c *FixedClock) Now() time.Time { return c.Current }

// Advance moves the fixed clock forward by d.
func (c *FixedClock) Advance(d time.Duration) { c.Current = c.Current.Add(d) }
