package sched

import "time"

// Clock supplies the loop's notion of current time.
type Clock interface {
	Now() time.Time
}

// RealClock returns a clock backed by the system time.
func RealClock() Clock {
	return realClock{}
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Manual is a test clock that only moves when advanced.
type Manual struct {
	now time.Time
}

// NewManual creates a manual clock starting at a fixed epoch.
func NewManual() *Manual {
	return &Manual{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

// Now returns the clock's current time.
func (m *Manual) Now() time.Time { return m.now }

// Advance moves the clock forward by d.
func (m *Manual) Advance(d time.Duration) {
	m.now = m.now.Add(d)
}
