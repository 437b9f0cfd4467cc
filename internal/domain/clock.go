package domain

import "time"

// Clock supplies the current time. Tests substitute a fixed clock to walk a
// contest through its upcoming, active and finished phases.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// ClockFunc adapts a plain function to the Clock interface
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// FixedClock always returns t
func FixedClock(t time.Time) Clock {
	return ClockFunc(func() time.Time { return t })
}

// NowFrom reads clock, falling back to the wall clock when clock is nil
func NowFrom(clock Clock) time.Time {
	if clock == nil {
		return time.Now()
	}
	return clock.Now()
}
