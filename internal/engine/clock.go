package engine

import (
	"time"

	"github.com/tartampluch/go-yeardots/internal/config"
)

// Clock abstracts time.Now() to allow deterministic testing.
// It is queried once per session to fix the reference date.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the standard time package.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// ReferenceDate reads the clock and pins the instant to the session zone
// (UTC+5:30), whatever the host timezone is.
func ReferenceDate(c Clock) time.Time {
	return c.Now().In(config.SessionZone)
}
