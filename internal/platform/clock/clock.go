package clock

import "time"

// Clock supplies the current time. Services take a Clock instead of calling
// time.Now directly so that time-dependent logic is deterministic in tests.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// System returns a Clock backed by the wall clock, in UTC.
func System() Clock { return systemClock{} }

// Fixed returns a Clock that always reports t.
func Fixed(t time.Time) Clock { return fixedClock{t} }

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }
