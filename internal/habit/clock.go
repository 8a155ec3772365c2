package habit

import "time"

// Clock abstracts the system clock so due-date evaluation can be tested
// with injected times. The engine itself never calls time.Now directly;
// hosts pass a reference day (or a Clock) in.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by time.Now.
func SystemClock() Clock { return systemClock{} }

// ReferenceDay derives the current reference day (start of the local
// calendar day) from a clock in the given location. Hosts recompute this
// periodically to catch midnight rollovers.
func ReferenceDay(c Clock, loc *time.Location) time.Time {
	return StartOfLocalDay(c.Now().In(loc))
}
