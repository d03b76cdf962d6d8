package animation

import "time"

// Clock provides time for transitions. The default implementation uses
// system time. Tests inject a fake clock through NewScheduler to control
// transition timing deterministically.
type Clock interface {
	Now() time.Time
}

// realClock uses system time.
type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// SystemClock returns the wall-clock time source. NewScheduler uses it when
// given a nil clock.
func SystemClock() Clock { return realClock{} }
