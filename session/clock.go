package session

import "time"

// Clock abstracts time so the poll interval and attempt bound are
// testable without wall-clock delays.
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

func (systemClock) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}

// SystemClock returns the real wall clock.
func SystemClock() Clock {
	return systemClock{}
}
