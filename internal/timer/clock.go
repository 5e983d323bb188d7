// Package timer provides the scheduling primitives of the machine: a
// Clock for one-shot callbacks and the Progress ticker that drives the
// brew animation.
package timer

import "time"

// Handle is a scheduled callback that can be cancelled.
type Handle interface {
	// Stop cancels the callback. It returns false if the callback has
	// already run or was stopped before.
	Stop() bool
}

// Clock schedules callbacks. Swap in a fake to test timing without sleeping.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Handle
	Now() time.Time
}

// System is the Clock backed by the time package.
var System Clock = systemClock{}

type systemClock struct{}

func (systemClock) AfterFunc(d time.Duration, f func()) Handle {
	return time.AfterFunc(d, f)
}

func (systemClock) Now() time.Time {
	return time.Now()
}
