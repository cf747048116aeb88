package engine

import "time"

// Stopper cancels a scheduled callback.
type Stopper interface {
	Stop() bool
}

// Scheduler runs f once after d. Selectors use it for computer moves and
// the snake clock.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Stopper
}

// RealScheduler schedules on the runtime timer.
type RealScheduler struct{}

func (RealScheduler) AfterFunc(d time.Duration, f func()) Stopper {
	return time.AfterFunc(d, f)
}
