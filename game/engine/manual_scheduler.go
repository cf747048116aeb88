package engine

import (
	"sync"
	"time"
)

// ManualScheduler collects callbacks and runs them only when asked. It lets
// tests drive computer moves and snake ticks step by step.
type ManualScheduler struct {
	mu     sync.Mutex
	timers []*ManualTimer
}

// ManualTimer is a callback held by a ManualScheduler.
type ManualTimer struct {
	Delay   time.Duration
	m       *ManualScheduler
	f       func()
	stopped bool
	fired   bool
}

// Stop prevents the callback from running. It reports whether the timer was
// still pending.
func (t *ManualTimer) Stop() bool {
	t.m.mu.Lock()
	defer t.m.mu.Unlock()
	pending := !t.stopped && !t.fired
	t.stopped = true
	return pending
}

func (m *ManualScheduler) AfterFunc(d time.Duration, f func()) Stopper {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := &ManualTimer{Delay: d, m: m, f: f}
	m.timers = append(m.timers, t)
	return t
}

// Pending returns the timers that are neither stopped nor fired.
func (m *ManualScheduler) Pending() []*ManualTimer {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*ManualTimer
	for _, t := range m.timers {
		if !t.stopped && !t.fired {
			out = append(out, t)
		}
	}
	return out
}

// Step runs the oldest pending callback and reports whether there was one.
func (m *ManualScheduler) Step() bool {
	m.mu.Lock()
	var next *ManualTimer
	for _, t := range m.timers {
		if !t.stopped && !t.fired {
			next = t
			break
		}
	}
	if next == nil {
		m.mu.Unlock()
		return false
	}
	next.fired = true
	m.mu.Unlock()

	next.f()
	return true
}

// RunStale invokes a callback even though it was stopped, the way a
// runtime timer can fire concurrently with Stop.
func (m *ManualScheduler) RunStale(t *ManualTimer) {
	m.mu.Lock()
	t.fired = true
	m.mu.Unlock()
	t.f()
}
