// Package frame coalesces recomputation onto frame boundaries.
//
// Pointer moves arrive far more often than a screen refreshes. A [Scheduler]
// keeps at most one piece of pending work: scheduling again before the next
// frame replaces what was pending, so only the newest state is ever
// computed, and work runs at most once per frame interval.
package frame

import (
	"sync"
	"time"
)

// DefaultInterval is one frame at 60 Hz.
const DefaultInterval = time.Second / 60

// Scheduler runs the most recently scheduled function once per frame.
// The zero value is not usable; create one with [New].
type Scheduler struct {
	interval time.Duration

	mu      sync.Mutex
	pending func()
	timer   *time.Timer
	gen     uint64 // identifies the armed timer
	last    time.Time
	stopped bool
	runs    int
}

// New returns a scheduler with the given frame interval. A non-positive
// interval uses DefaultInterval.
func New(interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Scheduler{interval: interval}
}

// Interval returns the frame interval.
func (s *Scheduler) Interval() time.Duration { return s.interval }

// Schedule queues fn for the next frame, replacing any pending function.
// fn runs on its own goroutine. Scheduling after Stop is a no-op.
func (s *Scheduler) Schedule(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped || fn == nil {
		return
	}
	s.pending = fn
	if s.timer != nil {
		return
	}
	delay := s.interval - time.Since(s.last)
	if delay < 0 {
		delay = 0
	}
	s.gen++
	gen := s.gen
	s.timer = time.AfterFunc(delay, func() { s.fire(gen) })
}

// Cancel drops the pending function, if any, and reports whether there
// was one.
func (s *Scheduler) Cancel() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	had := s.pending != nil
	s.pending = nil
	return had
}

// Flush runs the pending function synchronously, without waiting for the
// frame, and reports whether there was one.
func (s *Scheduler) Flush() bool {
	fn := s.take()
	if fn == nil {
		return false
	}
	fn()
	return true
}

// Stop drops pending work and disables the scheduler. A function that is
// already running is not interrupted.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	s.pending = nil
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// Runs returns how many scheduled functions have run.
func (s *Scheduler) Runs() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runs
}

// fire runs pending work for the timer armed as generation gen. A timer
// superseded by Flush or Stop does nothing, even if it already went off.
func (s *Scheduler) fire(gen uint64) {
	s.mu.Lock()
	if s.timer == nil || s.gen != gen {
		s.mu.Unlock()
		return
	}
	fn := s.takeLocked()
	s.mu.Unlock()
	if fn != nil {
		fn()
	}
}

func (s *Scheduler) take() func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.takeLocked()
}

func (s *Scheduler) takeLocked() func() {
	fn := s.pending
	s.pending = nil
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if fn != nil {
		s.last = time.Now()
		s.runs++
	}
	return fn
}
