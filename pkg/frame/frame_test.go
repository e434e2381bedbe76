package frame

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestScheduleCoalesces(t *testing.T) {
	s := New(20 * time.Millisecond)
	defer s.Stop()

	var last atomic.Int64
	done := make(chan struct{}, 100)
	for i := 1; i <= 50; i++ {
		s.Schedule(func() {
			last.Store(int64(i))
			done <- struct{}{}
		})
	}

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduled work never ran")
	}
	time.Sleep(50 * time.Millisecond)

	if got := s.Runs(); got != 1 {
		t.Errorf("Runs() = %d, want 1", got)
	}
	if got := last.Load(); got != 50 {
		t.Errorf("ran work #%d, want the newest (#50)", got)
	}
}

func TestScheduleOncePerFrame(t *testing.T) {
	const interval = 30 * time.Millisecond
	s := New(interval)
	defer s.Stop()

	times := make(chan time.Time, 2)
	s.Schedule(func() { times <- time.Now() })
	first := <-times
	s.Schedule(func() { times <- time.Now() })

	select {
	case second := <-times:
		if gap := second.Sub(first); gap < interval-time.Millisecond {
			t.Errorf("second run %v after the first, want at least %v", gap, interval)
		}
	case <-time.After(time.Second):
		t.Fatal("second frame never ran")
	}
}

func TestStop(t *testing.T) {
	s := New(10 * time.Millisecond)
	var ran atomic.Bool
	s.Schedule(func() { ran.Store(true) })
	s.Stop()
	s.Schedule(func() { ran.Store(true) })

	time.Sleep(40 * time.Millisecond)
	if ran.Load() {
		t.Error("work ran after Stop")
	}
}

func TestCancelAndFlush(t *testing.T) {
	s := New(time.Hour)
	defer s.Stop()
	s.last = time.Now() // keep the timer from firing on the first schedule

	if s.Cancel() {
		t.Error("Cancel() = true with nothing pending")
	}

	s.Schedule(func() {})
	if !s.Cancel() {
		t.Error("Cancel() = false with work pending")
	}

	var ran bool
	s.Schedule(func() { ran = true })
	if !s.Flush() {
		t.Error("Flush() = false with work pending")
	}
	if !ran {
		t.Error("Flush did not run the pending work")
	}
	if s.Flush() {
		t.Error("Flush() = true after the work already ran")
	}
}

func TestLateTimerAfterFlush(t *testing.T) {
	s := New(50 * time.Millisecond)
	defer s.Stop()
	s.last = time.Now()

	s.Schedule(func() {})
	flushed := s.gen
	s.Flush()

	ran := make(chan struct{}, 1)
	s.Schedule(func() { ran <- struct{}{} })

	// The flushed frame's timer went off but only now gets the lock.
	s.fire(flushed)
	select {
	case <-ran:
		t.Fatal("a superseded timer ran work scheduled after Flush")
	default:
	}
	if got := s.Runs(); got != 1 {
		t.Errorf("Runs() = %d, want 1", got)
	}

	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("work scheduled after Flush never ran")
	}
	if got := s.Runs(); got != 2 {
		t.Errorf("Runs() = %d, want 2", got)
	}
}

func TestNewDefaultInterval(t *testing.T) {
	if got := New(0).Interval(); got != DefaultInterval {
		t.Errorf("Interval() = %v, want %v", got, DefaultInterval)
	}
}
