package dock

import (
	"sync"
	"time"

	"github.com/WatchBeam/clock"
)

// Timer is a handle to one scheduled removal.
type Timer interface {
	// Stop cancels the callback. It returns false if the callback already
	// ran or the timer was already stopped.
	Stop() bool
}

// Scheduler runs callbacks after a delay.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// ClockScheduler schedules callbacks on a clock.Clock, so tests can drive
// removals with a mock clock.
type ClockScheduler struct {
	Clock clock.Clock
}

// NewClockScheduler returns a scheduler on the wall clock.
func NewClockScheduler() *ClockScheduler {
	return &ClockScheduler{Clock: clock.C}
}

// AfterFunc calls f in its own goroutine once d has elapsed on the clock.
// The deadline is registered with the clock before AfterFunc returns.
func (s *ClockScheduler) AfterFunc(d time.Duration, f func()) Timer {
	t := &clockTimer{stop: make(chan struct{})}
	fire := s.Clock.After(d)
	go func() {
		select {
		case <-fire:
			if t.claim() {
				f()
			}
		case <-t.stop:
		}
	}()
	return t
}

type clockTimer struct {
	once sync.Once
	stop chan struct{}

	mu   sync.Mutex
	done bool
}

// claim marks the timer as finished. Only the first caller wins.
func (t *clockTimer) claim() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done {
		return false
	}
	t.done = true
	return true
}

func (t *clockTimer) Stop() bool {
	if !t.claim() {
		return false
	}
	t.once.Do(func() { close(t.stop) })
	return true
}
