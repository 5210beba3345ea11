package banner

import (
	"sync/atomic"
	"time"
)

// CancelFunc cancels a pending deferred task. Calling it after the task has
// fired, or more than once, is harmless.
type CancelFunc func()

// Scheduler runs a function once after a delay. Implementations must
// deliver the callback on the presenter's UI context.
type Scheduler interface {
	After(d time.Duration, fn func()) CancelFunc
}

// timerScheduler schedules with time.AfterFunc and marshals the callback
// through post, which hosts point at their main-loop dispatcher (glib idle,
// a bubbletea message, or a direct call in tests).
type timerScheduler struct {
	post func(func())
}

// NewTimerScheduler returns a Scheduler backed by the runtime timer heap.
// post marshals fired callbacks onto the UI context; nil means call
// directly from the timer goroutine, which is only safe single-threaded.
func NewTimerScheduler(post func(func())) Scheduler {
	if post == nil {
		post = func(fn func()) { fn() }
	}
	return &timerScheduler{post: post}
}

func (s *timerScheduler) After(d time.Duration, fn func()) CancelFunc {
	// Stop alone is not enough: the timer may already have fired and put the
	// callback on the post queue. The flag makes cancellation stick for a
	// callback still in flight.
	var cancelled atomic.Bool
	t := time.AfterFunc(d, func() {
		s.post(func() {
			if !cancelled.Load() {
				fn()
			}
		})
	})
	return func() {
		cancelled.Store(true)
		t.Stop()
	}
}
