package banner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimerScheduler_FiresThroughPost(t *testing.T) {
	posted := make(chan func(), 1)
	s := NewTimerScheduler(func(fn func()) { posted <- fn })

	fired := false
	s.After(time.Millisecond, func() { fired = true })

	select {
	case fn := <-posted:
		fn()
	case <-time.After(time.Second):
		t.Fatal("timer never fired")
	}
	assert.True(t, fired)
}

func TestTimerScheduler_CancelBeatsQueuedCallback(t *testing.T) {
	// The timer fires and the callback sits in the post queue; cancelling
	// before the queue drains must still suppress it.
	posted := make(chan func(), 1)
	s := NewTimerScheduler(func(fn func()) { posted <- fn })

	fired := 0
	cancel := s.After(time.Millisecond, func() { fired++ })

	var fn func()
	select {
	case fn = <-posted:
	case <-time.After(time.Second):
		t.Fatal("timer never fired")
	}

	cancel()
	fn()
	assert.Equal(t, 0, fired)
}

func TestTimerScheduler_CancelStopsDelivery(t *testing.T) {
	fired := make(chan struct{}, 1)
	s := NewTimerScheduler(nil)

	cancel := s.After(50*time.Millisecond, func() { fired <- struct{}{} })
	cancel()
	cancel() // double cancel is harmless

	select {
	case <-fired:
		t.Fatal("cancelled timer fired")
	case <-time.After(120 * time.Millisecond):
	}
}
