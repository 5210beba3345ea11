package animation

import "time"

// Clock delivers frame callbacks for an in-flight animation. Animate calls
// fn once per frame with the elapsed time since the animation started, on
// the UI context, until fn returns false.
type Clock interface {
	Animate(fn func(elapsed time.Duration) bool)
}

const frameInterval = time.Second / 60

// TickerClock is the production clock: a self-rescheduling timer at 60
// frames per second. post marshals each frame onto the UI context; nil
// means frames run on the timer goroutine, which is only safe
// single-threaded.
type TickerClock struct {
	post func(func())
}

// NewTickerClock returns a frame clock dispatching through post.
func NewTickerClock(post func(func())) *TickerClock {
	return &TickerClock{post: post}
}

func (c *TickerClock) Animate(fn func(elapsed time.Duration) bool) {
	start := time.Now()
	var step func()
	schedule := func() {
		time.AfterFunc(frameInterval, func() {
			if c.post != nil {
				c.post(step)
			} else {
				step()
			}
		})
	}
	step = func() {
		if fn(time.Since(start)) {
			schedule()
		}
	}
	schedule()
}

// ManualClock advances animations only when the test steps it.
type ManualClock struct {
	frames []*manualFrame
}

type manualFrame struct {
	fn      func(elapsed time.Duration) bool
	elapsed time.Duration
	done    bool
}

// NewManualClock returns a clock driven by Step.
func NewManualClock() *ManualClock {
	return &ManualClock{}
}

func (c *ManualClock) Animate(fn func(elapsed time.Duration) bool) {
	c.frames = append(c.frames, &manualFrame{fn: fn})
}

// Step advances every live animation by d and delivers one frame each.
func (c *ManualClock) Step(d time.Duration) {
	for _, f := range c.frames {
		if f.done {
			continue
		}
		f.elapsed += d
		if !f.fn(f.elapsed) {
			f.done = true
		}
	}
}

// Running reports how many animations are still live.
func (c *ManualClock) Running() int {
	n := 0
	for _, f := range c.frames {
		if !f.done {
			n++
		}
	}
	return n
}
