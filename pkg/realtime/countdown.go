package realtime

import (
	"sync"
	"time"
)

// Countdown calls a function once per interval for a fixed number of ticks
// on its own goroutine. It is a task handle: the owner cancels it when the
// scene it drives is left or re-entered.
type Countdown struct {
	stop chan struct{}
	done chan struct{}
	once sync.Once
}

// StartCountdown begins ticking immediately; the first call to tick happens
// one interval from now with i == 1, the last with i == ticks.
func StartCountdown(interval time.Duration, ticks int, tick func(i int)) *Countdown {
	c := &Countdown{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	go c.run(interval, ticks, tick)
	return c
}

func (c *Countdown) run(interval time.Duration, ticks int, tick func(i int)) {
	defer close(c.done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for i := 1; i <= ticks; i++ {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
		}
		// A cancel racing the ticker wins.
		if c.Cancelled() {
			return
		}
		tick(i)
	}
}

// Cancel stops future ticks. It never blocks, so it is safe to call from
// inside tick or while holding a lock tick needs. A tick already running
// finishes; owners that must ignore it compare handles.
func (c *Countdown) Cancel() {
	c.once.Do(func() { close(c.stop) })
}

// Cancelled reports whether Cancel was called.
func (c *Countdown) Cancelled() bool {
	select {
	case <-c.stop:
		return true
	default:
		return false
	}
}

// Done is closed once the goroutine has exited.
func (c *Countdown) Done() <-chan struct{} {
	return c.done
}
