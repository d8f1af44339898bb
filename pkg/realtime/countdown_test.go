package realtime

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitDone(t *testing.T, c *Countdown) {
	t.Helper()
	select {
	case <-c.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("countdown goroutine did not exit")
	}
}

func TestCountdown_RunsAllTicksInOrder(t *testing.T) {
	var mu sync.Mutex
	var got []int
	c := StartCountdown(time.Millisecond, 5, func(i int) {
		mu.Lock()
		got = append(got, i)
		mu.Unlock()
	})
	waitDone(t, c)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int{1, 2, 3, 4, 5}, got)
	assert.False(t, c.Cancelled())
}

func TestCountdown_CancelStopsTicks(t *testing.T) {
	ticks := make(chan int, 100)
	c := StartCountdown(time.Millisecond, 100, func(i int) { ticks <- i })

	require.Eventually(t, func() bool { return len(ticks) >= 2 }, time.Second, time.Millisecond)
	c.Cancel()
	waitDone(t, c)
	n := len(ticks)
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, n, len(ticks), "no tick after the goroutine exits")
	assert.Less(t, n, 100)
	assert.True(t, c.Cancelled())
}

func TestCountdown_CancelFromInsideTick(t *testing.T) {
	var c *Countdown
	var mu sync.Mutex
	count := 0
	mu.Lock()
	c = StartCountdown(time.Millisecond, 10, func(i int) {
		mu.Lock()
		defer mu.Unlock()
		count++
		if i == 3 {
			c.Cancel()
		}
	})
	mu.Unlock()
	waitDone(t, c)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 3, count)
}

func TestCountdown_CancelIsIdempotent(t *testing.T) {
	c := StartCountdown(time.Hour, 1, func(int) {})
	c.Cancel()
	c.Cancel()
	waitDone(t, c)
}
