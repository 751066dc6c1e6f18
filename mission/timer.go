package mission

import (
	"time"

	"github.com/benbjohnson/clock"
)

// Timer measures the time spent in the current state.
type Timer struct {
	clock clock.Clock
	start time.Time
}

// NewTimer returns a timer started now.
func NewTimer(clk clock.Clock) *Timer {
	return &Timer{clock: clk, start: clk.Now()}
}

// Reset restarts the timer.
func (t *Timer) Reset() {
	t.start = t.clock.Now()
}

// Elapsed returns the time since the last reset.
func (t *Timer) Elapsed() time.Duration {
	return t.clock.Since(t.start)
}
