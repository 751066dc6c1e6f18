package telemetry

import (
	"time"

	"github.com/benbjohnson/clock"

	"github.com/techietitans/autonomy/logging"
)

// DefaultRecordPeriod is the minimum time between two run log lines.
const DefaultRecordPeriod = 100 * time.Millisecond

// A Recorder writes a line to the run log at most once per period of clock time.
type Recorder struct {
	clock  clock.Clock
	period time.Duration
	logger logging.Logger
	last   time.Time
	lines  int
}

// NewRecorder returns a recorder logging to logger. A zero period uses DefaultRecordPeriod.
func NewRecorder(clk clock.Clock, period time.Duration, logger logging.Logger) *Recorder {
	if period <= 0 {
		period = DefaultRecordPeriod
	}
	return &Recorder{clock: clk, period: period, logger: logger}
}

// Record logs the loop counter and the record if a full period has passed since the last line.
// It reports whether a line was written.
func (r *Recorder) Record(loop int64, d Diagnostics) bool {
	now := r.clock.Now()
	if r.lines > 0 && now.Sub(r.last) < r.period {
		return false
	}
	r.last = now
	r.lines++
	r.logger.Infow("mission",
		"loop", loop,
		"state", d.StateID,
		"left_position", d.LeftPosition,
		"left_power", d.LeftPower,
		"right_position", d.RightPosition,
		"right_power", d.RightPower,
		"heading", d.Heading,
		"red", d.Red,
		"blue", d.Blue,
		"gripper_left", d.GripperLeft,
		"gripper_right", d.GripperRight,
	)
	return true
}

// Lines returns the number of lines written.
func (r *Recorder) Lines() int {
	return r.lines
}
