package control

import (
	"github.com/techietitans/autonomy/logging"
)

// Positions are the encoder counts of the left and right front motors. A side that could not be
// read has its OK flag unset.
type Positions struct {
	Left    int64
	Right   int64
	LeftOK  bool
	RightOK bool
}

// DriveLatch is the reference frame of a running encoder drive.
type DriveLatch struct {
	LeftBaseline  int64
	RightBaseline int64
	// a side that was unreadable when the drive started is latched on its first good read.
	LeftLatched  bool
	RightLatched bool
	Active       bool
}

// EncoderDrive drives both motor pairs at fixed powers until either side has travelled its
// target number of ticks relative to where the drive began.
type EncoderDrive struct {
	Latch  DriveLatch
	logger logging.Logger
}

// NewEncoderDrive returns an idle encoder drive.
func NewEncoderDrive(logger logging.Logger) *EncoderDrive {
	return &EncoderDrive{logger: logger}
}

// Active reports whether a drive is in progress.
func (d *EncoderDrive) Active() bool {
	return d.Latch.Active
}

// DriveStraight advances the drive by one tick. The first call after the latch is inactive
// records the baselines and returns the clipped powers to apply. Later calls return a nil
// command while the drive runs. When the travelled distance on either side reaches its target the
// latch is cleared, a zero command is returned and done is true.
func (d *EncoderDrive) DriveStraight(
	pos Positions,
	leftPower, rightPower float64,
	leftTarget, rightTarget int64,
) (*DrivePowers, bool) {
	var cmd *DrivePowers
	if !d.Latch.Active {
		d.Latch = DriveLatch{Active: true}
		start := DrivePowers{Left: leftPower, Right: rightPower}.Clipped()
		cmd = &start
		if d.logger != nil {
			d.logger.Debugw("drive started",
				"left_power", start.Left, "right_power", start.Right,
				"left_target", leftTarget, "right_target", rightTarget)
		}
	}
	if pos.LeftOK && !d.Latch.LeftLatched {
		d.Latch.LeftBaseline, d.Latch.LeftLatched = pos.Left, true
	}
	if pos.RightOK && !d.Latch.RightLatched {
		d.Latch.RightBaseline, d.Latch.RightLatched = pos.Right, true
	}

	if d.leftReached(pos, leftTarget) || d.rightReached(pos, rightTarget) {
		if d.logger != nil {
			d.logger.Debugw("drive complete",
				"left_travel", travel(pos.Left, d.Latch.LeftBaseline),
				"right_travel", travel(pos.Right, d.Latch.RightBaseline))
		}
		d.Latch = DriveLatch{}
		stop := ZeroPowers
		return &stop, true
	}
	return cmd, false
}

// Cancel abandons a running drive. It returns the zero command if a drive was active.
func (d *EncoderDrive) Cancel() *DrivePowers {
	if !d.Latch.Active {
		return nil
	}
	d.Latch = DriveLatch{}
	stop := ZeroPowers
	return &stop
}

func (d *EncoderDrive) leftReached(pos Positions, target int64) bool {
	return pos.LeftOK && d.Latch.LeftLatched && travel(pos.Left, d.Latch.LeftBaseline) >= target
}

func (d *EncoderDrive) rightReached(pos Positions, target int64) bool {
	return pos.RightOK && d.Latch.RightLatched && travel(pos.Right, d.Latch.RightBaseline) >= target
}

func travel(cur, baseline int64) int64 {
	delta := cur - baseline
	if delta < 0 {
		return -delta
	}
	return delta
}
