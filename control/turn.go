package control

import (
	"math"

	"github.com/samber/lo"

	"github.com/techietitans/autonomy/logging"
)

const (
	// TurnGain is the proportional gain applied to the remaining angle.
	TurnGain = 0.1
	// TurnTolerance is how close, in degrees, a turn must get to its target to complete.
	TurnTolerance = 2.0
)

// Heading is an integrated heading reading in degrees.
type Heading struct {
	Degrees float64
	OK      bool
}

// TurnLatch is the reference frame of a running turn.
type TurnLatch struct {
	Baseline float64
	Active   bool
}

// GyroTurn rotates the robot in place by a relative angle, slowing proportionally to the
// remaining error.
type GyroTurn struct {
	Latch  TurnLatch
	logger logging.Logger
}

// NewGyroTurn returns an idle gyro turn.
func NewGyroTurn(logger logging.Logger) *GyroTurn {
	return &GyroTurn{logger: logger}
}

// Active reports whether a turn is in progress.
func (g *GyroTurn) Active() bool {
	return g.Latch.Active
}

// TurnToHeading advances the turn by one tick and returns the command to apply. A turn to the
// left drives the left pair forward and the right pair backward. When the remaining error is
// within TurnTolerance the latch is cleared, a zero command is returned and done is true.
// An unreadable heading leaves the last command in place.
func (g *GyroTurn) TurnToHeading(heading Heading, basePower float64, direction Side, target float64) (*DrivePowers, bool) {
	if !heading.OK {
		return nil, false
	}
	if !g.Latch.Active {
		g.Latch = TurnLatch{Baseline: heading.Degrees, Active: true}
		if g.logger != nil {
			g.logger.Debugw("turn started", "side", direction.String(), "target", target, "baseline", heading.Degrees)
		}
	}

	progress := math.Abs(heading.Degrees - g.Latch.Baseline)
	turnErr := target - progress
	if turnErr <= TurnTolerance {
		if g.logger != nil {
			g.logger.Debugw("turn complete", "progress", progress, "error", turnErr)
		}
		g.Latch = TurnLatch{}
		stop := ZeroPowers
		return &stop, true
	}

	applied := AppliedTurnPower(basePower, turnErr)
	var cmd DrivePowers
	switch direction {
	case SideLeft:
		cmd = DrivePowers{Left: applied, Right: -applied}
	case SideRight:
		cmd = DrivePowers{Left: -applied, Right: applied}
	case SideOther:
		return nil, false
	default:
		return nil, false
	}
	cmd = cmd.Clipped()
	return &cmd, false
}

// AppliedTurnPower scales basePower by the proportional correction for the remaining error.
// The correction is clipped to [0, 1] so the result never exceeds basePower in magnitude.
func AppliedTurnPower(basePower, turnErr float64) float64 {
	correction := lo.Clamp(turnErr*TurnGain, 0, 1)
	return basePower * correction
}

// Cancel abandons a running turn. It returns the zero command if a turn was active.
func (g *GyroTurn) Cancel() *DrivePowers {
	if !g.Latch.Active {
		return nil
	}
	g.Latch = TurnLatch{}
	stop := ZeroPowers
	return &stop
}
