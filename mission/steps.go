package mission

import (
	"fmt"
	"time"

	"github.com/samber/lo"

	"github.com/techietitans/autonomy/control"
)

// Mission powers, angles and distances.
const (
	liftPower       = 0.3
	markerTurnPower = 0.2
	markerTurnAngle = 10
	driveOffPower   = 0.15
	driveOffTicks   = 2050
	columnTurnPower = 0.2
	columnDrive     = -0.3
	undoColumnTurn  = 20
	farColumnTicks  = 150
	lowerLiftTicks  = 150
)

// A stepFunc runs one state for one tick and returns the next state with the commands.
type stepFunc func(s *Sequencer, snap Snapshot, elapsed time.Duration) (State, Commands)

var steps = map[State]stepFunc{
	StateResetHeading:    (*Sequencer).resetHeading,
	StateGrip:            (*Sequencer).grip,
	StateRaiseLift:       (*Sequencer).raiseLift,
	StateLowerArm:        (*Sequencer).lowerArm,
	StateDecideMarker:    (*Sequencer).decideMarker,
	StatePushMarker:      (*Sequencer).pushMarker,
	StateRaiseArm:        (*Sequencer).raiseArm,
	StateUndoPush:        (*Sequencer).undoPush,
	StateDriveOff:        (*Sequencer).driveOff,
	StateTurnToColumn:    (*Sequencer).turnToColumn,
	StateDriveToColumn:   (*Sequencer).driveToColumn,
	StateUndoColumnAngle: (*Sequencer).undoColumnAngle,
	StateDriveFarColumn:  (*Sequencer).driveFarColumn,
	StateLowerLift:       (*Sequencer).lowerLift,
	StateRelease:         (*Sequencer).release,
	StateSettle:          (*Sequencer).settle,
	StateBackAway:        (*Sequencer).backAway,
	StateRecovery:        (*Sequencer).recovery,
}

func (s *Sequencer) resetHeading(Snapshot, time.Duration) (State, Commands) {
	return StateGrip, Commands{ResetHeading: true}
}

func (s *Sequencer) grip(Snapshot, time.Duration) (State, Commands) {
	return StateRaiseLift, Commands{
		GripperLeft:  lo.ToPtr(s.cfg.Servos.GripperLeftClose),
		GripperRight: lo.ToPtr(s.cfg.Servos.GripperRightClose),
	}
}

func (s *Sequencer) raiseLift(_ Snapshot, elapsed time.Duration) (State, Commands) {
	if elapsed <= s.cfg.Timeouts.RaiseLift {
		return StateRaiseLift, Commands{Lift: lo.ToPtr(liftPower)}
	}
	if s.mctx.Setup.MarkerPush {
		return StateLowerArm, Commands{Lift: lo.ToPtr(0.0)}
	}
	return StateDriveOff, Commands{Lift: lo.ToPtr(0.0)}
}

func (s *Sequencer) lowerArm(_ Snapshot, elapsed time.Duration) (State, Commands) {
	cmds := Commands{MarkerArm: lo.ToPtr(s.cfg.Servos.MarkerArmDown)}
	if elapsed > s.cfg.Timeouts.LowerArm {
		return StateDecideMarker, cmds
	}
	return StateLowerArm, cmds
}

func (s *Sequencer) decideMarker(snap Snapshot, _ time.Duration) (State, Commands) {
	c := s.mctx
	if !c.Marker.Decided {
		if !snap.Color.OK {
			s.logger.Warn("color sensor unavailable, marker colour unknown")
		}
		c.Marker = DecideMarker(snap.Color, c.Setup.Alliance)
		s.logger.Infow("marker decided",
			"marker", c.Marker.Color.String(),
			"red", snap.Color.Red,
			"blue", snap.Color.Blue,
			"turn", c.Marker.Turn.String(),
			"undo", c.Marker.Undo.String())
	}
	return StatePushMarker, Commands{}
}

func (s *Sequencer) pushMarker(snap Snapshot, elapsed time.Duration) (State, Commands) {
	return s.turnStep(snap, elapsed, markerTurnPower, s.mctx.Marker.Turn, markerTurnAngle, StateRaiseArm)
}

func (s *Sequencer) raiseArm(_ Snapshot, elapsed time.Duration) (State, Commands) {
	cmds := Commands{
		MarkerArm: lo.ToPtr(s.cfg.Servos.MarkerArmUp),
		Light:     lo.ToPtr(false),
	}
	if elapsed > s.cfg.Timeouts.RaiseArm {
		return StateUndoPush, cmds
	}
	return StateRaiseArm, cmds
}

func (s *Sequencer) undoPush(snap Snapshot, elapsed time.Duration) (State, Commands) {
	return s.turnStep(snap, elapsed, markerTurnPower, s.mctx.Marker.Undo, markerTurnAngle, StateDriveOff)
}

func (s *Sequencer) driveOff(snap Snapshot, elapsed time.Duration) (State, Commands) {
	power := -driveOffPower
	if s.mctx.Setup.Alliance == AllianceRed {
		power = driveOffPower
	}
	return s.driveStep(snap, elapsed, s.cfg.Timeouts.DriveOff,
		power, power, driveOffTicks, driveOffTicks, StateTurnToColumn)
}

func (s *Sequencer) turnToColumn(snap Snapshot, elapsed time.Duration) (State, Commands) {
	c := s.mctx
	c.Target = LookupColumn(c.Setup.Column)
	return s.turnStep(snap, elapsed, columnTurnPower, control.SideRight, c.Target.TurnDegrees, StateDriveToColumn)
}

func (s *Sequencer) driveToColumn(snap Snapshot, elapsed time.Duration) (State, Commands) {
	c := s.mctx
	next := StateLowerLift
	if c.Setup.Column.Far() {
		next = StateUndoColumnAngle
	}
	return s.driveStep(snap, elapsed, s.cfg.Timeouts.Drive,
		columnDrive, columnDrive, c.Target.DriveTicks, c.Target.DriveTicks, next)
}

func (s *Sequencer) undoColumnAngle(snap Snapshot, elapsed time.Duration) (State, Commands) {
	return s.turnStep(snap, elapsed, columnTurnPower, control.SideLeft, undoColumnTurn, StateDriveFarColumn)
}

func (s *Sequencer) driveFarColumn(snap Snapshot, elapsed time.Duration) (State, Commands) {
	return s.driveStep(snap, elapsed, s.cfg.Timeouts.Drive,
		columnDrive, columnDrive, farColumnTicks, farColumnTicks, StateLowerLift)
}

// lowerLift lowers the lift while creeping forward. It ends on whichever finishes first; the
// lift timing is part of the plan so running out of time is not a failure.
func (s *Sequencer) lowerLift(snap Snapshot, elapsed time.Duration) (State, Commands) {
	cmd, done := s.mctx.Drive.DriveStraight(snap.Positions, columnDrive, columnDrive, lowerLiftTicks, lowerLiftTicks)
	cmds := Commands{Drive: cmd, Lift: lo.ToPtr(-liftPower)}
	if done || elapsed > s.cfg.Timeouts.LowerLift {
		cmds.Lift = lo.ToPtr(0.0)
		return StateRelease, cmds
	}
	return StateLowerLift, cmds
}

func (s *Sequencer) release(Snapshot, time.Duration) (State, Commands) {
	return StateSettle, Commands{
		GripperLeft:  lo.ToPtr(s.cfg.Servos.GripperLeftOpen),
		GripperRight: lo.ToPtr(s.cfg.Servos.GripperRightOpen),
	}
}

func (s *Sequencer) settle(snap Snapshot, elapsed time.Duration) (State, Commands) {
	return s.driveStep(snap, elapsed, s.cfg.Timeouts.Drive, -0.1, -0.2, 100, 150, StateBackAway)
}

func (s *Sequencer) backAway(snap Snapshot, elapsed time.Duration) (State, Commands) {
	return s.driveStep(snap, elapsed, s.cfg.Timeouts.Drive, 0.3, 0.3, 300, 300, StateDone)
}

func (s *Sequencer) recovery(Snapshot, time.Duration) (State, Commands) {
	return StateRecovery, Commands{
		Drive: lo.ToPtr(control.ZeroPowers),
		Lift:  lo.ToPtr(0.0),
	}
}

func (s *Sequencer) turnStep(
	snap Snapshot,
	elapsed time.Duration,
	power float64,
	side control.Side,
	degrees float64,
	next State,
) (State, Commands) {
	cmd, done := s.mctx.Turn.TurnToHeading(snap.Heading, power, side, degrees)
	cmds := Commands{Drive: cmd}
	if done {
		return next, cmds
	}
	if elapsed > s.cfg.Timeouts.Turn {
		return s.expire("turn", elapsed, s.cfg.Timeouts.Turn, next), cmds
	}
	return s.mctx.State, cmds
}

func (s *Sequencer) driveStep(
	snap Snapshot,
	elapsed, limit time.Duration,
	leftPower, rightPower float64,
	leftTicks, rightTicks int64,
	next State,
) (State, Commands) {
	cmd, done := s.mctx.Drive.DriveStraight(snap.Positions, leftPower, rightPower, leftTicks, rightTicks)
	cmds := Commands{Drive: cmd}
	if done {
		return next, cmds
	}
	if elapsed > limit {
		return s.expire("drive", elapsed, limit, next), cmds
	}
	return s.mctx.State, cmds
}

// expire picks the state after a motion ran out of time: the next state, or recovery when so
// configured.
func (s *Sequencer) expire(motion string, elapsed, limit time.Duration, next State) State {
	c := s.mctx
	s.logger.Warnw("motion timed out",
		"state", c.State.String(),
		"motion", motion,
		"elapsed", elapsed,
		"limit", limit)
	if s.cfg.RecoverOnTimeout {
		c.RecoveryReason = fmt.Sprintf("%s in %s timed out after %s", motion, c.State, elapsed)
		return StateRecovery
	}
	return next
}
