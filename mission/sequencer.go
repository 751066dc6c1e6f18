package mission

import (
	"github.com/benbjohnson/clock"
	"github.com/samber/lo"

	"github.com/techietitans/autonomy/config"
	"github.com/techietitans/autonomy/control"
	"github.com/techietitans/autonomy/logging"
	"github.com/techietitans/autonomy/telemetry"
)

// Setup is the match selection fixed before the mission starts.
type Setup struct {
	Alliance   Alliance
	Column     Column
	MarkerPush bool
}

// Context is everything one mission run knows. It is built when the mission starts and dropped
// when it stops.
type Context struct {
	State    State
	Previous State
	Setup    Setup

	Target ColumnTarget
	Marker MarkerDecision

	Drive *control.EncoderDrive
	Turn  *control.GyroTurn
	Timer *Timer

	Ticks          int64
	RecoveryReason string
}

// A Sequencer runs the mission one tick at a time.
type Sequencer struct {
	cfg    *config.Mission
	logger logging.Logger
	mctx   *Context
}

// NewSequencer returns a sequencer at the first state. An unset alliance matches no marker
// colour, so the marker is always turned right, and it drives off the way blue does.
func NewSequencer(setup Setup, cfg *config.Mission, clk clock.Clock, logger logging.Logger) *Sequencer {
	if cfg == nil {
		cfg = config.Default()
	}
	if setup.Alliance != AllianceRed && setup.Alliance != AllianceBlue {
		logger.Warnw("no alliance selected, marker will be turned right", "alliance", setup.Alliance.String())
		setup.Alliance = AllianceUnset
	}
	logger.Infow("mission starting",
		"alliance", setup.Alliance.String(),
		"column", int(setup.Column),
		"marker_push", setup.MarkerPush)
	return &Sequencer{
		cfg:    cfg,
		logger: logger,
		mctx: &Context{
			State:    StateResetHeading,
			Previous: StateResetHeading,
			Setup:    setup,
			Drive:    control.NewEncoderDrive(logger.Sublogger("drive")),
			Turn:     control.NewGyroTurn(logger.Sublogger("turn")),
			Timer:    NewTimer(clk),
		},
	}
}

// Tick runs the current state once against the snapshot and returns the commands to apply.
func (s *Sequencer) Tick(snap Snapshot) (Commands, telemetry.Diagnostics) {
	c := s.mctx
	c.Ticks++

	var cmds Commands
	if step, ok := steps[c.State]; ok {
		var next State
		next, cmds = step(s, snap, c.Timer.Elapsed())
		if next != c.State {
			s.transition(next, &cmds)
		}
	}
	return cmds, s.diagnostics(snap, cmds)
}

// EnterRecovery stops the mission in the recovery state. It returns the commands that stop the
// robot now; the recovery state keeps the drive stopped on every later tick. A mission that
// already stopped, in recovery or done, is left as it is.
func (s *Sequencer) EnterRecovery(reason string) Commands {
	c := s.mctx
	if c.State.Terminal() {
		return Commands{}
	}
	c.RecoveryReason = reason
	var cmds Commands
	s.transition(StateRecovery, &cmds)
	cmds.Drive = lo.ToPtr(control.ZeroPowers)
	cmds.Lift = lo.ToPtr(0.0)
	return cmds
}

// State returns the current state.
func (s *Sequencer) State() State {
	return s.mctx.State
}

// Previous returns the state before the current one.
func (s *Sequencer) Previous() State {
	return s.mctx.Previous
}

// Done reports whether the mission ran to completion.
func (s *Sequencer) Done() bool {
	return s.mctx.State != StateRecovery && s.mctx.State.Terminal()
}

// Stopped reports whether the mission can make no further progress.
func (s *Sequencer) Stopped() bool {
	return s.mctx.State.Terminal()
}

// Marker returns the marker decision, which is unset until the marker was read.
func (s *Sequencer) Marker() MarkerDecision {
	return s.mctx.Marker
}

// Setup returns the match selection the mission runs with.
func (s *Sequencer) Setup() Setup {
	return s.mctx.Setup
}

// Ticks returns the number of ticks run.
func (s *Sequencer) Ticks() int64 {
	return s.mctx.Ticks
}

// transition moves to next. A motion still running is abandoned and its drive zeroed.
func (s *Sequencer) transition(next State, cmds *Commands) {
	c := s.mctx
	if stop := c.Drive.Cancel(); stop != nil {
		s.logger.Debugw("drive abandoned", "state", c.State.String())
		cmds.Drive = stop
	}
	if stop := c.Turn.Cancel(); stop != nil {
		s.logger.Debugw("turn abandoned", "state", c.State.String())
		cmds.Drive = stop
	}
	s.logger.Infow("state transition",
		"from", c.State.String(),
		"to", next.String(),
		"elapsed", c.Timer.Elapsed(),
		"tick", c.Ticks)
	c.Previous = c.State
	c.State = next
	c.Timer.Reset()
}

func (s *Sequencer) diagnostics(snap Snapshot, cmds Commands) telemetry.Diagnostics {
	c := s.mctx
	left, right := snap.LeftPower, snap.RightPower
	if cmds.Drive != nil {
		left, right = cmds.Drive.Left, cmds.Drive.Right
	}
	gripLeft, gripRight := snap.GripperLeft, snap.GripperRight
	if cmds.GripperLeft != nil {
		gripLeft = *cmds.GripperLeft
	}
	if cmds.GripperRight != nil {
		gripRight = *cmds.GripperRight
	}
	return telemetry.Diagnostics{
		Tick:           c.Ticks,
		State:          c.State.String(),
		StateID:        int(c.State),
		Previous:       c.Previous.String(),
		Alliance:       c.Setup.Alliance.String(),
		Column:         int(c.Setup.Column),
		MarkerPush:     c.Setup.MarkerPush,
		Marker:         c.Marker.Color.String(),
		Turn:           c.Marker.Turn.String(),
		Undo:           c.Marker.Undo.String(),
		Red:            snap.Color.Red,
		Blue:           snap.Color.Blue,
		ColorOK:        snap.Color.OK,
		Heading:        snap.Heading.Degrees,
		HeadingOK:      snap.Heading.OK,
		LeftPosition:   snap.Positions.Left,
		RightPosition:  snap.Positions.Right,
		PositionsOK:    snap.Positions.LeftOK && snap.Positions.RightOK,
		LeftPower:      left,
		RightPower:     right,
		GripperLeft:    gripLeft,
		GripperRight:   gripRight,
		StateElapsed:   c.Timer.Elapsed(),
		RecoveryReason: c.RecoveryReason,
		Done:           s.Done(),
	}
}
