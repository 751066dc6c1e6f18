package mission

import (
	"math"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"go.viam.com/test"

	"github.com/techietitans/autonomy/config"
	"github.com/techietitans/autonomy/control"
	"github.com/techietitans/autonomy/logging"
	"github.com/techietitans/autonomy/telemetry"
)

const tickPeriod = 10 * time.Millisecond

// plant integrates commands into readings the way the drive train and gyro would.
type plant struct {
	clk *clock.Mock

	left, right float64
	heading     float64
	red, blue   int

	drive       control.DrivePowers
	lift        float64
	arm         float64
	gripL       float64
	gripR       float64
	light       bool
	resets      int
	noEncoders  bool
	noGyro      bool
	ticksPerPwr float64
	degsPerPwr  float64
}

func newPlant(red, blue int) *plant {
	return &plant{clk: clock.NewMock(), red: red, blue: blue, ticksPerPwr: 40, degsPerPwr: 10, light: true}
}

func (p *plant) snapshot() Snapshot {
	return Snapshot{
		Positions: control.Positions{
			Left:    int64(math.Round(p.left)),
			Right:   int64(math.Round(p.right)),
			LeftOK:  !p.noEncoders,
			RightOK: !p.noEncoders,
		},
		Heading:      control.Heading{Degrees: p.heading, OK: !p.noGyro},
		Color:        ColorReading{Red: p.red, Blue: p.blue, OK: true},
		LeftPower:    p.drive.Left,
		RightPower:   p.drive.Right,
		GripperLeft:  p.gripL,
		GripperRight: p.gripR,
	}
}

func (p *plant) apply(cmds Commands) {
	if cmds.Drive != nil {
		p.drive = *cmds.Drive
	}
	if cmds.Lift != nil {
		p.lift = *cmds.Lift
	}
	if cmds.MarkerArm != nil {
		p.arm = *cmds.MarkerArm
	}
	if cmds.GripperLeft != nil {
		p.gripL = *cmds.GripperLeft
	}
	if cmds.GripperRight != nil {
		p.gripR = *cmds.GripperRight
	}
	if cmds.Light != nil {
		p.light = *cmds.Light
	}
	if cmds.ResetHeading {
		p.heading = 0
		p.resets++
	}
}

func (p *plant) step() {
	p.left += p.drive.Left * p.ticksPerPwr
	p.right += p.drive.Right * p.ticksPerPwr
	p.heading += (p.drive.Left - p.drive.Right) * p.degsPerPwr
	p.clk.Add(tickPeriod)
}

type tickRecord struct {
	state State
	cmds  Commands
	diag  telemetry.Diagnostics
}

// run ticks until the sequencer stops or maxTicks pass and returns the state after each tick.
func run(s *Sequencer, p *plant, maxTicks int) []tickRecord {
	var records []tickRecord
	for i := 0; i < maxTicks && !s.Stopped(); i++ {
		cmds, diag := s.Tick(p.snapshot())
		p.apply(cmds)
		p.step()
		records = append(records, tickRecord{s.State(), cmds, diag})
	}
	return records
}

func visited(records []tickRecord) []State {
	var states []State
	for _, r := range records {
		if len(states) == 0 || states[len(states)-1] != r.state {
			states = append(states, r.state)
		}
	}
	return states
}

func newTestSequencer(t *testing.T, setup Setup, p *plant, cfg *config.Mission) *Sequencer {
	t.Helper()
	return NewSequencer(setup, cfg, p.clk, logging.NewTestLogger(t))
}

func TestMissionRunsToDone(t *testing.T) {
	for _, alliance := range []Alliance{AllianceRed, AllianceBlue} {
		for _, column := range []Column{ColumnNear, ColumnCenter, ColumnFar} {
			for _, push := range []bool{true, false} {
				name := alliance.String() + "/" + columnName(column)
				if !push {
					name += "/no-push"
				}
				t.Run(name, func(t *testing.T) {
					p := newPlant(10, 60)
					s := newTestSequencer(t, Setup{Alliance: alliance, Column: column, MarkerPush: push}, p, nil)
					records := run(s, p, 5000)

					test.That(t, s.Done(), test.ShouldBeTrue)
					test.That(t, s.State(), test.ShouldEqual, StateDone)

					states := visited(records)
					for i := 1; i < len(states); i++ {
						test.That(t, states[i], test.ShouldBeGreaterThan, states[i-1])
					}
					test.That(t, states, test.ShouldContain, StateDriveOff)
					test.That(t, states, test.ShouldContain, StateBackAway)
					if column.Far() {
						test.That(t, states, test.ShouldContain, StateUndoColumnAngle)
						test.That(t, states, test.ShouldContain, StateDriveFarColumn)
					} else {
						test.That(t, states, test.ShouldNotContain, StateUndoColumnAngle)
						test.That(t, states, test.ShouldNotContain, StateDriveFarColumn)
					}
					if push {
						test.That(t, states, test.ShouldContain, StatePushMarker)
						test.That(t, p.light, test.ShouldBeFalse)
					} else {
						test.That(t, states, test.ShouldNotContain, StateLowerArm)
						test.That(t, states, test.ShouldNotContain, StateUndoPush)
						test.That(t, s.Marker().Decided, test.ShouldBeFalse)
					}

					test.That(t, p.resets, test.ShouldEqual, 1)
					test.That(t, p.drive, test.ShouldResemble, control.ZeroPowers)
					test.That(t, p.lift, test.ShouldEqual, 0.0)
					cfg := config.Default()
					test.That(t, p.gripL, test.ShouldEqual, cfg.Servos.GripperLeftOpen)
					test.That(t, p.gripR, test.ShouldEqual, cfg.Servos.GripperRightOpen)

					// a finished mission issues nothing
					cmds, diag := s.Tick(p.snapshot())
					test.That(t, cmds.Empty(), test.ShouldBeTrue)
					test.That(t, diag.Done, test.ShouldBeTrue)
				})
			}
		}
	}
}

// columnName names a column for test output.
func columnName(c Column) string {
	switch c {
	case ColumnFar:
		return "far"
	case ColumnCenter:
		return "center"
	default:
		return "near"
	}
}

func TestEveryPowerClipped(t *testing.T) {
	p := newPlant(60, 10)
	s := newTestSequencer(t, Setup{Alliance: AllianceRed, Column: ColumnFar, MarkerPush: true}, p, nil)
	for _, r := range run(s, p, 5000) {
		if r.cmds.Drive != nil {
			test.That(t, math.Abs(r.cmds.Drive.Left), test.ShouldBeLessThanOrEqualTo, 1)
			test.That(t, math.Abs(r.cmds.Drive.Right), test.ShouldBeLessThanOrEqualTo, 1)
		}
		if r.cmds.Lift != nil {
			test.That(t, math.Abs(*r.cmds.Lift), test.ShouldBeLessThanOrEqualTo, 1)
		}
		test.That(t, s.mctx.Drive.Active() && s.mctx.Turn.Active(), test.ShouldBeFalse)
	}
}

func TestRedAllianceBlueMarker(t *testing.T) {
	p := newPlant(10, 60)
	s := newTestSequencer(t, Setup{Alliance: AllianceRed, Column: ColumnNear, MarkerPush: true}, p, nil)

	var pushTicks []tickRecord
	for i := 0; i < 2000 && s.State() <= StatePushMarker; i++ {
		before := s.State()
		cmds, diag := s.Tick(p.snapshot())
		p.apply(cmds)
		p.step()
		if before == StatePushMarker {
			pushTicks = append(pushTicks, tickRecord{s.State(), cmds, diag})
		}
	}

	marker := s.Marker()
	test.That(t, marker.Color, test.ShouldEqual, MarkerBlue)
	test.That(t, marker.Turn, test.ShouldEqual, control.SideRight)
	test.That(t, marker.Undo, test.ShouldEqual, control.SideLeft)

	test.That(t, len(pushTicks), test.ShouldBeGreaterThan, 1)
	first := pushTicks[0]
	test.That(t, first.cmds.Drive.Left, test.ShouldBeLessThan, 0)
	test.That(t, first.cmds.Drive.Right, test.ShouldBeGreaterThan, 0)
	test.That(t, first.diag.Turn, test.ShouldEqual, "right")

	last := pushTicks[len(pushTicks)-1]
	test.That(t, last.state, test.ShouldEqual, StateRaiseArm)
	test.That(t, *last.cmds.Drive, test.ShouldResemble, control.ZeroPowers)
	test.That(t, p.drive, test.ShouldResemble, control.ZeroPowers)
	test.That(t, math.Abs(p.heading), test.ShouldBeGreaterThanOrEqualTo, markerTurnAngle-control.TurnTolerance)
}

func TestNearColumnDrive(t *testing.T) {
	p := newPlant(60, 10)
	s := newTestSequencer(t, Setup{Alliance: AllianceBlue, Column: ColumnNear, MarkerPush: false}, p, nil)

	for i := 0; i < 5000 && s.State() != StateDriveToColumn; i++ {
		cmds, _ := s.Tick(p.snapshot())
		p.apply(cmds)
		p.step()
	}
	test.That(t, s.State(), test.ShouldEqual, StateDriveToColumn)
	test.That(t, s.mctx.Target, test.ShouldResemble, ColumnTarget{TurnDegrees: 17, DriveTicks: 450})

	startLeft := p.left
	cmds, _ := s.Tick(p.snapshot())
	test.That(t, *cmds.Drive, test.ShouldResemble, control.DrivePowers{Left: -0.3, Right: -0.3})
	p.apply(cmds)
	p.step()

	for s.State() == StateDriveToColumn {
		travelled := math.Abs(p.left - startLeft)
		cmds, _ := s.Tick(p.snapshot())
		if s.State() == StateDriveToColumn {
			test.That(t, travelled, test.ShouldBeLessThan, 450)
			test.That(t, cmds.Drive, test.ShouldBeNil)
		} else {
			test.That(t, travelled, test.ShouldBeGreaterThanOrEqualTo, 450)
			test.That(t, *cmds.Drive, test.ShouldResemble, control.ZeroPowers)
		}
		p.apply(cmds)
		p.step()
	}
	test.That(t, s.State(), test.ShouldEqual, StateLowerLift)
}

func TestTimeoutAdvances(t *testing.T) {
	p := newPlant(60, 10)
	cfg := config.Default()
	s := newTestSequencer(t, Setup{Alliance: AllianceRed, Column: ColumnCenter}, p, cfg)

	p.noEncoders = true
	var exit Commands
	var driveOffTicks int
	for i := 0; i < 2000 && s.State() <= StateDriveOff; i++ {
		before := s.State()
		cmds, _ := s.Tick(p.snapshot())
		p.apply(cmds)
		p.step()
		if before == StateDriveOff {
			driveOffTicks++
			exit = cmds
		}
	}
	test.That(t, s.State(), test.ShouldEqual, StateTurnToColumn)
	test.That(t, time.Duration(driveOffTicks)*tickPeriod, test.ShouldBeGreaterThanOrEqualTo, cfg.Timeouts.DriveOff)
	// the abandoned drive is stopped on the way out
	test.That(t, exit.Drive, test.ShouldNotBeNil)
	test.That(t, *exit.Drive, test.ShouldResemble, control.ZeroPowers)
	test.That(t, s.mctx.Drive.Active(), test.ShouldBeFalse)
}

func TestGyroLossAdvances(t *testing.T) {
	p := newPlant(60, 10)
	p.noGyro = true
	s := newTestSequencer(t, Setup{Alliance: AllianceRed, Column: ColumnNear, MarkerPush: true}, p, nil)
	records := run(s, p, 3000)

	states := visited(records)
	test.That(t, states, test.ShouldContain, StateRaiseArm)
	test.That(t, states, test.ShouldContain, StateDriveOff)
	for _, r := range records {
		if r.diag.StateID == int(StatePushMarker) {
			test.That(t, r.diag.HeadingOK, test.ShouldBeFalse)
		}
	}
}

func TestRecoverOnTimeout(t *testing.T) {
	p := newPlant(60, 10)
	cfg := config.Default()
	cfg.RecoverOnTimeout = true
	logger, logs := logging.NewObservedTestLogger(t)
	s := NewSequencer(Setup{Alliance: AllianceBlue, Column: ColumnFar}, cfg, p.clk, logger)

	p.noEncoders = true
	records := run(s, p, 2000)
	test.That(t, s.State(), test.ShouldEqual, StateRecovery)
	test.That(t, s.Previous(), test.ShouldEqual, StateDriveOff)
	test.That(t, s.Done(), test.ShouldBeFalse)
	test.That(t, s.Stopped(), test.ShouldBeTrue)
	last := records[len(records)-1]
	test.That(t, last.diag.RecoveryReason, test.ShouldContainSubstring, "timed out")
	test.That(t, last.diag.Previous, test.ShouldEqual, "DriveOff")
	test.That(t, logs.FilterMessage("motion timed out").Len(), test.ShouldEqual, 1)

	// recovery is a sink that keeps the drive stopped
	p.noEncoders = false
	for i := 0; i < 20; i++ {
		cmds, _ := s.Tick(p.snapshot())
		test.That(t, s.State(), test.ShouldEqual, StateRecovery)
		test.That(t, *cmds.Drive, test.ShouldResemble, control.ZeroPowers)
		p.apply(cmds)
		p.step()
	}
	test.That(t, s.EnterRecovery("again").Empty(), test.ShouldBeTrue)
}

func TestEnterRecovery(t *testing.T) {
	p := newPlant(60, 10)
	s := newTestSequencer(t, Setup{Alliance: AllianceRed, Column: ColumnCenter}, p, nil)

	for i := 0; i < 5000 && s.State() != StateDriveOff; i++ {
		cmds, _ := s.Tick(p.snapshot())
		p.apply(cmds)
		p.step()
	}
	cmds, _ := s.Tick(p.snapshot())
	p.apply(cmds)
	test.That(t, s.mctx.Drive.Active(), test.ShouldBeTrue)

	cmds = s.EnterRecovery("operator abort")
	test.That(t, *cmds.Drive, test.ShouldResemble, control.ZeroPowers)
	test.That(t, *cmds.Lift, test.ShouldEqual, 0.0)
	test.That(t, s.mctx.Drive.Active(), test.ShouldBeFalse)
	test.That(t, s.State(), test.ShouldEqual, StateRecovery)
	test.That(t, s.Previous(), test.ShouldEqual, StateDriveOff)

	_, diag := s.Tick(p.snapshot())
	test.That(t, diag.RecoveryReason, test.ShouldEqual, "operator abort")
	test.That(t, diag.State, test.ShouldEqual, "Recovery")

	t.Run("after the mission is done", func(t *testing.T) {
		p := newPlant(60, 10)
		s := newTestSequencer(t, Setup{Alliance: AllianceBlue, Column: ColumnNear}, p, nil)
		run(s, p, 5000)
		test.That(t, s.Done(), test.ShouldBeTrue)

		test.That(t, s.EnterRecovery("late abort").Empty(), test.ShouldBeTrue)
		test.That(t, s.State(), test.ShouldEqual, StateDone)
		test.That(t, s.Done(), test.ShouldBeTrue)
		_, diag := s.Tick(p.snapshot())
		test.That(t, diag.RecoveryReason, test.ShouldBeEmpty)
	})
}

func TestUnsetAlliance(t *testing.T) {
	for _, marker := range []struct {
		name      string
		red, blue int
	}{
		{"red marker", 60, 10},
		{"blue marker", 10, 60},
	} {
		t.Run(marker.name, func(t *testing.T) {
			p := newPlant(marker.red, marker.blue)
			logger, logs := logging.NewObservedTestLogger(t)
			s := NewSequencer(Setup{MarkerPush: true}, nil, p.clk, logger)
			test.That(t, s.Setup().Alliance, test.ShouldEqual, AllianceUnset)
			test.That(t, logs.FilterMessage("no alliance selected, marker will be turned right").Len(), test.ShouldEqual, 1)

			records := run(s, p, 5000)
			test.That(t, s.Done(), test.ShouldBeTrue)
			// no colour matches an unset alliance
			test.That(t, s.Marker().Turn, test.ShouldEqual, control.SideRight)
			for _, r := range records {
				if r.state == StateDriveOff && r.cmds.Drive != nil && *r.cmds.Drive != control.ZeroPowers {
					test.That(t, r.cmds.Drive.Left, test.ShouldBeLessThan, 0)
					break
				}
			}
		})
	}
}

func TestUnavailableColorSensor(t *testing.T) {
	p := newPlant(0, 0)
	logger, logs := logging.NewObservedTestLogger(t)
	s := NewSequencer(Setup{Alliance: AllianceRed, MarkerPush: true}, nil, p.clk, logger)
	for i := 0; i < 5000 && s.State() <= StateDecideMarker; i++ {
		snap := p.snapshot()
		snap.Color = ColorReading{}
		cmds, _ := s.Tick(snap)
		p.apply(cmds)
		p.step()
	}
	test.That(t, s.Marker().Color, test.ShouldEqual, MarkerOther)
	test.That(t, s.Marker().Turn, test.ShouldEqual, control.SideRight)
	test.That(t, logs.FilterMessage("color sensor unavailable, marker colour unknown").Len(), test.ShouldEqual, 1)
}

func TestStateTimings(t *testing.T) {
	p := newPlant(60, 10)
	s := newTestSequencer(t, Setup{Alliance: AllianceRed, MarkerPush: true}, p, nil)

	ticksIn := map[State]int{}
	for _, r := range run(s, p, 5000) {
		ticksIn[State(r.diag.StateID)]++
	}
	// the lift runs for just over 500ms and the arm waits just over 3s
	test.That(t, ticksIn[StateRaiseLift], test.ShouldEqual, 51)
	test.That(t, ticksIn[StateLowerArm], test.ShouldEqual, 301)
	test.That(t, ticksIn[StateRaiseArm], test.ShouldEqual, 201)
}
