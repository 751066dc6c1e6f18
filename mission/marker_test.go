package mission

import (
	"testing"

	"go.viam.com/test"

	"github.com/techietitans/autonomy/control"
)

func TestDecideMarker(t *testing.T) {
	for _, tc := range []struct {
		name     string
		reading  ColorReading
		alliance Alliance
		color    MarkerColor
		turn     control.Side
	}{
		{"red marker red alliance", ColorReading{Red: 50, Blue: 10, OK: true}, AllianceRed, MarkerRed, control.SideLeft},
		{"blue marker red alliance", ColorReading{Red: 10, Blue: 50, OK: true}, AllianceRed, MarkerBlue, control.SideRight},
		{"blue marker blue alliance", ColorReading{Red: 10, Blue: 50, OK: true}, AllianceBlue, MarkerBlue, control.SideLeft},
		{"red marker blue alliance", ColorReading{Red: 50, Blue: 10, OK: true}, AllianceBlue, MarkerRed, control.SideRight},
		{"tie reads blue", ColorReading{Red: 20, Blue: 20, OK: true}, AllianceBlue, MarkerBlue, control.SideLeft},
		{"no reading", ColorReading{}, AllianceRed, MarkerOther, control.SideRight},
	} {
		t.Run(tc.name, func(t *testing.T) {
			d := DecideMarker(tc.reading, tc.alliance)
			test.That(t, d.Decided, test.ShouldBeTrue)
			test.That(t, d.Color, test.ShouldEqual, tc.color)
			test.That(t, d.Turn, test.ShouldEqual, tc.turn)
			test.That(t, d.Undo, test.ShouldEqual, tc.turn.Opposite())
			test.That(t, d.Undo, test.ShouldNotEqual, d.Turn)
			test.That(t, d.Color.Matches(tc.alliance), test.ShouldEqual, d.Turn == control.SideLeft)
		})
	}
}

func TestLookupColumn(t *testing.T) {
	test.That(t, LookupColumn(2), test.ShouldResemble, ColumnTarget{TurnDegrees: 60, DriveTicks: 750})
	test.That(t, LookupColumn(1), test.ShouldResemble, ColumnTarget{TurnDegrees: 37, DriveTicks: 650})
	test.That(t, LookupColumn(0), test.ShouldResemble, ColumnTarget{TurnDegrees: 17, DriveTicks: 450})
	test.That(t, LookupColumn(-1), test.ShouldResemble, ColumnTarget{TurnDegrees: 17, DriveTicks: 450})
	test.That(t, LookupColumn(9), test.ShouldResemble, ColumnTarget{TurnDegrees: 17, DriveTicks: 450})
	test.That(t, Column(2).Far(), test.ShouldBeTrue)
	test.That(t, Column(1).Far(), test.ShouldBeFalse)
}

func TestParseAlliance(t *testing.T) {
	a, err := ParseAlliance("RED")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, a, test.ShouldEqual, AllianceRed)
	a, err = ParseAlliance(" blue")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, a, test.ShouldEqual, AllianceBlue)
	a, err = ParseAlliance("")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, a, test.ShouldEqual, AllianceUnset)
	_, err = ParseAlliance("green")
	test.That(t, err, test.ShouldNotBeNil)
}

func TestStateNames(t *testing.T) {
	test.That(t, StateDriveOff.String(), test.ShouldEqual, "DriveOff")
	test.That(t, StateRecovery.String(), test.ShouldEqual, "Recovery")
	test.That(t, State(42).String(), test.ShouldEqual, "Done(42)")
	test.That(t, State(42).Terminal(), test.ShouldBeTrue)
	test.That(t, StateDone.Terminal(), test.ShouldBeTrue)
	test.That(t, StateRecovery.Terminal(), test.ShouldBeTrue)
	test.That(t, StateBackAway.Terminal(), test.ShouldBeFalse)
}
