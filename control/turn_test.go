package control

import (
	"math"
	"testing"

	"go.viam.com/test"

	"github.com/techietitans/autonomy/logging"
)

func TestTurnToHeading(t *testing.T) {
	g := NewGyroTurn(logging.NewTestLogger(t))

	cmd, done := g.TurnToHeading(Heading{Degrees: 5, OK: true}, 0.2, SideLeft, 10)
	test.That(t, done, test.ShouldBeFalse)
	test.That(t, g.Latch.Baseline, test.ShouldEqual, 5)
	// error is 10, correction saturates at 1
	test.That(t, *cmd, test.ShouldResemble, DrivePowers{Left: 0.2, Right: -0.2})

	cmd, done = g.TurnToHeading(Heading{Degrees: 10, OK: true}, 0.2, SideLeft, 10)
	test.That(t, done, test.ShouldBeFalse)
	test.That(t, cmd.Left, test.ShouldAlmostEqual, 0.1)
	test.That(t, cmd.Right, test.ShouldAlmostEqual, -0.1)

	cmd, done = g.TurnToHeading(Heading{Degrees: 13, OK: true}, 0.2, SideLeft, 10)
	test.That(t, done, test.ShouldBeTrue)
	test.That(t, *cmd, test.ShouldResemble, ZeroPowers)
	test.That(t, g.Active(), test.ShouldBeFalse)
}

func TestTurnRightMirrors(t *testing.T) {
	g := NewGyroTurn(nil)
	cmd, done := g.TurnToHeading(Heading{Degrees: 0, OK: true}, 0.2, SideRight, 60)
	test.That(t, done, test.ShouldBeFalse)
	test.That(t, *cmd, test.ShouldResemble, DrivePowers{Left: -0.2, Right: 0.2})

	// progress counts in either direction of heading change
	_, done = g.TurnToHeading(Heading{Degrees: -58.5, OK: true}, 0.2, SideRight, 60)
	test.That(t, done, test.ShouldBeTrue)
}

func TestTurnAppliedPowerBounded(t *testing.T) {
	for _, base := range []float64{-1, -0.2, 0, 0.2, 0.7, 1} {
		for turnErr := -30.0; turnErr <= 90; turnErr += 0.5 {
			applied := AppliedTurnPower(base, turnErr)
			test.That(t, math.Abs(applied), test.ShouldBeLessThanOrEqualTo, math.Abs(base))
		}
	}

	g := NewGyroTurn(nil)
	for heading := 0.0; g.Active() || heading == 0; heading += 0.7 {
		cmd, done := g.TurnToHeading(Heading{Degrees: heading, OK: true}, 0.2, SideLeft, 37)
		test.That(t, math.Abs(cmd.Left), test.ShouldBeLessThanOrEqualTo, 0.2)
		test.That(t, math.Abs(cmd.Right), test.ShouldBeLessThanOrEqualTo, 0.2)
		if done {
			break
		}
	}
}

func TestTurnUnavailableHeading(t *testing.T) {
	g := NewGyroTurn(nil)
	cmd, done := g.TurnToHeading(Heading{}, 0.2, SideLeft, 10)
	test.That(t, done, test.ShouldBeFalse)
	test.That(t, cmd, test.ShouldBeNil)
	test.That(t, g.Active(), test.ShouldBeFalse)

	g.TurnToHeading(Heading{Degrees: 3, OK: true}, 0.2, SideLeft, 10)
	cmd, done = g.TurnToHeading(Heading{Degrees: 300}, 0.2, SideLeft, 10)
	test.That(t, done, test.ShouldBeFalse)
	test.That(t, cmd, test.ShouldBeNil)
	test.That(t, g.Latch.Baseline, test.ShouldEqual, 3)
}

func TestTurnOtherSide(t *testing.T) {
	g := NewGyroTurn(nil)
	cmd, done := g.TurnToHeading(Heading{OK: true}, 0.2, SideOther, 10)
	test.That(t, done, test.ShouldBeFalse)
	test.That(t, cmd, test.ShouldBeNil)
	test.That(t, *g.Cancel(), test.ShouldResemble, ZeroPowers)
}
