package mission

import (
	"github.com/techietitans/autonomy/control"
)

// Snapshot is everything the sequencer reads from the robot in one tick.
type Snapshot struct {
	Positions control.Positions
	Heading   control.Heading
	Color     ColorReading

	// last applied outputs, reported in diagnostics only
	LeftPower    float64
	RightPower   float64
	GripperLeft  float64
	GripperRight float64
}

// Commands are the actuator outputs of one tick. A nil field leaves that actuator as it is.
type Commands struct {
	Drive        *control.DrivePowers
	Lift         *float64
	GripperLeft  *float64
	GripperRight *float64
	MarkerArm    *float64
	Light        *bool
	ResetHeading bool
}

// Empty reports whether the commands change nothing.
func (c Commands) Empty() bool {
	return c.Drive == nil && c.Lift == nil && c.GripperLeft == nil && c.GripperRight == nil &&
		c.MarkerArm == nil && c.Light == nil && !c.ResetHeading
}
