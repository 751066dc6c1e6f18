package opmode

import (
	"context"

	"github.com/techietitans/autonomy/mission"
)

// Gamepad is the state of the driver's controller sampled during init.
type Gamepad struct {
	A           bool
	B           bool
	X           bool
	Y           bool
	LeftBumper  bool
	RightBumper bool
}

// VisionCue is the target column marker recognised by the camera.
type VisionCue int

// The vision cues.
const (
	CueUnknown VisionCue = iota
	CueLeft
	CueCenter
	CueRight
)

func (c VisionCue) String() string {
	switch c {
	case CueLeft:
		return "left"
	case CueCenter:
		return "center"
	case CueRight:
		return "right"
	case CueUnknown:
		return "unknown"
	default:
		return "unknown"
	}
}

// Column returns the target column for the cue. Anything but right or center is the near column.
func (c VisionCue) Column() mission.Column {
	switch c {
	case CueRight:
		return mission.ColumnFar
	case CueCenter:
		return mission.ColumnCenter
	case CueLeft, CueUnknown:
		return mission.ColumnNear
	default:
		return mission.ColumnNear
	}
}

// A VisionSource reports the column cue currently in view.
type VisionSource interface {
	Cue(ctx context.Context) (VisionCue, error)
}

// StaticVision always reports the same cue.
type StaticVision VisionCue

// Cue returns the fixed cue.
func (v StaticVision) Cue(ctx context.Context) (VisionCue, error) {
	return VisionCue(v), nil
}

// Selection is what the drive team chose before the start.
type Selection struct {
	Alliance   mission.Alliance
	Column     mission.Column
	MarkerPush bool
	LogEnabled bool
}

// Apply updates the selection from the gamepad: B picks red, X picks blue, the left bumper skips
// the marker push, the right bumper restores it and Y turns on the run log.
func (s *Selection) Apply(pad Gamepad) {
	if pad.B {
		s.Alliance = mission.AllianceRed
	} else if pad.X {
		s.Alliance = mission.AllianceBlue
	}
	if pad.LeftBumper {
		s.MarkerPush = false
	}
	if pad.RightBumper {
		s.MarkerPush = true
	}
	if pad.Y {
		s.LogEnabled = true
	}
}

// Setup returns the mission setup for the selection.
func (s Selection) Setup() mission.Setup {
	return mission.Setup{
		Alliance:   s.Alliance,
		Column:     s.Column,
		MarkerPush: s.MarkerPush,
	}
}
