package mission

import "fmt"

// State is the step of the mission currently executing.
type State int

// The mission states in execution order. StateRecovery is a sink entered on failure. Any value
// without a step, StateDone included, means the mission is complete.
const (
	StateResetHeading State = iota
	StateGrip
	StateRaiseLift
	StateLowerArm
	StateDecideMarker
	StatePushMarker
	StateRaiseArm
	StateUndoPush
	StateDriveOff
	StateTurnToColumn
	StateDriveToColumn
	StateUndoColumnAngle
	StateDriveFarColumn
	StateLowerLift
	StateRelease
	StateSettle
	StateBackAway
	StateDone

	StateRecovery State = 99
)

var stateNames = map[State]string{
	StateResetHeading:    "ResetHeading",
	StateGrip:            "Grip",
	StateRaiseLift:       "RaiseLift",
	StateLowerArm:        "LowerArm",
	StateDecideMarker:    "DecideMarker",
	StatePushMarker:      "PushMarker",
	StateRaiseArm:        "RaiseArm",
	StateUndoPush:        "UndoPush",
	StateDriveOff:        "DriveOff",
	StateTurnToColumn:    "TurnToColumn",
	StateDriveToColumn:   "DriveToColumn",
	StateUndoColumnAngle: "UndoColumnAngle",
	StateDriveFarColumn:  "DriveFarColumn",
	StateLowerLift:       "LowerLift",
	StateRelease:         "Release",
	StateSettle:          "Settle",
	StateBackAway:        "BackAway",
	StateDone:            "Done",
	StateRecovery:        "Recovery",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Done(%d)", int(s))
}

// Terminal reports whether no further transition can happen from the state.
func (s State) Terminal() bool {
	if s == StateRecovery {
		return true
	}
	_, ok := steps[s]
	return !ok
}
