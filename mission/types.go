// Package mission sequences an autonomous run: grip, displace the marker, drive to the target
// column, deposit and back away. The sequencer is polled once per tick and never touches
// hardware; it turns a sensor snapshot into actuator commands.
package mission

import (
	"strings"

	"github.com/pkg/errors"
)

// Alliance is the side the robot plays for.
type Alliance int

// The alliances. AllianceUnset is only valid before the mission starts.
const (
	AllianceUnset Alliance = iota
	AllianceRed
	AllianceBlue
)

func (a Alliance) String() string {
	switch a {
	case AllianceRed:
		return "red"
	case AllianceBlue:
		return "blue"
	case AllianceUnset:
		return "unset"
	default:
		return "unset"
	}
}

// ParseAlliance parses "red" or "blue" in any case. The empty string is AllianceUnset.
func ParseAlliance(s string) (Alliance, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "red":
		return AllianceRed, nil
	case "blue":
		return AllianceBlue, nil
	case "":
		return AllianceUnset, nil
	default:
		return AllianceUnset, errors.Errorf("unknown alliance %q", s)
	}
}

// MarkerColor is the colour of the marker read by the colour sensor.
type MarkerColor int

// The marker colours.
const (
	MarkerOther MarkerColor = iota
	MarkerRed
	MarkerBlue
)

func (m MarkerColor) String() string {
	switch m {
	case MarkerRed:
		return "red"
	case MarkerBlue:
		return "blue"
	case MarkerOther:
		return "other"
	default:
		return "other"
	}
}

// Matches reports whether the marker has the colour of the alliance.
func (m MarkerColor) Matches(a Alliance) bool {
	return (m == MarkerRed && a == AllianceRed) || (m == MarkerBlue && a == AllianceBlue)
}

// Column is the target column chosen by the vision cue.
type Column int

// The column indices.
const (
	ColumnNear Column = iota
	ColumnCenter
	ColumnFar
)

// Far reports whether the column needs the extra undo angle and drive.
func (c Column) Far() bool {
	return c == ColumnFar
}
