package mission

import "github.com/techietitans/autonomy/control"

// ColorReading is one sample of the marker colour sensor.
type ColorReading struct {
	Red  int
	Blue int
	OK   bool
}

// MarkerDecision is the cached outcome of reading the marker: its colour, the side to turn to
// knock it off and the side that undoes that turn.
type MarkerDecision struct {
	Color   MarkerColor
	Turn    control.Side
	Undo    control.Side
	Decided bool
}

// DecideMarker classifies the reading and chooses the turn. A brighter red channel is a red
// marker, anything else blue. Without a reading the marker is MarkerOther. The robot turns left
// when the marker has its own alliance colour and right otherwise.
func DecideMarker(reading ColorReading, alliance Alliance) MarkerDecision {
	color := MarkerOther
	if reading.OK {
		if reading.Red > reading.Blue {
			color = MarkerRed
		} else {
			color = MarkerBlue
		}
	}
	turn := control.SideRight
	if color.Matches(alliance) {
		turn = control.SideLeft
	}
	return MarkerDecision{
		Color:   color,
		Turn:    turn,
		Undo:    turn.Opposite(),
		Decided: true,
	}
}
