// Package control implements the closed-loop motion primitives used by the mission: a relative
// encoder drive and a proportional in-place gyro turn. Each primitive owns its own latch.
package control

import "github.com/samber/lo"

// Side is the direction of an in-place turn.
type Side int

// The turn sides.
const (
	SideOther Side = iota
	SideLeft
	SideRight
)

func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	case SideOther:
		return "other"
	default:
		return "other"
	}
}

// Opposite returns the complementary side. Other has no complement.
func (s Side) Opposite() Side {
	switch s {
	case SideLeft:
		return SideRight
	case SideRight:
		return SideLeft
	case SideOther:
		return SideOther
	default:
		return SideOther
	}
}

// DrivePowers is a power command for the left and right motor pairs.
type DrivePowers struct {
	Left  float64
	Right float64
}

// ZeroPowers stops both pairs.
var ZeroPowers = DrivePowers{}

// Clipped returns the command with both powers clipped to [-1, 1].
func (p DrivePowers) Clipped() DrivePowers {
	return DrivePowers{Left: ClipPower(p.Left), Right: ClipPower(p.Right)}
}

// ClipPower clips a power to [-1, 1].
func ClipPower(power float64) float64 {
	return lo.Clamp(power, -1, 1)
}
