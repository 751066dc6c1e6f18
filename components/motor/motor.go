// Package motor defines the drive and lift actuators of the robot.
package motor

import (
	"context"

	"github.com/samber/lo"
)

// SubtypeName identifies the motor component type in logs and errors.
const SubtypeName = "motor"

// A Motor represents a DC motor with an optional quadrature encoder.
//
// SetPower example:
//
//	// Set the motor power to 40% forwards.
//	myMotor.SetPower(ctx, 0.4)
//
// Position example:
//
//	// Read the raw encoder count.
//	ticks, err := myMotor.Position(ctx)
type Motor interface {
	// Name returns the configured name of the motor.
	Name() string

	// SetPower sets the percentage of power the motor should employ between -1 and 1.
	// Negative power corresponds to a backward direction of rotation.
	SetPower(ctx context.Context, powerPct float64) error

	// Position reports the encoder count of the motor in ticks. The count is relative to the
	// last hardware reset and keeps growing or shrinking with rotation.
	Position(ctx context.Context) (int64, error)

	// IsPowered returns whether or not the motor is currently on, and the power it was last set to.
	IsPowered(ctx context.Context) (bool, float64, error)

	// Stop cuts power to the motor.
	Stop(ctx context.Context) error
}

// ClipPower clips a power command to [-1, 1].
func ClipPower(powerPct float64) float64 {
	return lo.Clamp(powerPct, -1, 1)
}
