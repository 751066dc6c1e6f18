// Package servo defines the positional servos driving the gripper and the marker arm.
package servo

import (
	"context"

	"github.com/pkg/errors"
)

// SubtypeName identifies the servo component type in logs and errors.
const SubtypeName = "servo"

// A Servo represents a physical servo commanded by a normalized position.
type Servo interface {
	// Name returns the configured name of the servo.
	Name() string

	// SetPosition moves the servo to a position in [0, 1].
	SetPosition(ctx context.Context, position float64) error

	// Position returns the last commanded position in [0, 1].
	Position(ctx context.Context) (float64, error)
}

// CheckPosition returns an error when the position is outside of [0, 1].
func CheckPosition(servoName string, position float64) error {
	if position < 0 || position > 1 {
		return errors.Errorf("servo %s position %v is outside of [0, 1]", servoName, position)
	}
	return nil
}
