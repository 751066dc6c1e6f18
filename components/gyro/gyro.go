// Package gyro defines the integrating heading sensor.
package gyro

import (
	"context"

	"github.com/pkg/errors"
)

// SubtypeName identifies the gyro component type in logs and errors.
const SubtypeName = "gyro"

// A Gyro reports the rotation of the robot about its vertical axis. The integrated heading behaves
// like an odometer for angle: it is not wrapped to a circle and keeps growing or shrinking from the
// last integrator reset.
type Gyro interface {
	// Name returns the configured name of the gyro.
	Name() string

	// IntegratedHeading returns the accumulated rotation in degrees since the last reset.
	IntegratedHeading(ctx context.Context) (float64, error)

	// Calibrate starts a calibration of the sensor bias. The robot must be still.
	Calibrate(ctx context.Context) error

	// IsCalibrating returns true while a calibration is in progress.
	IsCalibrating(ctx context.Context) (bool, error)

	// ResetIntegrator zeroes the integrated heading.
	ResetIntegrator(ctx context.Context) error
}

// ErrCalibrating is returned by a heading read while the sensor calibrates.
var ErrCalibrating = errors.New("gyro is calibrating")
