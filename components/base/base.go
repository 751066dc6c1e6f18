// Package base implements the four wheel drive train of the robot: a left pair and a right pair of
// independently powered motors.
package base

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/techietitans/autonomy/components/motor"
	"github.com/techietitans/autonomy/logging"
)

// FourWheel drives a left pair and a right pair of motors. The front motor of each pair carries
// the encoder used for odometry.
type FourWheel struct {
	name   string
	logger logging.Logger

	LeftFront  motor.Motor
	LeftBack   motor.Motor
	RightFront motor.Motor
	RightBack  motor.Motor

	left  []motor.Motor
	right []motor.Motor
	all   []motor.Motor
}

// NewFourWheel returns a drive train over the four motors. Every motor must be present.
func NewFourWheel(name string, leftFront, leftBack, rightFront, rightBack motor.Motor, logger logging.Logger) (*FourWheel, error) {
	for label, m := range map[string]motor.Motor{
		"left_front":  leftFront,
		"left_back":   leftBack,
		"right_front": rightFront,
		"right_back":  rightBack,
	} {
		if m == nil {
			return nil, errors.Errorf("base %s is missing its %s motor", name, label)
		}
	}
	return &FourWheel{
		name:       name,
		logger:     logger,
		LeftFront:  leftFront,
		LeftBack:   leftBack,
		RightFront: rightFront,
		RightBack:  rightBack,
		left:       []motor.Motor{leftFront, leftBack},
		right:      []motor.Motor{rightFront, rightBack},
		all:        []motor.Motor{leftFront, leftBack, rightFront, rightBack},
	}, nil
}

// Name returns the name of the base.
func (fw *FourWheel) Name() string {
	return fw.name
}

// SetPowers sets the left pair to leftPower and the right pair to rightPower. Both are clipped to
// [-1, 1]. A motor that fails does not keep the others from being set.
func (fw *FourWheel) SetPowers(ctx context.Context, leftPower, rightPower float64) error {
	leftPower = motor.ClipPower(leftPower)
	rightPower = motor.ClipPower(rightPower)
	fw.logger.CDebugf(ctx, "base %s powers left %.3f right %.3f", fw.name, leftPower, rightPower)

	var err error
	for _, m := range fw.left {
		err = multierr.Combine(err, m.SetPower(ctx, leftPower))
	}
	for _, m := range fw.right {
		err = multierr.Combine(err, m.SetPower(ctx, rightPower))
	}
	return err
}

// Stop commands zero power to all four motors.
func (fw *FourWheel) Stop(ctx context.Context) error {
	var err error
	for _, m := range fw.all {
		err = multierr.Combine(err, m.Stop(ctx))
	}
	return err
}

// Positions returns the encoder counts of the left and right front motors. A failed read is
// reported per side through the ok flags.
func (fw *FourWheel) Positions(ctx context.Context) (left int64, leftOK bool, right int64, rightOK bool, err error) {
	left, leftErr := fw.LeftFront.Position(ctx)
	right, rightErr := fw.RightFront.Position(ctx)
	return left, leftErr == nil, right, rightErr == nil, multierr.Combine(
		errors.Wrapf(leftErr, "reading %s position", fw.LeftFront.Name()),
		errors.Wrapf(rightErr, "reading %s position", fw.RightFront.Name()),
	)
}

// Powers returns the power last commanded to the left and right front motors.
func (fw *FourWheel) Powers(ctx context.Context) (float64, float64, error) {
	_, left, leftErr := fw.LeftFront.IsPowered(ctx)
	_, right, rightErr := fw.RightFront.IsPowered(ctx)
	return left, right, multierr.Combine(leftErr, rightErr)
}

// IsMoving returns true if any of the motors is powered.
func (fw *FourWheel) IsMoving(ctx context.Context) (bool, error) {
	for _, m := range fw.all {
		on, _, err := m.IsPowered(ctx)
		if err != nil {
			return false, err
		}
		if on {
			return true, nil
		}
	}
	return false, nil
}
