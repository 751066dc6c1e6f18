// Package robot bundles the hardware an autonomous mission reads and commands.
package robot

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/techietitans/autonomy/components/base"
	"github.com/techietitans/autonomy/components/colorsensor"
	"github.com/techietitans/autonomy/components/gyro"
	"github.com/techietitans/autonomy/components/motor"
	"github.com/techietitans/autonomy/components/servo"
)

// A Robot is the set of components used by the mission.
type Robot struct {
	Base         *base.FourWheel
	Lift         motor.Motor
	GripperLeft  servo.Servo
	GripperRight servo.Servo
	MarkerArm    servo.Servo
	Gyro         gyro.Gyro
	ColorSensor  colorsensor.ColorSensor
}

// Validate ensures every component is present.
func (r *Robot) Validate() error {
	var err error
	check := func(present bool, name string) {
		if !present {
			err = multierr.Append(err, errors.Errorf("robot is missing its %s", name))
		}
	}
	check(r.Base != nil, "base")
	check(r.Lift != nil, "lift motor")
	check(r.GripperLeft != nil, "left gripper servo")
	check(r.GripperRight != nil, "right gripper servo")
	check(r.MarkerArm != nil, "marker arm servo")
	check(r.Gyro != nil, "gyro")
	check(r.ColorSensor != nil, "color sensor")
	return err
}

// Stop cuts power to every motor and turns off the color sensor light. It tries every actuator
// even if some fail.
func (r *Robot) Stop(ctx context.Context) error {
	return multierr.Combine(
		errors.Wrap(r.Base.Stop(ctx), "stopping base"),
		errors.Wrap(r.Lift.Stop(ctx), "stopping lift"),
		errors.Wrap(r.ColorSensor.EnableLight(ctx, false), "turning off color sensor light"),
	)
}
