// Package fake builds a simulated robot whose encoders and gyro follow the commanded powers.
package fake

import (
	"github.com/techietitans/autonomy/components/base"
	fakecolor "github.com/techietitans/autonomy/components/colorsensor/fake"
	fakegyro "github.com/techietitans/autonomy/components/gyro/fake"
	fakemotor "github.com/techietitans/autonomy/components/motor/fake"
	fakeservo "github.com/techietitans/autonomy/components/servo/fake"
	"github.com/techietitans/autonomy/config"
	"github.com/techietitans/autonomy/logging"
	"github.com/techietitans/autonomy/robot"
)

// Sim is a simulated robot. Every Step advances the encoders by the powered distance and turns
// the gyro by the difference between the left and right pairs.
type Sim struct {
	Robot *robot.Robot

	LeftFront    *fakemotor.Motor
	LeftBack     *fakemotor.Motor
	RightFront   *fakemotor.Motor
	RightBack    *fakemotor.Motor
	Lift         *fakemotor.Motor
	GripperLeft  *fakeservo.Servo
	GripperRight *fakeservo.Servo
	MarkerArm    *fakeservo.Servo
	Gyro         *fakegyro.Gyro
	Color        *fakecolor.ColorSensor

	DegreesPerStep float64
}

// NewRobot returns a simulated robot at rest with the gripper open and the marker arm up.
func NewRobot(cfg config.Sim, logger logging.Logger) (*Sim, error) {
	sim := &Sim{
		LeftFront:      fakemotor.NewMotor("left_front", cfg.TicksPerStep, logger),
		LeftBack:       fakemotor.NewMotor("left_back", cfg.TicksPerStep, logger),
		RightFront:     fakemotor.NewMotor("right_front", cfg.TicksPerStep, logger),
		RightBack:      fakemotor.NewMotor("right_back", cfg.TicksPerStep, logger),
		Lift:           fakemotor.NewMotor("lift", cfg.TicksPerStep, logger),
		GripperLeft:    fakeservo.NewServo("gripper_left", config.Default().Servos.GripperLeftOpen),
		GripperRight:   fakeservo.NewServo("gripper_right", config.Default().Servos.GripperRightOpen),
		MarkerArm:      fakeservo.NewServo("marker_arm", 0),
		Gyro:           fakegyro.NewGyro("gyro"),
		Color:          fakecolor.NewColorSensor("marker_color", cfg.Red, cfg.Blue),
		DegreesPerStep: cfg.DegreesPerStep,
	}
	drive, err := base.NewFourWheel("drive", sim.LeftFront, sim.LeftBack, sim.RightFront, sim.RightBack, logger)
	if err != nil {
		return nil, err
	}
	sim.Robot = &robot.Robot{
		Base:         drive,
		Lift:         sim.Lift,
		GripperLeft:  sim.GripperLeft,
		GripperRight: sim.GripperRight,
		MarkerArm:    sim.MarkerArm,
		Gyro:         sim.Gyro,
		ColorSensor:  sim.Color,
	}
	return sim, nil
}

// Step advances the simulation by one loop period.
func (s *Sim) Step() {
	for _, m := range []*fakemotor.Motor{s.LeftFront, s.LeftBack, s.RightFront, s.RightBack, s.Lift} {
		m.Step()
	}
	left := (s.LeftFront.PowerPct() + s.LeftBack.PowerPct()) / 2
	right := (s.RightFront.PowerPct() + s.RightBack.PowerPct()) / 2
	s.Gyro.Rotate((left - right) / 2 * s.DegreesPerStep)
}
