// Package config defines the configuration of an autonomous mission: match selections made
// before the start, timing ceilings, servo positions and the run log.
package config

import (
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Mission is the configuration of a single autonomous run.
type Mission struct {
	// Alliance is "red" or "blue". Empty means it is chosen by the operator during init.
	Alliance string `json:"alliance"`
	// Column is the target column used when no vision cue is available.
	Column         int  `json:"column"`
	SkipMarkerPush bool `json:"skip_marker_push"`

	LogEnabled    bool   `json:"log_enabled"`
	LogFile       string `json:"log_file"`
	LogMaxSizeMB  int    `json:"log_max_size_mb"`
	LogMaxBackups int    `json:"log_max_backups"`
	Debug         bool   `json:"debug"`

	LoopPeriod time.Duration `json:"loop_period"`
	LogPeriod  time.Duration `json:"log_period"`

	// RecoverOnTimeout sends the mission to recovery when a motion times out instead of
	// advancing to the next state.
	RecoverOnTimeout bool `json:"recover_on_timeout"`

	Timeouts Timeouts `json:"timeouts"`
	Servos   Servos   `json:"servos"`
	Sim      Sim      `json:"sim"`
}

// Timeouts are the ceilings of every timed or motion bound state.
type Timeouts struct {
	RaiseLift time.Duration `json:"raise_lift"`
	LowerArm  time.Duration `json:"lower_arm"`
	RaiseArm  time.Duration `json:"raise_arm"`
	Turn      time.Duration `json:"turn"`
	Drive     time.Duration `json:"drive"`
	DriveOff  time.Duration `json:"drive_off"`
	LowerLift time.Duration `json:"lower_lift"`
}

// Servos are the gripper and marker arm positions, each in [0, 1].
type Servos struct {
	GripperLeftOpen   float64 `json:"gripper_left_open"`
	GripperLeftClose  float64 `json:"gripper_left_close"`
	GripperRightOpen  float64 `json:"gripper_right_open"`
	GripperRightClose float64 `json:"gripper_right_close"`
	MarkerArmDown     float64 `json:"marker_arm_down"`
	MarkerArmUp       float64 `json:"marker_arm_up"`
}

// Sim configures the simulated robot.
type Sim struct {
	TicksPerStep   float64 `json:"ticks_per_step"`
	DegreesPerStep float64 `json:"degrees_per_step"`
	Red            int     `json:"red"`
	Blue           int     `json:"blue"`
}

// Default returns the configuration used by the competition robot.
func Default() *Mission {
	return &Mission{
		Column:        0,
		LogFile:       "autonomy.log",
		LogMaxSizeMB:  10,
		LogMaxBackups: 3,
		LoopPeriod:    10 * time.Millisecond,
		LogPeriod:     100 * time.Millisecond,
		Timeouts: Timeouts{
			RaiseLift: 500 * time.Millisecond,
			LowerArm:  3000 * time.Millisecond,
			RaiseArm:  2000 * time.Millisecond,
			Turn:      3000 * time.Millisecond,
			Drive:     5000 * time.Millisecond,
			DriveOff:  8000 * time.Millisecond,
			LowerLift: 500 * time.Millisecond,
		},
		Servos: Servos{
			GripperLeftOpen:   0.70,
			GripperLeftClose:  0.375,
			GripperRightOpen:  0.25,
			GripperRightClose: 0.60,
			MarkerArmDown:     17.5 / 255,
			MarkerArmUp:       0,
		},
		Sim: Sim{
			TicksPerStep:   40,
			DegreesPerStep: 8,
			Red:            10,
			Blue:           40,
		},
	}
}

// Validate ensures all parts of the config are valid.
func (m *Mission) Validate(path string) error {
	switch strings.ToLower(m.Alliance) {
	case "", "red", "blue":
	default:
		return NewConfigValidationError(path, errors.Errorf("alliance must be red or blue, got %q", m.Alliance))
	}
	if m.Column < 0 || m.Column > 2 {
		return NewConfigValidationError(path, errors.Errorf("column must be 0, 1 or 2, got %d", m.Column))
	}
	if m.LogEnabled && m.LogFile == "" {
		return NewConfigValidationFieldRequiredError(path, "log_file")
	}
	if m.LogMaxSizeMB < 0 || m.LogMaxBackups < 0 {
		return NewConfigValidationError(path, errors.New("log rotation settings cannot be negative"))
	}
	if m.LoopPeriod <= 0 {
		return NewConfigValidationError(path, errors.Errorf("loop_period must be positive, got %s", m.LoopPeriod))
	}
	if m.LogPeriod <= 0 {
		return NewConfigValidationError(path, errors.Errorf("log_period must be positive, got %s", m.LogPeriod))
	}
	if err := m.Timeouts.Validate(path + ".timeouts"); err != nil {
		return err
	}
	return m.Servos.Validate(path + ".servos")
}

// Validate ensures every ceiling is positive.
func (t *Timeouts) Validate(path string) error {
	for name, d := range map[string]time.Duration{
		"raise_lift": t.RaiseLift,
		"lower_arm":  t.LowerArm,
		"raise_arm":  t.RaiseArm,
		"turn":       t.Turn,
		"drive":      t.Drive,
		"drive_off":  t.DriveOff,
		"lower_lift": t.LowerLift,
	} {
		if d <= 0 {
			return NewConfigValidationError(path, errors.Errorf("%s must be positive, got %s", name, d))
		}
	}
	return nil
}

// Validate ensures every servo position is in [0, 1].
func (s *Servos) Validate(path string) error {
	for name, pos := range map[string]float64{
		"gripper_left_open":   s.GripperLeftOpen,
		"gripper_left_close":  s.GripperLeftClose,
		"gripper_right_open":  s.GripperRightOpen,
		"gripper_right_close": s.GripperRightClose,
		"marker_arm_down":     s.MarkerArmDown,
		"marker_arm_up":       s.MarkerArmUp,
	} {
		if pos < 0 || pos > 1 {
			return NewConfigValidationError(path, errors.Errorf("%s must be in [0, 1], got %v", name, pos))
		}
	}
	return nil
}
