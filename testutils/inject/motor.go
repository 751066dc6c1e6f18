// Package inject provides components whose methods can be replaced by test functions.
package inject

import (
	"context"

	"github.com/techietitans/autonomy/components/motor"
)

// Motor is an injected motor.
type Motor struct {
	motor.Motor
	name          string
	SetPowerFunc  func(ctx context.Context, powerPct float64) error
	PositionFunc  func(ctx context.Context) (int64, error)
	IsPoweredFunc func(ctx context.Context) (bool, float64, error)
	StopFunc      func(ctx context.Context) error
}

// NewMotor returns a new injected motor.
func NewMotor(name string) *Motor {
	return &Motor{name: name}
}

// Name returns the name of the motor.
func (m *Motor) Name() string {
	return m.name
}

// SetPower calls the injected SetPower or the real version.
func (m *Motor) SetPower(ctx context.Context, powerPct float64) error {
	if m.SetPowerFunc == nil {
		return m.Motor.SetPower(ctx, powerPct)
	}
	return m.SetPowerFunc(ctx, powerPct)
}

// Position calls the injected Position or the real version.
func (m *Motor) Position(ctx context.Context) (int64, error) {
	if m.PositionFunc == nil {
		return m.Motor.Position(ctx)
	}
	return m.PositionFunc(ctx)
}

// IsPowered calls the injected IsPowered or the real version.
func (m *Motor) IsPowered(ctx context.Context) (bool, float64, error) {
	if m.IsPoweredFunc == nil {
		return m.Motor.IsPowered(ctx)
	}
	return m.IsPoweredFunc(ctx)
}

// Stop calls the injected Stop or the real version.
func (m *Motor) Stop(ctx context.Context) error {
	if m.StopFunc == nil {
		return m.Motor.Stop(ctx)
	}
	return m.StopFunc(ctx)
}
