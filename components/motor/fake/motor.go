// Package fake implements a fake motor with a simulated encoder.
package fake

import (
	"context"
	"math"
	"sync"

	"github.com/pkg/errors"

	"github.com/techietitans/autonomy/components/motor"
	"github.com/techietitans/autonomy/logging"
)

var _ motor.Motor = &Motor{}

// A Motor allows setting and reading a power percentage. When Encoded, its position advances by
// TicksPerStep times the current power on every Step.
type Motor struct {
	mu           sync.Mutex
	name         string
	powerPct     float64
	position     float64
	TicksPerStep float64
	Encoded      bool
	DirFlip      bool
	Disconnected bool
	Logger       logging.Logger
}

// NewMotor returns an encoded fake motor.
func NewMotor(name string, ticksPerStep float64, logger logging.Logger) *Motor {
	return &Motor{
		name:         name,
		TicksPerStep: ticksPerStep,
		Encoded:      true,
		Logger:       logger,
	}
}

// Name returns the name of the motor.
func (m *Motor) Name() string {
	return m.name
}

// SetPower sets the given power percentage.
func (m *Motor) SetPower(ctx context.Context, powerPct float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Disconnected {
		return motor.NewNotConnectedError(m.name)
	}
	if m.Logger != nil {
		m.Logger.CDebugf(ctx, "Motor %s SetPower %f", m.name, powerPct)
	}
	m.powerPct = motor.ClipPower(powerPct)
	return nil
}

// Position returns the simulated encoder count.
func (m *Motor) Position(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Disconnected {
		return 0, motor.NewNotConnectedError(m.name)
	}
	if !m.Encoded {
		return 0, motor.NewPositionUnsupportedError(m.name)
	}
	return int64(math.Round(m.position)), nil
}

// SetPosition overwrites the encoder count.
func (m *Motor) SetPosition(ticks int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.position = float64(ticks)
}

// IsPowered returns if the motor is pretending to be on or not, and its power level.
func (m *Motor) IsPowered(ctx context.Context) (bool, float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Disconnected {
		return false, 0, motor.NewNotConnectedError(m.name)
	}
	return math.Abs(m.powerPct) >= 0.005, m.powerPct, nil
}

// Stop has the motor pretend to be off.
func (m *Motor) Stop(ctx context.Context) error {
	if err := m.SetPower(ctx, 0); err != nil {
		return errors.Wrapf(err, "error in Stop from motor (%s)", m.name)
	}
	return nil
}

// PowerPct returns the set power percentage.
func (m *Motor) PowerPct() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.powerPct
}

// Step advances the encoder by one simulation step at the current power.
func (m *Motor) Step() {
	m.mu.Lock()
	defer m.mu.Unlock()
	delta := m.powerPct * m.TicksPerStep
	if m.DirFlip {
		delta = -delta
	}
	m.position += delta
}
