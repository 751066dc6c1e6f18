// Package fake implements a fake integrating gyro.
package fake

import (
	"context"
	"sync"

	"github.com/techietitans/autonomy/components/gyro"
)

var _ gyro.Gyro = &Gyro{}

// Gyro is a fake gyro whose heading is moved by Rotate.
type Gyro struct {
	mu          sync.Mutex
	name        string
	heading     float64
	calibrated  bool
	resets      int
	Unavailable bool
}

// NewGyro returns an uncalibrated fake gyro at heading zero.
func NewGyro(name string) *Gyro {
	return &Gyro{name: name}
}

// Name returns the name of the gyro.
func (g *Gyro) Name() string {
	return g.name
}

// IntegratedHeading returns the accumulated heading.
func (g *Gyro) IntegratedHeading(ctx context.Context) (float64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.Unavailable {
		return 0, gyro.ErrCalibrating
	}
	return g.heading, nil
}

// Calibrate marks the gyro calibrated immediately.
func (g *Gyro) Calibrate(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calibrated = true
	return nil
}

// IsCalibrating is always false for a fake gyro.
func (g *Gyro) IsCalibrating(ctx context.Context) (bool, error) {
	return false, nil
}

// Calibrated returns whether Calibrate was called.
func (g *Gyro) Calibrated() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calibrated
}

// ResetIntegrator zeroes the heading.
func (g *Gyro) ResetIntegrator(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.heading = 0
	g.resets++
	return nil
}

// Resets returns how many times the integrator was reset.
func (g *Gyro) Resets() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.resets
}

// Rotate adds degrees to the integrated heading.
func (g *Gyro) Rotate(degrees float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.heading += degrees
}
