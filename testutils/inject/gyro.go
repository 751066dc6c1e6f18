package inject

import (
	"context"

	"github.com/techietitans/autonomy/components/gyro"
)

// Gyro is an injected gyro.
type Gyro struct {
	gyro.Gyro
	name                  string
	IntegratedHeadingFunc func(ctx context.Context) (float64, error)
	CalibrateFunc         func(ctx context.Context) error
	IsCalibratingFunc     func(ctx context.Context) (bool, error)
	ResetIntegratorFunc   func(ctx context.Context) error
}

// NewGyro returns a new injected gyro.
func NewGyro(name string) *Gyro {
	return &Gyro{name: name}
}

// Name returns the name of the gyro.
func (g *Gyro) Name() string {
	return g.name
}

// IntegratedHeading calls the injected IntegratedHeading or the real version.
func (g *Gyro) IntegratedHeading(ctx context.Context) (float64, error) {
	if g.IntegratedHeadingFunc == nil {
		return g.Gyro.IntegratedHeading(ctx)
	}
	return g.IntegratedHeadingFunc(ctx)
}

// Calibrate calls the injected Calibrate or the real version.
func (g *Gyro) Calibrate(ctx context.Context) error {
	if g.CalibrateFunc == nil {
		return g.Gyro.Calibrate(ctx)
	}
	return g.CalibrateFunc(ctx)
}

// IsCalibrating calls the injected IsCalibrating or the real version.
func (g *Gyro) IsCalibrating(ctx context.Context) (bool, error) {
	if g.IsCalibratingFunc == nil {
		return g.Gyro.IsCalibrating(ctx)
	}
	return g.IsCalibratingFunc(ctx)
}

// ResetIntegrator calls the injected ResetIntegrator or the real version.
func (g *Gyro) ResetIntegrator(ctx context.Context) error {
	if g.ResetIntegratorFunc == nil {
		return g.Gyro.ResetIntegrator(ctx)
	}
	return g.ResetIntegratorFunc(ctx)
}
