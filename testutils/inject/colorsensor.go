package inject

import (
	"context"

	"github.com/techietitans/autonomy/components/colorsensor"
)

// ColorSensor is an injected color sensor.
type ColorSensor struct {
	colorsensor.ColorSensor
	name            string
	RedFunc         func(ctx context.Context) (int, error)
	BlueFunc        func(ctx context.Context) (int, error)
	EnableLightFunc func(ctx context.Context, enabled bool) error
}

// NewColorSensor returns a new injected color sensor.
func NewColorSensor(name string) *ColorSensor {
	return &ColorSensor{name: name}
}

// Name returns the name of the sensor.
func (c *ColorSensor) Name() string {
	return c.name
}

// Red calls the injected Red or the real version.
func (c *ColorSensor) Red(ctx context.Context) (int, error) {
	if c.RedFunc == nil {
		return c.ColorSensor.Red(ctx)
	}
	return c.RedFunc(ctx)
}

// Blue calls the injected Blue or the real version.
func (c *ColorSensor) Blue(ctx context.Context) (int, error) {
	if c.BlueFunc == nil {
		return c.ColorSensor.Blue(ctx)
	}
	return c.BlueFunc(ctx)
}

// EnableLight calls the injected EnableLight or the real version.
func (c *ColorSensor) EnableLight(ctx context.Context, enabled bool) error {
	if c.EnableLightFunc == nil {
		return c.ColorSensor.EnableLight(ctx, enabled)
	}
	return c.EnableLightFunc(ctx, enabled)
}
