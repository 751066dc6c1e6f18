// Package fake implements a fake color sensor with fixed readings.
package fake

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/techietitans/autonomy/components/colorsensor"
)

var _ colorsensor.ColorSensor = &ColorSensor{}

// ColorSensor returns the configured channel readings.
type ColorSensor struct {
	mu          sync.Mutex
	name        string
	red, blue   int
	light       bool
	Unavailable bool
}

// NewColorSensor returns a fake sensor reporting the given intensities.
func NewColorSensor(name string, red, blue int) *ColorSensor {
	return &ColorSensor{name: name, red: red, blue: blue}
}

// Name returns the name of the sensor.
func (c *ColorSensor) Name() string {
	return c.name
}

// Red returns the red reading.
func (c *ColorSensor) Red(ctx context.Context) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Unavailable {
		return 0, errors.Errorf("color sensor %s is not connected", c.name)
	}
	return c.red, nil
}

// Blue returns the blue reading.
func (c *ColorSensor) Blue(ctx context.Context) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Unavailable {
		return 0, errors.Errorf("color sensor %s is not connected", c.name)
	}
	return c.blue, nil
}

// EnableLight records the light state.
func (c *ColorSensor) EnableLight(ctx context.Context, enabled bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.light = enabled
	return nil
}

// LightOn returns the last light state.
func (c *ColorSensor) LightOn() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.light
}

// SetReadings changes the reported intensities.
func (c *ColorSensor) SetReadings(red, blue int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.red, c.blue = red, blue
}
