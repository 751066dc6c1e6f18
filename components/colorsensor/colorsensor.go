// Package colorsensor defines a reflected light sensor reporting per channel intensities.
package colorsensor

import "context"

// SubtypeName identifies the color sensor component type in logs and errors.
const SubtypeName = "color_sensor"

// A ColorSensor reports the intensity of light reflected from a surface in front of it.
type ColorSensor interface {
	// Name returns the configured name of the sensor.
	Name() string

	// Red returns the red channel intensity.
	Red(ctx context.Context) (int, error)

	// Blue returns the blue channel intensity.
	Blue(ctx context.Context) (int, error)

	// EnableLight turns the sensor's illumination LED on or off.
	EnableLight(ctx context.Context, enabled bool) error
}
