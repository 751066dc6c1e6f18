package inject

import (
	"context"

	"github.com/techietitans/autonomy/components/servo"
)

// Servo is an injected servo.
type Servo struct {
	servo.Servo
	name            string
	SetPositionFunc func(ctx context.Context, position float64) error
	PositionFunc    func(ctx context.Context) (float64, error)
}

// NewServo returns a new injected servo.
func NewServo(name string) *Servo {
	return &Servo{name: name}
}

// Name returns the name of the servo.
func (s *Servo) Name() string {
	return s.name
}

// SetPosition calls the injected SetPosition or the real version.
func (s *Servo) SetPosition(ctx context.Context, position float64) error {
	if s.SetPositionFunc == nil {
		return s.Servo.SetPosition(ctx, position)
	}
	return s.SetPositionFunc(ctx, position)
}

// Position calls the injected Position or the real version.
func (s *Servo) Position(ctx context.Context) (float64, error) {
	if s.PositionFunc == nil {
		return s.Servo.Position(ctx)
	}
	return s.PositionFunc(ctx)
}
