// Package fake implements a fake servo.
package fake

import (
	"context"
	"sync"

	"github.com/techietitans/autonomy/components/servo"
)

var _ servo.Servo = &Servo{}

// Servo is a fake servo that can simply read and set its position.
type Servo struct {
	mu       sync.Mutex
	name     string
	position float64
	moves    int
}

// NewServo returns a fake servo resting at the given position.
func NewServo(name string, position float64) *Servo {
	return &Servo{name: name, position: position}
}

// Name returns the name of the servo.
func (s *Servo) Name() string {
	return s.name
}

// SetPosition sets the position.
func (s *Servo) SetPosition(ctx context.Context, position float64) error {
	if err := servo.CheckPosition(s.name, position); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.position = position
	s.moves++
	return nil
}

// Position returns the last set position.
func (s *Servo) Position(ctx context.Context) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.position, nil
}

// Moves returns how many times the position was set.
func (s *Servo) Moves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.moves
}
