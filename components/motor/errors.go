package motor

import "github.com/pkg/errors"

// NewPositionUnsupportedError returns a standard error for when a motor without an encoder is
// asked for its position.
func NewPositionUnsupportedError(motorName string) error {
	return errors.Errorf("motor with name %s has no encoder and does not support Position", motorName)
}

// NewNotConnectedError returns an error for a motor whose controller cannot be reached.
func NewNotConnectedError(motorName string) error {
	return errors.Errorf("motor with name %s is not connected", motorName)
}
