package config

import (
	"fmt"

	"github.com/pkg/errors"
)

// NewConfigValidationError returns an error specifying that there was an error when validating
// the config at the given path.
func NewConfigValidationError(path string, err error) error {
	return errors.Wrapf(err, "error validating %q", path)
}

// NewConfigValidationFieldRequiredError returns an error specifying that a required field is
// missing from the config at the given path.
func NewConfigValidationFieldRequiredError(path, field string) error {
	return NewConfigValidationError(path, errors.Errorf("%q is required", field))
}

func newWrongTypeError(name, expected string, actual interface{}) error {
	return errors.Errorf("attribute %q expected to be %s but got %s", name, expected, fmt.Sprintf("%T", actual))
}
