package synth

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParameter marks a distribution parameter outside its
	// valid domain.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrConfigurationConflict marks a field-name collision in the
	// requested output.
	ErrConfigurationConflict = errors.New("configuration conflict")
)

// InvalidParameterError reports which field carried an out-of-domain
// parameter. It unwraps to ErrInvalidParameter.
type InvalidParameterError struct {
	Field  string
	Reason string
}

func (e InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter for %s: %s", e.Field, e.Reason)
}

func (e InvalidParameterError) Unwrap() error {
	return ErrInvalidParameter
}

// ConflictError reports a field name that cannot appear in the output.
// It unwraps to ErrConfigurationConflict.
type ConflictError struct {
	Name   string
	Reason string
}

func (e ConflictError) Error() string {
	return fmt.Sprintf("configuration conflict for %s: %s", e.Name, e.Reason)
}

func (e ConflictError) Unwrap() error {
	return ErrConfigurationConflict
}

// IsInvalidParameter reports whether err stems from an out-of-domain
// distribution parameter.
func IsInvalidParameter(err error) bool {
	return errors.Is(err, ErrInvalidParameter)
}

// IsConfigurationConflict reports whether err stems from a field-name
// collision.
func IsConfigurationConflict(err error) bool {
	return errors.Is(err, ErrConfigurationConflict)
}
