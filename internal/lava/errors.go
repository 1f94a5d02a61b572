package lava

import (
	"errors"
	"fmt"
)

// Domain errors for world construction.
var (
	// ErrInvalidParams indicates a parameter outside its valid range.
	ErrInvalidParams = errors.New("lava: invalid parameters")

	// ErrEmptyVolume indicates a volume with a non-positive extent on some axis.
	ErrEmptyVolume = errors.New("lava: volume has zero extent")
)

// ParamError names the parameter that failed validation.
type ParamError struct {
	Field   string
	Value   float64
	Wrapped error
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("%s: %s=%g", e.Wrapped.Error(), e.Field, e.Value)
}

func (e *ParamError) Unwrap() error {
	return e.Wrapped
}
