package fractal

import (
	"errors"
	"fmt"
)

// Domain errors for render configuration.
var (
	// ErrInvalidConfig is the root of every configuration failure.
	ErrInvalidConfig = errors.New("fractal: invalid configuration")

	// ErrInvalidResolution indicates a grid resolution below 1.
	ErrInvalidResolution = errors.New("fractal: grid resolution must be positive")

	// ErrInvalidRange indicates a domain range with min >= max.
	ErrInvalidRange = errors.New("fractal: range min must be below max")

	// ErrNoRoots indicates an empty root set.
	ErrNoRoots = errors.New("fractal: root set is empty")

	// ErrAmbiguousRoots indicates two roots closer than twice the match tolerance.
	ErrAmbiguousRoots = errors.New("fractal: roots too close for match tolerance")

	// ErrPaletteLength indicates a palette that is not one color per root plus one.
	ErrPaletteLength = errors.New("fractal: palette length mismatch")

	// ErrInvalidTolerance indicates a non-positive (or non-finite) tolerance.
	ErrInvalidTolerance = errors.New("fractal: tolerance must be positive")

	// ErrInvalidIterations indicates a non-positive iteration cap.
	ErrInvalidIterations = errors.New("fractal: max iterations must be positive")

	// ErrNoPolynomial indicates a missing function/derivative pair.
	ErrNoPolynomial = errors.New("fractal: polynomial is required")

	// ErrCanceled indicates the render was interrupted between row blocks.
	ErrCanceled = errors.New("fractal: render canceled by context")
)

// ConfigError reports a configuration problem detected before rendering.
// It matches both ErrInvalidConfig and the specific cause under errors.Is.
type ConfigError struct {
	Field  string
	Reason string
	Cause  error
}

func (e *ConfigError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("config %s: %v", e.Field, e.Cause)
	}
	return fmt.Sprintf("config %s: %v (%s)", e.Field, e.Cause, e.Reason)
}

func (e *ConfigError) Unwrap() []error {
	return []error{ErrInvalidConfig, e.Cause}
}

func configErr(field string, cause error, format string, args ...any) *ConfigError {
	return &ConfigError{Field: field, Cause: cause, Reason: fmt.Sprintf(format, args...)}
}
