package profile

import (
	"fmt"
	"math"
)

// InvalidParameterError reports a caller-supplied value that violates a
// documented bound. It is never auto-corrected.
type InvalidParameterError struct {
	Shape  string
	Field  string
	Value  float64
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("%s: invalid %s %g: %s", e.Shape, e.Field, e.Value, e.Reason)
}

// DomainError reports an intermediate formula evaluated outside its
// mathematical domain, e.g. a negative square root argument.
type DomainError struct {
	Shape string
	Op    string  // "sqrt", "acos", "finite", "ogive radius", "tangent height"
	Arg   float64 // offending argument
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %s argument %g out of domain", e.Shape, e.Op, e.Arg)
}

// ConfigurationError is a fatal parameter combination. It names the
// offending field and the bound that could not be satisfied.
type ConfigurationError struct {
	Shape string
	Field string
	Value float64
	Bound float64
	Err   error
}

func (e *ConfigurationError) Error() string {
	msg := fmt.Sprintf("%s: unusable %s %g (bound %g)", e.Shape, e.Field, e.Value, e.Bound)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

func invalid(shape, field string, v float64, reason string) error {
	return &InvalidParameterError{Shape: shape, Field: field, Value: v, Reason: reason}
}

func nonNegative(shape, field string, v float64) error {
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return invalid(shape, field, v, "must be a non-negative finite number")
	}
	return nil
}

func atLeast(shape, field string, v, min int) error {
	if v < min {
		return invalid(shape, field, float64(v), fmt.Sprintf("must be at least %d", min))
	}
	return nil
}

func unitInterval(shape, field string, v float64) error {
	if !(v >= 0 && v <= 1) {
		return invalid(shape, field, v, "must be within [0, 1]")
	}
	return nil
}

// firstErr returns the first non-nil error.
func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
