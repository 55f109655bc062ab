package config

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalid matches every configuration error with errors.Is.
var ErrInvalid = errors.New("invalid configuration")

// Error reports a malformed or out-of-range parameter. It is returned at
// construction time and never recovered from.
type Error struct {
	Field  string
	Value  any
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid %s=%v: %s", e.Field, e.Value, e.Reason)
}

func (e *Error) Is(target error) bool {
	return target == ErrInvalid
}

// Invalid builds a configuration error for field.
func Invalid(field string, value any, reason string) error {
	return &Error{Field: field, Value: value, Reason: reason}
}

// Probability checks that p lies in [0, 1].
func Probability(field string, p float64) error {
	if p < 0 || p > 1 || math.IsNaN(p) {
		return Invalid(field, p, "must be within [0, 1]")
	}
	return nil
}
