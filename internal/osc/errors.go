package osc

import "errors"

// Configuration errors. All are raised before any stepping begins;
// a run never produces a partial trajectory.
var (
	// ErrGridTooShort indicates a time grid with fewer than two points.
	ErrGridTooShort = errors.New("osc: time grid needs at least two points")

	// ErrZeroSpan indicates an empty or inverted time span (dt would be
	// zero or negative).
	ErrZeroSpan = errors.New("osc: time span is empty")

	// ErrNotFinite indicates a NaN or Inf in a parameter or state.
	ErrNotFinite = errors.New("osc: non-finite value")

	// ErrParameterBounds indicates a physical parameter outside its
	// valid range (negative damping, non-positive mass, ...).
	ErrParameterBounds = errors.New("osc: parameter out of valid bounds")

	// ErrDimensionMismatch indicates a state whose dimension does not
	// match the model.
	ErrDimensionMismatch = errors.New("osc: state dimension mismatch")
)
