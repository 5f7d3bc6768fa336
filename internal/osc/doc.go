// Package osc provides the core value types for oscillator simulation.
//
// The package defines the data every other layer consumes:
//
//   - [State]: (displacement, velocity) vector of an oscillator
//   - [Grid]: uniform, strictly increasing time grid, built once per run
//   - [Trajectory]: one State per grid point, produced by an integrator
//
// Grids and parameter structs are constructed once from run
// configuration and treated as read-only afterwards. Trajectories are
// produced fresh per integration and never mutated after return.
//
// # Errors
//
// All configuration failures map onto the sentinel errors in this
// package (ErrGridTooShort, ErrZeroSpan, ErrNotFinite,
// ErrParameterBounds, ErrDimensionMismatch) and are raised before any
// stepping begins; callers can match them with errors.Is.
package osc
