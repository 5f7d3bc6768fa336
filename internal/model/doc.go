// Package model defines the oscillator equations of motion.
//
// Each model implements the [Model] interface: a pure, deterministic
// derivative function dX/dt = f(t, X) over the (displacement,
// velocity) state. Parameters live in the model struct, validated at
// construction; there is no process-wide state, so identical inputs
// always yield identical derivatives.
//
//   - [Harmonic]: x'' + ω²x = 0
//   - [DampedDriven]: x'' + γx' + ω²x = F0·cos(ω_d·t)
package model
