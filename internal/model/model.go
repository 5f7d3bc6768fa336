package model

import (
	"math"

	"github.com/oscilab/oscilab/internal/osc"
)

// Model is an ODE system over the oscillator state. Derive must be
// pure: no side effects, no internal state, same output for the same
// (t, s) on every call.
type Model interface {
	Name() string
	Dim() int
	Derive(t float64, s osc.State) osc.State
}

func isFinite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
