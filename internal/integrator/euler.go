package integrator

import (
	"gonum.org/v1/gonum/floats"

	"github.com/oscilab/oscilab/internal/model"
	"github.com/oscilab/oscilab/internal/osc"
)

// Euler is the explicit first-order scheme
// state[i] = state[i-1] + dt·f(t[i-1], state[i-1]).
// Global error O(dt); its visible energy drift on conservative systems
// is the baseline the higher-order schemes are measured against.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Name() string { return "euler" }

func (e *Euler) Step(m model.Model, s osc.State, t, dt float64) osc.State {
	dx := m.Derive(t, s)
	out := s.Clone()
	floats.AddScaled(out, dt, dx)
	return out
}
