package model

import (
	"fmt"
	"math"

	"github.com/oscilab/oscilab/internal/osc"
)

// Harmonic is the undamped oscillator x'' + ω²x = 0. Fields are set
// once by NewHarmonic and read-only afterwards.
type Harmonic struct {
	Omega float64
}

func NewHarmonic(omega float64) (*Harmonic, error) {
	if !isFinite(omega) {
		return nil, fmt.Errorf("omega %v: %w", omega, osc.ErrNotFinite)
	}
	if omega < 0 {
		return nil, fmt.Errorf("omega %v: %w", omega, osc.ErrParameterBounds)
	}
	return &Harmonic{Omega: omega}, nil
}

func (h *Harmonic) Name() string { return "harmonic" }
func (h *Harmonic) Dim() int     { return 2 }

func (h *Harmonic) Derive(t float64, s osc.State) osc.State {
	return osc.State{s[1], -h.Omega * h.Omega * s[0]}
}

// Analytic returns the closed-form displacement at time t for initial
// conditions (x0, v0): x(t) = x0·cos(ωt) + (v0/ω)·sin(ωt). For ω = 0
// the motion degenerates to a free particle, x0 + v0·t.
func (h *Harmonic) Analytic(x0, v0, t float64) float64 {
	if h.Omega == 0 {
		return x0 + v0*t
	}
	return x0*math.Cos(h.Omega*t) + (v0/h.Omega)*math.Sin(h.Omega*t)
}

// Energy returns the total mechanical energy ½mv² + ½kx² with
// k = ω²m. Constant along exact solutions; drift along a numerical
// trajectory measures integrator error.
func (h *Harmonic) Energy(mass float64, s osc.State) float64 {
	k := h.Omega * h.Omega * mass
	return 0.5*mass*s[1]*s[1] + 0.5*k*s[0]*s[0]
}
