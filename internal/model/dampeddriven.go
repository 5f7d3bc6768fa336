package model

import (
	"fmt"
	"math"

	"github.com/oscilab/oscilab/internal/osc"
)

// DampedDriven is the damped, externally driven oscillator
// x'' + γx' + ω²x = F0·cos(ω_d·t). Fields are set once by
// NewDampedDriven and read-only afterwards.
type DampedDriven struct {
	Omega  float64 // natural angular frequency
	Gamma  float64 // damping coefficient
	F0     float64 // forcing amplitude
	OmegaD float64 // driving angular frequency
}

func NewDampedDriven(omega, gamma, f0, omegaD float64) (*DampedDriven, error) {
	if !isFinite(omega, gamma, f0, omegaD) {
		return nil, fmt.Errorf("parameters (ω=%v γ=%v F0=%v ω_d=%v): %w",
			omega, gamma, f0, omegaD, osc.ErrNotFinite)
	}
	if omega < 0 {
		return nil, fmt.Errorf("omega %v: %w", omega, osc.ErrParameterBounds)
	}
	if gamma < 0 {
		return nil, fmt.Errorf("gamma %v: negative damping: %w", gamma, osc.ErrParameterBounds)
	}
	return &DampedDriven{Omega: omega, Gamma: gamma, F0: f0, OmegaD: omegaD}, nil
}

func (d *DampedDriven) Name() string { return "damped_driven" }
func (d *DampedDriven) Dim() int     { return 2 }

func (d *DampedDriven) Derive(t float64, s osc.State) osc.State {
	x, v := s[0], s[1]
	return osc.State{v, -d.Gamma*v - d.Omega*d.Omega*x + d.F0*math.Cos(d.OmegaD*t)}
}
