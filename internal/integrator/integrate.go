package integrator

import (
	"fmt"

	"github.com/oscilab/oscilab/internal/model"
	"github.com/oscilab/oscilab/internal/osc"
)

// Config tunes the integration driver.
type Config struct {
	// StateBound flags the trajectory as unstable once any state
	// component exceeds it in magnitude. The run still completes so the
	// caller can report the blow-up instead of plotting it silently.
	StateBound float64
}

func DefaultConfig() Config {
	return Config{StateBound: 1e6}
}

// Integrate advances x0 over every point of g with the given stepper
// and returns the full trajectory. All validation happens before the
// first step; on error no trajectory is returned. Deterministic:
// identical inputs produce bit-identical trajectories. Safe to call
// concurrently as long as each call has its own Stepper.
func Integrate(st Stepper, m model.Model, g osc.Grid, x0 osc.State, cfg Config) (*osc.Trajectory, error) {
	if g.Len() < 2 {
		return nil, fmt.Errorf("integrate %s: grid with %d points: %w", st.Name(), g.Len(), osc.ErrGridTooShort)
	}
	if g.Dt() <= 0 {
		return nil, fmt.Errorf("integrate %s: dt %v: %w", st.Name(), g.Dt(), osc.ErrZeroSpan)
	}
	if len(x0) != m.Dim() {
		return nil, fmt.Errorf("integrate %s: state dim %d, model %s wants %d: %w",
			st.Name(), len(x0), m.Name(), m.Dim(), osc.ErrDimensionMismatch)
	}
	if !x0.IsFinite() {
		return nil, fmt.Errorf("integrate %s: initial state %v: %w", st.Name(), x0, osc.ErrNotFinite)
	}
	if cfg.StateBound <= 0 {
		cfg.StateBound = DefaultConfig().StateBound
	}

	states := make([]osc.State, g.Len())
	states[0] = x0.Clone()
	tr := &osc.Trajectory{Grid: g, States: states}

	dt := g.Dt()
	for i := 1; i < g.Len(); i++ {
		next := st.Step(m, states[i-1], g.At(i-1), dt)
		states[i] = next

		if !tr.Unstable && (!next.IsFinite() || next.MaxAbs() > cfg.StateBound) {
			tr.Unstable = true
			tr.UnstableAt = g.At(i)
		}
	}
	return tr, nil
}
