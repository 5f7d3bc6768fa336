package integrator

import (
	"gonum.org/v1/gonum/floats"

	"github.com/oscilab/oscilab/internal/model"
	"github.com/oscilab/oscilab/internal/osc"
)

// RK4 is the classical fourth-order Runge–Kutta scheme. Global error
// O(dt⁴). Scratch buffers are reused across steps; a single RK4 value
// must not be shared between goroutines.
type RK4 struct {
	k1, k2, k3, k4 osc.State
	scratch        osc.State
}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) Name() string { return "rk4" }

func (r *RK4) ensureScratch(n int) {
	if len(r.k1) != n {
		r.k1 = make(osc.State, n)
		r.k2 = make(osc.State, n)
		r.k3 = make(osc.State, n)
		r.k4 = make(osc.State, n)
		r.scratch = make(osc.State, n)
	}
}

func (r *RK4) Step(m model.Model, s osc.State, t, dt float64) osc.State {
	n := len(s)
	r.ensureScratch(n)

	copy(r.k1, m.Derive(t, s))

	floats.AddScaledTo(r.scratch, s, 0.5*dt, r.k1)
	copy(r.k2, m.Derive(t+0.5*dt, r.scratch))

	floats.AddScaledTo(r.scratch, s, 0.5*dt, r.k2)
	copy(r.k3, m.Derive(t+0.5*dt, r.scratch))

	floats.AddScaledTo(r.scratch, s, dt, r.k3)
	copy(r.k4, m.Derive(t+dt, r.scratch))

	out := make(osc.State, n)
	dt6 := dt / 6.0
	for i := 0; i < n; i++ {
		out[i] = s[i] + dt6*(r.k1[i]+2*r.k2[i]+2*r.k3[i]+r.k4[i])
	}
	return out
}
