// Package reference provides the high-accuracy baseline solver used
// by the comparison layer. Callers depend only on the [Solver]
// interface; the adaptive algorithm behind it is an implementation
// detail and never a correctness dependency of the fixed-step schemes.
package reference

import (
	"fmt"
	"math"

	"github.com/oscilab/oscilab/internal/model"
	"github.com/oscilab/oscilab/internal/osc"
)

// Solver produces a baseline trajectory at exactly the grid's
// timestamps.
type Solver interface {
	Solve(m model.Model, g osc.Grid, x0 osc.State) (*osc.Trajectory, error)
}

// Dormand-Prince 5(4) coefficients
var (
	a2 = 1.0 / 5.0
	a3 = 3.0 / 10.0
	a4 = 4.0 / 5.0
	a5 = 8.0 / 9.0

	b21 = 1.0 / 5.0
	b31 = 3.0 / 40.0
	b32 = 9.0 / 40.0
	b41 = 44.0 / 45.0
	b42 = -56.0 / 15.0
	b43 = 32.0 / 9.0
	b51 = 19372.0 / 6561.0
	b52 = -25360.0 / 2187.0
	b53 = 64448.0 / 6561.0
	b54 = -212.0 / 729.0
	b61 = 9017.0 / 3168.0
	b62 = -355.0 / 33.0
	b63 = 46732.0 / 5247.0
	b64 = 49.0 / 176.0
	b65 = -5103.0 / 18656.0

	c1 = 35.0 / 384.0
	c3 = 500.0 / 1113.0
	c4 = 125.0 / 192.0
	c5 = -2187.0 / 6784.0
	c6 = 11.0 / 84.0

	dc1 = c1 - 5179.0/57600.0
	dc3 = c3 - 7571.0/16695.0
	dc4 = c4 - 393.0/640.0
	dc5 = c5 - -92097.0/339200.0
	dc6 = c6 - 187.0/2100.0
	dc7 = -1.0 / 40.0
)

// DormandPrince is an adaptive 5(4) solver that steps freely between
// consecutive grid points and lands exactly on each one.
type DormandPrince struct {
	Tol        float64
	StateBound float64

	safety   float64
	minScale float64
	maxScale float64
	maxSteps int
}

func NewDormandPrince() *DormandPrince {
	return &DormandPrince{
		Tol:        1e-9,
		StateBound: 1e6,
		safety:     0.9,
		minScale:   0.2,
		maxScale:   10.0,
		maxSteps:   1_000_000,
	}
}

func (dp *DormandPrince) Solve(m model.Model, g osc.Grid, x0 osc.State) (*osc.Trajectory, error) {
	if g.Len() < 2 {
		return nil, fmt.Errorf("reference: grid with %d points: %w", g.Len(), osc.ErrGridTooShort)
	}
	if g.Dt() <= 0 {
		return nil, fmt.Errorf("reference: dt %v: %w", g.Dt(), osc.ErrZeroSpan)
	}
	if len(x0) != m.Dim() {
		return nil, fmt.Errorf("reference: state dim %d, model %s wants %d: %w",
			len(x0), m.Name(), m.Dim(), osc.ErrDimensionMismatch)
	}
	if !x0.IsFinite() {
		return nil, fmt.Errorf("reference: initial state %v: %w", x0, osc.ErrNotFinite)
	}

	tol := dp.Tol
	if tol <= 0 {
		tol = 1e-9
	}
	bound := dp.StateBound
	if bound <= 0 {
		bound = 1e6
	}

	states := make([]osc.State, g.Len())
	states[0] = x0.Clone()
	tr := &osc.Trajectory{Grid: g, States: states}

	x := x0.Clone()
	h := g.Dt()
	steps := 0

	for i := 1; i < g.Len(); i++ {
		t := g.At(i - 1)
		tEnd := g.At(i)

		for tEnd-t > 1e-14*math.Max(1, math.Abs(tEnd)) {
			if steps >= dp.maxSteps {
				return nil, fmt.Errorf("reference: tolerance %g not reached within %d steps", tol, dp.maxSteps)
			}
			steps++

			hTry := math.Min(h, tEnd-t)
			xNew, errRatio := dp.attempt(m, x, t, hTry, tol)

			if errRatio <= 1 {
				t += hTry
				x = xNew
				if errRatio > 0 {
					h = hTry * math.Min(dp.maxScale, dp.safety*math.Pow(errRatio, -0.2))
				} else {
					h = hTry * dp.maxScale
				}
			} else {
				h = hTry * math.Max(dp.minScale, dp.safety*math.Pow(errRatio, -0.25))
			}
		}

		states[i] = x.Clone()
		if !tr.Unstable && (!x.IsFinite() || x.MaxAbs() > bound) {
			tr.Unstable = true
			tr.UnstableAt = tEnd
		}
	}
	return tr, nil
}

// attempt takes one trial step of size h and returns the fifth-order
// solution together with the scaled error ratio (<= 1 means accept).
func (dp *DormandPrince) attempt(m model.Model, x osc.State, t, h, tol float64) (osc.State, float64) {
	n := len(x)

	k1 := m.Derive(t, x)

	x2 := make(osc.State, n)
	for i := 0; i < n; i++ {
		x2[i] = x[i] + h*b21*k1[i]
	}
	k2 := m.Derive(t+a2*h, x2)

	x3 := make(osc.State, n)
	for i := 0; i < n; i++ {
		x3[i] = x[i] + h*(b31*k1[i]+b32*k2[i])
	}
	k3 := m.Derive(t+a3*h, x3)

	x4 := make(osc.State, n)
	for i := 0; i < n; i++ {
		x4[i] = x[i] + h*(b41*k1[i]+b42*k2[i]+b43*k3[i])
	}
	k4 := m.Derive(t+a4*h, x4)

	x5 := make(osc.State, n)
	for i := 0; i < n; i++ {
		x5[i] = x[i] + h*(b51*k1[i]+b52*k2[i]+b53*k3[i]+b54*k4[i])
	}
	k5 := m.Derive(t+a5*h, x5)

	x6 := make(osc.State, n)
	for i := 0; i < n; i++ {
		x6[i] = x[i] + h*(b61*k1[i]+b62*k2[i]+b63*k3[i]+b64*k4[i]+b65*k5[i])
	}
	k6 := m.Derive(t+h, x6)

	xNew := make(osc.State, n)
	for i := 0; i < n; i++ {
		xNew[i] = x[i] + h*(c1*k1[i]+c3*k3[i]+c4*k4[i]+c5*k5[i]+c6*k6[i])
	}
	k7 := m.Derive(t+h, xNew)

	errMax := 0.0
	for i := 0; i < n; i++ {
		errEst := h * (dc1*k1[i] + dc3*k3[i] + dc4*k4[i] + dc5*k5[i] + dc6*k6[i] + dc7*k7[i])
		scale := math.Abs(x[i]) + math.Abs(h*k1[i]) + 1e-10
		errMax = math.Max(errMax, math.Abs(errEst)/scale)
	}

	return xNew, errMax / tol
}
