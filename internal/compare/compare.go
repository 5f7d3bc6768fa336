// Package compare runs Euler, RK4 and the reference solver over one
// shared time grid so their trajectories can be compared index for
// index.
package compare

import (
	"math"
	"sync"

	"github.com/oscilab/oscilab/internal/integrator"
	"github.com/oscilab/oscilab/internal/model"
	"github.com/oscilab/oscilab/internal/osc"
	"github.com/oscilab/oscilab/internal/reference"
)

// State component indices for the diff helpers.
const (
	Displacement = 0
	Velocity     = 1
)

// Result bundles the three trajectories. All share the identical Grid.
type Result struct {
	Grid      osc.Grid
	Euler     *osc.Trajectory
	RK4       *osc.Trajectory
	Reference *osc.Trajectory
}

// Compare builds the grid once and integrates the model with all
// three methods, concurrently. The runs share no mutable state. If any
// single run fails validation the whole comparison fails; partial
// results are never returned.
func Compare(m model.Model, start, end float64, n int, x0 osc.State, cfg integrator.Config, ref reference.Solver) (*Result, error) {
	g, err := osc.NewGrid(start, end, n)
	if err != nil {
		return nil, err
	}
	if ref == nil {
		ref = reference.NewDormandPrince()
	}

	runs := []func() (*osc.Trajectory, error){
		func() (*osc.Trajectory, error) { return integrator.Integrate(integrator.NewEuler(), m, g, x0, cfg) },
		func() (*osc.Trajectory, error) { return integrator.Integrate(integrator.NewRK4(), m, g, x0, cfg) },
		func() (*osc.Trajectory, error) { return ref.Solve(m, g, x0) },
	}

	trajs := make([]*osc.Trajectory, len(runs))
	errs := make([]error, len(runs))

	var wg sync.WaitGroup
	for i, run := range runs {
		wg.Add(1)
		go func(idx int, fn func() (*osc.Trajectory, error)) {
			defer wg.Done()
			trajs[idx], errs[idx] = fn()
		}(i, run)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return &Result{Grid: g, Euler: trajs[0], RK4: trajs[1], Reference: trajs[2]}, nil
}

// MaxAbsDiff returns the largest index-wise difference of the given
// state component between two trajectories on the same grid.
func MaxAbsDiff(a, b *osc.Trajectory, component int) float64 {
	m := 0.0
	for i := range a.States {
		d := math.Abs(a.States[i][component] - b.States[i][component])
		if d > m {
			m = d
		}
	}
	return m
}

// EndpointError returns |x_N - analytic(t_N)| for the displacement at
// the last grid point.
func EndpointError(tr *osc.Trajectory, analytic func(t float64) float64) float64 {
	last := tr.Len() - 1
	t, s := tr.At(last)
	return math.Abs(s[Displacement] - analytic(t))
}
