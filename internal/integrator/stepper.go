// Package integrator provides fixed-step ODE solvers over a uniform
// time grid. Concrete steppers ([Euler], [RK4]) implement the
// [Stepper] strategy; [Integrate] is the single driving loop shared by
// all of them, so adding a scheme never touches the recurrence.
package integrator

import (
	"fmt"

	"github.com/oscilab/oscilab/internal/model"
	"github.com/oscilab/oscilab/internal/osc"
)

// Stepper advances a state by one fixed time increment.
//
// Steppers are deterministic and side-effect-free with respect to
// their inputs, but may reuse internal scratch buffers: use one
// Stepper value per goroutine.
type Stepper interface {
	Name() string
	Step(m model.Model, s osc.State, t, dt float64) osc.State
}

// New returns the stepper registered under name ("euler" or "rk4").
func New(name string) (Stepper, error) {
	switch name {
	case "euler":
		return NewEuler(), nil
	case "rk4":
		return NewRK4(), nil
	default:
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
}
