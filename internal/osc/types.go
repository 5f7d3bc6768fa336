package osc

import "math"

// State is the instantaneous condition of an oscillator.
// Index 0 is displacement, index 1 is velocity.
type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsFinite() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

// MaxAbs returns the largest component magnitude. Used by the
// integration driver's divergence check.
func (s State) MaxAbs() float64 {
	m := 0.0
	for _, v := range s {
		if a := math.Abs(v); a > m {
			m = a
		}
	}
	return m
}

// Trajectory is the result of integrating a model over a Grid.
// States holds exactly one entry per grid point, States[0] being the
// initial state. A Trajectory is never mutated after it is returned.
type Trajectory struct {
	Grid   Grid
	States []State

	// Unstable is set when a state component exceeded the configured
	// bound during stepping. The run still completes; UnstableAt holds
	// the time of the first violation.
	Unstable   bool
	UnstableAt float64
}

func (tr *Trajectory) Len() int {
	return len(tr.States)
}

// At returns the time and state at index i.
func (tr *Trajectory) At(i int) (float64, State) {
	return tr.Grid.At(i), tr.States[i]
}

// Displacement extracts the displacement column, index-aligned with
// the grid. Suitable for direct plotting.
func (tr *Trajectory) Displacement() []float64 {
	out := make([]float64, len(tr.States))
	for i, s := range tr.States {
		out[i] = s[0]
	}
	return out
}

// Velocity extracts the velocity column, index-aligned with the grid.
func (tr *Trajectory) Velocity() []float64 {
	out := make([]float64, len(tr.States))
	for i, s := range tr.States {
		out[i] = s[1]
	}
	return out
}
