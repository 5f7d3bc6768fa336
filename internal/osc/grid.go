package osc

import (
	"fmt"
	"math"
)

// Grid is a uniform, strictly increasing time grid with spacing
// dt = (end-start)/(n-1). NewGrid is the only way to obtain a valid
// Grid, so a non-uniform grid is unrepresentable. The zero value is
// invalid and rejected by the integration drivers.
type Grid struct {
	start float64
	dt    float64
	n     int
}

func NewGrid(start, end float64, n int) (Grid, error) {
	if math.IsNaN(start) || math.IsInf(start, 0) || math.IsNaN(end) || math.IsInf(end, 0) {
		return Grid{}, fmt.Errorf("grid span (%v, %v): %w", start, end, ErrNotFinite)
	}
	if n < 2 {
		return Grid{}, fmt.Errorf("grid with %d points: %w", n, ErrGridTooShort)
	}
	if end <= start {
		return Grid{}, fmt.Errorf("grid span (%v, %v): %w", start, end, ErrZeroSpan)
	}
	return Grid{start: start, dt: (end - start) / float64(n-1), n: n}, nil
}

func (g Grid) Len() int       { return g.n }
func (g Grid) Dt() float64    { return g.dt }
func (g Grid) Start() float64 { return g.start }

func (g Grid) End() float64 {
	return g.At(g.n - 1)
}

// At returns the i-th timestamp. Computed from start and dt so the
// spacing is exactly uniform.
func (g Grid) At(i int) float64 {
	return g.start + float64(i)*g.dt
}

// Times materializes the grid as a fresh slice, one timestamp per
// point. Callers may mutate the returned slice freely.
func (g Grid) Times() []float64 {
	ts := make([]float64, g.n)
	for i := range ts {
		ts[i] = g.At(i)
	}
	return ts
}
