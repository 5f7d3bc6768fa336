package integrator

import (
	"errors"
	"math"
	"testing"

	"github.com/oscilab/oscilab/internal/model"
	"github.com/oscilab/oscilab/internal/osc"
)

func mustGrid(t *testing.T, start, end float64, n int) osc.Grid {
	t.Helper()
	g, err := osc.NewGrid(start, end, n)
	if err != nil {
		t.Fatalf("grid: %v", err)
	}
	return g
}

func mustHarmonic(t *testing.T, omega float64) *model.Harmonic {
	t.Helper()
	h, err := model.NewHarmonic(omega)
	if err != nil {
		t.Fatalf("model: %v", err)
	}
	return h
}

func TestIntegrate_GridInvariant(t *testing.T) {
	h := mustHarmonic(t, 2*math.Pi)
	g := mustGrid(t, 0, 10, 1000)
	x0 := osc.State{1.0, 0.0}

	tr, err := Integrate(NewRK4(), h, g, x0, DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if tr.Len() != g.Len() {
		t.Errorf("expected %d states, got %d", g.Len(), tr.Len())
	}
	if tr.States[0][0] != 1.0 || tr.States[0][1] != 0.0 {
		t.Errorf("trajectory[0] != initial state: %v", tr.States[0])
	}

	// the trajectory must own its copy of the initial state
	x0[0] = 99
	if tr.States[0][0] == 99 {
		t.Error("trajectory aliases the caller's initial state")
	}
}

func TestIntegrate_Determinism(t *testing.T) {
	h := mustHarmonic(t, 2*math.Pi)
	g := mustGrid(t, 0, 5, 500)
	x0 := osc.State{1.0, 0.0}

	for _, name := range []string{"euler", "rk4"} {
		t.Run(name, func(t *testing.T) {
			a, err := Integrate(mustStepper(t, name), h, g, x0, DefaultConfig())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			b, err := Integrate(mustStepper(t, name), h, g, x0, DefaultConfig())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			for i := range a.States {
				if a.States[i][0] != b.States[i][0] || a.States[i][1] != b.States[i][1] {
					t.Fatalf("step %d differs between runs: %v vs %v", i, a.States[i], b.States[i])
				}
			}
		})
	}
}

func mustStepper(t *testing.T, name string) Stepper {
	t.Helper()
	st, err := New(name)
	if err != nil {
		t.Fatalf("stepper: %v", err)
	}
	return st
}

func TestIntegrate_Rejection(t *testing.T) {
	h := mustHarmonic(t, 1.0)
	g := mustGrid(t, 0, 1, 10)

	tests := []struct {
		name    string
		grid    osc.Grid
		x0      osc.State
		wantErr error
	}{
		{"zero-value grid", osc.Grid{}, osc.State{1, 0}, osc.ErrGridTooShort},
		{"dimension mismatch", g, osc.State{1, 0, 0}, osc.ErrDimensionMismatch},
		{"nan initial state", g, osc.State{math.NaN(), 0}, osc.ErrNotFinite},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, err := Integrate(NewEuler(), h, tt.grid, tt.x0, DefaultConfig())
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
			if tr != nil {
				t.Error("expected nil trajectory on rejection")
			}
		})
	}
}

func TestIntegrate_InstabilityFlag(t *testing.T) {
	// Euler at dt=0.1 with omega=2*pi grows ~18% per step and blows
	// through the default bound well before t=10.
	h := mustHarmonic(t, 2*math.Pi)
	g := mustGrid(t, 0, 10, 101)
	x0 := osc.State{1.0, 0.0}

	tr, err := Integrate(NewEuler(), h, g, x0, DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !tr.Unstable {
		t.Fatal("expected unstable flag on diverging euler run")
	}
	if tr.UnstableAt <= 0 || tr.UnstableAt > 10 {
		t.Errorf("implausible instability time: %v", tr.UnstableAt)
	}
	// the run still completes in full
	if tr.Len() != g.Len() {
		t.Errorf("unstable run truncated: %d of %d states", tr.Len(), g.Len())
	}

	// RK4 on the same grid stays well inside the bound
	tr4, err := Integrate(NewRK4(), h, g, x0, DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tr4.Unstable {
		t.Error("rk4 flagged unstable on a stable configuration")
	}
}

func TestIntegrate_CustomBound(t *testing.T) {
	h := mustHarmonic(t, 2*math.Pi)
	g := mustGrid(t, 0, 10, 101)

	tr, err := Integrate(NewEuler(), h, g, osc.State{1, 0}, Config{StateBound: 2.0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !tr.Unstable {
		t.Fatal("expected unstable flag with tight bound")
	}
}

func TestNew_UnknownStepper(t *testing.T) {
	if _, err := New("verlet"); err == nil {
		t.Error("expected error for unregistered stepper")
	}
}
