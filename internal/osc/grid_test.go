package osc

import (
	"errors"
	"math"
	"testing"
)

func TestNewGrid(t *testing.T) {
	g, err := NewGrid(0, 10, 1000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if g.Len() != 1000 {
		t.Errorf("expected 1000 points, got %d", g.Len())
	}
	wantDt := 10.0 / 999.0
	if math.Abs(g.Dt()-wantDt) > 1e-15 {
		t.Errorf("expected dt %v, got %v", wantDt, g.Dt())
	}
	if g.At(0) != 0 {
		t.Errorf("expected first point 0, got %v", g.At(0))
	}
	if math.Abs(g.End()-10) > 1e-12 {
		t.Errorf("expected last point 10, got %v", g.End())
	}
}

func TestNewGrid_Uniform(t *testing.T) {
	g, err := NewGrid(1.5, 2.5, 11)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 1; i < g.Len(); i++ {
		spacing := g.At(i) - g.At(i-1)
		if math.Abs(spacing-g.Dt()) > 1e-12 {
			t.Fatalf("non-uniform spacing at %d: %v vs dt %v", i, spacing, g.Dt())
		}
	}
}

func TestNewGrid_Rejection(t *testing.T) {
	tests := []struct {
		name    string
		start   float64
		end     float64
		n       int
		wantErr error
	}{
		{"single point", 0, 10, 1, ErrGridTooShort},
		{"zero points", 0, 10, 0, ErrGridTooShort},
		{"empty span", 5, 5, 10, ErrZeroSpan},
		{"inverted span", 10, 0, 10, ErrZeroSpan},
		{"nan start", math.NaN(), 10, 10, ErrNotFinite},
		{"inf end", 0, math.Inf(1), 10, ErrNotFinite},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGrid(tt.start, tt.end, tt.n)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestGrid_TimesIsCopy(t *testing.T) {
	g, err := NewGrid(0, 1, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ts := g.Times()
	ts[2] = 99

	if g.At(2) == 99 {
		t.Error("mutating Times() result must not affect the grid")
	}
}
