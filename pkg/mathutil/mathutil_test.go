package mathutil

import (
	"math"
	"testing"
)

func TestLinspace(t *testing.T) {
	tests := []struct {
		name  string
		start float64
		stop  float64
		n     int
	}{
		{"Observed range", 150, 195023, 300},
		{"Extrapolated range", 195023, 292534.5, 100},
		{"Small range", 0, 1, 2},
		{"Single unit", 1, 2, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			xs := Linspace(tt.start, tt.stop, tt.n)
			if len(xs) != tt.n {
				t.Fatalf("Linspace returned %d samples, expected %d", len(xs), tt.n)
			}
			if math.Abs(xs[0]-tt.start) > 1e-9 {
				t.Errorf("first sample = %v, expected %v", xs[0], tt.start)
			}
			if math.Abs(xs[len(xs)-1]-tt.stop) > 1e-9 {
				t.Errorf("last sample = %v, expected %v", xs[len(xs)-1], tt.stop)
			}
			if !StrictlyIncreasing(xs) {
				t.Error("samples are not strictly increasing")
			}
		})
	}
}

func TestLinspaceEvenSpacing(t *testing.T) {
	xs := Linspace(0, 10, 11)
	for i, x := range xs {
		if math.Abs(x-float64(i)) > 1e-9 {
			t.Errorf("sample %d = %v, expected %v", i, x, float64(i))
		}
	}
}

func TestLinspaceDegenerateCount(t *testing.T) {
	xs := Linspace(1, 5, 1)
	if len(xs) != 2 {
		t.Fatalf("expected count clamped to 2, got %d", len(xs))
	}
}

func TestStrictlyIncreasing(t *testing.T) {
	tests := []struct {
		name     string
		xs       []float64
		expected bool
	}{
		{"Increasing", []float64{1, 2, 3}, true},
		{"Repeated value", []float64{1, 2, 2}, false},
		{"Decreasing", []float64{3, 2, 1}, false},
		{"Single element", []float64{1}, true},
		{"Empty", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StrictlyIncreasing(tt.xs); got != tt.expected {
				t.Errorf("StrictlyIncreasing(%v) = %v, expected %v", tt.xs, got, tt.expected)
			}
		})
	}
}

func TestMinMax(t *testing.T) {
	if Min(2, 1) != 1 || Min(1, 2) != 1 {
		t.Error("Min failed")
	}
	if Max(2, 1) != 2 || Max(1, 2) != 2 {
		t.Error("Max failed")
	}
}

func TestWithinTolerance(t *testing.T) {
	if !WithinTolerance(1.0, 1.05, 0.1) {
		t.Error("expected values within tolerance")
	}
	if WithinTolerance(1.0, 1.15, 0.1) {
		t.Error("expected values outside tolerance")
	}
}
