// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Linspace returns n evenly spaced samples over [start, stop], endpoints
// included. n must be at least 2.
func Linspace(start, stop float64, n int) []float64 {
	if n < 2 {
		n = 2
	}
	return floats.Span(make([]float64, n), start, stop)
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// Min returns the minimum of two float64 values
func Min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

// Max returns the maximum of two float64 values
func Max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// StrictlyIncreasing reports whether xs is strictly increasing. Series x
// values must satisfy this before they are handed to the chart assembler.
func StrictlyIncreasing(xs []float64) bool {
	for i := 1; i < len(xs); i++ {
		if xs[i] <= xs[i-1] {
			return false
		}
	}
	return true
}
