// Package curve evaluates fitted regression curves into sampled series for
// charting. Evaluation is pure: identical inputs always produce identical
// samples.
package curve

import (
	"fmt"
	"math"

	"github.com/tomoyak/saturation-charts/pkg/constants"
	"github.com/tomoyak/saturation-charts/pkg/equation"
	"github.com/tomoyak/saturation-charts/pkg/mathutil"
)

// Region tags which part of the domain a series covers.
type Region int

const (
	Observed Region = iota
	ExtrapolatedLow
	ExtrapolatedHigh
)

// String returns the region name used in trace metadata.
func (r Region) String() string {
	switch r {
	case Observed:
		return "observed"
	case ExtrapolatedLow:
		return "extrapolated-low"
	case ExtrapolatedHigh:
		return "extrapolated-high"
	}
	return "unknown"
}

// Domain is an inclusive x range.
type Domain struct {
	Min float64
	Max float64
}

// Series is an ordered sequence of samples over one region. X is strictly
// increasing. Y holds NaN where the underlying function is not meaningfully
// defined; the chart assembler serializes those as nulls so renderers gap
// them instead of plotting spurious values.
type Series struct {
	Region Region
	X      []float64
	Y      []float64
}

// Acquisition samples the fitted acquisition curve over the observed domain,
// plus low/high extrapolated sub-ranges against the global domain when
// extrapolate is set. A logarithmic curve with a non-positive observed
// minimum is a domain error; the caller reports it and moves on to other
// segments.
func Acquisition(c equation.Curve, observed, global Domain, extrapolate bool) ([]Series, error) {
	if c.Kind == equation.Logarithmic && observed.Min <= 0 {
		return nil, fmt.Errorf("logarithmic model requires positive spend range, got min x = %v", observed.Min)
	}

	series := []Series{
		sample(c, observed.Min, observed.Max, constants.ObservedSampleCount, Observed),
	}

	if extrapolate {
		lowStart := global.Min
		if c.Kind == equation.Logarithmic && lowStart <= 0 {
			// ln(x) is undefined at or below zero; the low sub-range is
			// dropped rather than sampled into NaN noise.
			lowStart = observed.Min
		}
		if lowStart < observed.Min {
			series = append(series,
				sample(c, lowStart, observed.Min, constants.ExtrapolatedSampleCount, ExtrapolatedLow))
		}
		if global.Max > observed.Max {
			series = append(series,
				sample(c, observed.Max, global.Max, constants.ExtrapolatedSampleCount, ExtrapolatedHigh))
		}
	}

	return series, nil
}

// MinCostPoint returns the spend level minimizing cost-per-acquisition
// x / (a*ln(x)+b) for a logarithmic curve, using the closed form
// x* = exp(1 - b/a). The point is only defined when a > 0 and the
// acquisition value at x* is positive.
func MinCostPoint(c equation.Curve) (float64, bool) {
	if c.Kind != equation.Logarithmic || c.A <= 0 {
		return 0, false
	}
	x := math.Exp(1 - c.B/c.A)
	if c.Eval(x) <= 0 {
		return 0, false
	}
	return x, true
}

// Cost samples the derived cost-per-acquisition metric, spend divided by
// acquisition volume. For logarithmic curves the observed series is
// restricted to the monotonically increasing branch starting at the cost
// minimum (falling back to the observed minimum when the minimum point is
// undefined); if the restricted start reaches past the observed maximum the
// segment contributes nothing. Extrapolation is high-side only.
func Cost(c equation.Curve, observed, global Domain, extrapolate bool) ([]Series, error) {
	start := observed.Min
	if c.Kind == equation.Logarithmic {
		if observed.Min <= 0 {
			return nil, fmt.Errorf("logarithmic model requires positive spend range, got min x = %v", observed.Min)
		}
		if x, ok := MinCostPoint(c); ok {
			start = mathutil.Max(x, observed.Min)
		}
	}

	if start >= observed.Max {
		return nil, nil
	}

	series := []Series{
		costSample(c, start, observed.Max, constants.ObservedSampleCount, Observed),
	}

	if extrapolate && global.Max > observed.Max {
		series = append(series,
			costSample(c, observed.Max, global.Max, constants.ExtrapolatedSampleCount, ExtrapolatedHigh))
	}

	return series, nil
}

func sample(c equation.Curve, from, to float64, n int, region Region) Series {
	xs := mathutil.Linspace(from, to, n)
	ys := make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = c.Eval(x)
	}
	return Series{Region: region, X: xs, Y: ys}
}

func costSample(c equation.Curve, from, to float64, n int, region Region) Series {
	xs := mathutil.Linspace(from, to, n)
	ys := make([]float64, len(xs))
	for i, x := range xs {
		volume := c.Eval(x)
		if volume > 0 {
			ys[i] = x / volume
		} else {
			ys[i] = math.NaN()
		}
	}
	return Series{Region: region, X: xs, Y: ys}
}
