// Package equation parses regression equation strings into evaluable curves.
//
// Two textual shapes are recognized, matching how the upstream spreadsheet
// reports fits:
//
//	logarithmic: y = a * ln(x) + b
//	linear:      y = a * x + b
//
// A string that does not match the expected shape is not an error; it simply
// yields no curve, and the caller skips that segment for that model.
package equation

import (
	"math"
	"regexp"
	"strconv"
)

// Kind identifies the regression model a curve was fitted with.
type Kind int

const (
	Logarithmic Kind = iota
	Linear
)

// String returns the short model name used in legend labels.
func (k Kind) String() string {
	switch k {
	case Logarithmic:
		return "log"
	case Linear:
		return "linear"
	}
	return "unknown"
}

// Curve holds the coefficients of a fitted regression curve.
type Curve struct {
	A    float64
	B    float64
	Kind Kind
}

// Numeric tokens are restricted to sign, digits, and decimal point so that
// spreadsheet artifacts like "Infinity" or "1e9" fail the match instead of
// sneaking through strconv.
var (
	logPattern    = regexp.MustCompile(`y\s*=\s*(-?[0-9.]+)\s*\*\s*ln\(x\)\s*\+\s*(-?[0-9.]+)`)
	linearPattern = regexp.MustCompile(`y\s*=\s*(-?[0-9.]+)\s*\*\s*x\s*\+\s*(-?[0-9.]+)`)
)

// Parse extracts coefficients from raw for the given model kind. The second
// return value reports whether the string matched; a false result is the
// per-row skip signal, never a failure.
func Parse(kind Kind, raw string) (Curve, bool) {
	var pattern *regexp.Regexp
	switch kind {
	case Logarithmic:
		pattern = logPattern
	case Linear:
		pattern = linearPattern
	default:
		return Curve{}, false
	}

	match := pattern.FindStringSubmatch(raw)
	if match == nil {
		return Curve{}, false
	}

	a, errA := strconv.ParseFloat(match[1], 64)
	b, errB := strconv.ParseFloat(match[2], 64)
	if errA != nil || errB != nil {
		// Tokens like "1.2.3" match the character class but are not numbers.
		return Curve{}, false
	}

	return Curve{A: a, B: b, Kind: kind}, true
}

// Eval evaluates the curve at x. Logarithmic curves return NaN for x <= 0;
// the evaluator constructs domains so this only happens on bad input.
func (c Curve) Eval(x float64) float64 {
	switch c.Kind {
	case Logarithmic:
		if x <= 0 {
			return math.NaN()
		}
		return c.A*math.Log(x) + c.B
	case Linear:
		return c.A*x + c.B
	}
	return math.NaN()
}
