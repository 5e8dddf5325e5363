// Package chart assembles evaluated series into renderable chart documents.
//
// A Document is the chart's complete description: traces with styling and
// hover labels plus axis and title configuration. It is built once per
// generation and never mutated afterwards; the web UI, the HTML exporter, and
// the PNG exporter all consume the same structure.
package chart

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/tomoyak/saturation-charts/pkg/curve"
	"github.com/tomoyak/saturation-charts/pkg/format"
)

// Value is a sample value that serializes NaN as JSON null so renderers gap
// undefined points instead of plotting them.
type Value float64

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	if math.IsNaN(float64(v)) {
		return []byte("null"), nil
	}
	return json.Marshal(float64(v))
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*v = Value(math.NaN())
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*v = Value(f)
	return nil
}

// Trace is one drawable line on a chart.
type Trace struct {
	Name        string    `json:"name"`
	LegendGroup string    `json:"legendGroup"`
	ShowLegend  bool      `json:"showLegend"`
	Region      string    `json:"region"`
	X           []float64 `json:"x"`
	Y           []Value   `json:"y"`
	Text        []string  `json:"text"`
	Color       string    `json:"color"`
	Width       float64   `json:"width"`
	Dash        string    `json:"dash"`
	Opacity     float64   `json:"opacity"`
}

// Axis describes one chart axis. Both axes use thousands-grouped tick labels
// and start at zero: spend and acquisition counts are non-negative by
// definition.
type Axis struct {
	Title     string `json:"title"`
	RangeMode string `json:"rangeMode"`
}

// Document aggregates every trace of one metric's chart.
type Document struct {
	Title  string  `json:"title"`
	XAxis  Axis    `json:"xAxis"`
	YAxis  Axis    `json:"yAxis"`
	Traces []Trace `json:"traces"`
}

// New returns an empty document with axis configuration in place.
func New(title, xTitle, yTitle string) *Document {
	return &Document{
		Title: title,
		XAxis: Axis{Title: xTitle, RangeMode: "tozero"},
		YAxis: Axis{Title: yTitle, RangeMode: "tozero"},
	}
}

// CurveSpec carries the per-segment styling inputs for one fitted curve.
type CurveSpec struct {
	// Index is the segment's row order in the input table; it selects the
	// palette color so reruns of the same table color identically.
	Index int

	// Segment is the raw segment name used in hover labels.
	Segment string

	// Name is the legend label, including R² and, when both models are
	// shown, the model suffix.
	Name string

	// LegendGroup ties a curve's observed and extrapolated traces to a
	// single legend entry.
	LegendGroup string

	// Dotted draws the observed trace dotted instead of solid; used to
	// distinguish the linear model when both models share the chart.
	Dotted bool

	// XLabel and YLabel name the hover values, e.g. "Ad Spend" and
	// "New Users".
	XLabel string
	YLabel string
}

// AddCurve appends traces for the evaluated series of one fitted curve.
// Observed series get the full-weight line and the legend entry; extrapolated
// series are thinner, half-transparent, dashed, and legend-hidden.
func (d *Document) AddCurve(spec CurveSpec, series []curve.Series) {
	color := SegmentColor(spec.Index)

	for _, s := range series {
		trace := Trace{
			LegendGroup: spec.LegendGroup,
			Region:      s.Region.String(),
			X:           s.X,
			Color:       color,
		}

		if s.Region == curve.Observed {
			trace.Name = spec.Name
			trace.ShowLegend = true
			trace.Width = 2
			trace.Opacity = 1
			trace.Dash = "solid"
			if spec.Dotted {
				trace.Dash = "dot"
			}
		} else {
			trace.Name = spec.Name + " (extrapolated)"
			trace.ShowLegend = false
			trace.Width = 1.5
			trace.Opacity = 0.5
			trace.Dash = "dash"
		}

		trace.Y = make([]Value, len(s.Y))
		trace.Text = make([]string, len(s.Y))
		for i, y := range s.Y {
			trace.Y[i] = Value(y)
			trace.Text[i] = hoverLabel(spec, s.X[i], y)
		}

		d.Traces = append(d.Traces, trace)
	}
}

func hoverLabel(spec CurveSpec, x, y float64) string {
	yText := "n/a"
	if !math.IsNaN(y) {
		yText = format.Thousands(y)
	}
	return fmt.Sprintf("%s\n%s: %s\n%s: %s",
		spec.Segment, spec.XLabel, format.Thousands(x), spec.YLabel, yText)
}
