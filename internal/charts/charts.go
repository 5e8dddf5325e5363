// Package charts runs the full generation pipeline: parse each segment's
// regression equations, evaluate the fitted curves, derive the
// cost-per-acquisition metric, and assemble both chart documents.
package charts

import (
	"fmt"
	"strings"

	"github.com/tomoyak/saturation-charts/pkg/chart"
	"github.com/tomoyak/saturation-charts/pkg/constants"
	"github.com/tomoyak/saturation-charts/pkg/curve"
	"github.com/tomoyak/saturation-charts/pkg/equation"
	"github.com/tomoyak/saturation-charts/pkg/format"
	"github.com/tomoyak/saturation-charts/pkg/table"
	"github.com/tomoyak/saturation-charts/pkg/validation"
	"go.uber.org/zap"
)

// Models selects which regression models contribute to the charts.
type Models int

const (
	ModelsLog Models = iota
	ModelsLinear
	ModelsBoth
)

// ParseModels converts the user-facing model selection string.
func ParseModels(s string) (Models, error) {
	switch strings.TrimSpace(s) {
	case "", "log":
		return ModelsLog, nil
	case "linear":
		return ModelsLinear, nil
	case "both":
		return ModelsBoth, nil
	}
	return 0, fmt.Errorf("expected models of log, linear, or both, got %s", s)
}

// String returns the selection's configuration value.
func (m Models) String() string {
	switch m {
	case ModelsLog:
		return "log"
	case ModelsLinear:
		return "linear"
	case ModelsBoth:
		return "both"
	}
	return "unknown"
}

func (m Models) includesLog() bool    { return m == ModelsLog || m == ModelsBoth }
func (m Models) includesLinear() bool { return m == ModelsLinear || m == ModelsBoth }

// Options holds the user-selected generation settings.
type Options struct {
	Models             Models
	ShowExtrapolation  bool
	ExtrapolationRatio float64
	Title              string
}

// Normalize fills defaults and validates the settings.
func (o *Options) Normalize() error {
	if o.ExtrapolationRatio == 0 {
		o.ExtrapolationRatio = constants.DefaultExtrapolationRatio
	}
	if err := validation.ValidateExtrapolationRatio(o.ExtrapolationRatio); err != nil {
		return err
	}
	if strings.TrimSpace(o.Title) == "" {
		o.Title = constants.DefaultChartTitle
	}
	return nil
}

// Result carries both generated documents. Documents are immutable once the
// pipeline returns; the web UI holds them for later download without copying.
type Result struct {
	Acquisition *chart.Document
	Cost        *chart.Document
	Segments    int
	Warnings    []string
}

// Axis label text shared by both charts.
const (
	xAxisTitle           = "Monthly Ad Spend"
	acquisitionAxisTitle = "New Users"
	costAxisTitle        = "CPA (spend per new user)"
)

// Generate runs one synchronous pass over all segments and models. Per-row
// parse misses and domain errors never abort the pass; the former are
// silently skipped and the latter are collected as warnings. A panic anywhere
// in the pipeline is converted into a generic error so a malformed paste
// cannot take the process down.
func Generate(logger *zap.Logger, records []table.Record, opts Options) (result *Result, err error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	defer func() {
		if r := recover(); r != nil {
			logger.Error("chart generation panicked",
				zap.String("op", "charts.Generate"),
				zap.Any("panic", r),
			)
			result = nil
			err = fmt.Errorf("chart generation failed unexpectedly (%v); check that the input is tab-separated with a header row", r)
		}
	}()

	if err := opts.Normalize(); err != nil {
		return nil, err
	}

	global, ok := globalDomain(records, opts.ExtrapolationRatio)
	if !ok {
		return nil, fmt.Errorf("no rows with a usable spend range (numeric %s < %s)", table.ColumnMinX, table.ColumnMaxX)
	}

	result = &Result{
		Acquisition: chart.New(opts.Title, xAxisTitle, acquisitionAxisTitle),
		Cost:        chart.New(opts.Title+" - CPA", xAxisTitle, costAxisTitle),
		Segments:    len(records),
	}

	for i, record := range records {
		if !record.HasRange() {
			logger.Debug(fmt.Sprintf("skipping segment %s without a usable spend range", record.Name),
				zap.String("op", "charts.Generate"),
			)
			continue
		}
		observed := curve.Domain{Min: *record.XMin, Max: *record.XMax}

		if opts.Models.includesLog() {
			if c, ok := equation.Parse(equation.Logarithmic, record.LogEquation); ok {
				result.addModel(logger, i, record, c, record.LogR2, observed, global, opts)
			}
		}
		if opts.Models.includesLinear() {
			if c, ok := equation.Parse(equation.Linear, record.LinearEquation); ok {
				result.addModel(logger, i, record, c, record.LinearR2, observed, global, opts)
			}
		}
	}

	logger.Info("charts generated",
		zap.String("op", "charts.Generate"),
		zap.Int("segments", result.Segments),
		zap.Int("acquisitionTraces", len(result.Acquisition.Traces)),
		zap.Int("costTraces", len(result.Cost.Traces)),
		zap.Int("warnings", len(result.Warnings)),
	)

	return result, nil
}

func (r *Result) addModel(logger *zap.Logger, index int, record table.Record, c equation.Curve,
	r2 *float64, observed, global curve.Domain, opts Options) {

	both := opts.Models == ModelsBoth
	spec := chart.CurveSpec{
		Index:       index,
		Segment:     record.Name,
		Name:        legendLabel(record.Name, c.Kind, r2, both),
		LegendGroup: fmt.Sprintf("%s_%s", record.Name, c.Kind),
		Dotted:      both && c.Kind == equation.Linear,
		XLabel:      xAxisTitle,
		YLabel:      acquisitionAxisTitle,
	}

	series, err := curve.Acquisition(c, observed, global, opts.ShowExtrapolation)
	if err != nil {
		r.warn(logger, record.Name, c.Kind, err)
	} else {
		r.Acquisition.AddCurve(spec, series)
	}

	costSpec := spec
	costSpec.LegendGroup = fmt.Sprintf("%s_cpa_%s", record.Name, c.Kind)
	costSpec.YLabel = "CPA"

	costSeries, err := curve.Cost(c, observed, global, opts.ShowExtrapolation)
	if err != nil {
		r.warn(logger, record.Name, c.Kind, err)
	} else if costSeries != nil {
		r.Cost.AddCurve(costSpec, costSeries)
	}
}

func (r *Result) warn(logger *zap.Logger, segment string, kind equation.Kind, err error) {
	warning := fmt.Sprintf("segment %s: %s model: %v", segment, kind, err)
	logger.Warn(warning, zap.String("op", "charts.Generate"))
	r.Warnings = append(r.Warnings, warning)
}

func legendLabel(name string, kind equation.Kind, r2 *float64, both bool) string {
	label := name
	if both {
		label = fmt.Sprintf("%s %s", name, kind)
	}
	if r2 != nil {
		label = fmt.Sprintf("%s (%s)", label, format.R2(*r2))
	}
	return label
}

// globalDomain computes the shared x range across all usable rows, with the
// max scaled by the extrapolation ratio.
func globalDomain(records []table.Record, ratio float64) (curve.Domain, bool) {
	found := false
	var global curve.Domain
	for _, record := range records {
		if !record.HasRange() {
			continue
		}
		if !found {
			global = curve.Domain{Min: *record.XMin, Max: *record.XMax}
			found = true
			continue
		}
		if *record.XMin < global.Min {
			global.Min = *record.XMin
		}
		if *record.XMax > global.Max {
			global.Max = *record.XMax
		}
	}
	global.Max *= ratio
	return global, found
}
