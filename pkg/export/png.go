package export

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/tomoyak/saturation-charts/pkg/chart"
	"github.com/tomoyak/saturation-charts/pkg/format"
)

// PNG renders a static raster version of the chart document. Extrapolated
// traces keep their thin dashed styling; only observed traces are named so
// the legend matches the interactive document's grouping.
func PNG(doc *chart.Document, width, height int) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("nil chart document")
	}

	xMax, yMax := dataMax(doc)

	graph := gochart.Chart{
		Title:  doc.Title,
		Width:  width,
		Height: height,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 48, Left: 16, Right: 16, Bottom: 16},
		},
		XAxis: gochart.XAxis{
			Name:           doc.XAxis.Title,
			ValueFormatter: thousandsFormatter,
			Range:          &gochart.ContinuousRange{Min: 0, Max: xMax},
		},
		YAxis: gochart.YAxis{
			Name:           doc.YAxis.Title,
			ValueFormatter: thousandsFormatter,
			Range:          &gochart.ContinuousRange{Min: 0, Max: yMax * 1.05},
		},
	}

	for _, trace := range doc.Traces {
		xs, ys := definedSamples(trace)
		if len(xs) < 2 {
			continue
		}

		name := ""
		if trace.ShowLegend {
			name = trace.Name
		}

		graph.Series = append(graph.Series, gochart.ContinuousSeries{
			Name:    name,
			XValues: xs,
			YValues: ys,
			Style: gochart.Style{
				StrokeColor:     traceColor(trace),
				StrokeWidth:     trace.Width,
				StrokeDashArray: dashArray(trace.Dash),
			},
		})
	}

	if len(graph.Series) == 0 {
		return nil, fmt.Errorf("chart document has no drawable series")
	}

	graph.Elements = []gochart.Renderable{gochart.Legend(&graph)}

	var buf bytes.Buffer
	if err := graph.Render(gochart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render PNG: %w", err)
	}
	return buf.Bytes(), nil
}

func thousandsFormatter(v interface{}) string {
	if value, ok := v.(float64); ok {
		return format.Thousands(value)
	}
	return fmt.Sprintf("%v", v)
}

// definedSamples drops NaN samples; go-chart has no notion of gaps, so the
// PNG simply connects across undefined regions.
func definedSamples(trace chart.Trace) ([]float64, []float64) {
	xs := make([]float64, 0, len(trace.X))
	ys := make([]float64, 0, len(trace.Y))
	for i := range trace.X {
		y := float64(trace.Y[i])
		if math.IsNaN(y) {
			continue
		}
		xs = append(xs, trace.X[i])
		ys = append(ys, y)
	}
	return xs, ys
}

func traceColor(trace chart.Trace) drawing.Color {
	color := drawing.ColorFromHex(strings.TrimPrefix(trace.Color, "#"))
	if trace.Opacity < 1 {
		color = color.WithAlpha(uint8(trace.Opacity * 255))
	}
	return color
}

func dashArray(dash string) []float64 {
	switch dash {
	case "dash":
		return []float64{8, 5}
	case "dot":
		return []float64{2, 4}
	}
	return nil
}

func dataMax(doc *chart.Document) (float64, float64) {
	xMax, yMax := 1.0, 1.0
	for _, trace := range doc.Traces {
		for _, x := range trace.X {
			if x > xMax {
				xMax = x
			}
		}
		for _, y := range trace.Y {
			if v := float64(y); !math.IsNaN(v) && v > yMax {
				yMax = v
			}
		}
	}
	return xMax, yMax
}
