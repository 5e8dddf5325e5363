package export

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/tomoyak/saturation-charts/pkg/chart"
	"github.com/tomoyak/saturation-charts/pkg/curve"
)

func testDocument() *chart.Document {
	doc := chart.New("Saturation", "Monthly Ad Spend", "New Users")
	doc.AddCurve(chart.CurveSpec{
		Index:       0,
		Segment:     "BrandA_Cat1",
		Name:        "BrandA_Cat1 (R²=0.610)",
		LegendGroup: "BrandA_Cat1_log",
		XLabel:      "Monthly Ad Spend",
		YLabel:      "New Users",
	}, []curve.Series{
		{Region: curve.Observed, X: []float64{150, 1000, 195023}, Y: []float64{386, 532, 884}},
		{Region: curve.ExtrapolatedHigh, X: []float64{195023, 292534}, Y: []float64{884, math.NaN()}},
	})
	return doc
}

func TestHTMLSelfContained(t *testing.T) {
	data, err := HTML(testDocument())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	html := string(data)

	for _, want := range []string{
		"<!DOCTYPE html>",
		"Saturation",
		"SaturationChart.render",
		"BrandA_Cat1 (R²=0.610)",
		"legendGroup",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("exported HTML missing %q", want)
		}
	}

	// Self-contained: nothing may be fetched at view time. The only URL in
	// the file is the SVG XML namespace, which is an identifier, not a fetch.
	for _, forbidden := range []string{"https://", "src=\"", "<link"} {
		if strings.Contains(html, forbidden) {
			t.Errorf("exported HTML references external resource via %q", forbidden)
		}
	}

	if !strings.Contains(html, "null") {
		t.Error("undefined samples should serialize as null in the embedded data")
	}
}

func TestHTMLNilDocument(t *testing.T) {
	if _, err := HTML(nil); err == nil {
		t.Fatal("expected error for nil document")
	}
}

func TestRendererJS(t *testing.T) {
	js, err := RendererJS()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Contains(js, []byte("SaturationChart")) {
		t.Error("renderer script missing entry point")
	}
}

func TestPNG(t *testing.T) {
	data, err := PNG(testDocument(), 800, 500)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("expected non-empty PNG output")
	}
	// PNG magic bytes.
	if !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Error("output does not look like a PNG file")
	}
}

func TestPNGEmptyDocument(t *testing.T) {
	doc := chart.New("Empty", "x", "y")
	if _, err := PNG(doc, 800, 500); err == nil {
		t.Fatal("expected error for document without drawable series")
	}
}

func TestDashArray(t *testing.T) {
	if dashArray("solid") != nil {
		t.Error("solid must have no dash array")
	}
	if len(dashArray("dash")) == 0 || len(dashArray("dot")) == 0 {
		t.Error("dash and dot styles must have dash arrays")
	}
}
