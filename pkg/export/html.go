// Package export serializes chart documents into downloadable artifacts: a
// self-contained interactive HTML file and an optional static PNG.
package export

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"

	"github.com/tomoyak/saturation-charts/pkg/chart"
)

//go:embed assets/*
var assets embed.FS

var htmlTemplate = template.Must(template.ParseFS(assets, "assets/chart.html.tmpl"))

// RendererJS returns the embedded chart renderer script so the web UI can
// serve the same renderer the exported documents embed.
func RendererJS() ([]byte, error) {
	return assets.ReadFile("assets/renderer.js")
}

// HTML renders a fully self-contained interactive document: the chart data
// and the rendering script are inlined, so the file opens in a browser with
// no network access.
func HTML(doc *chart.Document) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("nil chart document")
	}

	docJSON, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize chart document: %w", err)
	}

	renderer, err := RendererJS()
	if err != nil {
		return nil, fmt.Errorf("failed to load embedded renderer: %w", err)
	}

	var buf bytes.Buffer
	err = htmlTemplate.Execute(&buf, struct {
		Title        string
		RendererJS   template.JS
		DocumentJSON template.JS
	}{
		Title:        doc.Title,
		RendererJS:   template.JS(renderer),
		DocumentJSON: template.JS(docJSON),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render chart document: %w", err)
	}

	return buf.Bytes(), nil
}
