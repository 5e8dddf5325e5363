package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tomoyak/saturation-charts/internal/charts"
	"github.com/tomoyak/saturation-charts/internal/config"
	"github.com/tomoyak/saturation-charts/pkg/chart"
	"github.com/tomoyak/saturation-charts/pkg/constants"
	"github.com/tomoyak/saturation-charts/pkg/export"
	"github.com/tomoyak/saturation-charts/pkg/table"
	"github.com/tomoyak/saturation-charts/pkg/validation"
	"go.uber.org/zap"
)

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	inputPath := flag.String("input", "", "path to the tab-separated summary table, or - for stdin")
	outputFormatFlag := flag.String("output-format", "", "type of output override: html, png")
	outputDirFlag := flag.String("output-dir", "", "output directory override")
	modelsFlag := flag.String("models", "", "models override: log, linear, both")
	ratioFlag := flag.Float64("ratio", 0, "extrapolation ratio override (1.0 - 3.0)")
	titleFlag := flag.String("title", "", "chart title override")
	noExtrapolation := flag.Bool("no-extrapolation", false, "disable extrapolated ranges")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	// Load the config file to get logging configuration
	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		return
	}

	// Initialize logging based on config and CLI override
	logger, err := config.NewLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	if *inputPath == "" {
		logger.Fatal("missing -input flag pointing at the summary table",
			zap.String("op", "main"),
		)
	}

	// Determine output format (CLI override takes precedence over config)
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatHTML
	}
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	outputDir := conf.Output.Directory
	if *outputDirFlag != "" {
		outputDir = *outputDirFlag
	}
	if outputDir == "" {
		outputDir = "."
	}

	opts, err := buildOptions(conf, *modelsFlag, *ratioFlag, *titleFlag, *noExtrapolation)
	if err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	input, err := readInput(*inputPath)
	if err != nil {
		logger.Fatal("failed to read input table",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	records, err := table.Parse(input)
	if err != nil {
		logger.Fatal("failed to parse input table",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	result, err := charts.Generate(logger, records, opts)
	if err != nil {
		logger.Fatal("failed to generate charts",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	for _, warning := range result.Warnings {
		logger.Warn("Generation warning: "+warning,
			zap.String("op", "main"),
		)
	}

	base := outputBase(*inputPath)
	outputs := []struct {
		doc    *chart.Document
		suffix string
	}{
		{result.Acquisition, "acquisition"},
		{result.Cost, "cpa"},
	}

	for _, out := range outputs {
		path := filepath.Join(outputDir, fmt.Sprintf("%s_%s.%s", base, out.suffix, outputFormat))
		if err := writeDocument(out.doc, outputFormat, path); err != nil {
			logger.Fatal("failed to write chart document",
				zap.String("op", "main"),
				zap.String("path", path),
				zap.Error(err),
			)
		}
		logger.Info("chart written",
			zap.String("op", "main"),
			zap.String("path", path),
			zap.Int("traces", len(out.doc.Traces)),
		)
	}
}

func buildOptions(conf *config.Configuration, modelsFlag string, ratioFlag float64, titleFlag string, noExtrapolation bool) (charts.Options, error) {
	modelsValue := conf.Charts.Models
	if modelsFlag != "" {
		modelsValue = modelsFlag
	}
	models, err := charts.ParseModels(modelsValue)
	if err != nil {
		return charts.Options{}, err
	}

	ratio := conf.Charts.ExtrapolationRatio
	if ratioFlag != 0 {
		ratio = ratioFlag
	}

	title := conf.Charts.Title
	if titleFlag != "" {
		title = titleFlag
	}

	return charts.Options{
		Models:             models,
		ShowExtrapolation:  conf.Charts.ExtrapolationEnabled() && !noExtrapolation,
		ExtrapolationRatio: ratio,
		Title:              title,
	}, nil
}

func readInput(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func outputBase(inputPath string) string {
	if inputPath == "-" {
		return "charts"
	}
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	if base == "" {
		return "charts"
	}
	return base
}

func writeDocument(doc *chart.Document, format, path string) error {
	var data []byte
	var err error
	switch format {
	case constants.OutputFormatHTML:
		data, err = export.HTML(doc)
	case constants.OutputFormatPNG:
		data, err = export.PNG(doc, constants.DefaultPNGWidth, constants.DefaultPNGHeight)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
