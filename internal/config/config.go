// Package config defines the application configuration structures and
// includes functions for loading and parsing the config.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"github.com/tomoyak/saturation-charts/pkg/constants"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Configuration holds all configuration for saturation-charts.
type Configuration struct {
	Charts  ChartsConfig  `yaml:"charts,omitempty"`
	Output  OutputConfig  `yaml:"output,omitempty"`
	Logging LoggingConfig `yaml:"logging,omitempty"`
}

// ChartsConfig holds default chart generation settings; each can be
// overridden per invocation from the CLI or the web UI.
type ChartsConfig struct {
	Models             string  `yaml:"models,omitempty"`             // log, linear, both
	ShowExtrapolation  *bool   `yaml:"showExtrapolation,omitempty"`  // default true
	ExtrapolationRatio float64 `yaml:"extrapolationRatio,omitempty"` // 1.0 - 3.0
	Title              string  `yaml:"title,omitempty"`
}

// OutputConfig holds output configuration for the CLI.
type OutputConfig struct {
	Format    string `yaml:"format,omitempty"`    // html, png
	Directory string `yaml:"directory,omitempty"` // where generated files land
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// ExtrapolationEnabled returns the configured toggle, defaulting to on.
func (c ChartsConfig) ExtrapolationEnabled() bool {
	if c.ShowExtrapolation == nil {
		return true
	}
	return *c.ShowExtrapolation
}

// LoadConfiguration loads the YAML-formatted configuration at configPath. A
// missing file is not an error; defaults apply so the CLI works without one.
func LoadConfiguration(configPath string) (*Configuration, error) {
	configuration := &Configuration{
		Charts: ChartsConfig{
			Models:             "log",
			ExtrapolationRatio: constants.DefaultExtrapolationRatio,
			Title:              constants.DefaultChartTitle,
		},
		Output: OutputConfig{
			Format:    constants.OutputFormatHTML,
			Directory: ".",
		},
	}

	if configPath == "" {
		return configuration, nil
	}

	viper.SetConfigFile(configPath)
	viper.AutomaticEnv()

	viper.SetConfigType("yml")

	if err := viper.ReadInConfig(); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return configuration, nil
		}
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	if err := viper.Unmarshal(configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return configuration, nil
}

// NewLogger creates a zap logger based on configuration and CLI override.
func NewLogger(loggingConfig LoggingConfig, logLevelOverride string) (*zap.Logger, error) {
	// Determine log level (CLI override takes precedence)
	level := loggingConfig.Level
	if logLevelOverride != "" {
		level = logLevelOverride
	}
	if level == "" {
		level = "info"
	}

	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	format := loggingConfig.Format
	if format == "" {
		format = "json"
	}

	var zapConfig zap.Config
	switch format {
	case "console":
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	case "json":
		zapConfig = zap.NewProductionConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}

	if loggingConfig.OutputFile != "" {
		if dir := filepath.Dir(loggingConfig.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %v", dir, err)
			}
		}

		if file, err := os.OpenFile(loggingConfig.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %v", loggingConfig.OutputFile, err)
		} else {
			_ = file.Close()
		}

		zapConfig.OutputPaths = []string{loggingConfig.OutputFile}
		zapConfig.ErrorOutputPaths = []string{loggingConfig.OutputFile}
	}

	return zapConfig.Build()
}
