// Package constants provides shared constants for the saturation-charts application.
package constants

// Sampling constants
const (
	// ObservedSampleCount is the number of samples taken across a segment's
	// observed spend range.
	ObservedSampleCount = 300

	// ExtrapolatedSampleCount is the number of samples taken across each
	// extrapolated sub-range.
	ExtrapolatedSampleCount = 100
)

// Extrapolation ratio bounds. The ratio scales the largest observed max-x to
// obtain the global extrapolation bound.
const (
	MinExtrapolationRatio = 1.0

	MaxExtrapolationRatio = 3.0

	DefaultExtrapolationRatio = 1.5
)

// Chart defaults
const (
	// DefaultChartTitle is used when no title is supplied.
	DefaultChartTitle = "Ad Spend Saturation by Segment"

	// PaletteSize is the number of colors before segment colors cycle.
	PaletteSize = 15
)

// Output format constants
const (
	// OutputFormatHTML is the self-contained interactive document format
	OutputFormatHTML = "html"

	// OutputFormatPNG is the static image output format
	OutputFormatPNG = "png"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the web UI
	DefaultServerAddress = ":8080"

	// DefaultMaxBodySizeBytes is the default maximum request body size for
	// pasted tables (1 MB)
	DefaultMaxBodySizeBytes int64 = 1024 * 1024

	// DefaultSessionCapacity is the number of generated chart sets retained
	// for download before the oldest is evicted
	DefaultSessionCapacity = 32
)

// PNG export defaults
const (
	DefaultPNGWidth = 1280

	DefaultPNGHeight = 720
)
