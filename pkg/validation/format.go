// Package validation provides common validation utilities.
package validation

import (
	"fmt"

	"github.com/tomoyak/saturation-charts/pkg/constants"
)

// ValidateOutputFormat checks if the output format is one of the supported formats.
func ValidateOutputFormat(format string) error {
	if format != constants.OutputFormatHTML && format != constants.OutputFormatPNG {
		return fmt.Errorf("expected output format of %s or %s, got %s",
			constants.OutputFormatHTML, constants.OutputFormatPNG, format)
	}
	return nil
}

// ValidateExtrapolationRatio checks the extrapolation ratio against its
// permitted range.
func ValidateExtrapolationRatio(ratio float64) error {
	if ratio < constants.MinExtrapolationRatio || ratio > constants.MaxExtrapolationRatio {
		return fmt.Errorf("extrapolation ratio must be between %.1f and %.1f, got %v",
			constants.MinExtrapolationRatio, constants.MaxExtrapolationRatio, ratio)
	}
	return nil
}
