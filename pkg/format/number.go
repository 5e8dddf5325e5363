// Package format provides number formatting helpers for chart labels.
package format

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Thousands renders a value rounded to a whole number with thousands
// separators (e.g., "195,023"), matching spend and acquisition hover labels.
func Thousands(v float64) string {
	return printer.Sprintf("%.0f", v)
}

// R2 renders a coefficient of determination for legend labels, e.g. "R²=0.610".
func R2(v float64) string {
	return fmt.Sprintf("R²=%.3f", v)
}
