// Package table parses the tab-separated statistics summary pasted from the
// source spreadsheet into per-segment records.
package table

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
)

// Column names are matched exactly against the header line, case-sensitive.
const (
	ColumnSegment        = "Segment"
	ColumnLogEquation    = "Log Regression"
	ColumnLogR2          = "Log R2"
	ColumnMinX           = "Min X"
	ColumnMaxX           = "Max X"
	ColumnLinearEquation = "Linear Regression"
	ColumnLinearR2       = "Linear R2"
)

// RequiredColumns lists the columns that must be present for any chart to be
// generated.
func RequiredColumns() []string {
	return []string{ColumnSegment, ColumnMinX, ColumnMaxX}
}

// Record is one row of the input table. Numeric fields are nil when the cell
// was empty or not parseable as a number; that row simply contributes nothing
// that depends on the missing field.
type Record struct {
	Name           string
	LogEquation    string
	LinearEquation string
	LogR2          *float64
	LinearR2       *float64
	XMin           *float64
	XMax           *float64
}

// HasRange reports whether the record carries a usable spend range.
func (r Record) HasRange() bool {
	return r.XMin != nil && r.XMax != nil && *r.XMax > *r.XMin
}

// MissingColumnsError reports which required header columns were absent.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Columns, ", "))
}

// Parse reads tab-separated text whose first line names the columns. Missing
// required columns are fatal; anything else degrades per-row.
func Parse(input string) ([]Record, error) {
	reader := csv.NewReader(strings.NewReader(input))
	reader.Comma = '\t'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse table data: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("input is empty")
	}

	index := make(map[string]int)
	for i, name := range rows[0] {
		index[strings.TrimSpace(name)] = i
	}

	var missing []string
	for _, name := range RequiredColumns() {
		if _, ok := index[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Columns: missing}
	}

	records := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if blankRow(row) {
			continue
		}
		records = append(records, Record{
			Name:           cell(row, index, ColumnSegment),
			LogEquation:    cell(row, index, ColumnLogEquation),
			LinearEquation: cell(row, index, ColumnLinearEquation),
			LogR2:          numericCell(row, index, ColumnLogR2),
			LinearR2:       numericCell(row, index, ColumnLinearR2),
			XMin:           numericCell(row, index, ColumnMinX),
			XMax:           numericCell(row, index, ColumnMaxX),
		})
	}

	return records, nil
}

func blankRow(row []string) bool {
	for _, field := range row {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}

func cell(row []string, index map[string]int, column string) string {
	i, ok := index[column]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func numericCell(row []string, index map[string]int, column string) *float64 {
	raw := cell(row, index, column)
	if raw == "" {
		return nil
	}
	// Spreadsheets often carry thousands separators into the paste.
	raw = strings.ReplaceAll(raw, ",", "")
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}
