package table

import (
	"errors"
	"strings"
	"testing"
)

const sampleInput = "Segment\tLog Regression\tLog R2\tMin X\tMax X\tLinear Regression\tLinear R2\n" +
	"BrandA_Cat1\ty = 77.1095 * ln(x) + -656.0219\t0.61\t150\t195023\ty = 0.0013 * x + 54.4297\t0.60\n" +
	"BrandA_Cat2\ty = 365.3877 * ln(x) + -3853.9650\t0.81\t2198\t833174\ty = 0.0015 * x + 178.5103\t0.83\n" +
	"BrandA_Cat3\ty = 1051.4716 * ln(x) + -12066.0985\t0.82\t525\t2850648\ty = 0.0003 * x + 1977.5350\t0.76\n"

func TestParseSample(t *testing.T) {
	records, err := Parse(sampleInput)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}

	first := records[0]
	if first.Name != "BrandA_Cat1" {
		t.Errorf("name = %q, expected BrandA_Cat1", first.Name)
	}
	if first.LogEquation != "y = 77.1095 * ln(x) + -656.0219" {
		t.Errorf("log equation = %q", first.LogEquation)
	}
	if first.LogR2 == nil || *first.LogR2 != 0.61 {
		t.Errorf("log R2 = %v, expected 0.61", first.LogR2)
	}
	if first.XMin == nil || *first.XMin != 150 {
		t.Errorf("min x = %v, expected 150", first.XMin)
	}
	if first.XMax == nil || *first.XMax != 195023 {
		t.Errorf("max x = %v, expected 195023", first.XMax)
	}
	if !first.HasRange() {
		t.Error("expected a usable range")
	}
}

func TestParseMissingColumns(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		expected []string
	}{
		{"No range columns", "Segment\tLog Regression", []string{"Min X", "Max X"}},
		{"No segment column", "Log Regression\tMin X\tMax X", []string{"Segment"}},
		{"Wrong case", "segment\tmin x\tmax x", []string{"Segment", "Min X", "Max X"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.header + "\nfoo\tbar\tbaz\n")
			var missingErr *MissingColumnsError
			if !errors.As(err, &missingErr) {
				t.Fatalf("expected MissingColumnsError, got %v", err)
			}
			if len(missingErr.Columns) != len(tt.expected) {
				t.Fatalf("missing columns = %v, expected %v", missingErr.Columns, tt.expected)
			}
			for i, col := range tt.expected {
				if missingErr.Columns[i] != col {
					t.Errorf("missing columns = %v, expected %v", missingErr.Columns, tt.expected)
				}
			}
			for _, col := range tt.expected {
				if !strings.Contains(missingErr.Error(), col) {
					t.Errorf("error message %q does not name column %q", missingErr.Error(), col)
				}
			}
		})
	}
}

func TestParseNumericCoercion(t *testing.T) {
	input := "Segment\tLog Regression\tLog R2\tMin X\tMax X\n" +
		"A\ty = 2 * ln(x) + 3\tn/a\t150\t195,023\n" +
		"B\t\t\tabc\t100\n" +
		"C\ty = 5 * ln(x) + 1\t\t50\t\n"

	records, err := Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}

	if records[0].LogR2 != nil {
		t.Error("non-numeric R2 should be missing, not an error")
	}
	if records[0].XMax == nil || *records[0].XMax != 195023 {
		t.Errorf("thousands-separated max x = %v, expected 195023", records[0].XMax)
	}
	if records[0].LinearR2 != nil {
		t.Error("absent column should yield missing linear R2")
	}

	if records[1].XMin != nil {
		t.Error("non-numeric min x should be missing")
	}
	if records[1].HasRange() {
		t.Error("record without min x should not have a range")
	}

	if records[2].XMax != nil {
		t.Error("empty max x should be missing")
	}
}

func TestParseInvertedRange(t *testing.T) {
	input := "Segment\tMin X\tMax X\nA\t100\t50\n"
	records, err := Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if records[0].HasRange() {
		t.Error("max <= min must not count as a usable range")
	}
}

func TestParseSkipsBlankLines(t *testing.T) {
	input := "Segment\tMin X\tMax X\nA\t1\t2\n\n\nB\t3\t4\n"
	records, err := Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected blank lines skipped, got %d records", len(records))
	}
}

func TestParseEmptyInput(t *testing.T) {
	if _, err := Parse(""); err == nil {
		t.Fatal("expected error for empty input")
	}
}
