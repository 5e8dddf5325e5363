package format

import "testing"

func TestThousands(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected string
	}{
		{"Small value", 150, "150"},
		{"Thousands", 195023, "195,023"},
		{"Millions", 2850648, "2,850,648"},
		{"Rounds fractions", 389.44, "389"},
		{"Rounds up", 389.5, "390"},
		{"Zero", 0, "0"},
		{"Negative", -656.0219, "-656"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Thousands(tt.input); got != tt.expected {
				t.Errorf("Thousands(%v) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestR2(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected string
	}{
		{"Typical", 0.61, "R²=0.610"},
		{"High", 0.8123, "R²=0.812"},
		{"One", 1, "R²=1.000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := R2(tt.input); got != tt.expected {
				t.Errorf("R2(%v) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}
