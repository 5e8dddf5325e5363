package server

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tomoyak/saturation-charts/pkg/constants"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Address != constants.DefaultServerAddress {
		t.Errorf("address = %q, expected default", cfg.Address)
	}
	if cfg.BodySizeBytes() != constants.DefaultMaxBodySizeBytes {
		t.Errorf("body size = %d, expected default", cfg.BodySizeBytes())
	}
	if cfg.SessionCapacity != constants.DefaultSessionCapacity {
		t.Errorf("session capacity = %d, expected default", cfg.SessionCapacity)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("missing file should fall back to defaults, got %v", err)
	}
	if cfg.Address != constants.DefaultServerAddress {
		t.Errorf("address = %q, expected default", cfg.Address)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	content := `address: ":9090"
maxBodySize: 2M
sessionCapacity: 8
logging:
  level: debug
`
	path := filepath.Join(t.TempDir(), "server-config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Address != ":9090" {
		t.Errorf("address = %q, expected :9090", cfg.Address)
	}
	if cfg.BodySizeBytes() != 2*1024*1024 {
		t.Errorf("body size = %d, expected 2 MB", cfg.BodySizeBytes())
	}
	if cfg.SessionCapacity != 8 {
		t.Errorf("session capacity = %d, expected 8", cfg.SessionCapacity)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("log level = %q, expected debug", cfg.Logging.Level)
	}
}

func TestParseSize(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expected  int64
		expectErr bool
	}{
		{"Plain bytes", "1024", 1024, false},
		{"Kilobytes", "256K", 256 * 1024, false},
		{"Kilobytes long", "256KB", 256 * 1024, false},
		{"Megabytes", "10M", 10 * 1024 * 1024, false},
		{"Gigabytes", "1G", 1024 * 1024 * 1024, false},
		{"Lowercase unit", "2m", 2 * 1024 * 1024, false},
		{"Empty defaults", "", constants.DefaultMaxBodySizeBytes, false},
		{"Unknown unit", "5T", 0, true},
		{"No digits", "MB", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSize(tt.input)
			if (err != nil) != tt.expectErr {
				t.Fatalf("ParseSize(%q) error = %v, expectErr %v", tt.input, err, tt.expectErr)
			}
			if err == nil && got != tt.expected {
				t.Errorf("ParseSize(%q) = %d, expected %d", tt.input, got, tt.expected)
			}
		})
	}
}
