package scouter_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/comalice/scouter"
)

func TestDefaultConfig(t *testing.T) {
	cfg := scouter.DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Cadence != 41*time.Millisecond || cfg.ShutdownThreshold != 2*time.Second {
		t.Errorf("unexpected timing defaults: %+v", cfg)
	}
	if cfg.Frame() != (scouter.Frame{Label: "9001", Size: 110, Color: scouter.Red}) {
		t.Errorf("unexpected frame default: %+v", cfg.Frame())
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*scouter.Config)
	}{
		{"zero cadence", func(c *scouter.Config) { c.Cadence = 0 }},
		{"negative cadence", func(c *scouter.Config) { c.Cadence = -time.Second }},
		{"negative threshold", func(c *scouter.Config) { c.ShutdownThreshold = -1 }},
		{"zero size", func(c *scouter.Config) { c.LabelSize = 0 }},
		{"unknown color", func(c *scouter.Config) { c.Color = "chartreuse" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := scouter.DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, scouter.ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}

	cfg := scouter.DefaultConfig()
	cfg.Label = ""
	cfg.ShutdownThreshold = 0
	if err := cfg.Validate(); err != nil {
		t.Errorf("empty label and zero threshold are allowed, got %v", err)
	}
}

func TestParseConfig(t *testing.T) {
	cfg, err := scouter.ParseConfig([]byte(`
cadence: 16ms
shutdown_threshold: 5s
label: "over nine thousand"
color: green
`))
	if err != nil {
		t.Fatalf("ParseConfig failed: %v", err)
	}
	if cfg.Cadence != 16*time.Millisecond || cfg.ShutdownThreshold != 5*time.Second {
		t.Errorf("unexpected durations: %+v", cfg)
	}
	if cfg.Label != "over nine thousand" || cfg.Color != scouter.Green {
		t.Errorf("unexpected frame fields: %+v", cfg)
	}
	if cfg.LabelSize != scouter.DefaultLabelSize {
		t.Errorf("omitted field must keep its default, got %v", cfg.LabelSize)
	}
}

func TestParseConfigEmpty(t *testing.T) {
	cfg, err := scouter.ParseConfig(nil)
	if err != nil {
		t.Fatalf("ParseConfig(nil) failed: %v", err)
	}
	if cfg != scouter.DefaultConfig() {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name, doc, want string
	}{
		{"unknown field", "cadance: 41ms\n", "yaml"},
		{"bad duration", "cadence: soon\n", "yaml"},
		{"invalid value", "cadence: 0s\n", "invalid config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := scouter.ParseConfig([]byte(tt.doc))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scouter.yaml")
	if err := os.WriteFile(path, []byte("label_size: 64\ncolor: white\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := scouter.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.LabelSize != 64 || cfg.Color != scouter.White {
		t.Errorf("unexpected config: %+v", cfg)
	}

	if _, err := scouter.LoadConfig(filepath.Join(dir, "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected ErrNotExist, got %v", err)
	}
}
