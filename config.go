package scouter

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Color is a symbolic render color.
type Color string

const (
	Red     Color = "red"
	Green   Color = "green"
	Blue    Color = "blue"
	Yellow  Color = "yellow"
	White   Color = "white"
	Black   Color = "black"
	Gray    Color = "gray"
	Cyan    Color = "cyan"
	Magenta Color = "magenta"
)

var knownColors = map[Color]bool{
	Red: true, Green: true, Blue: true, Yellow: true, White: true,
	Black: true, Gray: true, Cyan: true, Magenta: true,
}

// Defaults. 41ms is roughly 24 frames per second.
const (
	DefaultCadence           = 41 * time.Millisecond
	DefaultShutdownThreshold = 2 * time.Second
	DefaultLabel             = "9001"
	DefaultLabelSize         = 110.0
	DefaultColor             = Red
)

// ErrInvalidConfig is wrapped by every Config validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the controller's tunable surface.
type Config struct {
	// Cadence is the delay between the end of one tick and the next fire.
	Cadence time.Duration `yaml:"cadence" json:"cadence"`
	// ShutdownThreshold is compared against the reduced elapsed time on every update.
	ShutdownThreshold time.Duration `yaml:"shutdown_threshold" json:"shutdown_threshold"`
	Label             string        `yaml:"label" json:"label"`
	LabelSize         float64       `yaml:"label_size" json:"label_size"`
	Color             Color         `yaml:"color" json:"color"`
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() Config {
	return Config{
		Cadence:           DefaultCadence,
		ShutdownThreshold: DefaultShutdownThreshold,
		Label:             DefaultLabel,
		LabelSize:         DefaultLabelSize,
		Color:             DefaultColor,
	}
}

// Validate checks the config for values the controller cannot run with.
func (c Config) Validate() error {
	if c.Cadence <= 0 {
		return fmt.Errorf("%w: cadence must be positive, got %s", ErrInvalidConfig, c.Cadence)
	}
	if c.ShutdownThreshold < 0 {
		return fmt.Errorf("%w: shutdown threshold must not be negative, got %s", ErrInvalidConfig, c.ShutdownThreshold)
	}
	if c.LabelSize <= 0 {
		return fmt.Errorf("%w: label size must be positive, got %v", ErrInvalidConfig, c.LabelSize)
	}
	if !knownColors[c.Color] {
		return fmt.Errorf("%w: unknown color %q", ErrInvalidConfig, c.Color)
	}
	return nil
}

// Frame returns the frame every update renders.
func (c Config) Frame() Frame {
	return Frame{Label: c.Label, Size: c.LabelSize, Color: c.Color}
}

// ParseConfig decodes YAML over DefaultConfig and validates the result. Fields left out
// keep their defaults; unknown fields are rejected. Durations use Go syntax ("41ms").
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads and parses a YAML config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read %s: %w", path, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}
