package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// minSensibleFrameLength is the frame size below which [Validate] warns that
// the window is unusually short for training material.
const minSensibleFrameLength = 256

// Load reads the YAML configuration file at path and returns a validated
// [Config]. It is a convenience wrapper around [LoadFromReader].
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes a YAML config from r on top of [DefaultConfig] and
// validates the result. Unknown fields are rejected. Useful in tests where
// configs are constructed from string literals.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that cfg contains a coherent set of values.
// It returns a joined error listing all validation failures found.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.LogLevel != "" && !cfg.LogLevel.IsValid() {
		errs = append(errs, fmt.Errorf("log_level %q is invalid; valid values: debug, info, warn, error", cfg.LogLevel))
	}

	if cfg.Dataset.Manifest == "" {
		errs = append(errs, errors.New("dataset.manifest is required"))
	}
	if cfg.Dataset.FrameLength <= 0 {
		errs = append(errs, fmt.Errorf("dataset.frame_length must be positive, got %d", cfg.Dataset.FrameLength))
	} else if cfg.Dataset.FrameLength < minSensibleFrameLength {
		slog.Warn("dataset.frame_length is unusually short for training windows",
			"frame_length", cfg.Dataset.FrameLength,
		)
	}
	if cfg.Dataset.Mode != "" && !cfg.Dataset.Mode.IsValid() {
		errs = append(errs, fmt.Errorf("dataset.mode %q is invalid; valid values: resident, on_demand", cfg.Dataset.Mode))
	}

	return errors.Join(errs...)
}
