package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/MrWong99/wavetrain/internal/config"
)

func TestLoadFromReader_AppliesDefaults(t *testing.T) {
	t.Parallel()
	yaml := `
dataset:
  manifest: data/train.lst
`
	cfg, err := config.LoadFromReader(strings.NewReader(yaml))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.LogLevel != config.LogInfo {
		t.Errorf("log level = %q, want default %q", cfg.LogLevel, config.LogInfo)
	}
	if cfg.Dataset.FrameLength != 16384 {
		t.Errorf("frame length = %d, want default 16384", cfg.Dataset.FrameLength)
	}
	if cfg.Dataset.Mode != config.ModeResident {
		t.Errorf("mode = %q, want default %q", cfg.Dataset.Mode, config.ModeResident)
	}
}

func TestLoadFromReader_FullConfig(t *testing.T) {
	t.Parallel()
	yaml := `
log_level: debug
dataset:
  manifest: /corpus/pairs.lst
  frame_length: 1024
  mode: on_demand
metrics:
  addr: ":9090"
`
	cfg, err := config.LoadFromReader(strings.NewReader(yaml))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.LogLevel != config.LogDebug {
		t.Errorf("log level = %q, want %q", cfg.LogLevel, config.LogDebug)
	}
	if cfg.Dataset.Manifest != "/corpus/pairs.lst" {
		t.Errorf("manifest = %q, want %q", cfg.Dataset.Manifest, "/corpus/pairs.lst")
	}
	if cfg.Dataset.FrameLength != 1024 {
		t.Errorf("frame length = %d, want 1024", cfg.Dataset.FrameLength)
	}
	if cfg.Dataset.Mode != config.ModeOnDemand {
		t.Errorf("mode = %q, want %q", cfg.Dataset.Mode, config.ModeOnDemand)
	}
	if cfg.Metrics.Addr != ":9090" {
		t.Errorf("metrics addr = %q, want %q", cfg.Metrics.Addr, ":9090")
	}
}

func TestLoadFromReader_RejectsUnknownFields(t *testing.T) {
	t.Parallel()
	yaml := `
dataset:
  manifest: data/train.lst
  window_length: 1024
`
	_, err := config.LoadFromReader(strings.NewReader(yaml))
	if err == nil {
		t.Fatal("expected error for unknown field, got nil")
	}
	if !strings.Contains(err.Error(), "window_length") {
		t.Errorf("error should name the unknown field, got: %v", err)
	}
}

func TestValidate_MissingManifest(t *testing.T) {
	t.Parallel()
	yaml := `
log_level: info
`
	_, err := config.LoadFromReader(strings.NewReader(yaml))
	if err == nil {
		t.Fatal("expected error for missing manifest, got nil")
	}
	if !strings.Contains(err.Error(), "dataset.manifest") {
		t.Errorf("error should mention dataset.manifest, got: %v", err)
	}
}

func TestValidate_InvalidFrameLength(t *testing.T) {
	t.Parallel()
	yaml := `
dataset:
  manifest: data/train.lst
  frame_length: -4
`
	_, err := config.LoadFromReader(strings.NewReader(yaml))
	if err == nil {
		t.Fatal("expected error for negative frame_length, got nil")
	}
	if !strings.Contains(err.Error(), "frame_length") {
		t.Errorf("error should mention frame_length, got: %v", err)
	}
}

func TestValidate_InvalidMode(t *testing.T) {
	t.Parallel()
	yaml := `
dataset:
  manifest: data/train.lst
  mode: cached
`
	_, err := config.LoadFromReader(strings.NewReader(yaml))
	if err == nil {
		t.Fatal("expected error for invalid mode, got nil")
	}
	if !strings.Contains(err.Error(), "dataset.mode") {
		t.Errorf("error should mention dataset.mode, got: %v", err)
	}
}

func TestValidate_MultipleErrors(t *testing.T) {
	t.Parallel()
	yaml := `
log_level: loud
dataset:
  frame_length: 0
  mode: cached
`
	_, err := config.LoadFromReader(strings.NewReader(yaml))
	if err == nil {
		t.Fatal("expected errors, got nil")
	}
	errStr := err.Error()
	for _, want := range []string{"log_level", "dataset.manifest", "frame_length", "dataset.mode"} {
		if !strings.Contains(errStr, want) {
			t.Errorf("joined error should mention %q, got: %v", want, err)
		}
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yml"))
	if err == nil {
		t.Fatal("expected error for missing config file, got nil")
	}
}

func TestLoad_FromFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "wavetrain.yml")
	body := "dataset:\n  manifest: data/train.lst\n  frame_length: 2048\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Dataset.FrameLength != 2048 {
		t.Errorf("frame length = %d, want 2048", cfg.Dataset.FrameLength)
	}
}
