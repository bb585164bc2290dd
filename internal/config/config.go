// Package config provides the configuration schema and loader for the
// wavetrain data loader tool.
package config

// defaultFrameLength is roughly one second of audio at 16 kHz.
const defaultFrameLength = 16384

// LogLevel controls log verbosity for the wavetrain tool.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is a recognised log level.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}
	return false
}

// Mode selects how a dataset keeps decoded audio between accesses.
type Mode string

const (
	// ModeResident decodes every file once at construction and keeps all
	// audio in memory; accesses never touch the disk.
	ModeResident Mode = "resident"

	// ModeOnDemand keeps only file paths and decodes the referenced files
	// again on every access, trading I/O for memory.
	ModeOnDemand Mode = "on_demand"
)

// IsValid reports whether m is a recognised dataset mode.
func (m Mode) IsValid() bool {
	return m == ModeResident || m == ModeOnDemand
}

// Config is the root configuration structure for wavetrain.
// It is typically loaded from a YAML file using [Load] or [LoadFromReader].
type Config struct {
	// LogLevel controls verbosity. Defaults to "info".
	LogLevel LogLevel `yaml:"log_level"`

	Dataset DatasetConfig `yaml:"dataset"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// DatasetConfig describes the training corpus and how it is served.
type DatasetConfig struct {
	// Manifest is the path to the tab-separated pairing table. The table
	// needs a header row with at least the named columns "source" and
	// "target", one row per paired example.
	Manifest string `yaml:"manifest"`

	// FrameLength is the training frame size in samples. Defaults to 16384.
	FrameLength int `yaml:"frame_length"`

	// Mode selects the resident or on-demand variant. Defaults to "resident".
	Mode Mode `yaml:"mode"`
}

// MetricsConfig configures the optional Prometheus metrics listener.
type MetricsConfig struct {
	// Addr is the TCP address the metrics endpoint listens on (e.g. ":9090").
	// When empty, no listener is started and the tool exits after its work.
	Addr string `yaml:"addr"`
}

// DefaultConfig returns a Config with every optional field set to its
// default. [LoadFromReader] decodes on top of these values, so omitted YAML
// fields keep them.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: LogInfo,
		Dataset: DatasetConfig{
			FrameLength: defaultFrameLength,
			Mode:        ModeResident,
		},
	}
}
