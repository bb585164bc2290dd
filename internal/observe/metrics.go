// Package observe provides application-wide observability primitives for
// Wavetrain: OpenTelemetry metrics, tracing, structured logging, and HTTP
// middleware that ties them together.
//
// Metrics are recorded through the OpenTelemetry Metrics API. A Prometheus
// exporter bridge is available via [InitProvider] so that metrics can still be
// scraped via the standard /metrics endpoint. A package-level default
// [Metrics] instance ([DefaultMetrics]) is provided for convenience; tests
// should use [NewMetrics] with a custom [metric.MeterProvider] to avoid
// cross-test pollution.
package observe

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// meterName is the instrumentation scope name used for all Wavetrain metrics.
const meterName = "github.com/MrWong99/wavetrain"

// Metrics holds all OpenTelemetry metric instruments for the application.
// All fields are safe for concurrent use — the underlying OTel types handle
// their own synchronisation.
type Metrics struct {
	// --- Latency histograms per pipeline stage ---

	// DecodeDuration tracks single-file audio decode latency.
	DecodeDuration metric.Float64Histogram

	// IndexBuildDuration tracks the silence scan over a decoded corpus.
	IndexBuildDuration metric.Float64Histogram

	// DatasetBuildDuration tracks end-to-end dataset construction, from
	// manifest read to ready-to-serve.
	DatasetBuildDuration metric.Float64Histogram

	// PairFetchDuration tracks single-example fetch latency. Use with
	// attribute:
	//   attribute.String("mode", ...)
	PairFetchDuration metric.Float64Histogram

	// --- Counters ---

	// FilesDecoded counts decoded audio files. Use with attribute:
	//   attribute.String("status", ...)
	FilesDecoded metric.Int64Counter

	// FramesIndexed counts frames admitted to the training index.
	FramesIndexed metric.Int64Counter

	// FramesSkipped counts frames rejected by the silence gate.
	FramesSkipped metric.Int64Counter

	// PairFetches counts example fetches. Use with attributes:
	//   attribute.String("mode", ...), attribute.String("status", ...)
	PairFetches metric.Int64Counter

	// --- Error counters ---

	// DecodeErrors counts failed decodes.
	DecodeErrors metric.Int64Counter

	// --- Gauges ---

	// ResidentSamples tracks the number of audio samples currently held in
	// memory by resident datasets.
	ResidentSamples metric.Int64UpDownCounter

	// --- HTTP middleware ---

	// HTTPRequestDuration tracks HTTP request processing time. Use with attributes:
	//   attribute.String("method", ...), attribute.String("path", ...)
	HTTPRequestDuration metric.Float64Histogram
}

// latencyBuckets defines histogram bucket boundaries (in seconds) spanning
// sub-millisecond in-memory fetches up to whole-corpus decode times.
var latencyBuckets = []float64{
	0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10,
}

// NewMetrics creates a fully initialised [Metrics] struct using the given
// [metric.MeterProvider]. Returns an error if any instrument creation fails.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	// Histograms.
	if met.DecodeDuration, err = m.Float64Histogram("wavetrain.decode.duration",
		metric.WithDescription("Latency of decoding one audio file."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.IndexBuildDuration, err = m.Float64Histogram("wavetrain.index.build.duration",
		metric.WithDescription("Latency of the silence scan over a decoded corpus."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.DatasetBuildDuration, err = m.Float64Histogram("wavetrain.dataset.build.duration",
		metric.WithDescription("End-to-end dataset construction latency."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.PairFetchDuration, err = m.Float64Histogram("wavetrain.pair.fetch.duration",
		metric.WithDescription("Latency of fetching one training pair by mode."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}

	// Counters.
	if met.FilesDecoded, err = m.Int64Counter("wavetrain.files.decoded",
		metric.WithDescription("Total decoded audio files by status."),
	); err != nil {
		return nil, err
	}
	if met.FramesIndexed, err = m.Int64Counter("wavetrain.frames.indexed",
		metric.WithDescription("Total frames admitted to the training index."),
	); err != nil {
		return nil, err
	}
	if met.FramesSkipped, err = m.Int64Counter("wavetrain.frames.skipped",
		metric.WithDescription("Total frames rejected by the silence gate."),
	); err != nil {
		return nil, err
	}
	if met.PairFetches, err = m.Int64Counter("wavetrain.pair.fetches",
		metric.WithDescription("Total example fetches by mode and status."),
	); err != nil {
		return nil, err
	}

	// Error counters.
	if met.DecodeErrors, err = m.Int64Counter("wavetrain.decode.errors",
		metric.WithDescription("Total failed decodes."),
	); err != nil {
		return nil, err
	}

	// Gauges (UpDownCounters).
	if met.ResidentSamples, err = m.Int64UpDownCounter("wavetrain.resident.samples",
		metric.WithDescription("Audio samples currently held in memory by resident datasets."),
	); err != nil {
		return nil, err
	}

	// HTTP middleware histogram.
	if met.HTTPRequestDuration, err = m.Float64Histogram("wavetrain.http.request.duration",
		metric.WithDescription("HTTP request latency by method and path."),
		metric.WithUnit("s"),
	); err != nil {
		return nil, err
	}

	return met, nil
}

// defaultMetrics is the lazily-initialised package-level Metrics instance.
var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// DefaultMetrics returns the package-level [Metrics] instance, creating it on
// first call using [otel.GetMeterProvider]. Subsequent calls return the same
// pointer. Panics if instrument creation fails (should not happen with the
// global provider).
func DefaultMetrics() *Metrics {
	defaultMetricsOnce.Do(func() {
		var err error
		defaultMetrics, err = NewMetrics(otel.GetMeterProvider())
		if err != nil {
			panic("observe: failed to create default metrics: " + err.Error())
		}
	})
	return defaultMetrics
}

// Attr is a convenience alias for [attribute.String] to reduce verbosity at
// call sites.
func Attr(key, value string) attribute.KeyValue {
	return attribute.String(key, value)
}

// RecordFileDecoded is a convenience method that records a decoded-file
// counter increment with the standard attribute set.
func (m *Metrics) RecordFileDecoded(ctx context.Context, status string) {
	m.FilesDecoded.Add(ctx, 1,
		metric.WithAttributes(attribute.String("status", status)),
	)
}

// RecordDecodeError is a convenience method that records a decode error
// counter increment.
func (m *Metrics) RecordDecodeError(ctx context.Context) {
	m.DecodeErrors.Add(ctx, 1)
}

// RecordPairFetch is a convenience method that records a pair fetch counter
// increment with the standard attribute set.
func (m *Metrics) RecordPairFetch(ctx context.Context, mode, status string) {
	m.PairFetches.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("mode", mode),
			attribute.String("status", status),
		),
	)
}

// RecordIndexOutcome is a convenience method that records how many frames the
// silence scan admitted and rejected.
func (m *Metrics) RecordIndexOutcome(ctx context.Context, indexed, skipped int64) {
	m.FramesIndexed.Add(ctx, indexed)
	m.FramesSkipped.Add(ctx, skipped)
}
