package observe

import (
	"context"
	"time"

	"github.com/MrWong99/wavetrain/pkg/decode"
)

// InstrumentedDecoder wraps a [decode.Decoder] and records latency and
// outcome metrics for every call. It is otherwise transparent: samples,
// sample rate, and errors pass through unchanged.
type InstrumentedDecoder struct {
	inner decode.Decoder
	m     *Metrics
}

// InstrumentDecoder wraps inner so that every Decode call is measured
// against m.
func InstrumentDecoder(inner decode.Decoder, m *Metrics) *InstrumentedDecoder {
	return &InstrumentedDecoder{inner: inner, m: m}
}

// Decode delegates to the wrapped decoder and records the outcome. Decoding
// is not request-scoped, so metrics are recorded against the background
// context.
func (d *InstrumentedDecoder) Decode(path string) ([]float32, int, error) {
	start := time.Now()
	samples, rate, err := d.inner.Decode(path)

	ctx := context.Background()
	d.m.DecodeDuration.Record(ctx, time.Since(start).Seconds())
	if err != nil {
		d.m.RecordDecodeError(ctx)
		d.m.RecordFileDecoded(ctx, "error")
		return nil, 0, err
	}
	d.m.RecordFileDecoded(ctx, "ok")
	return samples, rate, nil
}

// Ensure InstrumentedDecoder implements decode.Decoder at compile time.
var _ decode.Decoder = (*InstrumentedDecoder)(nil)
