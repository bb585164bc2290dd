// Package audio provides frame-granular access to decoded audio signals.
//
// A [Clip] wraps one fully decoded file and cuts it into fixed-length frames,
// the atomic unit a training example is built from. Frames are addressable
// randomly via [Clip.Frame] or walked in order with a [FrameIterator]. The
// energy helpers classify frames as silent or voiced.
package audio

import (
	"fmt"
	"time"

	"github.com/MrWong99/wavetrain/pkg/decode"
)

// Clip is one decoded audio signal cut into fixed-length frames.
//
// Samples are mono float32 in [-1, 1] as produced by a [decode.Decoder]. A
// Clip is mutable only through [Clip.Pad]; once construction and padding are
// done it is safe for concurrent readers.
type Clip struct {
	// Samples holds the complete decoded signal.
	Samples []float32

	// SampleRate is the signal's sample rate in Hz.
	SampleRate int

	// FrameLength is the frame size in samples. Always positive.
	FrameLength int
}

// New wraps already-decoded samples in a Clip. frameLength must be positive.
func New(samples []float32, sampleRate, frameLength int) (*Clip, error) {
	if frameLength <= 0 {
		return nil, fmt.Errorf("audio: frame length must be positive, got %d", frameLength)
	}
	return &Clip{Samples: samples, SampleRate: sampleRate, FrameLength: frameLength}, nil
}

// Load decodes the file at path and wraps it in a Clip. The whole signal is
// decoded eagerly; decode failures surface as the decoder's error, typically
// a [decode.Error].
func Load(dec decode.Decoder, path string, frameLength int) (*Clip, error) {
	if frameLength <= 0 {
		return nil, fmt.Errorf("audio: frame length must be positive, got %d", frameLength)
	}
	samples, rate, err := dec.Decode(path)
	if err != nil {
		return nil, err
	}
	return &Clip{Samples: samples, SampleRate: rate, FrameLength: frameLength}, nil
}

// FrameCount returns the number of complete frames in the clip. A trailing
// partial frame is not counted; call [Clip.Pad] first to make it addressable.
func (c *Clip) FrameCount() int {
	return len(c.Samples) / c.FrameLength
}

// Frame returns the i-th frame as a subslice of the clip's samples. The
// returned slice aliases the clip, so callers that keep frames across a
// [Clip.Pad] call must copy first.
//
// Frame panics if i is outside [0, FrameCount()). Out-of-range access never
// yields a truncated frame; indexes must come from a scan of the same clip.
func (c *Clip) Frame(i int) []float32 {
	if i < 0 || i >= c.FrameCount() {
		panic(fmt.Sprintf("audio: frame index %d out of range [0, %d)", i, c.FrameCount()))
	}
	start := i * c.FrameLength
	return c.Samples[start : start+c.FrameLength]
}

// Pad appends zero samples until the clip length is a whole multiple of the
// frame length, making a trailing partial frame addressable. Pad on an
// already aligned clip is a no-op, so repeated calls are safe.
func (c *Clip) Pad() {
	remaining := len(c.Samples) % c.FrameLength
	if remaining == 0 {
		return
	}
	c.Samples = append(c.Samples, make([]float32, c.FrameLength-remaining)...)
}

// Duration returns the clip's play time at its sample rate, or 0 when the
// sample rate is unknown.
func (c *Clip) Duration() time.Duration {
	if c.SampleRate <= 0 {
		return 0
	}
	return time.Duration(float64(len(c.Samples)) / float64(c.SampleRate) * float64(time.Second))
}
