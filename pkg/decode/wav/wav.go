// Package wav decodes RIFF/WAVE files into normalized mono samples.
package wav

import (
	"errors"
	"os"

	gowav "github.com/go-audio/wav"

	"github.com/MrWong99/wavetrain/pkg/decode"
)

// errNotWave reports a file that is not a valid RIFF/WAVE container.
var errNotWave = errors.New("not a RIFF/WAVE file")

// Decoder reads WAV files from the local filesystem.
//
// Integer PCM is scaled by 1/2^(bits-1) into [-1, 1] and interleaved
// multi-channel audio is averaged down to a single mono channel, so that the
// silence threshold used during frame indexing sees the same value range for
// every input file.
type Decoder struct{}

// New returns a ready Decoder.
func New() *Decoder {
	return &Decoder{}
}

// Decode implements [decode.Decoder]. The whole file is read in one pass;
// every failure is wrapped in a [decode.Error].
func (d *Decoder) Decode(path string) ([]float32, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, &decode.Error{Path: path, Err: err}
	}
	defer f.Close()

	dec := gowav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, 0, &decode.Error{Path: path, Err: errNotWave}
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, &decode.Error{Path: path, Err: err}
	}

	bits := buf.SourceBitDepth
	if bits <= 0 {
		bits = 16
	}
	scale := float32(int64(1) << (bits - 1))

	channels := buf.Format.NumChannels
	if channels <= 1 {
		samples := make([]float32, len(buf.Data))
		for i, v := range buf.Data {
			samples[i] = float32(v) / scale
		}
		return samples, buf.Format.SampleRate, nil
	}

	// Average interleaved channels into mono.
	n := len(buf.Data) / channels
	samples := make([]float32, n)
	for i := range n {
		var sum float32
		for c := range channels {
			sum += float32(buf.Data[i*channels+c])
		}
		samples[i] = sum / (scale * float32(channels))
	}
	return samples, buf.Format.SampleRate, nil
}

// Ensure Decoder implements decode.Decoder at compile time.
var _ decode.Decoder = (*Decoder)(nil)
