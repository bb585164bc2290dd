// Package dataset assembles paired training examples from manifests of
// source/target audio recordings.
//
// [LoadManifest] reads the pairing table, [BuildIndex] locates the non-silent
// source frames, and the [Resident] and [OnDemand] variants serve aligned
// (source, target) frame pairs by flat index. Both variants implement
// [Dataset] and share the same index construction; they differ only in
// whether decoded audio stays in memory for the dataset's lifetime or is
// decoded again on every access.
package dataset

import (
	"errors"
	"fmt"
)

// Config carries the tunables the dataset core reads.
type Config struct {
	// FrameLength is the training frame size in samples. Must be positive.
	FrameLength int
}

// ErrIndexOutOfRange reports a flat example index outside [0, Len()).
var ErrIndexOutOfRange = errors.New("dataset: index out of range")

// Frame is one fixed-length column of samples, shaped for a model input.
type Frame struct {
	// Data holds exactly the configured frame length of samples. The slice
	// is owned by the caller; datasets hand out fresh copies.
	Data []float32
}

// Shape returns the frame's tensor shape: the frame length and the trailing
// singleton channel axis.
func (f Frame) Shape() [2]int {
	return [2]int{len(f.Data), 1}
}

// Pair is one training example: a source frame and its aligned target frame.
type Pair struct {
	Source Frame
	Target Frame
}

// Dataset is the capability shared by both variants: a fixed number of
// training examples addressable by flat index.
type Dataset interface {
	// Len returns the number of examples.
	Len() int

	// At returns example i. Fails with [ErrIndexOutOfRange] when i is
	// outside [0, Len()); indexes are never clamped.
	At(i int) (Pair, error)
}

// checkIndex validates a flat index against the example count.
func checkIndex(i, n int) error {
	if i < 0 || i >= n {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, i, n)
	}
	return nil
}

// newFrame copies a clip frame into an owned Frame.
func newFrame(samples []float32) Frame {
	data := make([]float32, len(samples))
	copy(data, samples)
	return Frame{Data: data}
}
