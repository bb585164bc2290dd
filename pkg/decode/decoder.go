// Package decode defines the audio decoding capability used by the dataset
// builders.
//
// The single abstraction is [Decoder] — turn a file path into a normalized
// sample buffer. Format-specific implementations live in subpackages
// (decode/wav); decode/mock provides a scripted test double. The interface is
// intentionally narrow so that dataset code never touches container or codec
// details.
package decode

import "fmt"

// Decoder turns an audio file on disk into normalized samples.
//
// Implementations return the complete signal as mono float32 samples in
// [-1, 1] together with the file's sample rate. Decoding is synchronous and
// blocking, like [os.ReadFile]; there are no cancellation semantics.
type Decoder interface {
	Decode(path string) (samples []float32, sampleRate int, err error)
}

// Error reports a file that could not be decoded. Implementations of
// [Decoder] wrap every failure in an Error so that callers can recognise
// decode faults with [errors.As] regardless of format.
type Error struct {
	// Path is the file that failed to decode.
	Path string

	// Err is the underlying cause.
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error { return e.Err }
