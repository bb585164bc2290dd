// Package mock provides a scripted test double for the decode package.
//
// Script per-path responses via the Results map and inspect the recorded
// Calls to verify how often and in which order files were decoded.
//
// Example:
//
//	dec := &mock.Decoder{Results: map[string]mock.Result{
//	    "a.wav": {Samples: []float32{0.5, -0.5}, SampleRate: 16000},
//	}}
package mock

import (
	"io/fs"
	"sync"

	"github.com/MrWong99/wavetrain/pkg/decode"
)

// Result is the scripted response for one path.
type Result struct {
	// Samples and SampleRate are returned when Err is nil.
	Samples    []float32
	SampleRate int

	// Err, if non-nil, is returned instead of the samples.
	Err error
}

// Decoder is a mock implementation of decode.Decoder. Paths without a
// scripted Result fail like a missing file.
type Decoder struct {
	mu sync.Mutex

	// Results maps a path to its scripted response.
	Results map[string]Result

	// Calls records the path of every Decode invocation in order.
	Calls []string
}

// Decode records the call and returns the scripted response for path.
func (d *Decoder) Decode(path string) ([]float32, int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Calls = append(d.Calls, path)

	res, ok := d.Results[path]
	if !ok {
		return nil, 0, &decode.Error{Path: path, Err: fs.ErrNotExist}
	}
	if res.Err != nil {
		return nil, 0, res.Err
	}
	return res.Samples, res.SampleRate, nil
}

// CallCount returns the number of Decode calls so far. Thread-safe.
func (d *Decoder) CallCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.Calls)
}

// Reset clears all recorded calls. Thread-safe.
func (d *Decoder) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Calls = nil
}

// Ensure Decoder implements decode.Decoder at compile time.
var _ decode.Decoder = (*Decoder)(nil)
