package dataset

import (
	"fmt"
	"time"

	"github.com/MrWong99/wavetrain/pkg/audio"
	"github.com/MrWong99/wavetrain/pkg/decode"
)

// Resident serves pairs from fully decoded audio held in memory. Every file
// in the manifest is decoded exactly once at construction; [Resident.At] is
// a pure lookup and performs no I/O.
type Resident struct {
	cfg     Config
	entries []Entry
	source  []*audio.Clip
	target  []*audio.Clip
	refs    []FrameRef
}

// NewResident decodes every source and target file in entries and builds the
// non-silent frame index. Construction is fail-fast: the first file that
// cannot be decoded, or the first target shorter than its source, aborts the
// whole build with no partial dataset.
func NewResident(dec decode.Decoder, entries []Entry, cfg Config) (*Resident, error) {
	if cfg.FrameLength <= 0 {
		return nil, fmt.Errorf("dataset: frame length must be positive, got %d", cfg.FrameLength)
	}
	source, target, refs, err := buildPairedIndex(dec, entries, cfg.FrameLength)
	if err != nil {
		return nil, err
	}
	return &Resident{
		cfg:     cfg,
		entries: entries,
		source:  source,
		target:  target,
		refs:    refs,
	}, nil
}

// Len returns the number of examples.
func (d *Resident) Len() int {
	return len(d.refs)
}

// At returns example i as fresh copies of the indexed source and target
// frames.
func (d *Resident) At(i int) (Pair, error) {
	if err := checkIndex(i, len(d.refs)); err != nil {
		return Pair{}, err
	}
	ref := d.refs[i]
	return Pair{
		Source: newFrame(d.source[ref.File].Frame(ref.Frame)),
		Target: newFrame(d.target[ref.File].Frame(ref.Frame)),
	}, nil
}

// Ref returns the (file, frame) location behind flat index i.
func (d *Resident) Ref(i int) (FrameRef, error) {
	if err := checkIndex(i, len(d.refs)); err != nil {
		return FrameRef{}, err
	}
	return d.refs[i], nil
}

// SampleRate returns the sample rate of the first source clip, or 0 for an
// empty manifest.
func (d *Resident) SampleRate() int {
	if len(d.source) == 0 {
		return 0
	}
	return d.source[0].SampleRate
}

// SourceFrames returns the total number of complete frames in the source
// channel, voiced or not.
func (d *Resident) SourceFrames() int {
	n := 0
	for _, c := range d.source {
		n += c.FrameCount()
	}
	return n
}

// Samples returns the total number of audio samples held in memory across
// both channels.
func (d *Resident) Samples() int {
	n := 0
	for _, c := range d.source {
		n += len(c.Samples)
	}
	for _, c := range d.target {
		n += len(c.Samples)
	}
	return n
}

// Duration returns the summed play time of the source channel.
func (d *Resident) Duration() time.Duration {
	var total time.Duration
	for _, c := range d.source {
		total += c.Duration()
	}
	return total
}

// Ensure Resident implements Dataset at compile time.
var _ Dataset = (*Resident)(nil)
