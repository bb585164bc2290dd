package dataset

import (
	"fmt"

	"github.com/MrWong99/wavetrain/pkg/audio"
	"github.com/MrWong99/wavetrain/pkg/decode"
)

// OnDemand holds only the manifest and the frame index; every [OnDemand.At]
// call decodes the two referenced files afresh. Construction still decodes
// the whole corpus once to build the index and validate alignment, exactly
// like the resident build, but none of that audio is retained.
//
// Each access costs two full file decodes — O(file size) I/O per call, with
// no caching between calls. Use [Resident] when the corpus fits in memory.
type OnDemand struct {
	cfg          Config
	dec          decode.Decoder
	entries      []Entry
	refs         []FrameRef
	sampleRate   int
	sourceFrames int
}

// NewOnDemand builds the frame index by transiently decoding every file in
// entries, then discards the audio and keeps only paths. Construction is
// fail-fast like [NewResident].
func NewOnDemand(dec decode.Decoder, entries []Entry, cfg Config) (*OnDemand, error) {
	if cfg.FrameLength <= 0 {
		return nil, fmt.Errorf("dataset: frame length must be positive, got %d", cfg.FrameLength)
	}
	source, _, refs, err := buildPairedIndex(dec, entries, cfg.FrameLength)
	if err != nil {
		return nil, err
	}
	rate := 0
	frames := 0
	for _, c := range source {
		frames += c.FrameCount()
	}
	if len(source) > 0 {
		rate = source[0].SampleRate
	}
	return &OnDemand{
		cfg:          cfg,
		dec:          dec,
		entries:      entries,
		refs:         refs,
		sampleRate:   rate,
		sourceFrames: frames,
	}, nil
}

// Len returns the number of examples.
func (d *OnDemand) Len() int {
	return len(d.refs)
}

// At decodes the source and target file behind example i and cuts out the
// indexed frame of each. Decode failures surface here rather than at
// construction; a file that shrank since indexing fails instead of returning
// a truncated frame.
func (d *OnDemand) At(i int) (Pair, error) {
	if err := checkIndex(i, len(d.refs)); err != nil {
		return Pair{}, err
	}
	ref := d.refs[i]
	entry := d.entries[ref.File]

	source, err := audio.Load(d.dec, entry.Source, d.cfg.FrameLength)
	if err != nil {
		return Pair{}, err
	}
	if ref.Frame >= source.FrameCount() {
		return Pair{}, fmt.Errorf("dataset: %s: frame %d gone after re-decode, file now has %d frames",
			entry.Source, ref.Frame, source.FrameCount())
	}
	target, err := audio.Load(d.dec, entry.Target, d.cfg.FrameLength)
	if err != nil {
		return Pair{}, err
	}
	if ref.Frame >= target.FrameCount() {
		return Pair{}, fmt.Errorf("dataset: %s: frame %d gone after re-decode, file now has %d frames",
			entry.Target, ref.Frame, target.FrameCount())
	}

	return Pair{
		Source: newFrame(source.Frame(ref.Frame)),
		Target: newFrame(target.Frame(ref.Frame)),
	}, nil
}

// Ref returns the (file, frame) location behind flat index i.
func (d *OnDemand) Ref(i int) (FrameRef, error) {
	if err := checkIndex(i, len(d.refs)); err != nil {
		return FrameRef{}, err
	}
	return d.refs[i], nil
}

// SampleRate returns the sample rate observed on the first source file
// during the construction scan, or 0 for an empty manifest.
func (d *OnDemand) SampleRate() int {
	return d.sampleRate
}

// SourceFrames returns the total number of complete source frames counted
// during the construction scan, voiced or not.
func (d *OnDemand) SourceFrames() int {
	return d.sourceFrames
}

// Ensure OnDemand implements Dataset at compile time.
var _ Dataset = (*OnDemand)(nil)
