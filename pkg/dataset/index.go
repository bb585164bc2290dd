package dataset

import (
	"fmt"

	"github.com/MrWong99/wavetrain/pkg/audio"
	"github.com/MrWong99/wavetrain/pkg/decode"
)

// silenceThreshold is the mean squared amplitude at or below which a frame
// counts as silence and is excluded from training.
const silenceThreshold = 1e-8

// FrameRef locates one training frame: File indexes the manifest, Frame is
// the zero-based frame offset within that file's source audio.
type FrameRef struct {
	File  int
	Frame int
}

// BuildIndex scans the source-channel clips in manifest order and returns
// the locations of every frame whose mean energy crosses the silence
// threshold. The result is ordered ascending by (File, Frame). An empty
// result is valid and simply yields an empty dataset.
//
// The scan is a single deterministic pass over every complete frame; it is
// recomputed from scratch on each call.
func BuildIndex(clips []*audio.Clip) []FrameRef {
	var refs []FrameRef
	for file, clip := range clips {
		for i := range clip.FrameCount() {
			if audio.MeanSquare(clip.Frame(i)) > silenceThreshold {
				refs = append(refs, FrameRef{File: file, Frame: i})
			}
		}
	}
	return refs
}

// decodeAll eagerly loads one clip per path, failing on the first file that
// cannot be decoded.
func decodeAll(dec decode.Decoder, paths []string, frameLength int) ([]*audio.Clip, error) {
	clips := make([]*audio.Clip, len(paths))
	for i, path := range paths {
		clip, err := audio.Load(dec, path, frameLength)
		if err != nil {
			return nil, err
		}
		clips[i] = clip
	}
	return clips, nil
}

// buildPairedIndex is the construction scan shared by both dataset variants:
// decode every source and target file, verify that each target covers its
// source's frames, and index the non-silent source frames.
func buildPairedIndex(dec decode.Decoder, entries []Entry, frameLength int) (source, target []*audio.Clip, refs []FrameRef, err error) {
	sourcePaths := make([]string, len(entries))
	targetPaths := make([]string, len(entries))
	for i, e := range entries {
		sourcePaths[i] = e.Source
		targetPaths[i] = e.Target
	}

	source, err = decodeAll(dec, sourcePaths, frameLength)
	if err != nil {
		return nil, nil, nil, err
	}
	target, err = decodeAll(dec, targetPaths, frameLength)
	if err != nil {
		return nil, nil, nil, err
	}

	for i := range source {
		if target[i].FrameCount() < source[i].FrameCount() {
			return nil, nil, nil, fmt.Errorf("dataset: target %s has %d frames but source %s has %d; pairs must be aligned",
				entries[i].Target, target[i].FrameCount(), entries[i].Source, source[i].FrameCount())
		}
	}

	return source, target, BuildIndex(source), nil
}
