package audio

// FrameIterator walks a clip's frames in order. The cursor is explicit:
// exhaustion is reported through Next's second return value and restarting
// requires [FrameIterator.Reset]. Not safe for concurrent use.
type FrameIterator struct {
	clip *Clip
	pos  int
}

// Frames returns an iterator positioned at the clip's first frame.
func (c *Clip) Frames() *FrameIterator {
	return &FrameIterator{clip: c}
}

// Next returns the next frame in order. After the last complete frame it
// returns (nil, false) until [FrameIterator.Reset] is called.
func (it *FrameIterator) Next() ([]float32, bool) {
	if it.pos >= it.clip.FrameCount() {
		return nil, false
	}
	frame := it.clip.Frame(it.pos)
	it.pos++
	return frame, true
}

// Reset rewinds the iterator to the first frame.
func (it *FrameIterator) Reset() {
	it.pos = 0
}
