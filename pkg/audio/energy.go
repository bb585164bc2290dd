package audio

import "github.com/chewxy/math32"

// MeanSquare returns the mean squared amplitude of frame, the energy measure
// that separates voiced frames from silence. Returns 0 for an empty frame.
func MeanSquare(frame []float32) float32 {
	if len(frame) == 0 {
		return 0
	}
	var sum float32
	for _, s := range frame {
		sum += s * s
	}
	return sum / float32(len(frame))
}

// RMS returns the root mean square amplitude of frame.
func RMS(frame []float32) float32 {
	return math32.Sqrt(MeanSquare(frame))
}
