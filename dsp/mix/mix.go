// Package mix folds interleaved frames into a mono signal and spreads a mono
// signal back across every channel of a frame.
//
// All channels share one signal path: there is no per-channel processing.
package mix

import "github.com/cwbudde/algo-vecmath"

// Downmix returns the mean of all samples in frame. frame must not be empty.
func Downmix(frame []float64) float64 {
	return vecmath.Sum(frame) / float64(len(frame))
}

// Upmix adds wet*wetmix to every channel of frame. The dry signal is kept
// bit-for-bit when the added amount is zero.
func Upmix(frame []float64, wet, wetmix float64) {
	g := wet * wetmix
	if g == 0 {
		return
	}
	for c := range frame {
		frame[c] += g
	}
}
