// Package testutil holds signal generators and assertions shared by tests.
package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Impulse generates a unit impulse at the given position.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// Interleave packs equally long channel signals into one frame-interleaved
// slice. Shorter channels are zero-padded to the longest one.
func Interleave(channels ...[]float64) []float64 {
	frames := 0
	for _, ch := range channels {
		if len(ch) > frames {
			frames = len(ch)
		}
	}
	n := len(channels)
	out := make([]float64, frames*n)
	for c, ch := range channels {
		for i, v := range ch {
			out[i*n+c] = v
		}
	}
	return out
}

// Channel extracts channel c from an interleaved block.
func Channel(block []float64, channels, c int) []float64 {
	if channels <= 0 {
		return nil
	}
	out := make([]float64, len(block)/channels)
	for i := range out {
		out[i] = block[i*channels+c]
	}
	return out
}
