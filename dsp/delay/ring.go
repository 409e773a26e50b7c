// Package delay provides the circular sample history behind delay-based effects.
package delay

import (
	"fmt"
	"math"
)

// Ring is a fixed-capacity circular store of past samples with a write cursor.
//
// Indices passed to Read and Write must already lie in [0, Len()); use
// WrapIndex to map an arbitrary real position into range first.
type Ring struct {
	buffer []float64
	cursor int
}

// NewRing returns a zeroed ring of the given capacity.
func NewRing(capacity int) (*Ring, error) {
	if capacity < 1 {
		return nil, fmt.Errorf("delay ring capacity must be >= 1: %d", capacity)
	}
	return &Ring{buffer: make([]float64, capacity)}, nil
}

// Len returns the ring capacity in samples.
func (r *Ring) Len() int {
	return len(r.buffer)
}

// Cursor returns the current write position.
func (r *Ring) Cursor() int {
	return r.cursor
}

// Write stores v at index.
func (r *Ring) Write(index int, v float64) {
	r.buffer[index] = v
}

// Read returns the sample stored at index.
func (r *Ring) Read(index int) float64 {
	return r.buffer[index]
}

// Advance moves the write cursor forward by one sample, wrapping at Len.
func (r *Ring) Advance() {
	r.cursor++
	if r.cursor >= len(r.buffer) {
		r.cursor = 0
	}
}

// WrapIndex maps any real position onto a valid integer index.
// x is expected to be integral (a floor or ceil result); a fractional part is
// truncated after wrapping. Non-finite positions map to 0.
func (r *Ring) WrapIndex(x float64) int {
	size := float64(len(r.buffer))
	w := Wrap(x, size)
	if !(w >= 0 && w < size) {
		return 0
	}
	return int(w)
}

// Wrap maps x into [0, c) using floored modulo, so negative x wraps from the
// top of the range instead of yielding a negative remainder as math.Mod does.
// c must be positive.
func Wrap(x, c float64) float64 {
	w := math.Mod(math.Mod(x, c)+c, c)
	// math.Mod can return -0 for exact multiples.
	if w == 0 {
		return 0
	}
	return w
}
