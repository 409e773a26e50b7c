// Package interp provides interpolation primitives used by delay-based DSP blocks.
package interp
