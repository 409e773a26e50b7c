package modulation

import (
	"math"

	"github.com/cwbudde/algo-chorus/dsp/core"
	"github.com/cwbudde/algo-chorus/dsp/delay"
	"github.com/cwbudde/algo-chorus/dsp/interp"
)

// FractionalDelay reads an LFO-modulated, linearly interpolated tap from a
// ring and commits one feedback-mixed write per tick.
//
// The read position is
//
//	pos = cursor - d + lfo * d * amount,  d = delaySeconds * sampleRate
//
// and may fall anywhere on the real line; both neighbouring taps are wrapped
// into the ring independently.
type FractionalDelay struct {
	ring       *delay.Ring
	lfo        *Oscillator
	sampleRate float64
}

// NewFractionalDelay combines ring and lfo running at sampleRate.
func NewFractionalDelay(ring *delay.Ring, lfo *Oscillator, sampleRate float64) *FractionalDelay {
	return &FractionalDelay{ring: ring, lfo: lfo, sampleRate: sampleRate}
}

// Tap returns the delayed sample for the current cursor and LFO phase.
func (d *FractionalDelay) Tap(delaySeconds, amount float64) float64 {
	delaySamples := delaySeconds * d.sampleRate
	modulation := d.lfo.Value() * delaySamples * amount
	pos := float64(d.ring.Cursor()) - delaySamples + modulation

	// floor/ceil before wrapping keeps t in [0, 1) for negative positions.
	lower := math.Floor(pos)
	upper := math.Ceil(pos)
	t := pos - lower

	a := d.ring.Read(d.ring.WrapIndex(lower))
	b := d.ring.Read(d.ring.WrapIndex(upper))
	return interp.Linear(t, a, b)
}

// Commit writes monoIn + wet*feedback at the cursor and advances it.
func (d *FractionalDelay) Commit(monoIn, wet, feedback float64) {
	d.ring.Write(d.ring.Cursor(), monoIn+core.FlushDenormals(wet*feedback))
	d.ring.Advance()
}
