package modulation

import "math"

// Oscillator is a free-running sine LFO.
//
// Phase is counted in cycles and never reset. It is kept as whole cycles plus
// a fractional part so that the sine is always evaluated on a value in [0, 1)
// and does not lose precision as the run gets longer.
type Oscillator struct {
	sampleRate float64
	cycles     float64
	frac       float64
}

// NewOscillator returns an oscillator at phase 0. sampleRate must be positive.
func NewOscillator(sampleRate float64) *Oscillator {
	return &Oscillator{sampleRate: sampleRate}
}

// Value returns sin(2*pi*phase)*0.5 + 1, which lies in [0.5, 1.5].
func (o *Oscillator) Value() float64 {
	return math.Sin(2*math.Pi*o.frac)*0.5 + 1.0
}

// Advance moves the phase forward by rateHz/sampleRate cycles.
func (o *Oscillator) Advance(rateHz float64) {
	f := o.frac + rateHz/o.sampleRate
	whole := math.Floor(f)
	o.cycles += whole
	o.frac = f - whole
}

// Phase returns the total phase in cycles.
func (o *Oscillator) Phase() float64 {
	return o.cycles + o.frac
}
