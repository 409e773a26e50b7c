package modulation

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/cwbudde/algo-chorus/dsp/core"
)

// Parameter ranges.
const (
	MinDelaySeconds = 0.0
	MaxDelaySeconds = 1.0
	MinRateHz       = 0.0
	MaxRateHz       = 40.0
)

const (
	defaultDelaySeconds = 0.016
	defaultFeedback     = 0.0
	defaultWetMix       = 0.8
	defaultAmount       = 0.6
	defaultRateHz       = 0.5
)

// Settings is a plain copy of the five effect parameters.
type Settings struct {
	DelaySeconds float64 // nominal delay in seconds, [0, 1]
	Feedback     float64 // share of the wet signal fed back into the line, [0, 1]
	WetMix       float64 // wet gain added on top of the dry signal, [0, 1]
	Amount       float64 // modulation depth relative to the delay, [0, 1]
	RateHz       float64 // LFO rate in Hz, [0, 40]
}

// DefaultSettings returns a gentle chorus.
func DefaultSettings() Settings {
	return Settings{
		DelaySeconds: defaultDelaySeconds,
		Feedback:     defaultFeedback,
		WetMix:       defaultWetMix,
		Amount:       defaultAmount,
		RateHz:       defaultRateHz,
	}
}

// Validate reports the first parameter outside its documented range.
func (s Settings) Validate() error {
	if err := checkRange("delay", s.DelaySeconds, MinDelaySeconds, MaxDelaySeconds); err != nil {
		return err
	}
	if err := checkRange("feedback", s.Feedback, 0, 1); err != nil {
		return err
	}
	if err := checkRange("wet mix", s.WetMix, 0, 1); err != nil {
		return err
	}
	if err := checkRange("amount", s.Amount, 0, 1); err != nil {
		return err
	}
	return checkRange("rate", s.RateHz, MinRateHz, MaxRateHz)
}

func checkRange(name string, v, lo, hi float64) error {
	if v < lo || v > hi || !core.IsFinite(v) {
		return fmt.Errorf("modulation %s must be in [%g, %g]: %f", name, lo, hi, v)
	}
	return nil
}

// Params holds the live effect parameters.
//
// Each scalar is stored and loaded atomically and independently: the control
// path may update any of them while a block is rendering, and a single tick
// may observe a mix of old and new values. No lock is ever taken.
//
// Setters clamp to the documented ranges and ignore NaN, so the render path
// never validates.
type Params struct {
	delaySeconds atomicFloat
	feedback     atomicFloat
	wetMix       atomicFloat
	amount       atomicFloat
	rateHz       atomicFloat
}

// NewParams returns parameters initialised from s (clamped).
func NewParams(s Settings) *Params {
	p := &Params{}
	p.Set(s)
	return p
}

// DelaySeconds returns the nominal delay in seconds.
func (p *Params) DelaySeconds() float64 { return p.delaySeconds.load() }

// Feedback returns the feedback amount.
func (p *Params) Feedback() float64 { return p.feedback.load() }

// WetMix returns the wet gain.
func (p *Params) WetMix() float64 { return p.wetMix.load() }

// Amount returns the modulation depth.
func (p *Params) Amount() float64 { return p.amount.load() }

// RateHz returns the LFO rate in Hz.
func (p *Params) RateHz() float64 { return p.rateHz.load() }

// SetDelaySeconds sets the nominal delay, clamped to [0, 1] s.
func (p *Params) SetDelaySeconds(v float64) {
	p.delaySeconds.storeClamped(v, MinDelaySeconds, MaxDelaySeconds)
}

// SetFeedback sets the feedback amount, clamped to [0, 1].
func (p *Params) SetFeedback(v float64) { p.feedback.storeClamped(v, 0, 1) }

// SetWetMix sets the wet gain, clamped to [0, 1].
func (p *Params) SetWetMix(v float64) { p.wetMix.storeClamped(v, 0, 1) }

// SetAmount sets the modulation depth, clamped to [0, 1].
func (p *Params) SetAmount(v float64) { p.amount.storeClamped(v, 0, 1) }

// SetRateHz sets the LFO rate, clamped to [0, 40] Hz.
func (p *Params) SetRateHz(v float64) { p.rateHz.storeClamped(v, MinRateHz, MaxRateHz) }

// Set stores all five values one after another.
func (p *Params) Set(s Settings) {
	p.SetDelaySeconds(s.DelaySeconds)
	p.SetFeedback(s.Feedback)
	p.SetWetMix(s.WetMix)
	p.SetAmount(s.Amount)
	p.SetRateHz(s.RateHz)
}

// Snapshot loads all five values one after another.
func (p *Params) Snapshot() Settings {
	return Settings{
		DelaySeconds: p.DelaySeconds(),
		Feedback:     p.Feedback(),
		WetMix:       p.WetMix(),
		Amount:       p.Amount(),
		RateHz:       p.RateHz(),
	}
}

type atomicFloat struct {
	bits atomic.Uint64
}

func (f *atomicFloat) load() float64 {
	return math.Float64frombits(f.bits.Load())
}

func (f *atomicFloat) storeClamped(v, lo, hi float64) {
	if math.IsNaN(v) {
		return
	}
	f.bits.Store(math.Float64bits(core.Clamp(v, lo, hi)))
}
