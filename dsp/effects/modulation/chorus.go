package modulation

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/cwbudde/algo-chorus/dsp/core"
	"github.com/cwbudde/algo-chorus/dsp/delay"
	"github.com/cwbudde/algo-chorus/dsp/mix"
)

// Chorus is a mono-summed, LFO-modulated delay with feedback: the building
// block of chorus, flanger and simple echo sounds.
//
// Lifecycle: construct with NewChorus, call Prepare once with the host sample
// rate, then call Process for every audio block. Process before Prepare is a
// dry pass-through. Params may be changed from any goroutine at any time.
//
// All channels of a frame feed one shared history and receive the same wet
// signal.
type Chorus struct {
	params *Params
	engine atomic.Pointer[Engine]
}

// NewChorus creates an unprepared chorus with default settings adjusted by opts.
func NewChorus(opts ...Option) (*Chorus, error) {
	cfg := DefaultSettings()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	return &Chorus{params: NewParams(cfg)}, nil
}

// Params returns the live parameter set.
func (c *Chorus) Params() *Params {
	return c.params
}

// Prepare allocates one second of history (floor(sampleRate) samples) and
// makes the chorus ready. It may run concurrently with Process; blocks
// rendered before it completes are passed through dry.
func (c *Chorus) Prepare(sampleRate float64) (*Engine, error) {
	if !core.IsFinite(sampleRate) || math.Floor(sampleRate) < 1 {
		return nil, fmt.Errorf("%w: %f", ErrInvalidSampleRate, sampleRate)
	}
	if c.engine.Load() != nil {
		return nil, ErrAlreadyPrepared
	}

	e, err := newEngine(sampleRate, c.params)
	if err != nil {
		return nil, err
	}
	if !c.engine.CompareAndSwap(nil, e) {
		return nil, ErrAlreadyPrepared
	}
	return e, nil
}

// Ready reports whether Prepare has completed.
func (c *Chorus) Ready() bool {
	return c.engine.Load() != nil
}

// Engine returns the prepared engine, or nil before Prepare.
func (c *Chorus) Engine() *Engine {
	return c.engine.Load()
}

// Process renders one interleaved block in place. Before Prepare the block is
// left untouched and nil is returned.
func (c *Chorus) Process(block []float64, channels int) error {
	if err := checkBlock(block, channels); err != nil {
		return err
	}
	e := c.engine.Load()
	if e == nil {
		return nil
	}
	e.render(block, channels)
	return nil
}

// Engine is the prepared render state of a Chorus. It only exists after a
// successful Prepare and must only be driven from one render goroutine.
type Engine struct {
	sampleRate float64
	params     *Params
	ring       *delay.Ring
	lfo        *Oscillator
	line       *FractionalDelay
}

func newEngine(sampleRate float64, params *Params) (*Engine, error) {
	ring, err := delay.NewRing(int(math.Floor(sampleRate)))
	if err != nil {
		return nil, err
	}
	lfo := NewOscillator(sampleRate)
	return &Engine{
		sampleRate: sampleRate,
		params:     params,
		ring:       ring,
		lfo:        lfo,
		line:       NewFractionalDelay(ring, lfo, sampleRate),
	}, nil
}

// Process renders one interleaved block in place.
func (e *Engine) Process(block []float64, channels int) error {
	if err := checkBlock(block, channels); err != nil {
		return err
	}
	e.render(block, channels)
	return nil
}

// SampleRate returns the rate the engine was prepared with.
func (e *Engine) SampleRate() float64 { return e.sampleRate }

// Capacity returns the history length in samples.
func (e *Engine) Capacity() int { return e.ring.Len() }

// Cursor returns the current write position.
func (e *Engine) Cursor() int { return e.ring.Cursor() }

// Phase returns the LFO phase in cycles.
func (e *Engine) Phase() float64 { return e.lfo.Phase() }

func (e *Engine) render(block []float64, channels int) {
	p := e.params
	for off := 0; off < len(block); off += channels {
		frame := block[off : off+channels]

		wet := e.line.Tap(p.DelaySeconds(), p.Amount())
		// Downmix must see the dry frame, before Upmix adds the wet signal.
		monoIn := mix.Downmix(frame)
		mix.Upmix(frame, wet, p.WetMix())

		e.line.Commit(monoIn, wet, p.Feedback())
		e.lfo.Advance(p.RateHz())
	}
}

func checkBlock(block []float64, channels int) error {
	if channels < 1 {
		return ErrInvalidChannelCount
	}
	if len(block)%channels != 0 {
		return ErrPartialFrame
	}
	return nil
}
