package echo

import (
	"errors"
	"math"
	"sort"

	"github.com/cwbudde/algo-vecmath"
)

// Errors returned by echo analysis functions.
var (
	ErrEmptyIR           = errors.New("echo: impulse response is empty")
	ErrSilentIR          = errors.New("echo: impulse response is silent")
	ErrInvalidSampleRate = errors.New("echo: sample rate must be positive")
	ErrInvalidFFTSize    = errors.New("echo: FFT size must be a power of two >= 2")
)

const (
	defaultThreshold  = 1e-3
	defaultMinSpacing = 1
)

// Tap is one detected echo.
type Tap struct {
	Index     int     // sample index in the response
	Amplitude float64 // signed sample value at Index
}

// Metrics summarises the echo structure of an impulse response.
type Metrics struct {
	Taps   []Tap
	Period float64 // median spacing between taps in seconds
	Decay  float64 // median amplitude ratio between consecutive echoes after the first
}

// Analyzer finds echo taps in impulse responses.
type Analyzer struct {
	SampleRate float64
	// Threshold is the minimum tap magnitude relative to the response peak.
	Threshold float64
	// MinSpacing is the minimum distance in samples between two taps.
	MinSpacing int
}

// NewAnalyzer creates an analyzer with a -60 dB threshold.
func NewAnalyzer(sampleRate float64) *Analyzer {
	return &Analyzer{
		SampleRate: sampleRate,
		Threshold:  defaultThreshold,
		MinSpacing: defaultMinSpacing,
	}
}

// Analyze detects taps and estimates their period and decay.
func (a *Analyzer) Analyze(ir []float64) (Metrics, error) {
	if a.SampleRate <= 0 {
		return Metrics{}, ErrInvalidSampleRate
	}

	taps, err := a.Taps(ir)
	if err != nil {
		return Metrics{}, err
	}

	m := Metrics{Taps: taps}
	if len(taps) >= 2 {
		spacing := make([]float64, len(taps)-1)
		for i := 1; i < len(taps); i++ {
			spacing[i-1] = float64(taps[i].Index - taps[i-1].Index)
		}
		m.Period = median(spacing) / a.SampleRate
	}

	// The first ratio compares the dry impulse with the first echo, which
	// carries the wet gain rather than the feedback.
	if ratios := DecayRatios(taps); len(ratios) >= 2 {
		m.Decay = median(ratios[1:])
	}

	return m, nil
}

// Taps returns the local magnitude maxima of ir that reach Threshold times
// the peak magnitude, at least MinSpacing samples apart.
func (a *Analyzer) Taps(ir []float64) ([]Tap, error) {
	if len(ir) == 0 {
		return nil, ErrEmptyIR
	}

	peak := vecmath.MaxAbs(ir)
	if peak == 0 {
		return nil, ErrSilentIR
	}

	floor := a.Threshold * peak
	spacing := a.MinSpacing
	if spacing < 1 {
		spacing = 1
	}

	var taps []Tap
	for i, v := range ir {
		mag := math.Abs(v)
		if mag < floor || mag == 0 {
			continue
		}
		if i > 0 && math.Abs(ir[i-1]) > mag {
			continue
		}
		if i+1 < len(ir) && math.Abs(ir[i+1]) > mag {
			continue
		}

		if n := len(taps); n > 0 && i-taps[n-1].Index < spacing {
			if mag > math.Abs(taps[n-1].Amplitude) {
				taps[n-1] = Tap{Index: i, Amplitude: v}
			}
			continue
		}
		taps = append(taps, Tap{Index: i, Amplitude: v})
	}

	return taps, nil
}

// DecayRatios returns |a[i+1]| / |a[i]| for consecutive taps.
func DecayRatios(taps []Tap) []float64 {
	if len(taps) < 2 {
		return nil
	}
	out := make([]float64, 0, len(taps)-1)
	for i := 1; i < len(taps); i++ {
		prev := math.Abs(taps[i-1].Amplitude)
		if prev == 0 {
			out = append(out, 0)
			continue
		}
		out = append(out, math.Abs(taps[i].Amplitude)/prev)
	}
	return out
}

func median(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	s := append([]float64(nil), x...)
	sort.Float64s(s)
	mid := len(s) / 2
	if len(s)%2 == 1 {
		return s[mid]
	}
	return 0.5 * (s[mid-1] + s[mid])
}
