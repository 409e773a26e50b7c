package modulation

import (
	"math"
	"testing"
)

func TestOscillatorStartsAtCentre(t *testing.T) {
	o := NewOscillator(48000)
	if got := o.Value(); got != 1 {
		t.Fatalf("Value() at phase 0 = %v, want 1", got)
	}
	if got := o.Phase(); got != 0 {
		t.Fatalf("Phase() = %v, want 0", got)
	}
}

func TestOscillatorQuarterCycle(t *testing.T) {
	o := NewOscillator(4)
	o.Advance(1)

	if got := o.Value(); math.Abs(got-1.5) > 1e-12 {
		t.Fatalf("Value() at quarter cycle = %v, want 1.5", got)
	}

	o.Advance(1)
	o.Advance(1)
	if got := o.Value(); math.Abs(got-0.5) > 1e-12 {
		t.Fatalf("Value() at three quarters = %v, want 0.5", got)
	}
}

func TestOscillatorValueRange(t *testing.T) {
	for _, rate := range []float64{0, 0.1, 0.5, 3, 17.3, 40} {
		o := NewOscillator(44100)
		for i := 0; i < 20000; i++ {
			v := o.Value()
			if v < 0 || v >= 2 {
				t.Fatalf("rate %v step %d: Value() = %v outside [0, 2)", rate, i, v)
			}
			if v < 0.5-1e-12 || v > 1.5+1e-12 {
				t.Fatalf("rate %v step %d: Value() = %v outside [0.5, 1.5]", rate, i, v)
			}
			o.Advance(rate)
		}
	}
}

func TestOscillatorPhaseMonotonic(t *testing.T) {
	const (
		sampleRate = 48000.0
		rate       = 37.5
	)
	o := NewOscillator(sampleRate)
	step := rate / sampleRate

	prev := o.Phase()
	for i := 1; i <= 100000; i++ {
		o.Advance(rate)
		cur := o.Phase()
		if cur < prev {
			t.Fatalf("step %d: phase decreased from %v to %v", i, prev, cur)
		}
		if d := cur - prev; math.Abs(d-step) > 1e-9 {
			t.Fatalf("step %d: phase moved by %v, want %v", i, d, step)
		}
		prev = cur
	}

	if want := 100000 * step; math.Abs(prev-want) > 1e-6 {
		t.Fatalf("final phase = %v, want %v", prev, want)
	}
}

func TestOscillatorZeroRateHolds(t *testing.T) {
	o := NewOscillator(48000)
	for i := 0; i < 1000; i++ {
		o.Advance(0)
	}
	if o.Phase() != 0 || o.Value() != 1 {
		t.Fatalf("phase = %v value = %v, want 0 and 1", o.Phase(), o.Value())
	}
}

func TestOscillatorLongRunKeepsPrecision(t *testing.T) {
	// 40 Hz at 48 kHz is exactly 1/1200 cycle per sample.
	const steps = 12_000_001
	o := NewOscillator(48000)
	for i := 0; i < steps; i++ {
		o.Advance(40)
	}

	wantFrac := float64(steps%1200) / 1200
	want := math.Sin(2*math.Pi*wantFrac)*0.5 + 1
	if got := o.Value(); math.Abs(got-want) > 1e-7 {
		t.Fatalf("Value() after %d steps = %v, want %v", steps, got, want)
	}
	if got, want := o.Phase(), float64(steps)/1200; math.Abs(got-want) > 1e-6 {
		t.Fatalf("Phase() = %v, want %v", got, want)
	}
}
