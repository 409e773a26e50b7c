package modulation

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-chorus/dsp/delay"
)

// newRampDelay returns a delay over a 16-sample ring holding 0..15 with the
// cursor back at 0, running at 16 Hz so that delaySeconds*16 is in samples.
func newRampDelay(t *testing.T) (*FractionalDelay, *delay.Ring, *Oscillator) {
	t.Helper()

	ring, err := delay.NewRing(16)
	if err != nil {
		t.Fatal(err)
	}

	lfo := NewOscillator(16)
	d := NewFractionalDelay(ring, lfo, 16)
	for i := 0; i < ring.Len(); i++ {
		d.Commit(float64(i), 0, 0)
	}
	if ring.Cursor() != 0 {
		t.Fatalf("cursor = %d, want 0", ring.Cursor())
	}
	return d, ring, lfo
}

func TestFractionalDelayTap(t *testing.T) {
	d, _, _ := newRampDelay(t)

	tests := []struct {
		name         string
		delaySamples float64
		amount       float64
		want         float64
	}{
		{name: "integer", delaySamples: 4, want: 12},
		{name: "half sample", delaySamples: 2.5, want: 13.5},
		{name: "quarter sample", delaySamples: 1.25, want: 14.75},
		{name: "zero delay reads oldest", delaySamples: 0, want: 0},
		{name: "modulated", delaySamples: 4, amount: 0.5, want: 14},
		{name: "beyond capacity", delaySamples: 20, want: 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := d.Tap(tt.delaySamples/16, tt.amount)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Fatalf("Tap(%v samples) = %v, want %v", tt.delaySamples, got, tt.want)
			}
		})
	}
}

func TestFractionalDelayTapFollowsCursor(t *testing.T) {
	d, ring, _ := newRampDelay(t)

	// Overwrite slot 0 and move to slot 1.
	d.Commit(100, 0, 0)
	if ring.Cursor() != 1 {
		t.Fatalf("cursor = %d, want 1", ring.Cursor())
	}

	if got := d.Tap(1.0/16, 0); got != 100 {
		t.Fatalf("one-sample tap = %v, want 100", got)
	}
	if got := d.Tap(1.5/16, 0); math.Abs(got-57.5) > 1e-12 {
		t.Fatalf("1.5-sample tap = %v, want 57.5", got)
	}
}

func TestFractionalDelayTapUsesOscillator(t *testing.T) {
	d, _, lfo := newRampDelay(t)

	// Quarter cycle: Value() = 1.5.
	for i := 0; i < 4; i++ {
		lfo.Advance(1)
	}
	// pos = 0 - 4 + 1.5*4*0.5 = -1 -> slot 15.
	if got := d.Tap(4.0/16, 0.5); math.Abs(got-15) > 1e-9 {
		t.Fatalf("Tap = %v, want 15", got)
	}
}

func TestFractionalDelayCommitFeedback(t *testing.T) {
	ring, err := delay.NewRing(4)
	if err != nil {
		t.Fatal(err)
	}
	d := NewFractionalDelay(ring, NewOscillator(4), 4)

	d.Commit(0.25, 0.5, 0.5)
	if got := ring.Read(0); got != 0.5 {
		t.Fatalf("slot 0 = %v, want 0.5", got)
	}

	d.Commit(0.1, 1e-40, 1)
	if got := ring.Read(1); got != 0.1 {
		t.Fatalf("denormal feedback not flushed: slot 1 = %v", got)
	}
}
