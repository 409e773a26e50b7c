package echo

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-chorus/dsp/core"
	"github.com/cwbudde/algo-chorus/dsp/effects/modulation"
)

func TestAnalyzeFeedbackEchoes(t *testing.T) {
	cfg := core.ApplyProcessorOptions(core.WithSampleRate(1000), core.WithBlockSize(64))
	ir, err := Render(cfg, modulation.Settings{DelaySeconds: 0.05, Feedback: 0.5, WetMix: 1}, 1000)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	m, err := NewAnalyzer(cfg.SampleRate).Analyze(ir)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if len(m.Taps) != 11 {
		t.Fatalf("found %d taps, want 11: %+v", len(m.Taps), m.Taps)
	}
	for i, tap := range m.Taps {
		if tap.Index != 50*i {
			t.Fatalf("tap %d at %d, want %d", i, tap.Index, 50*i)
		}
	}
	if math.Abs(m.Period-0.05) > 1e-12 {
		t.Fatalf("Period = %v, want 0.05", m.Period)
	}
	if math.Abs(m.Decay-0.5) > 1e-12 {
		t.Fatalf("Decay = %v, want 0.5", m.Decay)
	}
}

func TestAnalyzeErrors(t *testing.T) {
	if _, err := NewAnalyzer(0).Analyze([]float64{1}); !errors.Is(err, ErrInvalidSampleRate) {
		t.Fatalf("error = %v, want ErrInvalidSampleRate", err)
	}
	if _, err := NewAnalyzer(48000).Analyze(nil); !errors.Is(err, ErrEmptyIR) {
		t.Fatalf("error = %v, want ErrEmptyIR", err)
	}
	if _, err := NewAnalyzer(48000).Analyze(make([]float64, 16)); !errors.Is(err, ErrSilentIR) {
		t.Fatalf("error = %v, want ErrSilentIR", err)
	}
}

func TestTapsMinSpacing(t *testing.T) {
	a := NewAnalyzer(1000)
	a.MinSpacing = 3

	taps, err := a.Taps([]float64{0, 1, 0, -0.9, 0, 0, 0, 0.5})
	if err != nil {
		t.Fatal(err)
	}

	if len(taps) != 2 || taps[0].Index != 1 || taps[1].Index != 7 {
		t.Fatalf("taps = %+v, want indices [1 7]", taps)
	}
	if taps[1].Amplitude != 0.5 {
		t.Fatalf("amplitude = %v, want 0.5", taps[1].Amplitude)
	}
}

func TestTapsKeepsSign(t *testing.T) {
	taps, err := NewAnalyzer(1000).Taps([]float64{0, -0.5, 0, 0, 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(taps) != 2 || taps[0].Amplitude != -0.5 {
		t.Fatalf("taps = %+v", taps)
	}
}

func TestDecayRatios(t *testing.T) {
	got := DecayRatios([]Tap{{0, 1}, {10, -0.5}, {20, 0.125}, {30, 0}, {40, 0.1}})
	want := []float64{0.5, 0.25, 0, 0}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Fatalf("ratio %d = %v, want %v", i, got[i], want[i])
		}
	}

	if DecayRatios([]Tap{{0, 1}}) != nil {
		t.Fatal("expected nil for a single tap")
	}
}

func TestRenderErrors(t *testing.T) {
	cfg := core.DefaultProcessorConfig()

	if _, err := Render(cfg, modulation.DefaultSettings(), 0); !errors.Is(err, ErrEmptyIR) {
		t.Fatalf("error = %v, want ErrEmptyIR", err)
	}
	if _, err := Render(cfg, modulation.Settings{Feedback: 2}, 16); err == nil {
		t.Fatal("expected error for invalid settings")
	}

	cfg.SampleRate = 0
	if _, err := Render(cfg, modulation.DefaultSettings(), 16); !errors.Is(err, modulation.ErrInvalidSampleRate) {
		t.Fatalf("error = %v, want ErrInvalidSampleRate", err)
	}
}
