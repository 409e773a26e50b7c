package wavio

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/cwbudde/algo-chorus/internal/testutil"
)

func TestWriteReadRoundTrip(t *testing.T) {
	for _, depth := range []int{16, 24} {
		path := filepath.Join(t.TempDir(), "tone.wav")
		in := Audio{
			SampleRate: 22050,
			Channels:   2,
			BitDepth:   depth,
			Data: testutil.Interleave(
				testutil.DeterministicSine(440, 22050, 0.5, 512),
				testutil.DeterministicNoise(9, 0.5, 512),
			),
		}

		if err := Write(path, in); err != nil {
			t.Fatalf("depth %d: Write() error = %v", depth, err)
		}

		got, err := Read(path)
		if err != nil {
			t.Fatalf("depth %d: Read() error = %v", depth, err)
		}

		if got.SampleRate != 22050 || got.Channels != 2 || got.BitDepth != depth {
			t.Fatalf("depth %d: format = %d Hz, %d ch, %d bit", depth, got.SampleRate, got.Channels, got.BitDepth)
		}
		if got.Frames() != 512 {
			t.Fatalf("depth %d: Frames() = %d, want 512", depth, got.Frames())
		}

		eps := 1.5 / math.Pow(2, float64(depth-1))
		testutil.RequireSliceNearlyEqual(t, got.Data, in.Data, eps)
	}
}

func TestWriteClips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clip.wav")
	if err := Write(path, Audio{SampleRate: 8000, Channels: 1, Data: []float64{2, -2, math.NaN(), 1}}); err != nil {
		t.Fatal(err)
	}

	got, err := Read(path)
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{32767.0 / 32768, -1, 0, 32767.0 / 32768}
	testutil.RequireSliceNearlyEqual(t, got.Data, want, 1e-12)
}

func TestWriteErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		a    Audio
		want error
	}{
		{name: "no rate", a: Audio{Channels: 1, Data: []float64{0}}, want: ErrInvalidFormat},
		{name: "no channels", a: Audio{SampleRate: 8000, Data: []float64{0}}, want: ErrInvalidFormat},
		{name: "partial frame", a: Audio{SampleRate: 8000, Channels: 2, Data: []float64{0, 0, 0}}, want: ErrPartialFrameWrite},
		{name: "depth", a: Audio{SampleRate: 8000, Channels: 1, BitDepth: 12, Data: []float64{0}}, want: ErrUnsupportedDepth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Write(filepath.Join(dir, tt.name+".wav"), tt.a)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Write() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestReadInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.wav")
	if err := os.WriteFile(path, []byte("definitely not a riff file"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := Read(path); !errors.Is(err, ErrInvalidFile) {
		t.Fatalf("Read() error = %v, want ErrInvalidFile", err)
	}

	if _, err := Read(filepath.Join(t.TempDir(), "missing.wav")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
