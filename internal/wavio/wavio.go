// Package wavio reads and writes PCM WAV files as interleaved float64 samples
// in [-1, 1].
package wavio

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// Errors returned by Read and Write.
var (
	ErrInvalidFile       = errors.New("wavio: not a valid WAV file")
	ErrUnsupportedDepth  = errors.New("wavio: unsupported bit depth")
	ErrInvalidFormat     = errors.New("wavio: sample rate and channel count must be positive")
	ErrPartialFrameWrite = errors.New("wavio: sample count is not a multiple of the channel count")
)

// Audio is an interleaved signal.
type Audio struct {
	SampleRate int
	Channels   int
	BitDepth   int
	Data       []float64
}

// Frames returns the number of frames in a.
func (a Audio) Frames() int {
	if a.Channels <= 0 {
		return 0
	}
	return len(a.Data) / a.Channels
}

// Read decodes the PCM WAV file at path.
func Read(path string) (Audio, error) {
	f, err := os.Open(path)
	if err != nil {
		return Audio{}, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return Audio{}, fmt.Errorf("%w: %s", ErrInvalidFile, path)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return Audio{}, fmt.Errorf("wavio: decode %s: %w", path, err)
	}

	depth := int(dec.BitDepth)
	if !supportedDepth(depth) {
		return Audio{}, fmt.Errorf("%w: %d", ErrUnsupportedDepth, depth)
	}

	scale := 1 / math.Pow(2, float64(depth-1))
	out := Audio{
		SampleRate: buf.Format.SampleRate,
		Channels:   buf.Format.NumChannels,
		BitDepth:   depth,
		Data:       make([]float64, len(buf.Data)),
	}
	for i, v := range buf.Data {
		out.Data[i] = float64(v) * scale
	}
	return out, nil
}

// Write encodes a as PCM WAV at a.BitDepth (16 if unset), clipping to [-1, 1].
func Write(path string, a Audio) error {
	if a.SampleRate <= 0 || a.Channels <= 0 {
		return ErrInvalidFormat
	}
	if len(a.Data)%a.Channels != 0 {
		return ErrPartialFrameWrite
	}

	depth := a.BitDepth
	if depth == 0 {
		depth = 16
	}
	if !supportedDepth(depth) {
		return fmt.Errorf("%w: %d", ErrUnsupportedDepth, depth)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	enc := wav.NewEncoder(f, a.SampleRate, depth, a.Channels, 1)
	full := math.Pow(2, float64(depth-1))
	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: a.Channels,
			SampleRate:  a.SampleRate,
		},
		Data:           make([]int, len(a.Data)),
		SourceBitDepth: depth,
	}
	for i, v := range a.Data {
		buf.Data[i] = quantize(v, full)
	}

	if err := enc.Write(buf); err != nil {
		_ = f.Close()
		return fmt.Errorf("wavio: encode %s: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		_ = f.Close()
		return fmt.Errorf("wavio: finalize %s: %w", path, err)
	}
	return f.Close()
}

func supportedDepth(depth int) bool {
	return depth == 16 || depth == 24 || depth == 32
}

func quantize(v, full float64) int {
	if math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		v = 1
	} else if v < -1 {
		v = -1
	}
	q := math.Round(v * full)
	if q > full-1 {
		q = full - 1
	}
	return int(q)
}
