// Package playback streams a looping signal through an effect to the sound
// card. The audio device pulls data through Stream.Read, which is the render
// context: it runs one effect block per call and must not block.
package playback

import (
	"encoding/binary"
	"errors"
	"math"
	"sync/atomic"
)

// ErrInvalidSource is returned for empty or misaligned sources.
var ErrInvalidSource = errors.New("playback: source must hold at least one whole frame")

// Processor renders one interleaved block in place.
type Processor interface {
	Process(block []float64, channels int) error
}

const bytesPerSample = 4

// Stream is an io.Reader producing float32 little-endian interleaved frames:
// the source looped forever and processed by the effect block by block.
type Stream struct {
	fx       Processor
	source   []float64
	channels int
	pos      int
	block    []float64
	frames   atomic.Int64
}

// NewStream loops source (interleaved, channels wide) through fx.
// maxFrames sizes the scratch block; larger device requests grow it once.
func NewStream(fx Processor, source []float64, channels, maxFrames int) (*Stream, error) {
	if channels < 1 || len(source) < channels || len(source)%channels != 0 {
		return nil, ErrInvalidSource
	}
	if maxFrames < 1 {
		maxFrames = 1
	}
	return &Stream{
		fx:       fx,
		source:   source,
		channels: channels,
		block:    make([]float64, maxFrames*channels),
	}, nil
}

// Read fills p with whole frames and returns the number of bytes written.
func (s *Stream) Read(p []byte) (int, error) {
	frameBytes := s.channels * bytesPerSample
	frames := len(p) / frameBytes
	if frames == 0 {
		return 0, nil
	}

	n := frames * s.channels
	if n > len(s.block) {
		s.block = make([]float64, n)
	}
	block := s.block[:n]

	for i := range block {
		block[i] = s.source[s.pos]
		s.pos++
		if s.pos == len(s.source) {
			s.pos = 0
		}
	}

	if err := s.fx.Process(block, s.channels); err != nil {
		return 0, err
	}

	for i, v := range block {
		binary.LittleEndian.PutUint32(p[i*bytesPerSample:], math.Float32bits(float32(v)))
	}
	s.frames.Add(int64(frames))
	return frames * frameBytes, nil
}

// Frames returns the number of frames rendered so far. It is safe to call
// from any goroutine.
func (s *Stream) Frames() int64 {
	return s.frames.Load()
}
