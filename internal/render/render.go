// Package render drives an effect over a whole interleaved signal the way an
// audio host does: one frame-aligned block at a time, each measured against
// its real-time deadline.
package render

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/klauspost/cpuid"

	"github.com/cwbudde/algo-chorus/dsp/core"
)

// Errors returned by Run.
var (
	ErrInvalidChannels = errors.New("render: channel count must be >= 1")
	ErrPartialFrame    = errors.New("render: signal length is not a multiple of the channel count")
)

// Processor renders one interleaved block in place.
type Processor interface {
	Process(block []float64, channels int) error
}

// Stats describes one offline run.
type Stats struct {
	Blocks   int
	Frames   int
	Elapsed  time.Duration // total time spent inside Process
	Worst    time.Duration // slowest single block
	Overruns int           // blocks that took longer than their real-time budget
	Audio    time.Duration // duration of the rendered signal
	CPU      string
}

// RealTimeFactor returns how many times faster than real time the run was.
func (s Stats) RealTimeFactor() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.Audio) / float64(s.Elapsed)
}

// Runner splits signals into blocks and feeds them to a Processor.
type Runner struct {
	Config core.ProcessorConfig

	// BeforeBlock, if set, runs on the calling goroutine before each block
	// with the index of the block's first frame. It stands in for the host's
	// control thread, e.g. for parameter automation.
	BeforeBlock func(frame int)

	// Now defaults to time.Now.
	Now func() time.Time
}

// NewRunner returns a runner for cfg.
func NewRunner(cfg core.ProcessorConfig) *Runner {
	return &Runner{Config: cfg}
}

// Run processes data in place. It stops between blocks when ctx is done.
func (r *Runner) Run(ctx context.Context, fx Processor, data []float64) (Stats, error) {
	cfg := r.Config
	channels := cfg.Channels
	if channels < 1 {
		return Stats{}, ErrInvalidChannels
	}
	if len(data)%channels != 0 {
		return Stats{}, ErrPartialFrame
	}

	blockSize := cfg.BlockSize
	if blockSize <= 0 {
		blockSize = core.DefaultProcessorConfig().BlockSize
	}

	now := r.Now
	if now == nil {
		now = time.Now
	}

	frames := len(data) / channels
	stats := Stats{
		Frames: frames,
		Audio:  cfg.Budget(frames),
		CPU:    cpuid.CPU.BrandName,
	}

	for start := 0; start < frames; start += blockSize {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		n := blockSize
		if start+n > frames {
			n = frames - start
		}

		if r.BeforeBlock != nil {
			r.BeforeBlock(start)
		}

		block := data[start*channels : (start+n)*channels]
		t0 := now()
		err := fx.Process(block, channels)
		took := now().Sub(t0)
		if err != nil {
			return stats, fmt.Errorf("render: block at frame %d: %w", start, err)
		}

		stats.Blocks++
		stats.Elapsed += took
		if took > stats.Worst {
			stats.Worst = took
		}
		if took > cfg.Budget(n) {
			stats.Overruns++
		}
	}

	return stats, nil
}
