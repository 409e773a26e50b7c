package echo

import (
	"fmt"

	"github.com/cwbudde/algo-chorus/dsp/core"
	"github.com/cwbudde/algo-chorus/dsp/effects/modulation"
)

// Render returns the first length samples of the mono impulse response of a
// freshly prepared effect with settings s, processed in cfg.BlockSize blocks.
// The dry impulse stays at index 0.
func Render(cfg core.ProcessorConfig, s modulation.Settings, length int) ([]float64, error) {
	if length <= 0 {
		return nil, ErrEmptyIR
	}

	fx, err := modulation.NewChorus(modulation.WithSettings(s))
	if err != nil {
		return nil, fmt.Errorf("echo: %w", err)
	}
	if _, err := fx.Prepare(cfg.SampleRate); err != nil {
		return nil, fmt.Errorf("echo: %w", err)
	}

	block := cfg.BlockSize
	if block <= 0 {
		block = core.DefaultProcessorConfig().BlockSize
	}

	ir := make([]float64, length)
	ir[0] = 1
	for start := 0; start < length; start += block {
		end := start + block
		if end > length {
			end = length
		}
		if err := fx.Process(ir[start:end], 1); err != nil {
			return nil, fmt.Errorf("echo: %w", err)
		}
	}
	return ir, nil
}
