package echo

import (
	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// MagnitudeResponse returns |H(k)| for bins 0..fftSize/2 of ir.
//
// ir is zero-padded to fftSize; samples beyond fftSize are ignored.
func MagnitudeResponse(ir []float64, fftSize int) ([]float64, error) {
	if len(ir) == 0 {
		return nil, ErrEmptyIR
	}
	if fftSize < 2 || fftSize&(fftSize-1) != 0 {
		return nil, ErrInvalidFFTSize
	}

	in := make([]complex128, fftSize)
	for i := 0; i < len(ir) && i < fftSize; i++ {
		in[i] = complex(ir[i], 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, err
	}

	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return nil, err
	}

	bins := fftSize/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)
	for k := 0; k < bins; k++ {
		re[k] = real(out[k])
		im[k] = imag(out[k])
	}

	mag := make([]float64, bins)
	vecmath.Magnitude(mag, re, im)
	return mag, nil
}

// BinFrequency returns the centre frequency of bin k in Hz.
func BinFrequency(k, fftSize int, sampleRate float64) float64 {
	if fftSize <= 0 {
		return 0
	}
	return float64(k) * sampleRate / float64(fftSize)
}
