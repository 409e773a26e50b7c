package modulation

import "errors"

var (
	// ErrInvalidChannelCount is returned by Process for channel counts below 1.
	ErrInvalidChannelCount = errors.New("modulation: channel count must be >= 1")

	// ErrPartialFrame is returned by Process when the block length is not a
	// whole number of frames.
	ErrPartialFrame = errors.New("modulation: block length is not a multiple of the channel count")

	// ErrInvalidSampleRate is returned by Prepare for sample rates that cannot
	// hold at least one sample of history.
	ErrInvalidSampleRate = errors.New("modulation: sample rate must be finite and >= 1")

	// ErrAlreadyPrepared is returned by a second call to Prepare.
	ErrAlreadyPrepared = errors.New("modulation: already prepared")

	// ErrUnknownPreset is returned when a preset name is not registered.
	ErrUnknownPreset = errors.New("modulation: unknown preset")
)
