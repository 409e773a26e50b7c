package modulation

import "fmt"

// Option mutates chorus construction settings.
type Option func(*Settings) error

// WithSettings replaces all five settings at once.
func WithSettings(s Settings) Option {
	return func(cfg *Settings) error {
		if err := s.Validate(); err != nil {
			return err
		}
		*cfg = s
		return nil
	}
}

// WithDelaySeconds sets the nominal delay in seconds.
func WithDelaySeconds(delay float64) Option {
	return func(cfg *Settings) error {
		if err := checkRange("delay", delay, MinDelaySeconds, MaxDelaySeconds); err != nil {
			return err
		}
		cfg.DelaySeconds = delay
		return nil
	}
}

// WithFeedback sets the feedback amount in [0, 1].
func WithFeedback(feedback float64) Option {
	return func(cfg *Settings) error {
		if err := checkRange("feedback", feedback, 0, 1); err != nil {
			return err
		}
		cfg.Feedback = feedback
		return nil
	}
}

// WithWetMix sets the wet gain in [0, 1].
func WithWetMix(mix float64) Option {
	return func(cfg *Settings) error {
		if err := checkRange("wet mix", mix, 0, 1); err != nil {
			return err
		}
		cfg.WetMix = mix
		return nil
	}
}

// WithAmount sets the modulation depth in [0, 1].
func WithAmount(amount float64) Option {
	return func(cfg *Settings) error {
		if err := checkRange("amount", amount, 0, 1); err != nil {
			return err
		}
		cfg.Amount = amount
		return nil
	}
}

// WithRateHz sets the LFO rate in [0, 40] Hz.
func WithRateHz(rateHz float64) Option {
	return func(cfg *Settings) error {
		if err := checkRange("rate", rateHz, MinRateHz, MaxRateHz); err != nil {
			return err
		}
		cfg.RateHz = rateHz
		return nil
	}
}

// WithPreset loads a named preset. Options after it override single values.
func WithPreset(name string) Option {
	return func(cfg *Settings) error {
		p, err := LookupPreset(name)
		if err != nil {
			return fmt.Errorf("chorus option: %w", err)
		}
		*cfg = p.Settings
		return nil
	}
}
