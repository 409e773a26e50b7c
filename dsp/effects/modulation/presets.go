package modulation

import (
	"fmt"
	"sort"
	"strings"
)

// Preset is a named parameter set.
type Preset struct {
	Name        string
	Description string
	Settings    Settings
}

var presets = map[string]Preset{
	"chorus": {
		Name:        "chorus",
		Description: "16 ms delay with a slow, wide wobble",
		Settings:    DefaultSettings(),
	},
	"flanger": {
		Name:        "flanger",
		Description: "3 ms delay, deep sweep and strong feedback",
		Settings: Settings{
			DelaySeconds: 0.003,
			Feedback:     0.7,
			WetMix:       0.7,
			Amount:       0.9,
			RateHz:       0.25,
		},
	},
	"doubler": {
		Name:        "doubler",
		Description: "30 ms delay with slight drift",
		Settings: Settings{
			DelaySeconds: 0.03,
			Feedback:     0,
			WetMix:       0.6,
			Amount:       0.1,
			RateHz:       0.2,
		},
	},
	"slapback": {
		Name:        "slapback",
		Description: "120 ms unmodulated echo",
		Settings: Settings{
			DelaySeconds: 0.12,
			Feedback:     0.25,
			WetMix:       0.5,
			Amount:       0,
			RateHz:       0,
		},
	},
}

// LookupPreset returns the preset registered under name (case-insensitive).
func LookupPreset(name string) (Preset, error) {
	p, ok := presets[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Preset{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return p, nil
}

// PresetNames returns all preset names in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
