package config

import (
	"fmt"
	"slices"
	"strings"
)

// Preset is a named, described configuration.
type Preset struct {
	Name        string
	Description string
	Config      Config
}

var presets = map[string]Preset{
	"default": {
		Name:        "default",
		Description: "1024 angle steps, 16 fractional value bits",
		Config:      Config{AngleBits: 10, ValueBits: 16, Target: "rust", Prefix: "SIN", Package: "precalc"},
	},
	"tiny": {
		Name:        "tiny",
		Description: "16 angle steps, for reading the table by eye",
		Config:      Config{AngleBits: 4, ValueBits: 16, Target: "rust", Prefix: "SIN", Package: "precalc"},
	},
	"coarse": {
		Name:        "coarse",
		Description: "256 angle steps, smallest value width that stays monotonic",
		Config:      Config{AngleBits: 8, ValueBits: 12, Target: "c", Prefix: "SIN", Package: "precalc"},
	},
	"audio": {
		Name:        "audio",
		Description: "4096 angle steps, 24-bit samples",
		Config:      Config{AngleBits: 12, ValueBits: 24, Target: "c", Prefix: "WAVE", Package: "precalc"},
	},
	"precise": {
		Name:        "precise",
		Description: "65536 angle steps, 32 fractional value bits",
		Config:      Config{AngleBits: 16, ValueBits: 32, Target: "go", Prefix: "SIN", Package: "trig"},
	},
}

// GetPreset returns a copy of the named preset's configuration.
func GetPreset(name string) (*Config, error) {
	p, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownPreset, name)
	}
	cfg := p.Config
	return &cfg, nil
}

// ListPresets returns all presets sorted by name.
func ListPresets() []Preset {
	out := make([]Preset, 0, len(presets))
	for _, p := range presets {
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b Preset) int {
		return strings.Compare(a.Name, b.Name)
	})
	return out
}
