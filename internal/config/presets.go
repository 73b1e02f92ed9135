package config

import (
	"sort"

	"github.com/san-kum/harmonia/internal/oscillator"
)

type Preset struct {
	Settings    *Settings
	Oscillators oscillator.Params
}

func frozenAt(t float32) *float32 { return &t }

var Presets = map[string]func() Preset{
	"calm": func() Preset {
		return Preset{Settings: DefaultSettings(), Oscillators: DefaultOscillators()}
	},
	"storm": func() Preset {
		s := DefaultSettings()
		s.AnimationSpeed = 2.5
		s.CameraRotationSpeed = 1.4
		s.CameraSpinFalloff = 0.02
		s.HarmonicSpinupTime = 2
		s.EndTime = 90
		s.BloomIntensity = 0.35
		p := DefaultOscillators()
		for i := range p {
			p[i].Amplitude *= 1.8
			p[i].Start /= 2
		}
		return Preset{Settings: s, Oscillators: p}
	},
	"still": func() Preset {
		s := DefaultSettings()
		s.FrozenTime = frozenAt(42)
		s.Subdivisions = MaxSubdivisions
		return Preset{Settings: s, Oscillators: DefaultOscillators()}
	},
}

// GetPreset returns a fresh copy of the named preset.
func GetPreset(name string) (Preset, bool) {
	fn, ok := Presets[name]
	if !ok {
		return Preset{}, false
	}
	return fn(), true
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (p Preset) Snapshot() *Snapshot {
	return &Snapshot{Settings: p.Settings, Oscillators: p.Oscillators}
}
