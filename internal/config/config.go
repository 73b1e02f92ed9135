package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/san-kum/harmonia/internal/oscillator"
	"gopkg.in/yaml.v3"
)

const (
	DefaultSubdivisions   = 5
	MaxSubdivisions       = 6
	DefaultSpinupTime     = 6.0
	DefaultEndTime        = 180.0
	DefaultSlowdownRate   = 6.0
	DefaultSpinFalloff    = 0.05
	DefaultCameraDistance = 4.0
)

// ErrInvalidSetting is wrapped by every FieldError.
var ErrInvalidSetting = errors.New("config: invalid setting")

// ErrHarmonicCount is returned when an oscillator file does not describe
// exactly oscillator.HarmonicCount coefficients.
var ErrHarmonicCount = oscillator.ErrHarmonicCount

// FieldError reports the settings key that failed validation.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Reason)
}

func (e *FieldError) Unwrap() error { return ErrInvalidSetting }

// Settings is the flat scene configuration. It is read-only once loaded.
type Settings struct {
	Subdivisions   int     `yaml:"subdivisions"`
	AnimationSpeed float32 `yaml:"animation_speed"`

	InitialCameraDistance float32 `yaml:"initial_camera_distance"`
	CameraRotationSpeed   float32 `yaml:"camera_rotation_speed"`
	CameraSpinTime        float32 `yaml:"camera_spin_time"`
	CameraSpinFalloff     float32 `yaml:"camera_spin_falloff"`
	CameraSpeed           float32 `yaml:"camera_speed"`
	SlowdownRate          float32 `yaml:"slowdown_rate"`

	ThoughtSpeed         float32 `yaml:"thought_speed"`
	ThoughtInitialHeight float32 `yaml:"thought_initial_height"`
	ThoughtAppearTime    float32 `yaml:"thought_appear_time"`

	FStop             float32    `yaml:"f_stop"`
	AmbientLight      [4]float32 `yaml:"ambient_light"`
	AmbientBrightness float32    `yaml:"ambient_brightness"`
	ShadowBias        float32    `yaml:"shadow_bias"`
	Tonemapping       string     `yaml:"tonemapping"`
	BloomIntensity    float32    `yaml:"bloom_intensity"`

	HarmonicSpinupTime float32 `yaml:"harmonic_spinup_time"`
	EndTime            float32 `yaml:"end_time"`

	AudioCue   string   `yaml:"audio_cue,omitempty"`
	FrozenTime *float32 `yaml:"frozen_time,omitempty"`
}

// OscillatorFile is the on-disk layout of the oscillator parameters: five
// parallel sequences, one entry per coefficient.
type OscillatorFile struct {
	Amplitudes  []float32 `yaml:"amplitudes"`
	Frequencies []float32 `yaml:"frequencies"`
	Phases      []float32 `yaml:"phases"`
	Starts      []float32 `yaml:"starts"`
	Biases      []float32 `yaml:"biases"`
}

// Snapshot pairs both loaded records. The engine only reads it.
type Snapshot struct {
	Oscillators oscillator.Params
	Settings    *Settings
}

func DefaultSettings() *Settings {
	return &Settings{
		Subdivisions:          DefaultSubdivisions,
		AnimationSpeed:        1.0,
		InitialCameraDistance: DefaultCameraDistance,
		CameraRotationSpeed:   0.6,
		CameraSpinTime:        3.0,
		CameraSpinFalloff:     DefaultSpinFalloff,
		CameraSpeed:           0.5,
		SlowdownRate:          DefaultSlowdownRate,
		ThoughtSpeed:          0.15,
		ThoughtInitialHeight:  0.0,
		ThoughtAppearTime:     8.0,
		FStop:                 1.4,
		AmbientLight:          [4]float32{1, 1, 1, 1},
		AmbientBrightness:     300,
		ShadowBias:            0.02,
		Tonemapping:           "tony_mc_mapface",
		BloomIntensity:        0.15,
		HarmonicSpinupTime:    DefaultSpinupTime,
		EndTime:               DefaultEndTime,
	}
}

// DefaultOscillators staggers the coefficients so the surface gains detail
// one harmonic at a time. The degree-0 term carries the base radius.
func DefaultOscillators() oscillator.Params {
	p := make(oscillator.Params, oscillator.HarmonicCount)
	for i := range p {
		p[i] = oscillator.Coefficient{
			Amplitude: 0.35 / float32(1+i/3),
			Frequency: 0.4 + 0.13*float32(i),
			Phase:     0.7 * float32(i),
			Start:     2 + 3*float32(i),
		}
	}
	p[0].Bias = 1.0
	p[0].Start = 0
	return p
}

func (s *Settings) Validate() error {
	switch {
	case s.Subdivisions < 0 || s.Subdivisions > MaxSubdivisions:
		return &FieldError{"subdivisions", fmt.Sprintf("must be in [0, %d], got %d", MaxSubdivisions, s.Subdivisions)}
	case !(s.HarmonicSpinupTime > 0):
		return &FieldError{"harmonic_spinup_time", "must be positive"}
	case !(s.CameraSpinFalloff > 0):
		return &FieldError{"camera_spin_falloff", "must be positive"}
	case !(s.SlowdownRate > 0):
		return &FieldError{"slowdown_rate", "must be positive"}
	case !(s.FStop > 0):
		return &FieldError{"f_stop", "must be positive"}
	case !(s.EndTime > 0):
		return &FieldError{"end_time", "must be positive"}
	}
	return nil
}

// Params converts the parallel sequences into coefficient records.
func (f *OscillatorFile) Params() (oscillator.Params, error) {
	n := len(f.Amplitudes)
	for _, seq := range []struct {
		name   string
		values []float32
	}{
		{"frequencies", f.Frequencies},
		{"phases", f.Phases},
		{"starts", f.Starts},
		{"biases", f.Biases},
	} {
		if len(seq.values) != n {
			return nil, fmt.Errorf("%w: %s has %d entries, amplitudes has %d", ErrHarmonicCount, seq.name, len(seq.values), n)
		}
	}

	p := make(oscillator.Params, n)
	for i := range p {
		p[i] = oscillator.Coefficient{
			Amplitude: f.Amplitudes[i],
			Frequency: f.Frequencies[i],
			Phase:     f.Phases[i],
			Start:     f.Starts[i],
			Bias:      f.Biases[i],
		}
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// FileFromParams is the inverse of OscillatorFile.Params.
func FileFromParams(p oscillator.Params) *OscillatorFile {
	f := &OscillatorFile{
		Amplitudes:  make([]float32, len(p)),
		Frequencies: make([]float32, len(p)),
		Phases:      make([]float32, len(p)),
		Starts:      make([]float32, len(p)),
		Biases:      make([]float32, len(p)),
	}
	for i, c := range p {
		f.Amplitudes[i] = c.Amplitude
		f.Frequencies[i] = c.Frequency
		f.Phases[i] = c.Phase
		f.Starts[i] = c.Start
		f.Biases[i] = c.Bias
	}
	return f
}

// LoadSettings reads a YAML settings file on top of DefaultSettings.
func LoadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s := DefaultSettings()
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

func LoadOscillators(path string) (oscillator.Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f OscillatorFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	p, err := f.Params()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Load reads both records. Empty paths fall back to the defaults.
func Load(settingsPath, oscillatorPath string) (*Snapshot, error) {
	snap := &Snapshot{Settings: DefaultSettings(), Oscillators: DefaultOscillators()}
	if settingsPath != "" {
		s, err := LoadSettings(settingsPath)
		if err != nil {
			return nil, err
		}
		snap.Settings = s
	}
	if oscillatorPath != "" {
		p, err := LoadOscillators(oscillatorPath)
		if err != nil {
			return nil, err
		}
		snap.Oscillators = p
	}
	return snap, nil
}

func SaveSettings(path string, s *Settings) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func SaveOscillators(path string, p oscillator.Params) error {
	data, err := yaml.Marshal(FileFromParams(p))
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
