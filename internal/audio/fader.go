package audio

import "time"

// Fader ramps gain linearly from 1 to 0. Before Start it holds unity gain.
type Fader struct {
	gain   float32
	step   float32
	fading bool
}

func NewFader() *Fader { return &Fader{gain: 1} }

// Start begins a fade lasting d at the given sample rate. A non-positive
// duration silences immediately.
func (f *Fader) Start(d time.Duration, sampleRate int) {
	f.fading = true
	samples := float32(d.Seconds() * float64(sampleRate))
	if samples <= 0 {
		f.gain, f.step = 0, 0
		return
	}
	f.step = f.gain / samples
}

// Next returns the gain for the current sample and advances the ramp.
func (f *Fader) Next() float32 {
	g := f.gain
	if f.fading && f.gain > 0 {
		f.gain -= f.step
		if f.gain < 0 {
			f.gain = 0
		}
	}
	return g
}

func (f *Fader) Gain() float32 { return f.gain }

// Silent reports whether a started fade has reached zero.
func (f *Fader) Silent() bool { return f.fading && f.gain == 0 }
