package analysis

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"github.com/san-kum/harmonia/internal/driver"
	"github.com/san-kum/harmonia/internal/oscillator"
)

type Report struct {
	Samples    int
	Mean       float64
	Min, Max   float64
	DominantHz float64
	Power      float64
	Spectrum   []float64
}

// Series extracts one coefficient's amplitude over time. Frames without
// that coefficient contribute zero.
func Series(frames []driver.Frame, coeff int) []float64 {
	out := make([]float64, len(frames))
	for i, f := range frames {
		if coeff >= 0 && coeff < len(f.Amplitudes) {
			out[i] = float64(f.Amplitudes[coeff])
		}
	}
	return out
}

// PowerSpectrum returns the magnitude of the first half of the DFT with the
// mean removed, so bin 0 carries no bias.
func PowerSpectrum(data []float64) []float64 {
	if len(data) < 2 {
		return []float64{}
	}
	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(len(data))

	centred := make([]float64, len(data))
	for i, v := range data {
		centred[i] = v - mean
	}

	spectrum := fft.FFTReal(centred)
	ps := make([]float64, len(spectrum)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps
}

// Analyze summarizes a series sampled at sampleRate Hz.
func Analyze(data []float64, sampleRate float64) Report {
	r := Report{Samples: len(data)}
	if len(data) == 0 {
		return r
	}

	r.Min, r.Max = math.Inf(1), math.Inf(-1)
	for _, v := range data {
		r.Mean += v
		r.Min = math.Min(r.Min, v)
		r.Max = math.Max(r.Max, v)
	}
	r.Mean /= float64(len(data))

	r.Spectrum = PowerSpectrum(data)
	bin := 0
	for i := 1; i < len(r.Spectrum); i++ {
		if r.Spectrum[i] > r.Spectrum[bin] {
			bin = i
		}
	}
	if len(r.Spectrum) > 0 {
		r.Power = r.Spectrum[bin]
		r.DominantHz = float64(bin) * sampleRate / float64(len(data))
	}
	return r
}

// ExpectedHz is the frequency the coefficient oscillates at once gated in.
func ExpectedHz(c oscillator.Coefficient, speed float32) float64 {
	return math.Abs(float64(speed*c.Frequency)) / (2 * math.Pi)
}
