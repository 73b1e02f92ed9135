// Package oscillator computes the harmonic amplitude vector that paints the
// surface of the deformable body.
//
// Each coefficient is a biased sinusoid multiplied by a smoothstep gate, so a
// coefficient is silent before its start time, fades in over the spin-up
// duration and then oscillates indefinitely.
package oscillator

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/harmonia/internal/curve"
)

// HarmonicCount is the number of coefficients the harmonic shader reads
// (spherical harmonics up to degree 2).
const HarmonicCount = 9

// ErrHarmonicCount indicates a parameter set whose length is not HarmonicCount.
var ErrHarmonicCount = errors.New("oscillator: wrong number of coefficients")

// Coefficient parameterizes one harmonic amplitude.
type Coefficient struct {
	Amplitude float32
	Frequency float32
	Phase     float32
	Start     float32
	Bias      float32
}

// Params is the ordered coefficient list. It is never mutated after loading.
type Params []Coefficient

func (p Params) Validate() error {
	if len(p) != HarmonicCount {
		return fmt.Errorf("%w: got %d, want %d", ErrHarmonicCount, len(p), HarmonicCount)
	}
	return nil
}

// Gate returns the fade-in multiplier of c at time t.
func (c Coefficient) Gate(t, spinup float32) float32 {
	return curve.Smoothstep(c.Start, c.Start+spinup, t)
}

// Wave returns the ungated biased sinusoid of c at time t.
func (c Coefficient) Wave(t, speed float32) float32 {
	return c.Amplitude*float32(math.Sin(float64(speed*c.Frequency*t+c.Phase))) + c.Bias
}

// Compute returns a fresh amplitude vector for time t.
func Compute(t float32, p Params, speed, spinup float32) []float32 {
	return ComputeInto(make([]float32, len(p)), t, p, speed, spinup)
}

// ComputeInto writes the amplitudes into dst, which must hold len(p) values,
// and returns it.
func ComputeInto(dst []float32, t float32, p Params, speed, spinup float32) []float32 {
	for i, c := range p {
		dst[i] = c.Gate(t, spinup) * c.Wave(t, speed)
	}
	return dst[:len(p)]
}
