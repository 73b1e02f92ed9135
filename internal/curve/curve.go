// Package curve provides the easing primitives used by the choreography.
//
// All functions are pure and operate on float32, the precision the render
// boundary consumes. Inputs are expected to be finite.
//
//   - [Clamp]: saturation
//   - [Smoothstep]: cubic Hermite ease between two edges
//   - [Slowdown]: asymptotic approach toward a ceiling
//   - [SpinEase]: decelerating remap of angular time
package curve

import "math"

// Clamp saturates x to [lo, hi].
func Clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Smoothstep maps x into [0,1] between edge0 and edge1 and returns the
// Hermite ease t²(3-2t). It panics unless edge1 > edge0.
func Smoothstep(edge0, edge1, x float32) float32 {
	if !(edge1 > edge0) {
		panic("curve: smoothstep requires edge1 > edge0")
	}
	t := Clamp((x-edge0)/(edge1-edge0), 0, 1)
	return t * t * (3 - 2*t)
}

// Slowdown returns rate*value/(rate+value). For value >= 0 it rises from 0
// and approaches rate without reaching it.
func Slowdown(value, rate float32) float32 {
	return rate * value / (rate + value)
}

// SpinEase remaps elapsed time so that angular velocity decays over the show.
// Negative t is treated as zero. It panics unless falloff > 0.
func SpinEase(t, falloff float32) float32 {
	if !(falloff > 0) {
		panic("curve: spin ease requires falloff > 0")
	}
	if t < 0 {
		t = 0
	}
	return (float32(math.Sqrt(float64(t*falloff+0.25))) - 0.5) / falloff
}
