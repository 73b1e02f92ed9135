package curve

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		x, want float32
	}{
		{-1, 0},
		{0.25, 0.25},
		{3, 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Clamp(tt.x, 0, 1))
	}
}

func TestSmoothstep_Edges(t *testing.T) {
	assert.Equal(t, float32(0), Smoothstep(1, 2, 0.5))
	assert.Equal(t, float32(0), Smoothstep(1, 2, 1))
	assert.Equal(t, float32(1), Smoothstep(1, 2, 2))
	assert.Equal(t, float32(1), Smoothstep(1, 2, 10))
	assert.InDelta(t, 0.5, Smoothstep(0, 1, 0.5), 1e-6)
}

func TestSmoothstep_Monotonic(t *testing.T) {
	prev := Smoothstep(-2, 3, -5)
	for x := float32(-5); x <= 6; x += 0.01 {
		v := Smoothstep(-2, 3, x)
		if v < prev {
			t.Fatalf("smoothstep decreased at x=%f: %f < %f", x, v, prev)
		}
		if v < 0 || v > 1 {
			t.Fatalf("smoothstep out of range at x=%f: %f", x, v)
		}
		prev = v
	}
}

func TestSmoothstep_DegeneratePanics(t *testing.T) {
	assert.Panics(t, func() { Smoothstep(1, 1, 1) })
	assert.Panics(t, func() { Smoothstep(2, 1, 1) })
}

func TestSlowdown(t *testing.T) {
	const rate = 4
	assert.Equal(t, float32(0), Slowdown(0, rate))

	prev := float32(0)
	for v := float32(0.1); v < 1000; v *= 1.5 {
		s := Slowdown(v, rate)
		if s <= prev {
			t.Fatalf("slowdown not increasing at %f", v)
		}
		if s >= rate {
			t.Fatalf("slowdown(%f) = %f reached ceiling %d", v, s, rate)
		}
		prev = s
	}
}

func TestSpinEase(t *testing.T) {
	assert.Equal(t, float32(0), SpinEase(0, 0.5))
	assert.Equal(t, float32(0), SpinEase(-3, 0.5))

	// (sqrt(4*0.5+0.25)-0.5)/0.5 = (1.5-0.5)/0.5
	assert.InDelta(t, 2.0, SpinEase(4, 0.5), 1e-6)

	prev := float32(0)
	prevStep := float32(math.MaxFloat32)
	for ts := float32(1); ts < 50; ts++ {
		v := SpinEase(ts, 0.2)
		step := v - prev
		assert.Greater(t, v, prev)
		assert.LessOrEqual(t, step, prevStep)
		prev, prevStep = v, step
	}
}

func TestSpinEase_NonPositiveFalloffPanics(t *testing.T) {
	assert.Panics(t, func() { SpinEase(1, 0) })
	assert.Panics(t, func() { SpinEase(1, -1) })
}
