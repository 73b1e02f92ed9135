package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/san-kum/harmonia/internal/config"
	"github.com/san-kum/harmonia/internal/curve"
	"github.com/stretchr/testify/assert"
)

func settings() *config.Settings {
	s := config.DefaultSettings()
	s.ThoughtInitialHeight = 0.5
	s.ThoughtAppearTime = 4
	s.ThoughtSpeed = 0.3
	return s
}

func TestFocusEqualsRadius(t *testing.T) {
	s := settings()
	for ts := float32(0); ts < 200; ts += 0.37 {
		p := Compute(ts, s)
		assert.Equal(t, p.Radius, p.FocusDistance)
		assert.Equal(t, s.InitialCameraDistance+1+p.ObjectHeight, p.Radius)
	}
}

func TestObjectHeightNonNegative(t *testing.T) {
	s := settings()
	s.ThoughtInitialHeight = -2
	for ts := float32(0); ts < 60; ts += 0.25 {
		assert.GreaterOrEqual(t, Compute(ts, s).ObjectHeight, float32(0))
	}
	assert.Equal(t, float32(0), Compute(0, s).ObjectHeight)
}

func TestHeightAnchor(t *testing.T) {
	s := settings()
	assert.Equal(t, s.ThoughtInitialHeight, RawHeight(s.ThoughtAppearTime, s))
	assert.Equal(t, curve.Slowdown(s.ThoughtInitialHeight, s.SlowdownRate), Compute(s.ThoughtAppearTime, s).ObjectHeight)
}

func TestHeightBelowCeiling(t *testing.T) {
	s := settings()
	assert.Less(t, Compute(1e6, s).ObjectHeight, s.SlowdownRate)
}

func TestLookTarget(t *testing.T) {
	s := settings()
	p := Compute(30, s)
	assert.Equal(t, mgl32.Vec3{0, LookHeightFactor * p.ObjectHeight, 0}, p.Target)
}

func TestPosition(t *testing.T) {
	s := settings()
	const ts = 20

	p := Compute(ts, s)
	angle := s.CameraRotationSpeed * curve.SpinEase(ts-s.CameraSpinTime, s.CameraSpinFalloff)

	assert.InDelta(t, float64(p.Radius)*math.Sin(float64(angle)), p.Position.X(), 1e-4)
	assert.InDelta(t, float64(p.Radius)*math.Cos(float64(angle)), p.Position.Z(), 1e-4)
	assert.InDelta(t, curve.Slowdown(ts, s.SlowdownRate)*s.CameraSpeed-s.InitialCameraDistance, p.Position.Y(), 1e-5)

	horizontal := math.Hypot(float64(p.Position.X()), float64(p.Position.Z()))
	assert.InDelta(t, p.Radius, horizontal, 1e-4)
}

func TestNoSpinBeforeSpinTime(t *testing.T) {
	s := settings()
	p := Compute(s.CameraSpinTime/2, s)
	assert.Equal(t, float32(0), p.Angle)
	assert.Equal(t, float32(0), p.Position.X())
}

func TestDeterministic(t *testing.T) {
	s := settings()
	assert.Equal(t, Compute(17.25, s), Compute(17.25, s))
}

func TestNilSettingsPanics(t *testing.T) {
	assert.Panics(t, func() { Compute(1, nil) })
}
