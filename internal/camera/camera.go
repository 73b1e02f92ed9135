// Package camera computes the camera choreography as a closed-form function
// of time. Nothing is integrated between ticks, so any frame can be
// recomputed from its timestamp alone.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/san-kum/harmonia/internal/config"
	"github.com/san-kum/harmonia/internal/curve"
)

// LookHeightFactor places the look target slightly below the object's peak.
const LookHeightFactor = 0.6

// Pose is the camera state for one tick.
type Pose struct {
	ObjectHeight  float32
	Radius        float32
	Angle         float32
	Position      mgl32.Vec3
	Target        mgl32.Vec3
	FocusDistance float32
}

// RawHeight is the object height before clamping and easing.
func RawHeight(t float32, s *config.Settings) float32 {
	return (t-s.ThoughtAppearTime)*s.ThoughtSpeed + s.ThoughtInitialHeight
}

// ObjectHeight eases the raw height toward the slowdown ceiling.
func ObjectHeight(t float32, s *config.Settings) float32 {
	return curve.Slowdown(max(RawHeight(t, s), 0), s.SlowdownRate)
}

// Compute returns the pose at time t. s must be non-nil.
func Compute(t float32, s *config.Settings) Pose {
	if s == nil {
		panic("camera: compute called without settings")
	}

	height := ObjectHeight(t, s)
	radius := s.InitialCameraDistance + 1 + height

	rot := curve.SpinEase(max(t-s.CameraSpinTime, 0), s.CameraSpinFalloff)
	angle := s.CameraRotationSpeed * rot
	sin, cos := math.Sincos(float64(angle))

	return Pose{
		ObjectHeight: height,
		Radius:       radius,
		Angle:        angle,
		Position: mgl32.Vec3{
			radius * float32(sin),
			curve.Slowdown(t, s.SlowdownRate)*s.CameraSpeed - s.InitialCameraDistance,
			radius * float32(cos),
		},
		Target:        mgl32.Vec3{0, LookHeightFactor * height, 0},
		FocusDistance: radius,
	}
}

// View returns the look-at matrix of the pose with +Y up.
func (p Pose) View() mgl32.Mat4 {
	return mgl32.LookAtV(p.Position, p.Target, mgl32.Vec3{0, 1, 0})
}
