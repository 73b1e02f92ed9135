// Package scene describes the one-shot construction the render and audio
// boundary performs when the show starts.
package scene

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/san-kum/harmonia/internal/config"
)

// Mesh describes the deformable body.
type Mesh struct {
	Subdivisions int
	Radius       float32
}

type Light struct {
	Ambient    mgl32.Vec4
	Brightness float32
	Position   mgl32.Vec3
	ShadowBias float32
}

// Placement puts the body in the world.
type Placement struct {
	Translation mgl32.Vec3
	Scale       float32
}

// Camera holds the lens and post-processing settings fixed at spawn time.
type Camera struct {
	FStop          float32
	FocusDistance  float32
	Tonemapping    string
	Bloom          bool
	BloomIntensity float32
	DepthOfField   bool
}

// AudioCue names the sound started with the scene. An empty Path selects
// the built-in pad.
type AudioCue struct {
	Path string
	Loop bool
}

type Commands struct {
	Mesh      Mesh
	Light     Light
	Placement Placement
	Camera    Camera
	Audio     AudioCue
}

// KeyLightPosition sits above and in front of the body so its shadow falls
// behind it.
var KeyLightPosition = mgl32.Vec3{4, 8, 4}

// Build derives the construction commands from the settings.
func Build(s *config.Settings) Commands {
	return Commands{
		Mesh: Mesh{Subdivisions: s.Subdivisions, Radius: 1},
		Light: Light{
			Ambient:    mgl32.Vec4(s.AmbientLight),
			Brightness: s.AmbientBrightness,
			Position:   KeyLightPosition,
			ShadowBias: s.ShadowBias,
		},
		Placement: Placement{Scale: 1},
		Camera: Camera{
			FStop:          s.FStop,
			FocusDistance:  s.InitialCameraDistance + 1,
			Tonemapping:    s.Tonemapping,
			Bloom:          s.BloomIntensity > 0,
			BloomIntensity: s.BloomIntensity,
			DepthOfField:   true,
		},
		Audio: AudioCue{Path: s.AudioCue},
	}
}
