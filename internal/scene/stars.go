package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	opensimplex "github.com/ojrac/opensimplex-go"
)

type Star struct {
	Position   mgl32.Vec3
	Brightness float32
}

// Starfield scatters n stars on a shell of the given radius. The layout
// depends only on seed, so captures of the same frame match.
func Starfield(seed int64, n int, radius float32) []Star {
	azimuth := opensimplex.NewNormalized(seed)
	polar := opensimplex.NewNormalized(seed + 1)
	glow := opensimplex.NewNormalized(seed + 2)

	stars := make([]Star, n)
	for i := range stars {
		x := float64(i) * 0.731
		theta := azimuth.Eval2(x, 0.5) * 2 * math.Pi * 3
		cosPhi := 2*polar.Eval2(0.5, x) - 1
		sinPhi := math.Sqrt(max(0, 1-cosPhi*cosPhi))

		dir := mgl32.Vec3{
			float32(sinPhi * math.Cos(theta)),
			float32(cosPhi),
			float32(sinPhi * math.Sin(theta)),
		}
		stars[i] = Star{
			Position:   dir.Mul(radius),
			Brightness: float32(0.2 + 0.8*glow.Eval2(x, x)),
		}
	}
	return stars
}
