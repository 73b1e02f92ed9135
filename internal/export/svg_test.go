package export

import (
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/san-kum/harmonia/internal/driver"
	"github.com/stretchr/testify/assert"
)

func TestTrajectoryToSVG_TooFewPoints(t *testing.T) {
	assert.Empty(t, TrajectoryToSVG(nil, 100, 100, "#fff"))
	assert.Empty(t, TrajectoryToSVG([]Point{{1, 1}}, 100, 100, "#fff"))
}

func TestTrajectoryToSVG_FitsViewport(t *testing.T) {
	svg := TrajectoryToSVG([]Point{{0, 0}, {1, 1}}, 120, 120, "#abcdef")

	assert.True(t, strings.HasPrefix(svg, "<?xml"))
	assert.True(t, strings.HasSuffix(svg, "</svg>"))
	assert.Contains(t, svg, `stroke="#abcdef"`)
	// padding keeps both ends inside the box
	assert.Contains(t, svg, "M10.0,110.0")
	assert.Contains(t, svg, " L110.0,10.0")
}

func TestTrajectoryToSVG_FlatLine(t *testing.T) {
	svg := TrajectoryToSVG([]Point{{0, 2}, {1, 2}, {2, 2}}, 100, 100, "#fff")
	assert.Equal(t, 2, strings.Count(svg, " L"))
	assert.NotContains(t, svg, "NaN")
}

func TestCameraPathSVG(t *testing.T) {
	frames := []driver.Frame{
		{CameraPosition: mgl32.Vec3{0, 5, 4}},
		{CameraPosition: mgl32.Vec3{4, 5, 0}},
		{CameraPosition: mgl32.Vec3{0, 5, -4}},
	}
	svg := CameraPathSVG(frames, 200, 200)
	assert.Contains(t, svg, "#00ccff")
	assert.Equal(t, 2, strings.Count(svg, " L"))

	assert.Contains(t, HeightSVG(frames, 200, 200), "#ffcc00")
}
