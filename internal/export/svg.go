// Package export renders captured timelines as standalone SVG documents.
package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/harmonia/internal/driver"
)

type Point struct{ X, Y float64 }

// CameraPathSVG draws the camera's orbit seen from above (x against z).
func CameraPathSVG(frames []driver.Frame, width, height int) string {
	points := make([]Point, len(frames))
	for i, f := range frames {
		points[i] = Point{X: float64(f.CameraPosition[0]), Y: float64(f.CameraPosition[2])}
	}
	return TrajectoryToSVG(points, width, height, "#00ccff")
}

// HeightSVG plots object height against time.
func HeightSVG(frames []driver.Frame, width, height int) string {
	points := make([]Point, len(frames))
	for i, f := range frames {
		points[i] = Point{X: float64(f.Time), Y: float64(f.ObjectHeight)}
	}
	return TrajectoryToSVG(points, width, height, "#ffcc00")
}

// TrajectoryToSVG fits points into the viewport with 10% padding and joins
// them with a single path. Fewer than two points yield an empty string.
func TrajectoryToSVG(points []Point, width, height int, strokeColor string) string {
	if len(points) < 2 {
		return ""
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#04040a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor)

	for i, p := range points {
		x := (p.X - minX) / rangeX * float64(width)
		y := float64(height) - (p.Y-minY)/rangeY*float64(height)
		if i == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
