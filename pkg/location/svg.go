package location

import (
	"fmt"
	"io"
	"math"
	"strings"

	svg "github.com/ajstarks/svgo"
	"github.com/paulmach/orb"
)

// Marker and outline styling for the location graphic. The palette
// matches the badge's accent colors.
const (
	outlineColor  = "#3D405B"
	outlineWidth  = 2
	markerColor   = "#E07A5F"
	markerOuterPx = 8.0
	markerInner   = 0.4 // inner radius as a fraction of the outer
)

// Renderer draws a boundary outline and star marker onto a square SVG
// canvas.
type Renderer struct {
	canvasPx int
}

// NewRenderer creates a renderer for a square canvas of the given pixel
// size.
func NewRenderer(canvasPx int) *Renderer {
	return &Renderer{canvasPx: canvasPx}
}

// Render writes the SVG document: the boundary's exterior rings as
// stroke-only closed paths and a five-pointed star at the marker
// position.
func (r *Renderer) Render(w io.Writer, boundary orb.Geometry, t Transformer, markerX, markerY float64) {
	canvas := svg.New(w)
	canvas.Start(r.canvasPx, r.canvasPx,
		fmt.Sprintf(`viewBox="0 0 %d %d"`, r.canvasPx, r.canvasPx))

	if d := boundaryPath(boundary, t); d != "" {
		canvas.Path(d, fmt.Sprintf(
			`fill="none" stroke="%s" stroke-width="%d" stroke-linejoin="round"`,
			outlineColor, outlineWidth))
	}

	canvas.Path(starPath(markerX, markerY, markerOuterPx),
		fmt.Sprintf(`fill="%s" stroke="none"`, markerColor))

	canvas.End()
}

// boundaryPath converts the exterior rings of the geometry into SVG path
// data, one closed subpath per polygon. Interior rings (holes) are
// skipped; at badge scale they are invisible noise.
func boundaryPath(geom orb.Geometry, t Transformer) string {
	var parts []string
	switch g := geom.(type) {
	case orb.Polygon:
		if p := ringPath(g, t); p != "" {
			parts = append(parts, p)
		}
	case orb.MultiPolygon:
		for _, poly := range g {
			if p := ringPath(poly, t); p != "" {
				parts = append(parts, p)
			}
		}
	}
	return strings.Join(parts, " ")
}

func ringPath(poly orb.Polygon, t Transformer) string {
	if len(poly) == 0 || len(poly[0]) == 0 {
		return ""
	}
	exterior := poly[0]

	var b strings.Builder
	x, y := t.Pixel(exterior[0][0], exterior[0][1])
	fmt.Fprintf(&b, "M %.2f,%.2f", x, y)
	for _, pt := range exterior[1:] {
		x, y = t.Pixel(pt[0], pt[1])
		fmt.Fprintf(&b, " L %.2f,%.2f", x, y)
	}
	b.WriteString(" Z")
	return b.String()
}

// starPath builds a five-pointed star as closed path data. Points
// alternate between the outer radius and 0.4x inner radius every 36
// degrees, starting at -90 degrees so the first point aims up.
func starPath(cx, cy, outer float64) string {
	var b strings.Builder
	for i := 0; i < 5; i++ {
		angleOuter := float64(i*72-90) * math.Pi / 180
		x := cx + outer*math.Cos(angleOuter)
		y := cy + outer*math.Sin(angleOuter)
		if i == 0 {
			fmt.Fprintf(&b, "M %.2f,%.2f", x, y)
		} else {
			fmt.Fprintf(&b, " L %.2f,%.2f", x, y)
		}

		angleInner := float64(i*72-90+36) * math.Pi / 180
		x = cx + outer*markerInner*math.Cos(angleInner)
		y = cy + outer*markerInner*math.Sin(angleInner)
		fmt.Fprintf(&b, " L %.2f,%.2f", x, y)
	}
	b.WriteString(" Z")
	return b.String()
}
