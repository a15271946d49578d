package location

import "github.com/paulmach/orb"

// paddingRatio is the margin kept on each side of the canvas so the
// outline never touches the edge.
const paddingRatio = 0.1

// Transformer maps lon/lat coordinates into pixel space for a fixed
// canvas: uniform scale (aspect ratio preserved), centered, with the Y
// axis flipped so geographic north is at the top.
type Transformer struct {
	bound   orb.Bound
	scale   float64
	offsetX float64
	offsetY float64
}

// NewTransformer fits the geometry's bounding box into a canvas of the
// given pixel size with padding on every side.
func NewTransformer(geom orb.Geometry, canvasW, canvasH float64) Transformer {
	bound := geom.Bound()
	geoW := bound.Max[0] - bound.Min[0]
	geoH := bound.Max[1] - bound.Min[1]

	usableW := canvasW * (1 - 2*paddingRatio)
	usableH := canvasH * (1 - 2*paddingRatio)

	// Uniform scale: the smaller factor fits the whole outline.
	scale := 0.0
	if geoW > 0 && geoH > 0 {
		scale = min(usableW/geoW, usableH/geoH)
	}

	return Transformer{
		bound:   bound,
		scale:   scale,
		offsetX: (canvasW - geoW*scale) / 2,
		offsetY: (canvasH - geoH*scale) / 2,
	}
}

// Pixel converts a lon/lat coordinate to canvas pixels. Degenerate
// bounds collapse to the canvas center.
func (t Transformer) Pixel(lon, lat float64) (x, y float64) {
	geoW := t.bound.Max[0] - t.bound.Min[0]
	geoH := t.bound.Max[1] - t.bound.Min[1]

	normX, normY := 0.5, 0.5
	if geoW > 0 {
		normX = (lon - t.bound.Min[0]) / geoW
	}
	if geoH > 0 {
		// Flip: higher latitude means closer to the top of the canvas.
		normY = (t.bound.Max[1] - lat) / geoH
	}

	return normX*geoW*t.scale + t.offsetX, normY*geoH*t.scale + t.offsetY
}
