package location

import (
	"bytes"
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/badgeforge/badgeforge/pkg/cache"
	"github.com/badgeforge/badgeforge/pkg/errors"
)

// DefaultCanvasPx is the square location-graphic canvas: half an inch at
// 288 DPI.
const DefaultCanvasPx = 144

// GraphicRenderer orchestrates the full location pipeline and caches the
// resulting SVG bytes keyed by the parsed query and canvas size.
type GraphicRenderer struct {
	geocoder   *Geocoder
	boundaries *BoundaryFetcher
	cache      cache.Cache
	keyer      cache.Keyer
	ttl        time.Duration
	canvasPx   int
	logger     *log.Logger
}

// NewGraphicRenderer builds the orchestrator. A nil logger uses the
// package default.
func NewGraphicRenderer(g *Geocoder, b *BoundaryFetcher, c cache.Cache, k cache.Keyer, ttl time.Duration, canvasPx int, logger *log.Logger) *GraphicRenderer {
	if canvasPx <= 0 {
		canvasPx = DefaultCanvasPx
	}
	if logger == nil {
		logger = log.Default()
	}
	return &GraphicRenderer{
		geocoder:   g,
		boundaries: b,
		cache:      c,
		keyer:      k,
		ttl:        ttl,
		canvasPx:   canvasPx,
		logger:     logger,
	}
}

// Render produces the location graphic SVG for a raw location string, or
// nil when any stage fails. Failure is always soft: the badge simply
// omits the graphic. Each miss runs parse -> geocode -> boundary ->
// project -> render and caches the SVG bytes.
func (r *GraphicRenderer) Render(ctx context.Context, locationStr string) []byte {
	parsed := Parse(locationStr)
	if parsed.City == "" {
		return nil
	}

	key := r.keyer.GraphicKey(parsed.Query(), r.canvasPx)
	if data, hit, err := r.cache.Get(ctx, key); err == nil && hit {
		if len(data) == 0 {
			return nil // known failure
		}
		return data
	}

	svg, cacheable := r.render(ctx, parsed)
	if cacheable {
		// Failures are cached as empty bytes, the same marker the
		// normalizer uses, so known-bad locations skip the pipeline.
		if err := r.cache.Set(ctx, key, svg, r.ttl); err != nil {
			r.logger.Warn("location graphic cache write failed", "err", err)
		}
	}
	if len(svg) == 0 {
		return nil
	}
	return svg
}

// render runs the pipeline stages, returning nil on the first failure.
// cacheable is false for transient failures (network errors), which must
// not be persisted as permanent misses.
func (r *GraphicRenderer) render(ctx context.Context, parsed ParsedLocation) (svg []byte, cacheable bool) {
	result := r.geocoder.Geocode(ctx, parsed.Query())
	if result.Status != GeocodeFound {
		r.logger.Debug("location graphic skipped: geocoding failed",
			"location", parsed.Original, "status", result.Status, "err", result.Err)
		return nil, result.Status == GeocodeNotFound
	}

	boundary, err := r.boundaries.Boundary(parsed)
	if err != nil {
		r.logger.Debug("location graphic skipped: no boundary",
			"location", parsed.Original, "err", err)
		return nil, errors.Is(err, errors.ErrCodeBoundaryNotFound)
	}

	size := float64(r.canvasPx)
	transformer := NewTransformer(boundary, size, size)
	markerX, markerY := transformer.Pixel(result.Location.Longitude, result.Location.Latitude)

	var buf bytes.Buffer
	NewRenderer(r.canvasPx).Render(&buf, boundary, transformer, markerX, markerY)
	return buf.Bytes(), true
}
