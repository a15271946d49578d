// Package text provides the text-width oracle used by every fitting
// algorithm in the layout engine.
//
// Widths come from real font metrics via HarfBuzz shaping
// (go-text/typesetting), not per-character estimates, because the name
// truncator, tag styler, and title-line estimator all make fit/no-fit
// decisions against fixed physical widths. The embedded Go fonts stand in
// for the print renderer's faces; the safety margins in pkg/config exist
// to absorb whatever metric gap remains, and must be retuned if the
// renderer's fonts change.
package text

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/fontscan"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

// PointsPerInch converts between font points and physical inches.
const PointsPerInch = 72.0

// Font selects a family and weight for measurement.
type Font struct {
	Family string
	Bold   bool
}

// Measurer computes rendered text widths using HarfBuzz shaping.
// It is safe for concurrent use; the font map is guarded by a mutex
// because fontscan queries mutate its current-query state.
type Measurer struct {
	mu      sync.Mutex
	fontMap *fontscan.FontMap
	shaper  shaping.HarfbuzzShaper
}

// NewMeasurer creates a Measurer with the embedded Go fonts registered
// under the family "Go". Unknown families fall back to these faces, so
// measurement never fails on a misconfigured family name.
func NewMeasurer() (*Measurer, error) {
	fm := fontscan.NewFontMap(nil)

	faces := []struct {
		data []byte
		id   string
	}{
		{goregular.TTF, "goregular"},
		{gobold.TTF, "gobold"},
		{goitalic.TTF, "goitalic"},
		{gobolditalic.TTF, "gobolditalic"},
	}
	for _, f := range faces {
		if err := fm.AddFont(bytes.NewReader(f.data), f.id, "Go"); err != nil {
			return nil, fmt.Errorf("text: loading %s: %w", f.id, err)
		}
	}

	return &Measurer{fontMap: fm}, nil
}

// WidthPt returns the rendered width of text in points at the given size.
// Empty text measures zero.
func (m *Measurer) WidthPt(text string, f Font, sizePt float64) float64 {
	if text == "" || sizePt <= 0 {
		return 0
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	weight := font.WeightNormal
	if f.Bold {
		weight = font.WeightBold
	}

	families := []string{f.Family, "Go", fontscan.SansSerif}
	m.fontMap.SetQuery(fontscan.Query{
		Families: families,
		Aspect:   font.Aspect{Weight: weight},
	})
	m.fontMap.SetScript(language.Latin)

	runes := []rune(text)
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Size:      fixed.Int26_6(sizePt * 64),
		Script:    language.Latin,
		Language:  language.NewLanguage("en"),
	}

	// Split by font face so fallback glyphs are measured with the face
	// that will actually render them.
	splits := shaping.SplitByFace(input, m.fontMap)

	var advance fixed.Int26_6
	for _, split := range splits {
		out := m.shaper.Shape(split)
		advance += out.Advance
	}

	return float64(advance) / 64.0
}

// WidthIn returns the rendered width of text in inches at the given size.
func (m *Measurer) WidthIn(text string, f Font, sizePt float64) float64 {
	return m.WidthPt(text, f, sizePt) / PointsPerInch
}
