package layout

import (
	"github.com/badgeforge/badgeforge/pkg/config"
	"github.com/badgeforge/badgeforge/pkg/text"
)

// Styling ladders for the tag-row search, most generous first. The
// search nests font size outermost: a row keeps the largest readable
// font and gives up whitespace first, which matters more than either
// padding or gap alone.
var (
	tagFontLadder    = []float64{8, 7.5, 7}
	tagPaddingLadder = []float64{0.12, 0.10, 0.08}
	tagGapLadder     = []float64{0.08, 0.06, 0.04}
)

// TagRowStyle is the uniform styling chosen for one row of tag pills.
// All pills in a row share the same font size, padding, and gap.
type TagRowStyle struct {
	FontPt    float64
	PaddingIn float64 // horizontal padding inside each pill, per side
	GapIn     float64 // space between adjacent pills

	// Fits is false when even the tightest combination overflows the
	// usable width; the row is still rendered with that combination.
	Fits bool
}

// TagStyler chooses pill styling for tag rows so a row of labels fits
// the available width without wrapping.
type TagStyler struct {
	measurer *text.Measurer
	font     text.Font
	safety   float64
}

// NewTagStyler builds a styler using the body font and the configured
// usable fraction of the row width.
func NewTagStyler(m *text.Measurer, badge config.Badge, fonts config.Fonts) *TagStyler {
	return &TagStyler{
		measurer: m,
		font:     text.Font{Family: fonts.Body},
		safety:   badge.TagSafetyFactor,
	}
}

// Fit searches the fixed styling ladders for the first combination whose
// total row width fits within maxWidthIn times the safety factor. The
// search is exhaustive over 27 combinations and always terminates; when
// nothing fits it returns the tightest combination with Fits set false.
// An empty row gets the most generous styling.
func (s *TagStyler) Fit(labels []string, maxWidthIn float64) TagRowStyle {
	baseline := TagRowStyle{
		FontPt:    tagFontLadder[0],
		PaddingIn: tagPaddingLadder[0],
		GapIn:     tagGapLadder[0],
		Fits:      true,
	}
	if len(labels) == 0 {
		return baseline
	}

	usable := maxWidthIn * s.safety
	for _, fontPt := range tagFontLadder {
		for _, paddingIn := range tagPaddingLadder {
			for _, gapIn := range tagGapLadder {
				if s.rowWidth(labels, fontPt, paddingIn, gapIn) <= usable {
					return TagRowStyle{FontPt: fontPt, PaddingIn: paddingIn, GapIn: gapIn, Fits: true}
				}
			}
		}
	}

	last := len(tagFontLadder) - 1
	return TagRowStyle{
		FontPt:    tagFontLadder[last],
		PaddingIn: tagPaddingLadder[len(tagPaddingLadder)-1],
		GapIn:     tagGapLadder[len(tagGapLadder)-1],
	}
}

// rowWidth is the total width of a row: each pill is its text width plus
// padding on both sides, and pills are separated by the gap.
func (s *TagStyler) rowWidth(labels []string, fontPt, paddingIn, gapIn float64) float64 {
	var w float64
	for i, label := range labels {
		if i > 0 {
			w += gapIn
		}
		w += s.measurer.WidthIn(label, s.font, fontPt) + 2*paddingIn
	}
	return w
}
