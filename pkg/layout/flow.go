package layout

import (
	"strings"

	"github.com/badgeforge/badgeforge/pkg/config"
	"github.com/badgeforge/badgeforge/pkg/text"
)

// FlowLayout is the computed vertical placement of the badge's middle
// zones. All values are inches from the badge's top-left corner.
type FlowLayout struct {
	// Professional block (title lines plus company line).
	ProfessionalTopIn    float64
	TitleLines           int
	TitleLineHeightIn    float64
	ProfessionalHeightIn float64

	// Side graphic, vertically centered against the professional block.
	GraphicTopIn  float64
	GraphicSizeIn float64

	// Interests band, present only when HasInterests is true. The band
	// keeps its aspect ratio when shrunk; InterestsLeftIn is the offset
	// within the nominal band width that re-centers a shrunk band, zero
	// at nominal size.
	HasInterests      bool
	InterestsTopIn    float64
	InterestsLeftIn   float64
	InterestsWidthIn  float64
	InterestsHeightIn float64
}

// Flow computes the vertical cascade below the name zone: the
// professional block grows downward from a fixed top, the interests band
// floats below it, and everything must clear the fixed bottom tag row.
type Flow struct {
	measurer *text.Measurer
	bodyFont text.Font
	badge    config.Badge
}

// NewFlow builds the flow calculator from the badge geometry.
func NewFlow(m *text.Measurer, badge config.Badge, fonts config.Fonts) *Flow {
	return &Flow{
		measurer: m,
		bodyFont: text.Font{Family: fonts.Body},
		badge:    badge,
	}
}

// TitleLines estimates how many lines the title will occupy in the title
// zone: 0 for an empty title, 1 if it fits one line within the safety
// margin, otherwise 2. Titles are never given more than two lines; the
// renderer ellipsizes anything longer.
func (f *Flow) TitleLines(title string) int {
	title = strings.TrimSpace(title)
	if title == "" {
		return 0
	}
	usable := f.badge.TitleZoneWidthIn * (1 - f.badge.TitleSafetyMargin)
	if f.measurer.WidthIn(title, f.bodyFont, f.badge.TitleFontPt) <= usable {
		return 1
	}
	return 2
}

// SplitTitle breaks a title into at most lines physical lines, greedily
// filling each line up to the zone's usable width. A single word that
// exceeds the width gets a line to itself. The final line keeps whatever
// remains; the renderer handles visual overflow there.
func (f *Flow) SplitTitle(title string, lines int) []string {
	words := strings.Fields(title)
	if len(words) == 0 || lines <= 0 {
		return nil
	}
	if lines == 1 {
		return []string{strings.Join(words, " ")}
	}

	usable := f.badge.TitleZoneWidthIn * (1 - f.badge.TitleSafetyMargin)
	var out []string
	line := words[0]
	for _, word := range words[1:] {
		if len(out) == lines-1 {
			line += " " + word
			continue
		}
		candidate := line + " " + word
		if f.measurer.WidthIn(candidate, f.bodyFont, f.badge.TitleFontPt) <= usable {
			line = candidate
			continue
		}
		out = append(out, line)
		line = word
	}
	return append(out, line)
}

// Layout computes the vertical flow for an attendee's middle zones.
//
// The professional block starts at a fixed top; its height is the
// title-line count times the line height plus a fixed one-line company
// block. The interests band is placed one gap below the block, sized to
// the standard band, then shrunk (preserving its aspect ratio) and
// re-centered if it would otherwise crowd the bottom tag row. A band
// squeezed to nothing is dropped.
func (f *Flow) Layout(titleLines int, hasInterests bool) FlowLayout {
	b := f.badge

	titleLineIn := b.TitleFontPt * b.LineHeight / text.PointsPerInch
	blockHeight := float64(titleLines)*titleLineIn +
		b.CompanyMarginTopIn + b.CompanyFontPt*b.LineHeight/text.PointsPerInch

	layout := FlowLayout{
		ProfessionalTopIn:    b.ProfessionalTopIn,
		TitleLines:           titleLines,
		TitleLineHeightIn:    titleLineIn,
		ProfessionalHeightIn: blockHeight,
		GraphicTopIn:         b.ProfessionalTopIn + (blockHeight-b.GraphicSizeIn)/2,
		GraphicSizeIn:        b.GraphicSizeIn,
	}

	if !hasInterests {
		return layout
	}

	top := b.ProfessionalTopIn + blockHeight + b.InterestsGapIn
	available := b.BottomTagsTopIn - b.MinGapToTagsIn - top

	height := b.InterestsBandHeightIn
	if available < height {
		height = available
	}
	if height <= 0 {
		return layout
	}

	// Preserve the band's aspect ratio when shrinking. The left offset
	// re-centers a shrunk band within the nominal band width.
	ratio := b.InterestsBandWidthIn / b.InterestsBandHeightIn
	width := height * ratio

	layout.HasInterests = true
	layout.InterestsTopIn = top
	layout.InterestsHeightIn = height
	layout.InterestsWidthIn = width
	layout.InterestsLeftIn = (b.InterestsBandWidthIn - width) / 2
	return layout
}
