package layout

import (
	"strings"

	"github.com/badgeforge/badgeforge/pkg/config"
	"github.com/badgeforge/badgeforge/pkg/text"
)

// FitStage identifies how far the truncation waterfall had to go.
type FitStage int

const (
	// StageFull means the name fit untouched at the default size.
	StageFull FitStage = iota

	// StageShrunk means only the font size was reduced.
	StageShrunk

	// StageReduced means a structural reduction was applied.
	StageReduced
)

// NameFit is the outcome of fitting a name into the name zone.
type NameFit struct {
	// Text is the display string, possibly structurally reduced.
	Text string

	// FontPt is the chosen font size in points.
	FontPt float64

	// Stage records how the fit was achieved.
	Stage FitStage

	// Truncated reports whether any structural reduction was applied.
	// Font-size shrink alone does not count as truncation.
	Truncated bool
}

// NameTruncator fits attendee names into the fixed name zone by first
// shrinking the font and only then dropping name components, least
// significant first. It never fails: the final fallback renders whatever
// remains at the minimum size even if it overflows the safety margin.
type NameTruncator struct {
	measurer *text.Measurer
	font     text.Font

	maxWidthIn float64
	defaultPt  float64
	minPt      float64
	margin     float64
}

// NewNameTruncator builds a truncator from the badge geometry.
func NewNameTruncator(m *text.Measurer, badge config.Badge, fonts config.Fonts) *NameTruncator {
	return &NameTruncator{
		measurer:   m,
		font:       text.Font{Family: fonts.Name, Bold: true},
		maxWidthIn: badge.NameMaxWidthIn,
		defaultPt:  badge.NameFontPt,
		minPt:      badge.NameMinFontPt,
		margin:     badge.NameSafetyMargin,
	}
}

// Fit runs the truncation waterfall:
//
//  1. try the full name at the default size
//  2. shrink in 1pt steps down to the minimum size
//  3. apply exactly one structural reduction and retry the size search
//     on the reduced text
//
// Only the first applicable reduction is taken: drop middle names, else
// drop the patronymic, else abbreviate to "First L.", else first name
// only. If even the reduced text overflows at the minimum size it is
// returned at the minimum size anyway; overflow there is an accepted
// visual degradation, never an error.
func (t *NameTruncator) Fit(fullName string) NameFit {
	full := strings.Join(strings.Fields(fullName), " ")
	if sizePt, ok := t.fitSize(full); ok {
		stage := StageFull
		if sizePt < t.defaultPt {
			stage = StageShrunk
		}
		return NameFit{Text: full, FontPt: sizePt, Stage: stage}
	}

	reduced := t.reduce(ParseName(fullName))
	truncated := reduced != full
	stage := StageShrunk
	if truncated {
		stage = StageReduced
	}

	if sizePt, ok := t.fitSize(reduced); ok {
		return NameFit{Text: reduced, FontPt: sizePt, Stage: stage, Truncated: truncated}
	}
	// Best effort: render the reduced form at minimum size.
	return NameFit{Text: reduced, FontPt: t.minPt, Stage: stage, Truncated: truncated}
}

// fitSize searches font sizes from the default down to the minimum in
// 1pt steps and returns the first size at which the text fits inside the
// zone width minus the safety margin.
func (t *NameTruncator) fitSize(s string) (float64, bool) {
	usable := t.maxWidthIn * (1 - t.margin)
	for sizePt := t.defaultPt; sizePt >= t.minPt; sizePt-- {
		if t.measurer.WidthIn(s, t.font, sizePt) <= usable {
			return sizePt, true
		}
	}
	return 0, false
}

// reduce applies the single structural reduction for a parsed name, in
// priority order. Dropping middles keeps connectors and the patronymic;
// dropping the patronymic keeps only the given and family names.
func (t *NameTruncator) reduce(p ParsedName) string {
	switch {
	case len(p.MiddleNames) > 0:
		return p.Reconstruct(false, true)
	case p.Patronymic != "":
		return p.FirstName + " " + p.LastName
	case p.FirstName != "" && p.LastName != "":
		initial := []rune(p.LastName)[0]
		return p.FirstName + " " + string(initial) + "."
	default:
		return p.FirstName
	}
}
