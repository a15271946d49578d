package layout

import (
	"math"
	"testing"
)

func newTestFlow(t *testing.T) *Flow {
	t.Helper()
	badge, fonts := testGeometry()
	return NewFlow(newTestMeasurer(t), badge, fonts)
}

func TestTitleLines(t *testing.T) {
	f := newTestFlow(t)

	if got := f.TitleLines(""); got != 0 {
		t.Errorf("empty title = %d lines, want 0", got)
	}
	if got := f.TitleLines("Engineer"); got != 1 {
		t.Errorf("short title = %d lines, want 1", got)
	}
	long := "Senior Principal Distinguished Engineer of Infrastructure Platforms"
	if got := f.TitleLines(long); got != 2 {
		t.Errorf("long title = %d lines, want 2 (clamped)", got)
	}
}

func TestSplitTitleTwoLines(t *testing.T) {
	f := newTestFlow(t)

	title := "Senior Principal Distinguished Engineer of Infrastructure Platforms"
	lines := f.SplitTitle(title, 2)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}

	usable := f.badge.TitleZoneWidthIn * (1 - f.badge.TitleSafetyMargin)
	if w := f.measurer.WidthIn(lines[0], f.bodyFont, f.badge.TitleFontPt); w > usable {
		t.Errorf("first line overflows: %q measures %g > %g", lines[0], w, usable)
	}

	// No words lost or reordered.
	if joined := lines[0] + " " + lines[1]; joined != title {
		t.Errorf("rejoined = %q, want original", joined)
	}
}

func TestSplitTitleSingleLine(t *testing.T) {
	f := newTestFlow(t)

	lines := f.SplitTitle("Staff Engineer", 1)
	if len(lines) != 1 || lines[0] != "Staff Engineer" {
		t.Errorf("got %v", lines)
	}
	if got := f.SplitTitle("", 2); got != nil {
		t.Errorf("empty title should split to nil, got %v", got)
	}
}

func TestLayoutMinimalAttendee(t *testing.T) {
	f := newTestFlow(t)
	b := f.badge

	got := f.Layout(0, false)
	// Company height is a fixed one-line block even with no title.
	want := b.CompanyMarginTopIn + b.CompanyFontPt*b.LineHeight/72
	if math.Abs(got.ProfessionalHeightIn-want) > 1e-9 {
		t.Errorf("block height = %g, want %g", got.ProfessionalHeightIn, want)
	}
	if got.HasInterests {
		t.Error("no interests requested, band should be absent")
	}
	if got.ProfessionalTopIn != b.ProfessionalTopIn {
		t.Errorf("professional top = %g", got.ProfessionalTopIn)
	}
}

func TestLayoutCompanyLineUsesLineHeight(t *testing.T) {
	f := newTestFlow(t)

	// One title line plus the company line, both at the 1.2 line height:
	// 10pt*1.2/72 + 0.04 + 9pt*1.2/72.
	got := f.Layout(1, true)
	if want := 0.35667; math.Abs(got.ProfessionalHeightIn-want) > 1e-5 {
		t.Errorf("block height = %g, want %g", got.ProfessionalHeightIn, want)
	}
	if want := 2.28667; math.Abs(got.InterestsTopIn-want) > 1e-5 {
		t.Errorf("interests top = %g, want %g", got.InterestsTopIn, want)
	}
}

func TestLayoutFullBandWhenRoomAllows(t *testing.T) {
	f := newTestFlow(t)
	b := f.badge

	got := f.Layout(0, true)
	if !got.HasInterests {
		t.Fatal("band should be present")
	}
	if got.InterestsHeightIn != b.InterestsBandHeightIn || got.InterestsWidthIn != b.InterestsBandWidthIn {
		t.Errorf("band should be full size, got %gx%g", got.InterestsWidthIn, got.InterestsHeightIn)
	}
	if got.InterestsLeftIn != 0 {
		t.Errorf("nominal band should have no horizontal offset, got %g", got.InterestsLeftIn)
	}
}

func TestLayoutBandShrinksAndRecenters(t *testing.T) {
	f := newTestFlow(t)
	b := f.badge

	got := f.Layout(2, true)
	if !got.HasInterests {
		t.Fatal("band should survive shrinking")
	}
	if got.InterestsHeightIn >= b.InterestsBandHeightIn {
		t.Errorf("band should shrink below %g, got %g", b.InterestsBandHeightIn, got.InterestsHeightIn)
	}

	// Aspect ratio preserved.
	wantRatio := b.InterestsBandWidthIn / b.InterestsBandHeightIn
	gotRatio := got.InterestsWidthIn / got.InterestsHeightIn
	if math.Abs(gotRatio-wantRatio) > 1e-9 {
		t.Errorf("ratio = %g, want %g", gotRatio, wantRatio)
	}

	// Band still clears the bottom tag row.
	bottom := got.InterestsTopIn + got.InterestsHeightIn
	if limit := b.BottomTagsTopIn - b.MinGapToTagsIn; bottom > limit+1e-9 {
		t.Errorf("band bottom %g crowds the tag row (limit %g)", bottom, limit)
	}

	// Re-centered within the nominal band width.
	if want := (b.InterestsBandWidthIn - got.InterestsWidthIn) / 2; math.Abs(got.InterestsLeftIn-want) > 1e-9 {
		t.Errorf("band left = %g, want %g", got.InterestsLeftIn, want)
	}
}

func TestLayoutGraphicCenteredOnBlock(t *testing.T) {
	f := newTestFlow(t)
	b := f.badge

	got := f.Layout(1, false)
	center := got.ProfessionalTopIn + got.ProfessionalHeightIn/2
	graphicCenter := got.GraphicTopIn + b.GraphicSizeIn/2
	if math.Abs(center-graphicCenter) > 1e-9 {
		t.Errorf("graphic center %g, block center %g", graphicCenter, center)
	}
}
