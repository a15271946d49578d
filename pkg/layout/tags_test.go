package layout

import (
	"strings"
	"testing"
)

func newTestStyler(t *testing.T) *TagStyler {
	t.Helper()
	badge, fonts := testGeometry()
	return NewTagStyler(newTestMeasurer(t), badge, fonts)
}

func TestTagStylerEmptyRowGetsBaseline(t *testing.T) {
	s := newTestStyler(t)

	got := s.Fit(nil, 2.7)
	want := TagRowStyle{FontPt: 8, PaddingIn: 0.12, GapIn: 0.08, Fits: true}
	if got != want {
		t.Errorf("empty row = %+v, want %+v", got, want)
	}
}

func TestTagStylerShortRowKeepsBaseline(t *testing.T) {
	s := newTestStyler(t)

	got := s.Fit([]string{"Speaker", "Staff"}, 2.7)
	if !got.Fits {
		t.Fatalf("short row should fit: %+v", got)
	}
	if got.FontPt != 8 || got.PaddingIn != 0.12 || got.GapIn != 0.08 {
		t.Errorf("short row should keep the most generous styling, got %+v", got)
	}
}

func TestTagStylerFitInvariant(t *testing.T) {
	s := newTestStyler(t)

	labels := []string{"Kubernetes", "Observability", "Maintainer"}
	got := s.Fit(labels, 2.7)
	if !got.Fits {
		t.Fatalf("row should find a fitting combination: %+v", got)
	}
	width := s.rowWidth(labels, got.FontPt, got.PaddingIn, got.GapIn)
	if usable := 2.7 * s.safety; width > usable {
		t.Errorf("chosen styling overflows: %g > %g", width, usable)
	}
}

func TestTagStylerOverflowReturnsTightest(t *testing.T) {
	s := newTestStyler(t)

	labels := []string{
		strings.Repeat("Infrastructure", 3),
		strings.Repeat("Observability", 3),
		strings.Repeat("Architecture", 3),
	}
	got := s.Fit(labels, 2.7)
	if got.Fits {
		t.Fatalf("absurd row should not fit: %+v", got)
	}
	want := TagRowStyle{FontPt: 7, PaddingIn: 0.08, GapIn: 0.04}
	if got != want {
		t.Errorf("overflow should use the tightest combination, got %+v", got)
	}
}

func TestTagStylerFontShrinksBeforeGivingUp(t *testing.T) {
	s := newTestStyler(t)

	// Wide enough that the baseline overflows but a smaller combination
	// fits. The search must stay deterministic: same inputs, same style.
	labels := []string{"Distributed Systems", "Platform Engineering"}
	first := s.Fit(labels, 2.7)
	second := s.Fit(labels, 2.7)
	if first != second {
		t.Errorf("styling not deterministic: %+v != %+v", first, second)
	}
	if !first.Fits {
		t.Fatalf("row should fit at some combination: %+v", first)
	}
}

func TestTagStylerNarrowerBudgetNeverLooser(t *testing.T) {
	s := newTestStyler(t)

	labels := []string{"Platform", "Security", "Hiring"}
	wide := s.Fit(labels, 2.7)
	narrow := s.Fit(labels, 2.25)
	if narrow.FontPt > wide.FontPt {
		t.Errorf("narrower budget got a larger font: %g > %g", narrow.FontPt, wide.FontPt)
	}
}
