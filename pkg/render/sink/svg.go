package sink

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"os"

	svg "github.com/ajstarks/svgo"

	"github.com/badgeforge/badgeforge/pkg/config"
	"github.com/badgeforge/badgeforge/pkg/errors"
	"github.com/badgeforge/badgeforge/pkg/pipeline"
	"github.com/badgeforge/badgeforge/pkg/text"
)

// dpi is the preview raster density: 96 px per inch keeps the SVG sized
// for screens while all layout math stays in inches.
const dpi = 96.0

// Badge preview palette.
const (
	inkColor      = "#3D405B"
	mutedColor    = "#8D91A8"
	ruleColor     = "#D9DBE4"
	pillTextColor = "#FFFFFF"
)

// contentMargin centers the 2.7in content column on the 3in badge.
const contentMargin = 0.15

// SVGSink composes the full badge preview as a standalone SVG document.
type SVGSink struct {
	dir string
	m   *text.Measurer
	cfg config.Config
}

// NewSVGSink creates a sink writing under dir. The measurer is used to
// size tag pills; it must be the same one the layout engine used or
// pills will not match their computed rows.
func NewSVGSink(dir string, m *text.Measurer, cfg config.Config) *SVGSink {
	return &SVGSink{dir: dir, m: m, cfg: cfg}
}

// Name identifies the sink in logs.
func (s *SVGSink) Name() string { return "svg" }

// Write renders the composition to <dir>/<event>/<attendee>.svg.
func (s *SVGSink) Write(_ context.Context, comp *pipeline.Composition) error {
	path, err := outputPath(s.dir, comp.EventID, comp.AttendeeID, "svg")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, s.Render(comp), 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
	}
	return nil
}

// Render produces the badge SVG bytes. Used directly by the preview
// server, which streams badges without touching disk.
func (s *SVGSink) Render(comp *pipeline.Composition) []byte {
	b := s.cfg.Badge
	w, h := px(b.WidthIn), px(b.HeightIn)

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Start(w, h, fmt.Sprintf(`viewBox="0 0 %d %d"`, w, h))
	canvas.Rect(0, 0, w, h, `fill="#FFFFFF" stroke="`+ruleColor+`" stroke-width="1"`)

	s.identityZone(canvas, comp)
	s.professionalBlock(canvas, comp)
	s.interestsBand(canvas, comp)
	s.tagRows(canvas, comp)

	canvas.End()
	return buf.Bytes()
}

// identityZone draws the name, pronouns, top tag row, and the separator
// rule above the professional block.
func (s *SVGSink) identityZone(canvas *svg.SVG, comp *pipeline.Composition) {
	b := s.cfg.Badge
	centerX := px(b.WidthIn / 2)

	canvas.Text(centerX, px(0.75), comp.Name.Text, fmt.Sprintf(
		`text-anchor="middle" font-family="%s" font-weight="bold" font-size="%.1f" fill="%s"`,
		s.cfg.Fonts.Name, ptPx(comp.Name.FontPt), inkColor))

	if comp.Pronouns != "" {
		canvas.Text(centerX, px(0.98), comp.Pronouns, fmt.Sprintf(
			`text-anchor="middle" font-family="%s" font-size="%.1f" fill="%s"`,
			s.cfg.Fonts.Body, ptPx(8), mutedColor))
	}

	s.pillRow(canvas, comp.TopTags, px(1.20))

	if comp.ProfileQR != nil {
		size := px(0.35)
		canvas.Image(px(b.WidthIn)-px(contentMargin)-size, px(0.10), size, size,
			dataURI("image/png", comp.ProfileQR))
	}

	sep := px(1.75)
	canvas.Line(px(contentMargin), sep, px(b.WidthIn-contentMargin), sep,
		`stroke="`+ruleColor+`" stroke-width="1"`)
}

// professionalBlock draws title lines, company, the location label, and
// the location outline graphic beside the text.
func (s *SVGSink) professionalBlock(canvas *svg.SVG, comp *pipeline.Composition) {
	b := s.cfg.Badge
	left := px(contentMargin)
	y := comp.Flow.ProfessionalTopIn

	for _, line := range comp.TitleLines {
		y += comp.Flow.TitleLineHeightIn
		canvas.Text(left, px(y), line, fmt.Sprintf(
			`font-family="%s" font-size="%.1f" fill="%s"`,
			s.cfg.Fonts.Body, ptPx(b.TitleFontPt), inkColor))
	}

	if comp.Company != "" {
		y += b.CompanyMarginTopIn + b.CompanyFontPt*b.LineHeight/text.PointsPerInch
		canvas.Text(left, px(y), comp.Company, fmt.Sprintf(
			`font-family="%s" font-size="%.1f" fill="%s"`,
			s.cfg.Fonts.Body, ptPx(b.CompanyFontPt), mutedColor))
	}

	graphicX := px(b.WidthIn - contentMargin - comp.Flow.GraphicSizeIn)
	if comp.LocationSVG != nil {
		size := px(comp.Flow.GraphicSizeIn)
		canvas.Image(graphicX, px(comp.Flow.GraphicTopIn), size, size,
			dataURI("image/svg+xml", comp.LocationSVG))
	}
	if comp.Location != "" {
		label := comp.Location
		if comp.SocialHandle != "" {
			label += "  ·  " + comp.SocialHandle
		}
		canvas.Text(left, px(comp.Flow.ProfessionalTopIn+comp.Flow.ProfessionalHeightIn+0.14), label,
			fmt.Sprintf(`font-family="%s" font-size="%.1f" fill="%s"`,
				s.cfg.Fonts.Body, ptPx(7), mutedColor))
	}
}

// interestsBand places the pre-supplied illustration, scaled and
// offset exactly as the flow computed.
func (s *SVGSink) interestsBand(canvas *svg.SVG, comp *pipeline.Composition) {
	if !comp.Flow.HasInterests {
		return
	}
	x := px(contentMargin + comp.Flow.InterestsLeftIn)
	y := px(comp.Flow.InterestsTopIn)
	w := px(comp.Flow.InterestsWidthIn)
	h := px(comp.Flow.InterestsHeightIn)

	if data, err := os.ReadFile(comp.InterestsImage); err == nil {
		canvas.Image(x, y, w, h, dataURI("image/png", data))
		return
	}
	// Missing file degrades to a framed placeholder.
	canvas.Roundrect(x, y, w, h, 6, 6, `fill="none" stroke="`+ruleColor+`" stroke-width="1"`)
}

// tagRows draws the bottom pill row and the micro circles to its right.
func (s *SVGSink) tagRows(canvas *svg.SVG, comp *pipeline.Composition) {
	b := s.cfg.Badge
	s.pillRow(canvas, comp.BottomTags, px(b.BottomTagsTopIn))

	size := px(b.MicroBadgeSizeIn)
	x := px(b.WidthIn-contentMargin) - size
	for i := len(comp.MicroTags) - 1; i >= 0; i-- {
		tag := comp.MicroTags[i]
		cy := px(b.BottomTagsTopIn) + size/2
		canvas.Circle(x+size/2, cy, size/2, `fill="`+pillColor(tag.Color)+`"`)
		canvas.Text(x+size/2, cy+px(0.03), tag.Value, fmt.Sprintf(
			`text-anchor="middle" font-family="%s" font-size="%.1f" fill="%s"`,
			s.cfg.Fonts.Body, ptPx(7), pillTextColor))
		x -= size + px(0.06)
	}
}

// pillRow draws one styled row of standard tag pills starting at the
// content margin.
func (s *SVGSink) pillRow(canvas *svg.SVG, row pipeline.TagRow, topPx int) {
	if len(row.Tags) == 0 {
		return
	}
	style := row.Style
	font := text.Font{Family: s.cfg.Fonts.Body}
	heightIn := style.FontPt/text.PointsPerInch + 0.08

	x := contentMargin
	for _, tag := range row.Tags {
		widthIn := s.m.WidthIn(tag.Value, font, style.FontPt) + 2*style.PaddingIn
		canvas.Roundrect(px(x), topPx, px(widthIn), px(heightIn), 8, 8,
			`fill="`+pillColor(tag.Color)+`"`)
		canvas.Text(px(x+widthIn/2), topPx+px(heightIn/2+0.025), tag.Value, fmt.Sprintf(
			`text-anchor="middle" font-family="%s" font-size="%.1f" fill="%s"`,
			s.cfg.Fonts.Body, ptPx(style.FontPt), pillTextColor))
		x += widthIn + style.GapIn
	}
}

// pillColor falls back to the ink color for categories defined without
// one, so pills never render with an empty fill.
func pillColor(c string) string {
	if c == "" {
		return inkColor
	}
	return c
}

func px(in float64) int { return int(in*dpi + 0.5) }

// ptPx converts font points to pixels at the preview density.
func ptPx(pt float64) float64 { return pt * dpi / text.PointsPerInch }

func dataURI(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

var _ pipeline.Sink = (*SVGSink)(nil)
