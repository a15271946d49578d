package pipeline

import (
	"context"
	"os"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/badgeforge/badgeforge/pkg/badge"
	"github.com/badgeforge/badgeforge/pkg/config"
	"github.com/badgeforge/badgeforge/pkg/errors"
	"github.com/badgeforge/badgeforge/pkg/layout"
	"github.com/badgeforge/badgeforge/pkg/location"
	"github.com/badgeforge/badgeforge/pkg/text"
)

// topRowMaxTags caps the upper tag row; remaining standard tags flow to
// the bottom row.
const topRowMaxTags = 2

// qrSizePx is the rendered profile QR code edge length.
const qrSizePx = 128

// Composer builds Compositions. One Composer serves many renders; all
// per-badge state is local to Compose.
type Composer struct {
	badge config.Badge

	truncator  *layout.NameTruncator
	styler     *layout.TagStyler
	flow       *layout.Flow
	normalizer *location.Normalizer
	graphics   *location.GraphicRenderer

	logger *log.Logger
}

// NewComposer wires the layout and location subsystems together. The
// normalizer and graphics renderer may be nil to disable location
// handling entirely (e.g. offline runs).
func NewComposer(m *text.Measurer, cfg config.Config, normalizer *location.Normalizer, graphics *location.GraphicRenderer, logger *log.Logger) *Composer {
	if logger == nil {
		logger = log.Default()
	}
	return &Composer{
		badge:      cfg.Badge,
		truncator:  layout.NewNameTruncator(m, cfg.Badge, cfg.Fonts),
		styler:     layout.NewTagStyler(m, cfg.Badge, cfg.Fonts),
		flow:       layout.NewFlow(m, cfg.Badge, cfg.Fonts),
		normalizer: normalizer,
		graphics:   graphics,
		logger:     logger,
	}
}

// Compose resolves one attendee against an event into a Composition.
//
// Hard errors are content problems the operator must fix: an invalid
// attendee record, a tag value for an undefined category, a micro-tag
// value over its character budget, or an interests image path that does
// not exist. Location failures and tag-row overflow degrade softly and
// never fail the badge.
func (c *Composer) Compose(ctx context.Context, event *badge.Event, att *badge.Attendee, interestsImage string) (*Composition, error) {
	if err := att.Validate(); err != nil {
		return nil, err
	}
	assignments, err := att.Assignments(event)
	if err != nil {
		return nil, err
	}

	comp := &Composition{
		RenderID:     uuid.NewString(),
		EventID:      event.ID,
		EventName:    event.DisplayName,
		AttendeeID:   att.ID,
		Name:         c.truncator.Fit(att.Name),
		Pronouns:     att.Pronouns,
		Company:      att.Company,
		SocialIcon:   att.SocialIcon(),
		SocialHandle: att.SocialHandle,
		Interests:    att.Interests,
	}
	if comp.Name.Truncated {
		c.logger.Debug("name truncated",
			"attendee", att.ID, "original", att.Name, "display", comp.Name.Text)
	}

	titleLines := c.flow.TitleLines(att.Title)
	comp.TitleLines = c.flow.SplitTitle(att.Title, titleLines)

	hasInterests := att.HasInterests() && interestsImage != ""
	if hasInterests {
		// A supplied collage path must exist; a silently dropped band
		// would ship a badge missing content the attendee asked for.
		if _, err := os.Stat(interestsImage); err != nil {
			return nil, errors.New(errors.ErrCodeFileNotFound,
				"interests image %s: not found", interestsImage)
		}
	}
	comp.Flow = c.flow.Layout(titleLines, hasInterests)
	if comp.Flow.HasInterests {
		comp.InterestsImage = interestsImage
	}

	c.composeTags(comp, assignments)
	c.composeLocation(ctx, comp, att)

	if att.ProfileURL != "" {
		png, err := qrcode.Encode(att.ProfileURL, qrcode.Medium, qrSizePx)
		if err != nil {
			// Soft failure: a bad URL loses its QR code, not the badge.
			c.logger.Warn("profile QR skipped", "attendee", att.ID, "err", err)
		} else {
			comp.ProfileQR = png
		}
	}

	return comp, nil
}

// composeTags splits assignments into rows and styles each row. The top
// row holds at most two standard tags at full width; the bottom row
// takes the rest, with a narrower budget when micro circles share it.
func (c *Composer) composeTags(comp *Composition, assignments []badge.TagAssignment) {
	var standard []badge.TagAssignment
	for _, a := range assignments {
		if a.Display == badge.DisplayMicro {
			comp.MicroTags = append(comp.MicroTags, a)
		} else {
			standard = append(standard, a)
		}
	}

	top := standard
	if len(top) > topRowMaxTags {
		top = standard[:topRowMaxTags]
	}
	bottom := standard[len(top):]

	comp.TopTags = c.styleRow(comp.AttendeeID, top, c.badge.TagRowWidthIn)

	bottomWidth := c.badge.TagRowWidthIn
	if len(comp.MicroTags) > 0 {
		bottomWidth = c.badge.BottomRowMicroWidthIn
	}
	comp.BottomTags = c.styleRow(comp.AttendeeID, bottom, bottomWidth)
}

func (c *Composer) styleRow(attendeeID string, tags []badge.TagAssignment, widthIn float64) TagRow {
	labels := make([]string, len(tags))
	for i, tag := range tags {
		labels[i] = tag.Value
	}
	style := c.styler.Fit(labels, widthIn)
	if !style.Fits {
		// Accepted overflow: render with the tightest styling anyway.
		c.logger.Warn("tag row overflows its zone",
			"attendee", attendeeID, "tags", labels, "width_in", widthIn)
	}
	return TagRow{Tags: tags, Style: style}
}

// composeLocation fills the normalized label and outline graphic.
// Both are independent soft failures.
func (c *Composer) composeLocation(ctx context.Context, comp *Composition, att *badge.Attendee) {
	if att.Location == "" {
		return
	}
	if c.normalizer != nil {
		if normalized, ok := c.normalizer.Normalize(ctx, att.Location); ok {
			comp.Location = normalized
		} else {
			comp.Location = att.Location
		}
	} else {
		comp.Location = att.Location
	}
	if c.graphics != nil {
		comp.LocationSVG = c.graphics.Render(ctx, att.Location)
	}
}
