// Package pipeline assembles badge compositions: it runs the name, tag,
// flow, and location subsystems for one attendee and produces a
// Composition that render sinks serialize.
//
// The composer absorbs every soft failure (location graphics, tag-row
// overflow) and surfaces only content errors the operator must fix, such
// as a micro-tag value over its character budget.
package pipeline

import (
	"context"

	"github.com/badgeforge/badgeforge/pkg/badge"
	"github.com/badgeforge/badgeforge/pkg/layout"
)

// TagRow is a styled row of standard tag pills.
type TagRow struct {
	Tags  []badge.TagAssignment `json:"tags,omitempty"`
	Style layout.TagRowStyle    `json:"style"`
}

// Composition is the fully resolved layout for one badge, ready for a
// render sink. It is request-scoped: built, written, and discarded.
type Composition struct {
	RenderID   string `json:"render_id"`
	EventID    string `json:"event_id"`
	EventName  string `json:"event_name"`
	AttendeeID string `json:"attendee_id"`

	Name     layout.NameFit `json:"name"`
	Pronouns string         `json:"pronouns,omitempty"`

	TitleLines []string          `json:"title_lines,omitempty"`
	Company    string            `json:"company,omitempty"`
	Flow       layout.FlowLayout `json:"flow"`

	// Location holds the normalized display string; LocationSVG the
	// outline graphic. Either may be absent independently.
	Location    string `json:"location,omitempty"`
	LocationSVG []byte `json:"location_svg,omitempty"`

	SocialIcon   string `json:"social_icon,omitempty"`
	SocialHandle string `json:"social_handle,omitempty"`
	ProfileQR    []byte `json:"profile_qr,omitempty"` // PNG bytes

	Interests      []string `json:"interests,omitempty"`
	InterestsImage string   `json:"interests_image,omitempty"`

	// Standard tags split into a top row of at most two pills and a
	// bottom row holding the rest. Micro tags render as circles beside
	// the bottom row, narrowing its width budget.
	TopTags    TagRow                `json:"top_tags"`
	BottomTags TagRow                `json:"bottom_tags"`
	MicroTags  []badge.TagAssignment `json:"micro_tags,omitempty"`
}

// HasTags reports whether any tag row or micro tag is present.
func (c *Composition) HasTags() bool {
	return len(c.TopTags.Tags) > 0 || len(c.BottomTags.Tags) > 0 || len(c.MicroTags) > 0
}

// Sink consumes finished compositions. Implementations live in
// pkg/render/sink.
type Sink interface {
	// Name identifies the sink in logs and results.
	Name() string

	// Write serializes the composition.
	Write(ctx context.Context, comp *Composition) error
}
