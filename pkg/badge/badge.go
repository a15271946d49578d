// Package badge defines the attendee, event, and tag records consumed by
// the layout pipeline.
//
// Tag display styles are a typed enum rather than free-form strings, and
// tag assignments are records carrying their category's color and display
// type, so the layout code never branches on raw map keys.
package badge

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/badgeforge/badgeforge/pkg/errors"
)

// DisplayType selects how a tag is rendered on the badge.
type DisplayType int

const (
	// DisplayStandard renders the tag as a rounded pill with text.
	DisplayStandard DisplayType = iota

	// DisplayMicro renders the tag as a small circle; values are limited
	// to 5 characters because the circle cannot grow or truncate.
	DisplayMicro
)

// String returns the wire name of the display type.
func (d DisplayType) String() string {
	switch d {
	case DisplayMicro:
		return "micro"
	default:
		return "standard"
	}
}

// ParseDisplayType converts a wire string to a DisplayType.
// Empty input defaults to standard.
func ParseDisplayType(s string) (DisplayType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "standard":
		return DisplayStandard, nil
	case "micro":
		return DisplayMicro, nil
	default:
		return DisplayStandard, errors.New(errors.ErrCodeInvalidTag, "unknown display type %q", s)
	}
}

// MarshalJSON encodes the display type as its wire name.
func (d DisplayType) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON decodes the wire name, rejecting unknown values.
func (d *DisplayType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDisplayType(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// TagCategory defines one tag dimension for an event (e.g. "Role").
type TagCategory struct {
	Name        string   `json:"name" bson:"name"`
	Values      []string `json:"values,omitempty" bson:"values,omitempty"`
	Color       string   `json:"color" bson:"color"`
	DisplayType string   `json:"display_type,omitempty" bson:"display_type,omitempty"`
}

// Display returns the category's parsed display type, defaulting to
// standard for empty or unknown values (unknown values are caught
// earlier by Event.Validate).
func (c TagCategory) Display() DisplayType {
	d, _ := ParseDisplayType(c.DisplayType)
	return d
}

// TagAssignment is one attendee's selected value for a category, joined
// with the category's presentation attributes.
type TagAssignment struct {
	Category string      `json:"category"`
	Value    string      `json:"value"`
	Color    string      `json:"color"`
	Display  DisplayType `json:"display"`
}

// Event is the event metadata needed for badge generation.
type Event struct {
	ID          string        `json:"event_id" bson:"event_id"`
	DisplayName string        `json:"display_name" bson:"display_name"`
	Date        string        `json:"date,omitempty" bson:"date,omitempty"`
	Sponsor     string        `json:"sponsor,omitempty" bson:"sponsor,omitempty"`
	LogoPath    string        `json:"logo_path,omitempty" bson:"logo_path,omitempty"`
	Tags        []TagCategory `json:"tags,omitempty" bson:"tags,omitempty"`
}

// Validate checks the event definition for configuration errors.
func (e *Event) Validate() error {
	if err := errors.ValidateEventID(e.ID); err != nil {
		return err
	}
	if e.DisplayName == "" {
		return errors.New(errors.ErrCodeInvalidEvent, "event %s has no display name", e.ID)
	}
	seen := make(map[string]bool, len(e.Tags))
	for _, cat := range e.Tags {
		if cat.Name == "" {
			return errors.New(errors.ErrCodeInvalidTag, "event %s has a tag category with no name", e.ID)
		}
		if seen[cat.Name] {
			return errors.New(errors.ErrCodeInvalidTag, "event %s defines tag category %q twice", e.ID, cat.Name)
		}
		seen[cat.Name] = true
		if _, err := ParseDisplayType(cat.DisplayType); err != nil {
			return err
		}
		if cat.Color != "" {
			if err := errors.ValidateHexColor(cat.Color); err != nil {
				return err
			}
		}
	}
	return nil
}

// Category finds a tag category by name.
func (e *Event) Category(name string) (TagCategory, bool) {
	for _, cat := range e.Tags {
		if cat.Name == name {
			return cat, true
		}
	}
	return TagCategory{}, false
}

// Attendee is one badge's worth of person data. Optional fields are empty
// strings/nil slices; the layout omits the corresponding zones.
type Attendee struct {
	ID         string `json:"id" bson:"id"`
	Name       string `json:"name" bson:"name"`
	Title      string `json:"title,omitempty" bson:"title,omitempty"`
	Company    string `json:"company,omitempty" bson:"company,omitempty"`
	Location   string `json:"location,omitempty" bson:"location,omitempty"`
	Pronouns   string `json:"pronouns,omitempty" bson:"pronouns,omitempty"`
	ProfileURL string `json:"profile_url,omitempty" bson:"profile_url,omitempty"`

	SocialPlatform string `json:"preferred_social_platform,omitempty" bson:"preferred_social_platform,omitempty"`
	SocialHandle   string `json:"social_handle,omitempty" bson:"social_handle,omitempty"`

	Interests []string `json:"interests,omitempty" bson:"interests,omitempty"`

	// Tags maps category name -> selected value for this event.
	Tags map[string]string `json:"tags,omitempty" bson:"tags,omitempty"`
}

// Validate checks the minimum required attendee fields.
func (a *Attendee) Validate() error {
	if a.ID == "" {
		return errors.New(errors.ErrCodeInvalidAttendee, "attendee has no id")
	}
	if strings.TrimSpace(a.Name) == "" {
		return errors.New(errors.ErrCodeInvalidAttendee, "attendee %s has no name", a.ID)
	}
	return nil
}

// HasInterests reports whether the attendee gets an interests band.
func (a *Attendee) HasInterests() bool {
	return len(a.Interests) > 0
}

// Assignments resolves the attendee's tag map against the event's
// category definitions, preserving the event's category order. Micro-tag
// values are validated here: a value over the character budget is a hard
// error naming the category, since a micro circle cannot shrink or
// truncate. Values for categories the event does not define are rejected.
func (a *Attendee) Assignments(event *Event) ([]TagAssignment, error) {
	if len(a.Tags) == 0 {
		return nil, nil
	}

	assignments := make([]TagAssignment, 0, len(a.Tags))
	for _, cat := range event.Tags {
		value, ok := a.Tags[cat.Name]
		if !ok || value == "" {
			continue
		}
		display := cat.Display()
		if display == DisplayMicro {
			if err := errors.ValidateMicroTag(cat.Name, value); err != nil {
				return nil, err
			}
		}
		assignments = append(assignments, TagAssignment{
			Category: cat.Name,
			Value:    value,
			Color:    cat.Color,
			Display:  display,
		})
	}

	for name := range a.Tags {
		if _, ok := event.Category(name); !ok {
			return nil, errors.New(errors.ErrCodeInvalidTag,
				"attendee %s has a value for tag category %q, which event %s does not define",
				a.ID, name, event.ID)
		}
	}

	return assignments, nil
}

// SocialIcon maps the attendee's preferred platform to an icon
// identifier, or "" when the platform is unknown or unset.
func (a *Attendee) SocialIcon() string {
	icons := map[string]string{
		"linkedin":  "linkedin",
		"twitter":   "x-twitter",
		"x":         "x-twitter",
		"github":    "github",
		"instagram": "instagram",
		"facebook":  "facebook",
		"youtube":   "youtube",
		"tiktok":    "tiktok",
	}
	return icons[strings.ToLower(a.SocialPlatform)]
}

// DisplayLabel is a short human-readable reference to the attendee for
// logs and progress output.
func (a *Attendee) DisplayLabel() string {
	return fmt.Sprintf("%s (%s)", a.Name, a.ID)
}
