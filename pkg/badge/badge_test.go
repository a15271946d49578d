package badge

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/badgeforge/badgeforge/pkg/errors"
)

func testEvent() *Event {
	return &Event{
		ID:          "summit-2026",
		DisplayName: "Open Infra Summit",
		Tags: []TagCategory{
			{Name: "Role", Color: "#E07A5F"},
			{Name: "Track", Color: "#3D405B"},
			{Name: "Years", Color: "#81B29A", DisplayType: "micro"},
		},
	}
}

func TestParseDisplayType(t *testing.T) {
	cases := []struct {
		in      string
		want    DisplayType
		wantErr bool
	}{
		{"", DisplayStandard, false},
		{"standard", DisplayStandard, false},
		{"micro", DisplayMicro, false},
		{"MICRO", DisplayMicro, false},
		{"circular", DisplayStandard, true},
	}
	for _, tc := range cases {
		got, err := ParseDisplayType(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseDisplayType(%q) err = %v, wantErr %v", tc.in, err, tc.wantErr)
		}
		if got != tc.want {
			t.Errorf("ParseDisplayType(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestDisplayTypeJSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(DisplayMicro)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `"micro"` {
		t.Errorf("marshal = %s", data)
	}

	var d DisplayType
	if err := json.Unmarshal([]byte(`"standard"`), &d); err != nil {
		t.Fatal(err)
	}
	if d != DisplayStandard {
		t.Errorf("unmarshal = %v", d)
	}

	if err := json.Unmarshal([]byte(`"banner"`), &d); err == nil {
		t.Error("unknown display type should fail to unmarshal")
	}
}

func TestEventValidate(t *testing.T) {
	ev := testEvent()
	if err := ev.Validate(); err != nil {
		t.Fatalf("valid event rejected: %v", err)
	}

	dup := testEvent()
	dup.Tags = append(dup.Tags, TagCategory{Name: "Role", Color: "#FFFFFF"})
	if err := dup.Validate(); err == nil {
		t.Error("duplicate category should fail validation")
	}

	badColor := testEvent()
	badColor.Tags[0].Color = "tomato"
	if err := badColor.Validate(); err == nil {
		t.Error("non-hex color should fail validation")
	}

	noName := testEvent()
	noName.DisplayName = ""
	if err := noName.Validate(); err == nil {
		t.Error("event without display name should fail validation")
	}
}

func TestAssignmentsPreservesEventOrder(t *testing.T) {
	ev := testEvent()
	att := &Attendee{
		ID:   "a1",
		Name: "Dana Whitfield",
		Tags: map[string]string{
			"Track": "Infra",
			"Role":  "Speaker",
		},
	}

	got, err := att.Assignments(ev)
	if err != nil {
		t.Fatalf("Assignments: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	// Event order, not map order.
	if got[0].Category != "Role" || got[1].Category != "Track" {
		t.Errorf("order = %s, %s; want Role, Track", got[0].Category, got[1].Category)
	}
	if got[0].Color != "#E07A5F" {
		t.Errorf("color not joined from category: %q", got[0].Color)
	}
}

func TestAssignmentsMicroTagValidation(t *testing.T) {
	ev := testEvent()
	att := &Attendee{
		ID:   "a2",
		Name: "Riley Okafor",
		Tags: map[string]string{"Years": "Premier"},
	}

	_, err := att.Assignments(ev)
	if err == nil {
		t.Fatal("7-char micro value should be rejected")
	}
	if !errors.Is(err, errors.ErrCodeInvalidTag) {
		t.Errorf("want INVALID_TAG, got %v", err)
	}
	for _, want := range []string{"Years", "Premier", "5"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q should mention %q", err.Error(), want)
		}
	}

	att.Tags["Years"] = "10+"
	got, err := att.Assignments(ev)
	if err != nil {
		t.Fatalf("valid micro value rejected: %v", err)
	}
	if got[0].Display != DisplayMicro {
		t.Errorf("display = %v, want micro", got[0].Display)
	}
}

func TestAssignmentsRejectsUnknownCategory(t *testing.T) {
	ev := testEvent()
	att := &Attendee{
		ID:   "a3",
		Name: "Sam Ngata",
		Tags: map[string]string{"Favorite Color": "blue"},
	}
	if _, err := att.Assignments(ev); err == nil {
		t.Error("unknown category should be rejected")
	}
}

func TestSocialIcon(t *testing.T) {
	cases := map[string]string{
		"linkedin": "linkedin",
		"Twitter":  "x-twitter",
		"x":        "x-twitter",
		"myspace":  "",
		"":         "",
	}
	for platform, want := range cases {
		a := &Attendee{SocialPlatform: platform}
		if got := a.SocialIcon(); got != want {
			t.Errorf("SocialIcon(%q) = %q, want %q", platform, got, want)
		}
	}
}

func TestAttendeeValidate(t *testing.T) {
	a := &Attendee{ID: "a1", Name: "Jordan"}
	if err := a.Validate(); err != nil {
		t.Errorf("valid attendee rejected: %v", err)
	}
	if err := (&Attendee{ID: "a1", Name: "  "}).Validate(); err == nil {
		t.Error("whitespace-only name should fail")
	}
	if err := (&Attendee{Name: "Jordan"}).Validate(); err == nil {
		t.Error("missing id should fail")
	}
}
