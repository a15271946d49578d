package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/badgeforge/badgeforge/pkg/errors"
)

const testEventJSON = `{
  "event_id": "summit-2026",
  "display_name": "Open Infra Summit",
  "date": "2026-09-12",
  "tags": [
    {"name": "Role", "color": "#E07A5F"},
    {"name": "Years", "color": "#F2CC8F", "display_type": "micro"}
  ]
}`

const testAttendeesJSON = `[
  {"id": "a1", "name": "Dana Whitfield", "title": "Staff Engineer",
   "tags": {"Role": "Speaker"}},
  {"id": "a2", "name": "Zhang Wei"}
]`

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	dir := t.TempDir()
	eventDir := filepath.Join(dir, "summit-2026")
	if err := os.MkdirAll(eventDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(eventDir, "event.json"), []byte(testEventJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(eventDir, "attendees.json"), []byte(testAttendeesJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	return NewFileStore(dir)
}

func TestFileStoreEvent(t *testing.T) {
	s := newTestStore(t)

	event, err := s.Event(context.Background(), "summit-2026")
	if err != nil {
		t.Fatalf("Event: %v", err)
	}
	if event.DisplayName != "Open Infra Summit" || len(event.Tags) != 2 {
		t.Errorf("event = %+v", event)
	}

	_, err = s.Event(context.Background(), "nope")
	if !errors.Is(err, errors.ErrCodeEventNotFound) {
		t.Errorf("want EVENT_NOT_FOUND, got %v", err)
	}
}

func TestFileStoreRejectsTraversal(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.Event(context.Background(), "../etc"); err == nil {
		t.Error("path traversal in event id should be rejected")
	}
}

func TestFileStoreAttendees(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	attendees, err := s.Attendees(ctx, "summit-2026")
	if err != nil {
		t.Fatalf("Attendees: %v", err)
	}
	if len(attendees) != 2 || attendees[0].Name != "Dana Whitfield" {
		t.Errorf("attendees = %+v", attendees)
	}

	att, err := s.Attendee(ctx, "summit-2026", "a2")
	if err != nil {
		t.Fatalf("Attendee: %v", err)
	}
	if att.Name != "Zhang Wei" {
		t.Errorf("attendee = %+v", att)
	}

	_, err = s.Attendee(ctx, "summit-2026", "ghost")
	if !errors.Is(err, errors.ErrCodeAttendeeNotFound) {
		t.Errorf("want ATTENDEE_NOT_FOUND, got %v", err)
	}
}

func TestFileStoreMissingAttendeesFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "empty-event"), 0o755); err != nil {
		t.Fatal(err)
	}
	s := NewFileStore(dir)

	attendees, err := s.Attendees(context.Background(), "empty-event")
	if err != nil {
		t.Fatalf("missing attendees file should be empty, got %v", err)
	}
	if attendees != nil {
		t.Errorf("attendees = %v, want nil", attendees)
	}
}
