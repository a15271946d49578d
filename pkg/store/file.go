package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/badgeforge/badgeforge/pkg/badge"
	"github.com/badgeforge/badgeforge/pkg/errors"
)

// FileStore reads events from a directory tree:
//
//	<dir>/<event-id>/event.json      one Event document
//	<dir>/<event-id>/attendees.json  array of Attendee documents
type FileStore struct {
	dir string
}

// NewFileStore creates a store rooted at dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Event loads and validates the event definition.
func (s *FileStore) Event(_ context.Context, eventID string) (*badge.Event, error) {
	if err := errors.ValidateEventID(eventID); err != nil {
		return nil, err
	}

	var event badge.Event
	if err := s.readJSON(filepath.Join(s.dir, eventID, "event.json"), &event,
		errors.ErrCodeEventNotFound, "event %s", eventID); err != nil {
		return nil, err
	}
	if err := event.Validate(); err != nil {
		return nil, err
	}
	return &event, nil
}

// Attendees loads the event's attendee list. A missing file is an empty
// event, not an error.
func (s *FileStore) Attendees(_ context.Context, eventID string) ([]*badge.Attendee, error) {
	if err := errors.ValidateEventID(eventID); err != nil {
		return nil, err
	}

	path := filepath.Join(s.dir, eventID, "attendees.json")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}

	var attendees []*badge.Attendee
	if err := s.readJSON(path, &attendees,
		errors.ErrCodeEventNotFound, "attendees for event %s", eventID); err != nil {
		return nil, err
	}
	return attendees, nil
}

// Attendee finds one attendee by id.
func (s *FileStore) Attendee(ctx context.Context, eventID, attendeeID string) (*badge.Attendee, error) {
	attendees, err := s.Attendees(ctx, eventID)
	if err != nil {
		return nil, err
	}
	for _, att := range attendees {
		if att.ID == attendeeID {
			return att, nil
		}
	}
	return nil, errors.New(errors.ErrCodeAttendeeNotFound,
		"attendee %s not found in event %s", attendeeID, eventID)
}

// Close is a no-op for the file store.
func (s *FileStore) Close(context.Context) error { return nil }

func (s *FileStore) readJSON(path string, v any, notFound errors.Code, format string, args ...any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.New(notFound, format+": not found", args...)
		}
		return errors.Wrap(errors.ErrCodeInternal, err, format, args...)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "parse %s", path)
	}
	return nil
}

var _ Store = (*FileStore)(nil)
