package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/badgeforge/badgeforge/pkg/badge"
	"github.com/badgeforge/badgeforge/pkg/errors"
)

// MongoStore reads events and attendees from MongoDB collections
// "events" and "attendees". Attendee documents carry an event_id field
// linking them to their event.
type MongoStore struct {
	client    *mongo.Client
	events    *mongo.Collection
	attendees *mongo.Collection
}

// OpenMongo connects and pings the deployment.
func OpenMongo(ctx context.Context, uri, db string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "connect to mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "ping mongodb")
	}
	database := client.Database(db)
	return &MongoStore{
		client:    client,
		events:    database.Collection("events"),
		attendees: database.Collection("attendees"),
	}, nil
}

// Event loads and validates one event document.
func (s *MongoStore) Event(ctx context.Context, eventID string) (*badge.Event, error) {
	if err := errors.ValidateEventID(eventID); err != nil {
		return nil, err
	}

	var event badge.Event
	err := s.events.FindOne(ctx, bson.M{"event_id": eventID}).Decode(&event)
	if err == mongo.ErrNoDocuments {
		return nil, errors.New(errors.ErrCodeEventNotFound, "event %s: not found", eventID)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "load event %s", eventID)
	}
	if err := event.Validate(); err != nil {
		return nil, err
	}
	return &event, nil
}

// Attendees loads every attendee linked to the event.
func (s *MongoStore) Attendees(ctx context.Context, eventID string) ([]*badge.Attendee, error) {
	if err := errors.ValidateEventID(eventID); err != nil {
		return nil, err
	}

	cursor, err := s.attendees.Find(ctx, bson.M{"event_id": eventID})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "load attendees for %s", eventID)
	}
	defer cursor.Close(ctx)

	var attendees []*badge.Attendee
	if err := cursor.All(ctx, &attendees); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "decode attendees for %s", eventID)
	}
	return attendees, nil
}

// Attendee loads one attendee of an event.
func (s *MongoStore) Attendee(ctx context.Context, eventID, attendeeID string) (*badge.Attendee, error) {
	var att badge.Attendee
	err := s.attendees.FindOne(ctx, bson.M{"event_id": eventID, "id": attendeeID}).Decode(&att)
	if err == mongo.ErrNoDocuments {
		return nil, errors.New(errors.ErrCodeAttendeeNotFound,
			"attendee %s not found in event %s", attendeeID, eventID)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "load attendee %s", attendeeID)
	}
	return &att, nil
}

// Close disconnects the client.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
