// Package store loads event and attendee records for badge generation.
//
// Two backends ship: a JSON file store for local runs (one directory per
// event) and a MongoDB store for shared deployments. The config's
// mongo_uri selects between them.
package store

import (
	"context"

	"github.com/badgeforge/badgeforge/pkg/badge"
	"github.com/badgeforge/badgeforge/pkg/config"
)

// Store is the read interface the CLI and preview server consume.
type Store interface {
	// Event loads one event definition by id.
	Event(ctx context.Context, eventID string) (*badge.Event, error)

	// Attendees loads every attendee registered for an event.
	Attendees(ctx context.Context, eventID string) ([]*badge.Attendee, error)

	// Attendee loads a single attendee of an event.
	Attendee(ctx context.Context, eventID, attendeeID string) (*badge.Attendee, error)

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// Open selects a backend from configuration: Mongo when a URI is set,
// otherwise the JSON file store.
func Open(ctx context.Context, cfg config.Store) (Store, error) {
	if cfg.MongoURI != "" {
		return OpenMongo(ctx, cfg.MongoURI, cfg.MongoDB)
	}
	return NewFileStore(cfg.DataDir), nil
}
