package ports

import (
	"context"
	"errors"

	"hos-planner-service/internal/domain"
)

// ErrNotFound is a data-level miss: the store answered and the trip
// does not exist. It must never trigger a fallback to another backend.
var ErrNotFound = errors.New("trip not found")

// ErrUnavailable is a connectivity failure: the store could not be
// reached. Tiered stores fall back to their secondary on this error only.
var ErrUnavailable = errors.New("trip store unavailable")

// Port: a boundary for persisting and retrieving planned trips.
// Relational and document-oriented back ends implement it interchangeably.
type TripStore interface {
	SaveTrip(ctx context.Context, trip *domain.Trip) error
	GetTrip(ctx context.Context, id string) (*domain.Trip, error)
	// ListTrips returns up to limit trips, most recent first.
	ListTrips(ctx context.Context, limit int) ([]*domain.Trip, error)
}
