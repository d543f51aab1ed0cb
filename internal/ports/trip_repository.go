package ports

import (
	"context"

	"hos-trip-service/internal/domain"
)

// Port: a boundary for storing and retrieving planned trips.
type TripRepository interface {
	// SaveTrip persists the trip and its daily logs, returning the new trip id.
	SaveTrip(ctx context.Context, trip *domain.Trip) (int64, error)
	// GetTrip retrieves one trip with its daily logs.
	GetTrip(ctx context.Context, tripID int64) (*domain.Trip, error)
	// ListTrips retrieves the most recent trips, newest first, without logs.
	ListTrips(ctx context.Context, limit int) ([]*domain.Trip, error)
}
