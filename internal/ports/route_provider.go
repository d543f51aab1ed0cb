package ports

import (
	"context"

	"hos-trip-service/internal/domain"
)

// Distance and travel duration for one leg between two named locations.
type LegResult struct {
	Miles         float64
	DurationHours float64
}

// RouteResult describes the resolved route through an ordered list of
// locations. The schedule engine only ever consumes TotalMiles; the rest is
// kept for persistence and map display.
type RouteResult struct {
	TotalMiles         float64
	TotalDurationHours float64
	Waypoints          []domain.Coordinates
	Legs               []LegResult
	// Method records which provider produced the result ("ors" or
	// "haversine"), so stored trips show whether the distance was exact or
	// a geometric estimate.
	Method string
}

// Contract for resolving a route through an ordered list of named locations.
type RouteProvider interface {
	// GetRoute resolves the route visiting the locations in order.
	// At least two locations are required.
	GetRoute(ctx context.Context, locations []string) (RouteResult, error)
}
