package ports

import (
	"context"

	"hos-trip-service/internal/domain"
)

// Persistent cache of geocoded addresses. Keys are expected to be normalized
// by the caller.
type GeocodeCache interface {
	GetMany(ctx context.Context, addresses []string) (map[string]domain.Coordinates, error)
	PutMany(ctx context.Context, coords map[string]domain.Coordinates) error
}

// Persistent cache of origin->destination route legs.
type RouteLegCache interface {
	GetLeg(ctx context.Context, origin, destination string) (*LegResult, error)
	PutLeg(ctx context.Context, origin, destination string, leg LegResult) error
}
