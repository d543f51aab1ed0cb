package route

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"hos-trip-service/internal/domain"
	"hos-trip-service/internal/platform/obs"
	"hos-trip-service/internal/ports"
)

// ORSRouteProvider implements RouteProvider using OpenRouteService.
//
// It coordinates:
//   - Address normalization
//   - Persistent geocode caching
//   - Persistent per-leg route caching
//   - External API calls with retry/backoff
//
// The provider is safe for concurrent use.
type ORSRouteProvider struct {
	session      *http.Client
	apiKey       string
	baseURL      string
	profile      string
	legCache     ports.RouteLegCache
	geocodeCache ports.GeocodeCache
}

func NewORSRouteProvider(
	apiKey string,
	legCache ports.RouteLegCache,
	geocodeCache ports.GeocodeCache,
) (*ORSRouteProvider, error) {
	if apiKey == "" {
		return nil, errors.New("ORS api key is empty")
	}

	return &ORSRouteProvider{
		session:      &http.Client{Timeout: 10 * time.Second},
		apiKey:       apiKey,
		baseURL:      "https://api.openrouteservice.org",
		profile:      "driving-car",
		legCache:     legCache,
		geocodeCache: geocodeCache,
	}, nil
}

// normalize ensures consistent cache keys by collapsing whitespace.
func (o *ORSRouteProvider) normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// GetRoute resolves the route leg by leg so previously seen location pairs
// never hit the external API twice.
func (o *ORSRouteProvider) GetRoute(
	ctx context.Context,
	locations []string,
) (_ ports.RouteResult, err error) {
	defer obs.Time(ctx, "ors.GetRoute")(&err)

	if len(locations) < 2 {
		return ports.RouteResult{}, errors.New("get ORS route: at least 2 locations required")
	}

	normalized := make([]string, 0, len(locations))
	for _, l := range locations {
		n := o.normalize(l)
		if n == "" {
			return ports.RouteResult{}, errors.New("get ORS route: locations must be non-empty")
		}
		normalized = append(normalized, n)
	}

	coords, err := o.resolveCoordinates(ctx, normalized)
	if err != nil {
		return ports.RouteResult{}, fmt.Errorf("get ORS route: %w", err)
	}

	result := ports.RouteResult{Method: "ors"}
	for _, n := range normalized {
		result.Waypoints = append(result.Waypoints, coords[n])
	}

	for i := 0; i < len(normalized)-1; i++ {
		origin, destination := normalized[i], normalized[i+1]

		leg, err := o.resolveLeg(ctx, origin, destination, coords[origin], coords[destination])
		if err != nil {
			return ports.RouteResult{}, fmt.Errorf(
				"get ORS route: leg %q -> %q: %w",
				origin, destination, err,
			)
		}

		result.Legs = append(result.Legs, leg)
		result.TotalMiles += leg.Miles
		result.TotalDurationHours += leg.DurationHours
	}

	return result, nil
}

// resolveCoordinates geocodes every location, consulting the persistent cache
// before calling the ORS geocoding endpoint.
func (o *ORSRouteProvider) resolveCoordinates(
	ctx context.Context,
	normalized []string,
) (map[string]domain.Coordinates, error) {
	coords := make(map[string]domain.Coordinates, len(normalized))

	if o.geocodeCache != nil {
		hits, err := o.geocodeCache.GetMany(ctx, normalized)
		if err != nil {
			return nil, fmt.Errorf("geocode cache: %w", err)
		}
		for k, v := range hits {
			coords[k] = v
		}
	}

	misses := make([]string, 0, len(normalized))
	for _, n := range normalized {
		if _, ok := coords[n]; !ok {
			misses = append(misses, n)
		}
	}

	if len(misses) > 0 {
		fresh, err := o.geocodeMany(ctx, misses)
		if err != nil {
			return nil, fmt.Errorf("retrieving coordinates: %w", err)
		}

		if o.geocodeCache != nil {
			if err := o.geocodeCache.PutMany(ctx, fresh); err != nil {
				log.Printf("geocode cache write failed: %v", err)
			}
		}
		for k, v := range fresh {
			coords[k] = v
		}
	}

	for _, n := range normalized {
		if _, ok := coords[n]; !ok {
			return nil, fmt.Errorf("missing coordinate for %q", n)
		}
	}

	return coords, nil
}

// resolveLeg returns one origin->destination leg, fetching from ORS only on a
// cache miss.
func (o *ORSRouteProvider) resolveLeg(
	ctx context.Context,
	origin, destination string,
	originCoord, destinationCoord domain.Coordinates,
) (ports.LegResult, error) {
	if o.legCache != nil {
		cached, err := o.legCache.GetLeg(ctx, origin, destination)
		if err != nil {
			return ports.LegResult{}, fmt.Errorf("leg cache: %w", err)
		}
		if cached != nil {
			return *cached, nil
		}
	}

	leg, err := o.fetchDirectionsLeg(ctx, originCoord, destinationCoord)
	if err != nil {
		return ports.LegResult{}, err
	}

	if o.legCache != nil {
		if err := o.legCache.PutLeg(ctx, origin, destination, leg); err != nil {
			log.Printf("leg cache write failed: %v", err)
		}
	}

	return leg, nil
}
