package route

import (
	"context"
	"errors"
	"maps"
	"math"
	"slices"
	"strings"

	"hos-trip-service/internal/domain"
	"hos-trip-service/internal/ports"
)

const (
	earthRadiusKM = 6371
	kmToMiles     = 0.621371
	// Roads are typically ~20% longer than the straight-line distance.
	roadFactor = 1.2
	// Duration estimate assumes highway average speed.
	estimateSpeedMPH = 60
)

// Approximate coordinates (lon, lat) for common US cities, used when no
// geocoding service is reachable. Unknown locations fall back to the
// geographic center of the contiguous US.
var approximateCities = map[string]domain.Coordinates{
	"new york":     {Lon: -74.0060, Lat: 40.7128},
	"los angeles":  {Lon: -118.2437, Lat: 34.0522},
	"chicago":      {Lon: -87.6298, Lat: 41.8781},
	"houston":      {Lon: -95.3698, Lat: 29.7604},
	"phoenix":      {Lon: -112.0740, Lat: 33.4484},
	"philadelphia": {Lon: -75.1652, Lat: 39.9526},
	"san antonio":  {Lon: -98.4936, Lat: 29.4241},
	"san diego":    {Lon: -117.1611, Lat: 32.7157},
	"dallas":       {Lon: -96.7970, Lat: 32.7767},
	"san jose":     {Lon: -121.8863, Lat: 37.3382},
	"austin":       {Lon: -97.7431, Lat: 30.2672},
	"jacksonville": {Lon: -81.6557, Lat: 30.3322},
	"miami":        {Lon: -80.1918, Lat: 25.7617},
	"atlanta":      {Lon: -84.3880, Lat: 33.7490},
	"boston":       {Lon: -71.0589, Lat: 42.3601},
	"seattle":      {Lon: -122.3321, Lat: 47.6062},
	"denver":       {Lon: -104.9903, Lat: 39.7392},
	"las vegas":    {Lon: -115.1398, Lat: 36.1699},
	"portland":     {Lon: -122.6765, Lat: 45.5231},
	"detroit":      {Lon: -83.0458, Lat: 42.3314},
}

var centerOfUS = domain.Coordinates{Lon: -98.5795, Lat: 39.8283}

// HaversineRouteProvider is the geometric-estimate fallback: straight-line
// distance with a road factor, no external calls. It backs the primary
// provider when the routing API is unavailable.
type HaversineRouteProvider struct{}

func NewHaversineRouteProvider() *HaversineRouteProvider {
	return &HaversineRouteProvider{}
}

func (p *HaversineRouteProvider) GetRoute(
	ctx context.Context,
	locations []string,
) (ports.RouteResult, error) {
	if len(locations) < 2 {
		return ports.RouteResult{}, errors.New("haversine route: at least 2 locations required")
	}

	result := ports.RouteResult{Method: "haversine"}
	for _, l := range locations {
		if strings.TrimSpace(l) == "" {
			return ports.RouteResult{}, errors.New("haversine route: locations must be non-empty")
		}
		result.Waypoints = append(result.Waypoints, approximateCoords(l))
	}

	for i := 0; i < len(result.Waypoints)-1; i++ {
		km := haversineKM(result.Waypoints[i], result.Waypoints[i+1])
		miles := km * kmToMiles * roadFactor

		leg := ports.LegResult{
			Miles:         miles,
			DurationHours: miles / estimateSpeedMPH,
		}
		result.Legs = append(result.Legs, leg)
		result.TotalMiles += leg.Miles
		result.TotalDurationHours += leg.DurationHours
	}

	return result, nil
}

func approximateCoords(location string) domain.Coordinates {
	lower := strings.ToLower(location)
	// Sorted iteration keeps the match deterministic when a location name
	// contains more than one known city.
	for _, city := range slices.Sorted(maps.Keys(approximateCities)) {
		if strings.Contains(lower, city) {
			return approximateCities[city]
		}
	}
	return centerOfUS
}

func haversineKM(a, b domain.Coordinates) float64 {
	lon1 := a.Lon * math.Pi / 180
	lat1 := a.Lat * math.Pi / 180
	lon2 := b.Lon * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180

	dlon := lon2 - lon1
	dlat := lat2 - lat1

	h := math.Pow(math.Sin(dlat/2), 2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Pow(math.Sin(dlon/2), 2)

	return 2 * math.Asin(math.Sqrt(h)) * earthRadiusKM
}
