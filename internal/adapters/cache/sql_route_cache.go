package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"hos-trip-service/internal/platform/obs"
	"hos-trip-service/internal/ports"
)

// SQLRouteCache is a Postgres-backed cache for origin->destination route legs.
type SQLRouteCache struct {
	DB *sql.DB
}

func NewSQLRouteCache(db *sql.DB) *SQLRouteCache {
	return &SQLRouteCache{DB: db}
}

// GetLeg fetches one cached leg; a nil result means a cache miss.
func (s *SQLRouteCache) GetLeg(
	ctx context.Context,
	origin, destination string,
) (_ *ports.LegResult, err error) {
	defer obs.Time(ctx, "route.cache.GetLeg")(&err)

	if s.DB == nil {
		return nil, errors.New("route cache: db is nil")
	}

	if strings.TrimSpace(origin) == "" || strings.TrimSpace(destination) == "" {
		return nil, errors.New("get route cache: origin and destination must not be empty")
	}

	q := `
	SELECT miles, duration_hours
    FROM route_cache
    WHERE origin = $1
        AND destination = $2;
	`

	var leg ports.LegResult
	err = s.DB.QueryRowContext(ctx, q, origin, destination).Scan(&leg.Miles, &leg.DurationHours)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get route cache: query route_cache table: %w", err)
	}

	return &leg, nil
}

// PutLeg stores one resolved leg.
func (s *SQLRouteCache) PutLeg(ctx context.Context, origin, destination string, leg ports.LegResult) error {
	if s.DB == nil {
		return errors.New("route cache: db is nil")
	}

	if strings.TrimSpace(origin) == "" || strings.TrimSpace(destination) == "" {
		return errors.New("insert route cache: origin and destination must not be empty")
	}

	q := `
	INSERT INTO route_cache (origin, destination, miles, duration_hours)
    VALUES ($1, $2, $3, $4)
	ON CONFLICT (origin, destination) DO UPDATE
	SET miles = EXCLUDED.miles,
		duration_hours = EXCLUDED.duration_hours;
	`

	if _, err := s.DB.ExecContext(ctx, q, origin, destination, leg.Miles, leg.DurationHours); err != nil {
		return fmt.Errorf("insert route cache %q -> %q: %w", origin, destination, err)
	}

	return nil
}
