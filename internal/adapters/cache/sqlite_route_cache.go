package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"hos-trip-service/internal/ports"
)

// SQLite backed cache for origin->destination route legs. Keys are expected
// to be consistent (e.g., already normalized) by the caller.
type SqliteRouteCache struct {
	DB *sql.DB
}

func NewSqliteRouteCache(db *sql.DB) *SqliteRouteCache {
	return &SqliteRouteCache{DB: db}
}

// GetLeg fetches one cached leg; a nil result means a cache miss.
func (s *SqliteRouteCache) GetLeg(ctx context.Context, origin, destination string) (*ports.LegResult, error) {
	if s.DB == nil {
		return nil, errors.New("route cache: db is nil")
	}

	if strings.TrimSpace(origin) == "" || strings.TrimSpace(destination) == "" {
		return nil, errors.New("get route cache: origin and destination must not be empty")
	}

	q := `
	SELECT
        miles,
        duration_hours
    FROM route_cache
    WHERE origin = ?
        AND destination = ?;
	`

	var leg ports.LegResult
	err := s.DB.QueryRowContext(ctx, q, origin, destination).Scan(&leg.Miles, &leg.DurationHours)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get route cache: query route_cache table: %w", err)
	}

	return &leg, nil
}

// PutLeg stores one resolved leg.
func (s *SqliteRouteCache) PutLeg(ctx context.Context, origin, destination string, leg ports.LegResult) error {
	if s.DB == nil {
		return errors.New("route cache: db is nil")
	}

	if strings.TrimSpace(origin) == "" || strings.TrimSpace(destination) == "" {
		return errors.New("insert route cache: origin and destination must not be empty")
	}

	q := `
	INSERT OR REPLACE INTO route_cache (
        origin,
        destination,
        miles,
        duration_hours
    )
    VALUES (?, ?, ?, ?);
	`

	if _, err := s.DB.ExecContext(ctx, q, origin, destination, leg.Miles, leg.DurationHours); err != nil {
		return fmt.Errorf("insert route cache %q -> %q: %w", origin, destination, err)
	}

	return nil
}
