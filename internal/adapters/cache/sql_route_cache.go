package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"hos-planner-service/internal/domain"
	"hos-planner-service/internal/platform/obs"
)

// SQLRouteCache is a Postgres-backed cache for origin->destination route
// summaries.
type SQLRouteCache struct {
	DB *sql.DB
}

func NewSQLRouteCache(db *sql.DB) *SQLRouteCache {
	return &SQLRouteCache{DB: db}
}

// Get returns the cached route summary for one origin/destination pair.
func (s *SQLRouteCache) Get(
	ctx context.Context,
	origin, destination string,
) (_ domain.RouteSummary, _ bool, err error) {
	defer obs.Time(ctx, "route.cache.Get")(&err)

	if s.DB == nil {
		return domain.RouteSummary{}, false, errors.New("route cache: db is nil")
	}
	if strings.TrimSpace(origin) == "" || strings.TrimSpace(destination) == "" {
		return domain.RouteSummary{}, false, errors.New("get route cache: origin and destination must not be empty")
	}

	q := `
	SELECT distance_miles, duration_hours
    FROM route_cache
    WHERE origin = $1 AND destination = $2;
	`

	var r domain.RouteSummary
	err = s.DB.QueryRowContext(ctx, q, origin, destination).Scan(&r.DistanceMiles, &r.DurationHours)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.RouteSummary{}, false, nil
	}
	if err != nil {
		return domain.RouteSummary{}, false, fmt.Errorf("get route cache: query route_cache table: %w", err)
	}

	return r, true, nil
}

// Put stores one origin/destination route summary.
func (s *SQLRouteCache) Put(ctx context.Context, origin, destination string, route domain.RouteSummary) error {
	if s.DB == nil {
		return errors.New("route cache: db is nil")
	}
	if strings.TrimSpace(origin) == "" || strings.TrimSpace(destination) == "" {
		return errors.New("insert route cache: origin and destination must not be empty")
	}

	q := `
	INSERT INTO route_cache (origin, destination, distance_miles, duration_hours)
    VALUES ($1, $2, $3, $4)
	ON CONFLICT (origin, destination) DO UPDATE
	SET distance_miles = EXCLUDED.distance_miles,
		duration_hours = EXCLUDED.duration_hours;
	`

	if _, err := s.DB.ExecContext(ctx, q, origin, destination, route.DistanceMiles, route.DurationHours); err != nil {
		return fmt.Errorf("insert route cache %q -> %q: %w", origin, destination, err)
	}

	return nil
}
