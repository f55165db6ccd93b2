package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"hos-planner-service/internal/domain"
)

// SQLite-backed cache for origin->destination route summaries, for local
// runs without Postgres.
type SqliteRouteCache struct {
	DB *sql.DB
}

func NewSqliteRouteCache(db *sql.DB) *SqliteRouteCache {
	return &SqliteRouteCache{DB: db}
}

// Get returns the cached route summary for one origin/destination pair.
func (s *SqliteRouteCache) Get(
	ctx context.Context,
	origin, destination string,
) (domain.RouteSummary, bool, error) {
	if s.DB == nil {
		return domain.RouteSummary{}, false, errors.New("route cache: db is nil")
	}
	if strings.TrimSpace(origin) == "" || strings.TrimSpace(destination) == "" {
		return domain.RouteSummary{}, false, errors.New("get route cache: origin and destination must not be empty")
	}

	q := `
	SELECT distance_miles, duration_hours
    FROM route_cache
    WHERE origin = ? AND destination = ?;
	`

	var r domain.RouteSummary
	err := s.DB.QueryRowContext(ctx, q, origin, destination).Scan(&r.DistanceMiles, &r.DurationHours)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.RouteSummary{}, false, nil
	}
	if err != nil {
		return domain.RouteSummary{}, false, fmt.Errorf("get route cache: query route_cache table: %w", err)
	}

	return r, true, nil
}

// Put stores one origin/destination route summary.
func (s *SqliteRouteCache) Put(ctx context.Context, origin, destination string, route domain.RouteSummary) error {
	if s.DB == nil {
		return errors.New("route cache: db is nil")
	}
	if strings.TrimSpace(origin) == "" || strings.TrimSpace(destination) == "" {
		return errors.New("insert route cache: origin and destination must not be empty")
	}

	q := `
	INSERT OR REPLACE INTO route_cache (origin, destination, distance_miles, duration_hours)
    VALUES (?, ?, ?, ?);
	`

	if _, err := s.DB.ExecContext(ctx, q, origin, destination, route.DistanceMiles, route.DurationHours); err != nil {
		return fmt.Errorf("insert route cache %q -> %q: %w", origin, destination, err)
	}

	return nil
}

// InitSqliteSchema creates the cache tables used by the SQLite variants.
func InitSqliteSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS geocode_cache (
			location TEXT PRIMARY KEY,
			lon REAL NOT NULL,
			lat REAL NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS route_cache (
			origin TEXT NOT NULL,
			destination TEXT NOT NULL,
			distance_miles REAL NOT NULL,
			duration_hours REAL NOT NULL,
			PRIMARY KEY (origin, destination)
		);`,
	}

	for _, q := range stmts {
		if _, err := db.Exec(q); err != nil {
			return fmt.Errorf("init sqlite cache schema: %w", err)
		}
	}

	return nil
}
