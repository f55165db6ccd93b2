package repositories

import (
	"database/sql"
	"fmt"
)

// InitSchema creates the Postgres tables for the relational trip store
// and the routing caches. Idempotent; run from cmd/dbtool.
func InitSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS trips (
			id TEXT PRIMARY KEY,
			current_location TEXT NOT NULL,
			pickup_location TEXT NOT NULL,
			dropoff_location TEXT NOT NULL,
			cycle_used_hours DOUBLE PRECISION NOT NULL,
			distance_miles DOUBLE PRECISION NOT NULL,
			summary JSONB NOT NULL,
			allotments JSONB NOT NULL,
			logs JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);`,
		`CREATE INDEX IF NOT EXISTS idx_trips_created_at ON trips (created_at DESC);`,
		`CREATE TABLE IF NOT EXISTS geocode_cache (
			location TEXT PRIMARY KEY,
			lon DOUBLE PRECISION NOT NULL,
			lat DOUBLE PRECISION NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS route_cache (
			origin TEXT NOT NULL,
			destination TEXT NOT NULL,
			distance_miles DOUBLE PRECISION NOT NULL,
			duration_hours DOUBLE PRECISION NOT NULL,
			PRIMARY KEY (origin, destination)
		);`,
	}

	for _, q := range stmts {
		if _, err := db.Exec(q); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}
