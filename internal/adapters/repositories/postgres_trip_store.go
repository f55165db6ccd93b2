package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"hos-planner-service/internal/domain"
	"hos-planner-service/internal/platform/obs"
	"hos-planner-service/internal/ports"
)

// PostgresTripStore persists trips relationally: scalar columns for the
// request fields, JSONB for the planning output handed over verbatim.
type PostgresTripStore struct {
	DB *sql.DB
}

func NewPostgresTripStore(db *sql.DB) *PostgresTripStore {
	return &PostgresTripStore{DB: db}
}

func (s *PostgresTripStore) SaveTrip(ctx context.Context, trip *domain.Trip) (err error) {
	defer obs.Time(ctx, "pg.SaveTrip")(&err)

	if s.DB == nil {
		return errors.New("postgres trip store: db is nil")
	}
	if trip == nil || trip.ID == "" {
		return errors.New("save trip: trip and trip ID must be non-empty")
	}

	summary, allotments, logs, err := marshalPlanning(trip)
	if err != nil {
		return fmt.Errorf("save trip %q: %w", trip.ID, err)
	}

	q := `
	INSERT INTO trips (
        id, current_location, pickup_location, dropoff_location,
        cycle_used_hours, distance_miles, summary, allotments, logs, created_at
    )
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	ON CONFLICT (id) DO UPDATE
	SET summary = EXCLUDED.summary,
		allotments = EXCLUDED.allotments,
		logs = EXCLUDED.logs;
	`

	_, err = s.DB.ExecContext(ctx, q,
		trip.ID, trip.CurrentLocation, trip.PickupLocation, trip.DropoffLocation,
		trip.CycleUsedHours, trip.DistanceMiles, summary, allotments, logs, trip.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("save trip %q: insert trips table: %w", trip.ID, errors.Join(ports.ErrUnavailable, err))
	}

	return nil
}

func (s *PostgresTripStore) GetTrip(ctx context.Context, id string) (_ *domain.Trip, err error) {
	defer obs.Time(ctx, "pg.GetTrip")(&err)

	if s.DB == nil {
		return nil, errors.New("postgres trip store: db is nil")
	}

	q := `
	SELECT id, current_location, pickup_location, dropoff_location,
        cycle_used_hours, distance_miles, summary, allotments, logs, created_at
    FROM trips
    WHERE id = $1;
	`

	trip, err := scanTrip(s.DB.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get trip %q: %w", id, ports.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get trip %q: %w", id, err)
	}

	return trip, nil
}

func (s *PostgresTripStore) ListTrips(ctx context.Context, limit int) (_ []*domain.Trip, err error) {
	defer obs.Time(ctx, "pg.ListTrips")(&err)

	if s.DB == nil {
		return nil, errors.New("postgres trip store: db is nil")
	}
	if limit <= 0 {
		limit = 20
	}

	q := `
	SELECT id, current_location, pickup_location, dropoff_location,
        cycle_used_hours, distance_miles, summary, allotments, logs, created_at
    FROM trips
    ORDER BY created_at DESC
    LIMIT $1;
	`

	rows, err := s.DB.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("list trips: query trips table: %w", errors.Join(ports.ErrUnavailable, err))
	}
	defer rows.Close()

	trips := []*domain.Trip{}
	for rows.Next() {
		trip, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("list trips: %w", err)
		}
		trips = append(trips, trip)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list trips: row iteration: %w", errors.Join(ports.ErrUnavailable, err))
	}

	return trips, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTrip(row rowScanner) (*domain.Trip, error) {
	var trip domain.Trip
	var summary, allotments, logs []byte

	err := row.Scan(
		&trip.ID, &trip.CurrentLocation, &trip.PickupLocation, &trip.DropoffLocation,
		&trip.CycleUsedHours, &trip.DistanceMiles, &summary, &allotments, &logs, &trip.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scan trip row: %w", errors.Join(ports.ErrUnavailable, err))
	}

	// Decode failures are data errors, never connectivity.
	if err := json.Unmarshal(summary, &trip.Summary); err != nil {
		return nil, fmt.Errorf("decode trip summary: %w", err)
	}
	if err := json.Unmarshal(allotments, &trip.Allotments); err != nil {
		return nil, fmt.Errorf("decode trip allotments: %w", err)
	}
	if err := json.Unmarshal(logs, &trip.Logs); err != nil {
		return nil, fmt.Errorf("decode trip logs: %w", err)
	}

	return &trip, nil
}

func marshalPlanning(trip *domain.Trip) (summary, allotments, logs []byte, err error) {
	summary, err = json.Marshal(trip.Summary)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("encode trip summary: %w", err)
	}
	allotments, err = json.Marshal(trip.Allotments)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("encode trip allotments: %w", err)
	}
	logs, err = json.Marshal(trip.Logs)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("encode trip logs: %w", err)
	}
	return summary, allotments, logs, nil
}
