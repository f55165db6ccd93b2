package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"hos-planner-service/internal/domain"
	"hos-planner-service/internal/platform/obs"
	"hos-planner-service/internal/ports"

	"github.com/redis/go-redis/v9"
)

const (
	tripKeyPrefix = "trip:"
	tripIndexKey  = "trips:index"
)

// RedisTripStore persists each trip as a JSON document keyed by ID, with
// a recency-ordered index list for listing. The document back end of the
// two-tier store.
type RedisTripStore struct {
	Client *redis.Client
}

func NewRedisTripStore(client *redis.Client) *RedisTripStore {
	return &RedisTripStore{Client: client}
}

func (s *RedisTripStore) SaveTrip(ctx context.Context, trip *domain.Trip) (err error) {
	defer obs.Time(ctx, "redis.SaveTrip")(&err)

	if s.Client == nil {
		return errors.New("redis trip store: client is nil")
	}
	if trip == nil || trip.ID == "" {
		return errors.New("save trip: trip and trip ID must be non-empty")
	}

	doc, err := json.Marshal(trip)
	if err != nil {
		return fmt.Errorf("save trip %q: encode document: %w", trip.ID, err)
	}

	pipe := s.Client.TxPipeline()
	pipe.Set(ctx, tripKeyPrefix+trip.ID, doc, 0)
	pipe.LPush(ctx, tripIndexKey, trip.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save trip %q: %w", trip.ID, errors.Join(ports.ErrUnavailable, err))
	}

	return nil
}

func (s *RedisTripStore) GetTrip(ctx context.Context, id string) (_ *domain.Trip, err error) {
	defer obs.Time(ctx, "redis.GetTrip")(&err)

	if s.Client == nil {
		return nil, errors.New("redis trip store: client is nil")
	}

	doc, err := s.Client.Get(ctx, tripKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("get trip %q: %w", id, ports.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get trip %q: %w", id, errors.Join(ports.ErrUnavailable, err))
	}

	var trip domain.Trip
	if err := json.Unmarshal(doc, &trip); err != nil {
		return nil, fmt.Errorf("get trip %q: decode document: %w", id, err)
	}

	return &trip, nil
}

func (s *RedisTripStore) ListTrips(ctx context.Context, limit int) (_ []*domain.Trip, err error) {
	defer obs.Time(ctx, "redis.ListTrips")(&err)

	if s.Client == nil {
		return nil, errors.New("redis trip store: client is nil")
	}
	if limit <= 0 {
		limit = 20
	}

	ids, err := s.Client.LRange(ctx, tripIndexKey, 0, int64(limit)-1).Result()
	if err != nil {
		return nil, fmt.Errorf("list trips: read index: %w", errors.Join(ports.ErrUnavailable, err))
	}

	trips := make([]*domain.Trip, 0, len(ids))
	for _, id := range ids {
		trip, err := s.GetTrip(ctx, id)
		if errors.Is(err, ports.ErrNotFound) {
			// Index entries may outlive evicted documents.
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("list trips: %w", err)
		}
		trips = append(trips, trip)
	}

	return trips, nil
}
