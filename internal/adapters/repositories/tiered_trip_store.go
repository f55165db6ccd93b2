package repositories

import (
	"context"
	"errors"
	"fmt"
	"log"

	"hos-planner-service/internal/domain"
	"hos-planner-service/internal/ports"
)

// TieredTripStore reads and writes through a primary store and falls
// back to a secondary with an explicit decision rule: fall back only on
// connectivity failure (ports.ErrUnavailable), never on data errors.
// A missing trip (ports.ErrNotFound) means the primary answered and is
// authoritative; decode failures mean the data is bad in a way a second
// backend cannot fix.
type TieredTripStore struct {
	Primary   ports.TripStore
	Secondary ports.TripStore
}

func NewTieredTripStore(primary, secondary ports.TripStore) *TieredTripStore {
	return &TieredTripStore{Primary: primary, Secondary: secondary}
}

func (s *TieredTripStore) SaveTrip(ctx context.Context, trip *domain.Trip) error {
	err := s.Primary.SaveTrip(ctx, trip)
	if err == nil || !shouldFallback(err) {
		return err
	}

	log.Printf("tiered store: primary unavailable, saving to secondary: %v", err)
	if ferr := s.Secondary.SaveTrip(ctx, trip); ferr != nil {
		return fmt.Errorf("tiered store: secondary save after primary failure (%v): %w", err, ferr)
	}
	return nil
}

func (s *TieredTripStore) GetTrip(ctx context.Context, id string) (*domain.Trip, error) {
	trip, err := s.Primary.GetTrip(ctx, id)
	if err == nil || !shouldFallback(err) {
		return trip, err
	}

	log.Printf("tiered store: primary unavailable, reading from secondary: %v", err)
	trip, ferr := s.Secondary.GetTrip(ctx, id)
	if ferr != nil {
		return nil, fmt.Errorf("tiered store: secondary get after primary failure (%v): %w", err, ferr)
	}
	return trip, nil
}

func (s *TieredTripStore) ListTrips(ctx context.Context, limit int) ([]*domain.Trip, error) {
	trips, err := s.Primary.ListTrips(ctx, limit)
	if err == nil || !shouldFallback(err) {
		return trips, err
	}

	log.Printf("tiered store: primary unavailable, listing from secondary: %v", err)
	trips, ferr := s.Secondary.ListTrips(ctx, limit)
	if ferr != nil {
		return nil, fmt.Errorf("tiered store: secondary list after primary failure (%v): %w", err, ferr)
	}
	return trips, nil
}

func shouldFallback(err error) bool {
	return errors.Is(err, ports.ErrUnavailable) && !errors.Is(err, ports.ErrNotFound)
}
