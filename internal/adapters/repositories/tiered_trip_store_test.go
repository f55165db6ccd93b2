package repositories

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"hos-planner-service/internal/domain"
	"hos-planner-service/internal/ports"
)

// fakeTripStore answers from a map, or fails every call with err.
type fakeTripStore struct {
	trips map[string]*domain.Trip
	err   error

	saves int
	gets  int
	lists int
}

func newFakeTripStore() *fakeTripStore {
	return &fakeTripStore{trips: map[string]*domain.Trip{}}
}

func (f *fakeTripStore) SaveTrip(ctx context.Context, trip *domain.Trip) error {
	f.saves++
	if f.err != nil {
		return f.err
	}
	f.trips[trip.ID] = trip
	return nil
}

func (f *fakeTripStore) GetTrip(ctx context.Context, id string) (*domain.Trip, error) {
	f.gets++
	if f.err != nil {
		return nil, f.err
	}
	trip, ok := f.trips[id]
	if !ok {
		return nil, fmt.Errorf("get trip %q: %w", id, ports.ErrNotFound)
	}
	return trip, nil
}

func (f *fakeTripStore) ListTrips(ctx context.Context, limit int) ([]*domain.Trip, error) {
	f.lists++
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*domain.Trip, 0, len(f.trips))
	for _, trip := range f.trips {
		out = append(out, trip)
	}
	return out, nil
}

func unavailable(msg string) error {
	return fmt.Errorf("%s: %w", msg, errors.Join(ports.ErrUnavailable, errors.New("connection refused")))
}

func TestTieredStorePrefersPrimary(t *testing.T) {
	primary := newFakeTripStore()
	secondary := newFakeTripStore()
	store := NewTieredTripStore(primary, secondary)
	ctx := context.Background()

	if err := store.SaveTrip(ctx, sampleTrip("t-1")); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if primary.saves != 1 || secondary.saves != 0 {
		t.Fatalf("save went to wrong tier: primary=%d secondary=%d", primary.saves, secondary.saves)
	}

	got, err := store.GetTrip(ctx, "t-1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.ID != "t-1" {
		t.Fatalf("id = %q, want t-1", got.ID)
	}
	if secondary.gets != 0 {
		t.Fatal("healthy primary must not touch the secondary")
	}
}

func TestTieredStoreFallsBackWhenUnavailable(t *testing.T) {
	primary := newFakeTripStore()
	primary.err = unavailable("primary down")
	secondary := newFakeTripStore()
	secondary.trips["t-1"] = sampleTrip("t-1")
	store := NewTieredTripStore(primary, secondary)
	ctx := context.Background()

	if err := store.SaveTrip(ctx, sampleTrip("t-2")); err != nil {
		t.Fatalf("save did not fall back: %v", err)
	}
	if secondary.saves != 1 {
		t.Fatalf("secondary saves = %d, want 1", secondary.saves)
	}

	got, err := store.GetTrip(ctx, "t-1")
	if err != nil {
		t.Fatalf("get did not fall back: %v", err)
	}
	if got.ID != "t-1" {
		t.Fatalf("id = %q, want t-1", got.ID)
	}

	trips, err := store.ListTrips(ctx, 10)
	if err != nil {
		t.Fatalf("list did not fall back: %v", err)
	}
	if len(trips) != 2 {
		t.Fatalf("expected 2 trips from secondary, got %d", len(trips))
	}
}

func TestTieredStoreNoFallbackOnNotFound(t *testing.T) {
	primary := newFakeTripStore()
	secondary := newFakeTripStore()
	secondary.trips["t-1"] = sampleTrip("t-1")
	store := NewTieredTripStore(primary, secondary)

	_, err := store.GetTrip(context.Background(), "t-1")
	if !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected the primary's ErrNotFound, got %v", err)
	}
	if secondary.gets != 0 {
		t.Fatal("a not-found answer from the primary is authoritative")
	}
}

func TestTieredStoreNoFallbackOnDataError(t *testing.T) {
	primary := newFakeTripStore()
	primary.err = errors.New("decode document: unexpected end of JSON input")
	secondary := newFakeTripStore()
	secondary.trips["t-1"] = sampleTrip("t-1")
	store := NewTieredTripStore(primary, secondary)

	if _, err := store.GetTrip(context.Background(), "t-1"); err == nil {
		t.Fatal("expected the primary's data error to surface")
	}
	if secondary.gets != 0 {
		t.Fatal("data errors must not trigger fallback")
	}
}

func TestTieredStoreBothTiersDown(t *testing.T) {
	primary := newFakeTripStore()
	primary.err = unavailable("primary down")
	secondary := newFakeTripStore()
	secondary.err = unavailable("secondary down")
	store := NewTieredTripStore(primary, secondary)

	err := store.SaveTrip(context.Background(), sampleTrip("t-1"))
	if err == nil {
		t.Fatal("expected error when both tiers are down")
	}
	if !errors.Is(err, ports.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}
