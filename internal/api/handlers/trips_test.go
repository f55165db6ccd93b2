package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hos-planner-service/internal/api/dto"
	"hos-planner-service/internal/domain"
	"hos-planner-service/internal/ports"
)

// memoryTripStore keeps trips in insertion order, newest first on list.
type memoryTripStore struct {
	trips []*domain.Trip
	err   error
}

func (s *memoryTripStore) SaveTrip(ctx context.Context, trip *domain.Trip) error {
	if s.err != nil {
		return s.err
	}
	s.trips = append([]*domain.Trip{trip}, s.trips...)
	return nil
}

func (s *memoryTripStore) GetTrip(ctx context.Context, id string) (*domain.Trip, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, trip := range s.trips {
		if trip.ID == id {
			return trip, nil
		}
	}
	return nil, fmt.Errorf("get trip %q: %w", id, ports.ErrNotFound)
}

func (s *memoryTripStore) ListTrips(ctx context.Context, limit int) ([]*domain.Trip, error) {
	if s.err != nil {
		return nil, s.err
	}
	if limit > len(s.trips) {
		limit = len(s.trips)
	}
	return s.trips[:limit], nil
}

func TestTripHandlerCreate(t *testing.T) {
	store := &memoryTripStore{}
	h := &TripHandler{Provider: testProvider(), Store: store}

	req := httptest.NewRequest(http.MethodPost, "/trips", strings.NewReader(planBody))
	rec := httptest.NewRecorder()
	h.Collection(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}

	var res dto.TripResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if res.ID == "" {
		t.Fatal("expected a generated trip ID")
	}
	if res.DistanceMiles != 600 {
		t.Fatalf("distance = %.1f, want 600", res.DistanceMiles)
	}
	if res.CurrentCycleUsed != 20 {
		t.Fatalf("cycle used = %.1f, want 20", res.CurrentCycleUsed)
	}

	if len(store.trips) != 1 {
		t.Fatalf("store has %d trips, want 1", len(store.trips))
	}
	if store.trips[0].ID != res.ID {
		t.Fatalf("stored ID %q does not match response %q", store.trips[0].ID, res.ID)
	}
}

func TestTripHandlerCreateStoreFailure(t *testing.T) {
	store := &memoryTripStore{err: fmt.Errorf("save: %w", ports.ErrUnavailable)}
	h := &TripHandler{Provider: testProvider(), Store: store}

	req := httptest.NewRequest(http.MethodPost, "/trips", strings.NewReader(planBody))
	rec := httptest.NewRecorder()
	h.Collection(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}

func TestTripHandlerList(t *testing.T) {
	store := &memoryTripStore{}
	h := &TripHandler{Provider: testProvider(), Store: store}

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/trips", strings.NewReader(planBody))
		rec := httptest.NewRecorder()
		h.Collection(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("seed trip %d failed: %d", i, rec.Code)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/trips?limit=2", nil)
	rec := httptest.NewRecorder()
	h.Collection(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var res dto.ListTripsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if len(res.Trips) != 2 {
		t.Fatalf("got %d trips, want 2", len(res.Trips))
	}
}

func TestTripHandlerListBadLimit(t *testing.T) {
	h := &TripHandler{Provider: testProvider(), Store: &memoryTripStore{}}

	for _, q := range []string{"limit=0", "limit=101", "limit=abc"} {
		req := httptest.NewRequest(http.MethodGet, "/trips?"+q, nil)
		rec := httptest.NewRecorder()
		h.Collection(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: status = %d, want 400", q, rec.Code)
		}
	}
}

func TestTripHandlerGet(t *testing.T) {
	store := &memoryTripStore{}
	h := &TripHandler{Provider: testProvider(), Store: store}

	create := httptest.NewRequest(http.MethodPost, "/trips", strings.NewReader(planBody))
	createRec := httptest.NewRecorder()
	h.Collection(createRec, create)

	var created dto.TripResponse
	if err := json.Unmarshal(createRec.Body.Bytes(), &created); err != nil {
		t.Fatalf("bad create response: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/trips/"+created.ID, nil)
	req.SetPathValue("id", created.ID)
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var res dto.TripResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if res.ID != created.ID {
		t.Fatalf("id = %q, want %q", res.ID, created.ID)
	}
}

func TestTripHandlerGetMissing(t *testing.T) {
	h := &TripHandler{Provider: testProvider(), Store: &memoryTripStore{}}

	req := httptest.NewRequest(http.MethodGet, "/trips/absent", nil)
	req.SetPathValue("id", "absent")
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestTripHandlerLogsheet(t *testing.T) {
	store := &memoryTripStore{}
	h := &TripHandler{Provider: testProvider(), Store: store}

	create := httptest.NewRequest(http.MethodPost, "/trips", strings.NewReader(planBody))
	createRec := httptest.NewRecorder()
	h.Collection(createRec, create)

	var created dto.TripResponse
	if err := json.Unmarshal(createRec.Body.Bytes(), &created); err != nil {
		t.Fatalf("bad create response: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/trips/"+created.ID+"/logsheet?day=1", nil)
	req.SetPathValue("id", created.ID)
	rec := httptest.NewRecorder()
	h.Logsheet(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Fatalf("content type = %q, want image/png", ct)
	}

	sig := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}
	if !bytes.HasPrefix(rec.Body.Bytes(), sig) {
		t.Fatal("body does not start with the PNG signature")
	}
}

func TestTripHandlerLogsheetDayOutOfRange(t *testing.T) {
	store := &memoryTripStore{}
	h := &TripHandler{Provider: testProvider(), Store: store}

	create := httptest.NewRequest(http.MethodPost, "/trips", strings.NewReader(planBody))
	createRec := httptest.NewRecorder()
	h.Collection(createRec, create)

	var created dto.TripResponse
	if err := json.Unmarshal(createRec.Body.Bytes(), &created); err != nil {
		t.Fatalf("bad create response: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/trips/"+created.ID+"/logsheet?day=9", nil)
	req.SetPathValue("id", created.ID)
	rec := httptest.NewRecorder()
	h.Logsheet(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}
