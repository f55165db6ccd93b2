package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"hos-planner-service/internal/api/dto"
	"hos-planner-service/internal/domain"
	"hos-planner-service/internal/logsheet"
	"hos-planner-service/internal/ports"
	"hos-planner-service/internal/services"

	"github.com/google/uuid"
)

// TripHandler plans and persists trips and serves them back.
type TripHandler struct {
	Provider ports.RouteProvider
	Store    ports.TripStore
}

// Collection dispatches /trips by method: list on GET, plan-and-save on POST.
func (h *TripHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *TripHandler) create(w http.ResponseWriter, r *http.Request) {
	var req dto.PlanRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	svcReq, ok := planTripRequest(w, r, req)
	if !ok {
		return
	}

	plan, err := services.PlanTrip(r.Context(), svcReq, h.Provider)
	if err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("plan trip failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	trip := &domain.Trip{
		ID:              uuid.NewString(),
		CurrentLocation: plan.Locations.Current,
		PickupLocation:  plan.Locations.Pickup,
		DropoffLocation: plan.Locations.Dropoff,
		CycleUsedHours:  req.CurrentCycleUsed,
		DistanceMiles:   plan.CombinedRoute.DistanceMiles,
		Summary:         plan.Summary,
		Allotments:      plan.Allotments,
		Logs:            plan.Logs,
		CreatedAt:       time.Now().UTC(),
	}

	if err := h.Store.SaveTrip(r.Context(), trip); err != nil {
		log.Printf("save trip failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusCreated, dto.NewTripResponse(trip))
}

func (h *TripHandler) list(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 100 {
			writeError(w, r, http.StatusBadRequest, "limit must be between 1 and 100")
			return
		}
		limit = n
	}

	trips, err := h.Store.ListTrips(r.Context(), limit)
	if err != nil {
		log.Printf("list trips failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListTripsResponse{Trips: make([]dto.TripResponse, 0, len(trips))}
	for _, trip := range trips {
		res.Trips = append(res.Trips, dto.NewTripResponse(trip))
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Get serves one persisted trip by ID.
func (h *TripHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	trip, err := h.Store.GetTrip(r.Context(), r.PathValue("id"))
	if errors.Is(err, ports.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, "trip not found")
		return
	}
	if err != nil {
		log.Printf("get trip failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewTripResponse(trip))
}

// Logsheet renders one day of a persisted trip as a PNG log sheet.
func (h *TripHandler) Logsheet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	trip, err := h.Store.GetTrip(r.Context(), r.PathValue("id"))
	if errors.Is(err, ports.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, "trip not found")
		return
	}
	if err != nil {
		log.Printf("get trip failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	day := 1
	if v := r.URL.Query().Get("day"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, r, http.StatusBadRequest, "day must be a positive integer")
			return
		}
		day = n
	}
	if day > len(trip.Logs) {
		writeError(w, r, http.StatusNotFound, "no log for requested day")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	if err := logsheet.WritePNG(w, trip.Logs[day-1]); err != nil {
		log.Printf("render log sheet failed: %v", err)
	}
}
