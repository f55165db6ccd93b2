package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"time"

	"hos-planner-service/internal/api/dto"
	"hos-planner-service/internal/domain"
	"hos-planner-service/internal/services"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// decodeJSON decodes a single strict JSON object from the request body,
// writing a 400 and returning false on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return false
	}

	return true
}

// planTripRequest converts a PlanRequest into the service request,
// defaulting the start date to today.
func planTripRequest(w http.ResponseWriter, r *http.Request, req dto.PlanRequest) (services.PlanTripRequest, bool) {
	startDate := time.Now().UTC().Truncate(24 * time.Hour)
	if req.StartDate != "" {
		parsed, ok := dto.ParseStartDate(req.StartDate)
		if !ok {
			writeError(w, r, http.StatusBadRequest, "start_date must be YYYY-MM-DD")
			return services.PlanTripRequest{}, false
		}
		startDate = parsed
	}

	if req.CurrentCycleUsed < 0 {
		writeError(w, r, http.StatusBadRequest, "current_cycle_used must be non-negative")
		return services.PlanTripRequest{}, false
	}

	return services.PlanTripRequest{
		CurrentLocation: req.CurrentLocation,
		PickupLocation:  req.PickupLocation,
		DropoffLocation: req.DropoffLocation,
		CycleUsedHours:  req.CurrentCycleUsed,
		StartDate:       startDate,
		BaseOdometer:    req.BaseOdometer,
	}, true
}

func locations(p dto.LocationsPayload) domain.TripLocations {
	return domain.TripLocations{
		Current: p.Current,
		Pickup:  p.Pickup,
		Dropoff: p.Dropoff,
	}
}
