package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"hos-planner-service/internal/api/dto"
	"hos-planner-service/internal/ports"
	"hos-planner-service/internal/services"
)

type PlanHandler struct {
	Provider ports.RouteProvider
}

// Plan routes the trip, partitions it into HOS-compliant days, and
// expands the days into duty logs, without persisting anything.
func (h *PlanHandler) Plan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

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

	writeJSON(w, r, http.StatusOK, dto.NewPlanResponse(plan))
}

// ExpandLogs expands caller-provided daily plans into duty logs, for
// clients that planned earlier and want logs for a different start date.
func (h *PlanHandler) ExpandLogs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.ExpandLogsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if len(req.Allotments) == 0 {
		writeError(w, r, http.StatusBadRequest, "daily_plans is required")
		return
	}

	startDate := time.Now().Truncate(24 * time.Hour)
	if req.StartDate != "" {
		parsed, ok := dto.ParseStartDate(req.StartDate)
		if !ok {
			writeError(w, r, http.StatusBadRequest, "start_date must be YYYY-MM-DD")
			return
		}
		startDate = parsed
	}

	baseOdometer := req.BaseOdometer
	if baseOdometer == 0 {
		baseOdometer = services.DefaultBaseOdometer
	}

	logs, err := services.ExpandSchedule(
		dto.ToAllotments(req.Allotments),
		startDate,
		locations(req.Locations),
		baseOdometer,
	)
	if err != nil {
		if errors.Is(err, services.ErrMalformedAllotment) {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("expand logs failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ExpandLogsResponse{
		DailyLogs: dto.NewDailyLogResponses(logs),
		TotalDays: len(logs),
	})
}
