package dto

import (
	"time"

	"hos-planner-service/internal/domain"
)

type TripResponse struct {
	ID               string              `json:"id"`
	CurrentLocation  string              `json:"current_location"`
	PickupLocation   string              `json:"pickup_location"`
	DropoffLocation  string              `json:"dropoff_location"`
	CurrentCycleUsed float64             `json:"current_cycle_used"`
	DistanceMiles    float64             `json:"distance_miles"`
	Summary          TripSummaryResponse `json:"hos_summary"`
	DailyPlans       []AllotmentPayload  `json:"daily_plans"`
	DailyLogs        []DailyLogResponse  `json:"daily_logs"`
	CreatedAt        time.Time           `json:"created_at"`
}

type ListTripsResponse struct {
	Trips []TripResponse `json:"trips"`
}

func NewTripResponse(trip *domain.Trip) TripResponse {
	return TripResponse{
		ID:               trip.ID,
		CurrentLocation:  trip.CurrentLocation,
		PickupLocation:   trip.PickupLocation,
		DropoffLocation:  trip.DropoffLocation,
		CurrentCycleUsed: trip.CycleUsedHours,
		DistanceMiles:    trip.DistanceMiles,
		Summary:          NewTripSummaryResponse(trip.Summary),
		DailyPlans:       NewAllotmentPayloads(trip.Allotments),
		DailyLogs:        NewDailyLogResponses(trip.Logs),
		CreatedAt:        trip.CreatedAt,
	}
}
