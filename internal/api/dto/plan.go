package dto

import (
	"time"

	"hos-planner-service/internal/domain"
	"hos-planner-service/internal/services"
)

const dateLayout = "2006-01-02"

type PlanRequest struct {
	CurrentLocation  string  `json:"current_location"`
	PickupLocation   string  `json:"pickup_location"`
	DropoffLocation  string  `json:"dropoff_location"`
	CurrentCycleUsed float64 `json:"current_cycle_used"`
	StartDate        string  `json:"start_date"`
	BaseOdometer     float64 `json:"base_odometer"`
}

type ExpandLogsRequest struct {
	Allotments   []AllotmentPayload `json:"daily_plans"`
	StartDate    string             `json:"start_date"`
	Locations    LocationsPayload   `json:"locations"`
	BaseOdometer float64            `json:"base_odometer"`
}

type LocationsPayload struct {
	Current string `json:"current"`
	Pickup  string `json:"pickup"`
	Dropoff string `json:"dropoff"`
}

type AllotmentPayload struct {
	Day             int     `json:"day"`
	DrivingHours    float64 `json:"driving_hours"`
	DistanceMiles   float64 `json:"distance_miles"`
	FuelStops       int     `json:"fuel_stops"`
	MandatoryBreaks int     `json:"mandatory_breaks"`
	TotalOnDuty     float64 `json:"total_on_duty"`
	IncludesPickup  bool    `json:"includes_pickup"`
	IncludesDropoff bool    `json:"includes_dropoff"`
}

type RouteSummaryResponse struct {
	DistanceMiles float64 `json:"distance_miles"`
	DurationHours float64 `json:"duration_hours"`
}

type TripSummaryResponse struct {
	TotalDaysNeeded     int     `json:"total_days_needed"`
	TotalFuelStops      int     `json:"total_fuel_stops"`
	CycleCompliant      bool    `json:"cycle_compliant"`
	RemainingCycleHours float64 `json:"remaining_cycle_hours"`
	TotalOnDutyHours    float64 `json:"total_on_duty_time"`
	MandatoryBreakHours float64 `json:"mandatory_break_time"`
	FuelStopHours       float64 `json:"fuel_stop_time"`
	PickupDropoffHours  float64 `json:"pickup_dropoff_time"`
}

type DutyEventResponse struct {
	Status   string  `json:"status"`
	Time     string  `json:"time"`
	Location string  `json:"location"`
	Odometer float64 `json:"odometer"`
	Notes    string  `json:"notes"`
}

type DailyLogResponse struct {
	Date                  string              `json:"date"`
	DayOfTrip             int                 `json:"day_of_trip"`
	DutyStatusChanges     []DutyEventResponse `json:"duty_status_changes"`
	TotalDriveTime        float64             `json:"total_drive_time"`
	TotalOnDutyTime       float64             `json:"total_on_duty_time"`
	TotalSleeperBerthTime float64             `json:"total_sleeper_berth_time"`
	TotalOffDutyTime      float64             `json:"total_off_duty_time"`
	DistanceTraveled      float64             `json:"distance_traveled"`
	FuelStops             int                 `json:"fuel_stops"`
	MandatoryBreaks       int                 `json:"mandatory_breaks"`
	OdometerStart         float64             `json:"odometer_start"`
	OdometerEnd           float64             `json:"odometer_end"`
	HOSCompliant          bool                `json:"hos_compliant"`
	Violations            []string            `json:"violations"`
	LogGrid               []string            `json:"log_grid"`
}

type PlanResponse struct {
	Locations     LocationsPayload     `json:"locations"`
	RouteToPickup RouteSummaryResponse `json:"route_to_pickup"`
	MainRoute     RouteSummaryResponse `json:"main_route"`
	CombinedRoute RouteSummaryResponse `json:"combined_route"`
	Summary       TripSummaryResponse  `json:"hos_summary"`
	DailyPlans    []AllotmentPayload   `json:"daily_plans"`
	DailyLogs     []DailyLogResponse   `json:"daily_logs"`
}

type ExpandLogsResponse struct {
	DailyLogs []DailyLogResponse `json:"daily_logs"`
	TotalDays int                `json:"total_days"`
}

func NewPlanResponse(plan *services.TripPlan) PlanResponse {
	return PlanResponse{
		Locations: LocationsPayload{
			Current: plan.Locations.Current,
			Pickup:  plan.Locations.Pickup,
			Dropoff: plan.Locations.Dropoff,
		},
		RouteToPickup: newRouteSummary(plan.RouteToPickup),
		MainRoute:     newRouteSummary(plan.MainRoute),
		CombinedRoute: newRouteSummary(plan.CombinedRoute),
		Summary:       NewTripSummaryResponse(plan.Summary),
		DailyPlans:    NewAllotmentPayloads(plan.Allotments),
		DailyLogs:     NewDailyLogResponses(plan.Logs),
	}
}

func newRouteSummary(r domain.RouteSummary) RouteSummaryResponse {
	return RouteSummaryResponse{DistanceMiles: r.DistanceMiles, DurationHours: r.DurationHours}
}

func NewTripSummaryResponse(s domain.TripSummary) TripSummaryResponse {
	return TripSummaryResponse{
		TotalDaysNeeded:     s.TotalDays,
		TotalFuelStops:      s.TotalFuelStops,
		CycleCompliant:      s.CycleCompliant,
		RemainingCycleHours: s.RemainingCycleHours,
		TotalOnDutyHours:    s.TotalOnDutyHours,
		MandatoryBreakHours: s.MandatoryBreakHours,
		FuelStopHours:       s.FuelStopHours,
		PickupDropoffHours:  s.PickupDropoffHours,
	}
}

func NewAllotmentPayloads(allotments []domain.DailyAllotment) []AllotmentPayload {
	out := make([]AllotmentPayload, 0, len(allotments))
	for _, a := range allotments {
		out = append(out, AllotmentPayload{
			Day:             a.DayIndex,
			DrivingHours:    a.DrivingHours,
			DistanceMiles:   a.DistanceMiles,
			FuelStops:       a.FuelStops,
			MandatoryBreaks: a.MandatoryBreaks,
			TotalOnDuty:     a.TotalOnDuty,
			IncludesPickup:  a.IncludesPickup,
			IncludesDropoff: a.IncludesDropoff,
		})
	}
	return out
}

// ToAllotments converts caller-provided payloads back into domain values.
// No re-validation of planner invariants happens here; the expander
// reports cap overruns as compliance violations.
func ToAllotments(payloads []AllotmentPayload) []domain.DailyAllotment {
	out := make([]domain.DailyAllotment, 0, len(payloads))
	for _, p := range payloads {
		out = append(out, domain.DailyAllotment{
			DayIndex:        p.Day,
			DrivingHours:    p.DrivingHours,
			DistanceMiles:   p.DistanceMiles,
			FuelStops:       p.FuelStops,
			MandatoryBreaks: p.MandatoryBreaks,
			TotalOnDuty:     p.TotalOnDuty,
			IncludesPickup:  p.IncludesPickup,
			IncludesDropoff: p.IncludesDropoff,
		})
	}
	return out
}

func NewDailyLogResponses(logs []domain.DailyLogRecord) []DailyLogResponse {
	out := make([]DailyLogResponse, 0, len(logs))
	for _, rec := range logs {
		events := make([]DutyEventResponse, 0, len(rec.Events))
		for _, e := range rec.Events {
			events = append(events, DutyEventResponse{
				Status:   string(e.Status),
				Time:     e.Time,
				Location: e.Location,
				Odometer: e.OdometerMiles,
				Notes:    e.Notes,
			})
		}

		grid := make([]string, len(rec.Grid))
		for i, s := range rec.Grid {
			grid[i] = string(s)
		}

		violations := rec.Violations
		if violations == nil {
			violations = []string{}
		}

		out = append(out, DailyLogResponse{
			Date:                  rec.Date.Format(dateLayout),
			DayOfTrip:             rec.DayOfTrip,
			DutyStatusChanges:     events,
			TotalDriveTime:        rec.TotalDriveTime,
			TotalOnDutyTime:       rec.TotalOnDutyTime,
			TotalSleeperBerthTime: rec.TotalSleeperBerthTime,
			TotalOffDutyTime:      rec.TotalOffDutyTime,
			DistanceTraveled:      rec.DistanceMiles,
			FuelStops:             rec.FuelStops,
			MandatoryBreaks:       rec.MandatoryBreaks,
			OdometerStart:         rec.OdometerStart,
			OdometerEnd:           rec.OdometerEnd,
			HOSCompliant:          rec.HOSCompliant,
			Violations:            violations,
			LogGrid:               grid,
		})
	}
	return out
}

// ParseStartDate parses an optional YYYY-MM-DD start date.
func ParseStartDate(s string) (time.Time, bool) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
