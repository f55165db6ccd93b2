package domain

import "time"

// RouteSummary is the routing collaborator's view of a leg or full route.
// The planner consumes only this pair; geometry and turn-by-turn detail
// stay inside the routing adapter.
type RouteSummary struct {
	DistanceMiles float64
	DurationHours float64
}

// Add combines two legs into one summary.
func (r RouteSummary) Add(other RouteSummary) RouteSummary {
	return RouteSummary{
		DistanceMiles: r.DistanceMiles + other.DistanceMiles,
		DurationHours: r.DurationHours + other.DurationHours,
	}
}

// TripLocations holds the three display labels a trip is planned between.
// No geocoding precision is required here; adapters resolve coordinates.
type TripLocations struct {
	Current string
	Pickup  string
	Dropoff string
}

// TripSummary is the trip-level result of day planning.
// RemainingCycleHours may be negative when the driver is already over
// the 70-hour/8-day cycle; it is reported, not clamped.
type TripSummary struct {
	TotalDays           int
	TotalFuelStops      int
	CycleCompliant      bool
	RemainingCycleHours float64

	// Time breakdown of the whole trip.
	TotalOnDutyHours    float64
	MandatoryBreakHours float64
	FuelStopHours       float64
	PickupDropoffHours  float64
}

// Trip is the persisted aggregate: the request that was planned plus
// everything planning produced. Stores serialize it verbatim.
type Trip struct {
	ID              string
	CurrentLocation string
	PickupLocation  string
	DropoffLocation string
	CycleUsedHours  float64
	DistanceMiles   float64
	Summary         TripSummary
	Allotments      []DailyAllotment
	Logs            []DailyLogRecord
	CreatedAt       time.Time
}
