package domain

import "fmt"

// HOS limits for property-carrying drivers (70hr/8-day cycle).
const (
	MaxDailyDrivingHours = 11.0
	MaxDailyOnDutyHours  = 14.0
	MaxCycleHours        = 70.0
	BreakAfterHours      = 8.0
	FuelStopIntervalMi   = 1000.0
)

// DailyAllotment is one calendar day's share of a planned trip.
// The day planner produces these; the schedule expander consumes them
// read-only. Cap overruns are never clamped here; CapViolations reports
// them so callers can flag inconsistent upstream data.
type DailyAllotment struct {
	DayIndex        int
	DrivingHours    float64
	DistanceMiles   float64
	FuelStops       int
	MandatoryBreaks int
	TotalOnDuty     float64
	IncludesPickup  bool
	IncludesDropoff bool
}

// CapViolations reports daily HOS cap overruns present in the allotment
// as constructed. A correctly planned day returns nil.
func (a DailyAllotment) CapViolations() []string {
	var out []string
	if a.DrivingHours > MaxDailyDrivingHours {
		out = append(out, fmt.Sprintf(
			"day %d driving hours %.1fh exceed the %.0fh daily cap",
			a.DayIndex, a.DrivingHours, MaxDailyDrivingHours,
		))
	}
	if a.TotalOnDuty > MaxDailyOnDutyHours {
		out = append(out, fmt.Sprintf(
			"day %d on-duty hours %.1fh exceed the %.0fh daily window",
			a.DayIndex, a.TotalOnDuty, MaxDailyOnDutyHours,
		))
	}
	return out
}
