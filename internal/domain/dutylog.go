package domain

import "time"

// DutyStatus is one of the four mutually exclusive states a driver
// occupies at any instant.
type DutyStatus string

const (
	StatusOffDuty          DutyStatus = "off_duty"
	StatusSleeperBerth     DutyStatus = "sleeper_berth"
	StatusDriving          DutyStatus = "driving"
	StatusOnDutyNotDriving DutyStatus = "on_duty_not_driving"
)

// Valid reports whether s is one of the four duty statuses.
func (s DutyStatus) Valid() bool {
	switch s {
	case StatusOffDuty, StatusSleeperBerth, StatusDriving, StatusOnDutyNotDriving:
		return true
	}
	return false
}

// DutyEvent is a single status-change record within a day.
// Time is day-local "HH:MM"; a day's closing events may conceptually
// roll past midnight, in which case the clock wraps.
type DutyEvent struct {
	Status        DutyStatus
	Time          string
	Location      string
	OdometerMiles float64
	Notes         string
}

// GridSlots is the number of 15-minute slots in a daily log grid.
const GridSlots = 96

// LogGrid maps a day onto fixed 15-minute slots (00:00-23:45), one duty
// status per slot, for visual log sheet rendering.
type LogGrid [GridSlots]DutyStatus

// Dominant returns the status occupying the most slots. Ties resolve in
// declaration order off_duty, sleeper_berth, driving, on_duty_not_driving.
func (g LogGrid) Dominant() DutyStatus {
	counts := map[DutyStatus]int{}
	for _, s := range g {
		counts[s]++
	}
	best := StatusOffDuty
	order := []DutyStatus{StatusOffDuty, StatusSleeperBerth, StatusDriving, StatusOnDutyNotDriving}
	for _, s := range order {
		if counts[s] > counts[best] {
			best = s
		}
	}
	return best
}

// DailyLogRecord aggregates one day's duty events plus derived totals
// and the compliance verdict. It is created fresh per planning run and
// never mutated afterwards.
type DailyLogRecord struct {
	Date      time.Time
	DayOfTrip int
	Events    []DutyEvent

	TotalDriveTime        float64
	TotalOnDutyTime       float64
	TotalSleeperBerthTime float64
	TotalOffDutyTime      float64

	DistanceMiles   float64
	FuelStops       int
	MandatoryBreaks int
	OdometerStart   float64
	OdometerEnd     float64

	HOSCompliant bool
	Violations   []string
	Grid         LogGrid
}
