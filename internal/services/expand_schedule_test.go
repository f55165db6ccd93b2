package services

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"hos-planner-service/internal/domain"
)

var testLocations = domain.TripLocations{
	Current: "Chicago, IL",
	Pickup:  "Indianapolis, IN",
	Dropoff: "Atlanta, GA",
}

func singleDayAllotment() []domain.DailyAllotment {
	return []domain.DailyAllotment{{
		DayIndex:        1,
		DrivingHours:    9,
		DistanceMiles:   500,
		FuelStops:       0,
		MandatoryBreaks: 1,
		TotalOnDuty:     11,
		IncludesPickup:  true,
		IncludesDropoff: true,
	}}
}

func twoDayAllotments() []domain.DailyAllotment {
	return []domain.DailyAllotment{
		{
			DayIndex:        1,
			DrivingHours:    11,
			DistanceMiles:   605,
			MandatoryBreaks: 1,
			TotalOnDuty:     12,
			IncludesPickup:  true,
		},
		{
			DayIndex:        2,
			DrivingHours:    9,
			DistanceMiles:   495,
			MandatoryBreaks: 1,
			TotalOnDuty:     10,
			IncludesDropoff: true,
		},
	}
}

func testStartDate() time.Time {
	return time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
}

func TestExpandScheduleSingleDay(t *testing.T) {
	records, err := ExpandSchedule(singleDayAllotment(), testStartDate(), testLocations, 250000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}

	rec := records[0]
	if rec.DayOfTrip != 1 {
		t.Fatalf("day of trip = %d, want 1", rec.DayOfTrip)
	}
	if !rec.Date.Equal(testStartDate()) {
		t.Fatalf("date = %v, want %v", rec.Date, testStartDate())
	}

	if rec.Events[0].Notes != "Pre-trip inspection" {
		t.Fatalf("first event = %q, want pre-trip inspection", rec.Events[0].Notes)
	}
	last := rec.Events[len(rec.Events)-1]
	if last.Status != domain.StatusOffDuty {
		t.Fatalf("last event status = %q, want off duty", last.Status)
	}

	var sawPickup, sawDropoff bool
	for _, e := range rec.Events {
		if strings.Contains(e.Notes, "pickup") {
			sawPickup = true
		}
		if e.Notes == "Completed delivery" {
			sawDropoff = true
		}
	}
	if !sawPickup {
		t.Fatal("day 1 must include pickup events")
	}
	if !sawDropoff {
		t.Fatal("final day must include delivery events")
	}

	if got := rec.TotalDriveTime; got < 8.999 || got > 9.001 {
		t.Fatalf("drive time = %.4f, want 9", got)
	}
	if got := rec.TotalOnDutyTime; got < 12.249 || got > 12.251 {
		t.Fatalf("on-duty time = %.4f, want 12.25", got)
	}
	if !rec.HOSCompliant {
		t.Fatalf("expected compliant day, violations: %v", rec.Violations)
	}
	if len(rec.Violations) != 0 {
		t.Fatalf("expected no violations, got %v", rec.Violations)
	}

	if rec.OdometerStart != 250000 {
		t.Fatalf("odometer start = %.1f, want 250000", rec.OdometerStart)
	}
	if rec.OdometerEnd != 250550 {
		t.Fatalf("odometer end = %.1f, want 250550 (50-mile pickup leg plus 500)", rec.OdometerEnd)
	}
}

func TestExpandScheduleEventsChronological(t *testing.T) {
	records, err := ExpandSchedule(twoDayAllotments(), testStartDate(), testLocations, 250000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, rec := range records {
		prev := -1
		wrapped := false
		for _, e := range rec.Events {
			cur := parseClock(e.Time)
			if cur < prev {
				// a single midnight wrap is allowed at the end of a long day
				if wrapped {
					t.Fatalf("day %d: events not chronological at %q", rec.DayOfTrip, e.Time)
				}
				wrapped = true
			}
			prev = cur
		}
	}
}

func TestExpandScheduleOdometerMonotonic(t *testing.T) {
	records, err := ExpandSchedule(twoDayAllotments(), testStartDate(), testLocations, 100000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	if records[1].OdometerStart != records[0].OdometerEnd {
		t.Fatalf("day 2 starts at %.1f, day 1 ended at %.1f",
			records[1].OdometerStart, records[0].OdometerEnd)
	}

	prev := 0.0
	for _, rec := range records {
		for _, e := range rec.Events {
			if e.OdometerMiles < prev {
				t.Fatalf("odometer decreased: %.1f after %.1f (%s)", e.OdometerMiles, prev, e.Notes)
			}
			prev = e.OdometerMiles
		}
	}
}

func TestExpandScheduleMultiDayOpener(t *testing.T) {
	records, err := ExpandSchedule(twoDayAllotments(), testStartDate(), testLocations, 250000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	day2 := records[1]
	if !day2.Date.Equal(testStartDate().AddDate(0, 0, 1)) {
		t.Fatalf("day 2 date = %v", day2.Date)
	}
	opener := day2.Events[0]
	if opener.Status != domain.StatusOffDuty {
		t.Fatalf("day 2 opener status = %q, want off duty", opener.Status)
	}
	if opener.Notes != "End of required 10-hour off-duty period" {
		t.Fatalf("day 2 opener notes = %q", opener.Notes)
	}

	// pickup handling happens on day 1 only
	for _, e := range day2.Events {
		if strings.Contains(e.Notes, "pickup") {
			t.Fatalf("day 2 must not contain pickup events, got %q", e.Notes)
		}
	}
}

func TestExpandScheduleGrid(t *testing.T) {
	records, err := ExpandSchedule(singleDayAllotment(), testStartDate(), testLocations, 250000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	grid := records[0].Grid
	for slot, status := range grid {
		if !status.Valid() {
			t.Fatalf("slot %d has invalid status %q", slot, status)
		}
	}

	// before the 06:15 pre-trip the driver is off duty
	if grid[0] != domain.StatusOffDuty {
		t.Fatalf("slot 0 = %q, want off duty", grid[0])
	}
	// 09:00 falls inside the first driving segment (08:00-16:00)
	if grid[36] != domain.StatusDriving {
		t.Fatalf("slot 36 (09:00) = %q, want driving", grid[36])
	}
}

func TestExpandScheduleFuelStop(t *testing.T) {
	allotments := []domain.DailyAllotment{{
		DayIndex:        1,
		DrivingHours:    11,
		DistanceMiles:   1100,
		FuelStops:       1,
		MandatoryBreaks: 1,
		IncludesPickup:  true,
		IncludesDropoff: true,
	}}

	records, err := ExpandSchedule(allotments, testStartDate(), testLocations, 250000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var sawFuel bool
	for _, e := range records[0].Events {
		if e.Notes == "Fueling - 30 minutes" {
			sawFuel = true
			if e.Status != domain.StatusOnDutyNotDriving {
				t.Fatalf("fuel stop status = %q, want on duty not driving", e.Status)
			}
		}
	}
	if !sawFuel {
		t.Fatal("expected a fuel stop event")
	}
	if records[0].FuelStops != 1 {
		t.Fatalf("fuel stops = %d, want 1", records[0].FuelStops)
	}
}

func TestExpandScheduleOverlongDayFlagged(t *testing.T) {
	allotments := []domain.DailyAllotment{{
		DayIndex:        1,
		DrivingHours:    12,
		DistanceMiles:   660,
		MandatoryBreaks: 1,
		IncludesPickup:  true,
		IncludesDropoff: true,
	}}

	records, err := ExpandSchedule(allotments, testStartDate(), testLocations, 250000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rec := records[0]
	if rec.HOSCompliant {
		t.Fatal("12 driving hours must not be compliant")
	}
	if len(rec.Violations) < 2 {
		t.Fatalf("expected driving and on-duty violations, got %v", rec.Violations)
	}
	if !strings.Contains(rec.Violations[0], "11") {
		t.Fatalf("driving violation must cite the 11-hour cap, got %q", rec.Violations[0])
	}
	if !strings.Contains(rec.Violations[1], "14") {
		t.Fatalf("on-duty violation must cite the 14-hour window, got %q", rec.Violations[1])
	}
}

func TestExpandScheduleDeterministic(t *testing.T) {
	first, err := ExpandSchedule(twoDayAllotments(), testStartDate(), testLocations, 250000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := ExpandSchedule(twoDayAllotments(), testStartDate(), testLocations, 250000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatal("identical inputs must produce identical logs")
	}
}

func TestExpandScheduleMalformedAllotment(t *testing.T) {
	allotments := []domain.DailyAllotment{{DayIndex: 1, DrivingHours: -1, DistanceMiles: 100}}
	_, err := ExpandSchedule(allotments, testStartDate(), testLocations, 250000)
	if !errors.Is(err, ErrMalformedAllotment) {
		t.Fatalf("expected ErrMalformedAllotment, got %v", err)
	}
}

func TestExpandScheduleEmptyInput(t *testing.T) {
	records, err := ExpandSchedule(nil, testStartDate(), testLocations, 250000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected no records, got %d", len(records))
	}
}
