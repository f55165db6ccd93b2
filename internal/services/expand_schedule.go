package services

import (
	"errors"
	"fmt"
	"math"
	"time"

	"hos-planner-service/internal/domain"
)

// ErrMalformedAllotment marks an inconsistent allotment handed to the
// schedule expander. Expansion aborts for the whole trip; there is no
// partial-result mode, because downstream consumers assume a complete,
// internally consistent day before computing totals.
var ErrMalformedAllotment = errors.New("malformed daily allotment")

const (
	dayStartMinutes   = 6 * 60 // wall-clock simulation anchors at 06:00
	pickupLegMiles    = 50.0
	preTripMinutes    = 15
	pickupTravelMin   = 45
	loadUnloadMinutes = 60
	fuelStopMinutes   = 30
	breakMinutes      = 30
	postTripMinutes   = 15

	// More driving entries than this without an intervening rest entry is
	// treated as driving past the mandatory break point. Coarse proxy for
	// the real 8-hour rule.
	maxConsecutiveDriving = 16
)

// ExpandSchedule turns per-day allotments into minute-by-minute duty logs.
//
// Each day is simulated from a 06:00 anchor: inspection, pickup handling
// on day one, driving in segments capped at the 8-hour break threshold
// with fuel stops at segment midpoints, dropoff handling on the final day,
// and the closing rest period. Events are emitted in chronological order
// and odometer readings never decrease across the trip.
//
// Deterministic: identical inputs produce identical output. The start
// date is an explicit parameter; no clock is sampled internally.
func ExpandSchedule(
	allotments []domain.DailyAllotment,
	startDate time.Time,
	locs domain.TripLocations,
	baseOdometer float64,
) ([]domain.DailyLogRecord, error) {
	for _, a := range allotments {
		if a.DrivingHours < 0 || a.DistanceMiles < 0 {
			return nil, fmt.Errorf(
				"expand schedule: day %d has negative driving hours or distance: %w",
				a.DayIndex, ErrMalformedAllotment,
			)
		}
	}

	records := make([]domain.DailyLogRecord, 0, len(allotments))
	odometer := baseOdometer

	for i, a := range allotments {
		final := i == len(allotments)-1 || a.IncludesDropoff
		events, endOdometer := expandDay(a, i, final, locs, odometer)

		totals := dailyTotals(events)
		rec := domain.DailyLogRecord{
			Date:                  startDate.AddDate(0, 0, i),
			DayOfTrip:             i + 1,
			Events:                events,
			TotalDriveTime:        totals[domain.StatusDriving],
			TotalOnDutyTime:       totals[domain.StatusDriving] + totals[domain.StatusOnDutyNotDriving],
			TotalSleeperBerthTime: totals[domain.StatusSleeperBerth],
			TotalOffDutyTime:      totals[domain.StatusOffDuty],
			DistanceMiles:         a.DistanceMiles,
			FuelStops:             a.FuelStops,
			MandatoryBreaks:       a.MandatoryBreaks,
			OdometerStart:         odometer,
			OdometerEnd:           endOdometer,
			HOSCompliant:          checkCompliance(totals),
			Violations:            checkViolations(totals, events),
			Grid:                  projectGrid(events),
		}

		records = append(records, rec)
		odometer = endOdometer
	}

	return records, nil
}

// expandDay emits one day's duty status changes and returns the trip
// odometer after the day.
func expandDay(
	a domain.DailyAllotment,
	dayIdx int,
	finalDay bool,
	locs domain.TripLocations,
	dayStartOdometer float64,
) ([]domain.DutyEvent, float64) {
	var events []domain.DutyEvent
	clock := dayStartMinutes

	restLoc := "Rest Area"
	startLoc := locs.Current
	if dayIdx > 0 {
		startLoc = restLoc
		// The prior day's mandatory 10-hour rest ends at the anchor.
		events = append(events, domain.DutyEvent{
			Status:        domain.StatusOffDuty,
			Time:          formatClock(clock),
			Location:      restLoc,
			OdometerMiles: dayStartOdometer,
			Notes:         "End of required 10-hour off-duty period",
		})
	}

	clock += preTripMinutes
	events = append(events, domain.DutyEvent{
		Status:        domain.StatusOnDutyNotDriving,
		Time:          formatClock(clock),
		Location:      startLoc,
		OdometerMiles: dayStartOdometer,
		Notes:         "Pre-trip inspection",
	})

	legOdometer := dayStartOdometer
	if dayIdx == 0 {
		legOdometer += pickupLegMiles

		clock += pickupTravelMin
		events = append(events, domain.DutyEvent{
			Status:        domain.StatusOnDutyNotDriving,
			Time:          formatClock(clock),
			Location:      locs.Pickup,
			OdometerMiles: legOdometer,
			Notes:         "Arrived at pickup location",
		})

		clock += loadUnloadMinutes
		events = append(events, domain.DutyEvent{
			Status:        domain.StatusOnDutyNotDriving,
			Time:          formatClock(clock),
			Location:      locs.Pickup,
			OdometerMiles: legOdometer,
			Notes:         "Completed pickup - ready to drive",
		})
	}

	remaining := a.DrivingHours
	covered := 0.0

	for remaining > 1e-9 {
		segment := math.Min(domain.BreakAfterHours, remaining)

		events = append(events, domain.DutyEvent{
			Status:        domain.StatusDriving,
			Time:          formatClock(clock),
			Location:      interpolateLocation(covered, a.DistanceMiles, locs.Pickup, locs.Dropoff),
			OdometerMiles: legOdometer + covered,
			Notes:         "Begin driving",
		})

		segmentDistance := 0.0
		if a.DrivingHours > 0 {
			segmentDistance = segment / a.DrivingHours * a.DistanceMiles
		}

		// Fuel stop at the segment midpoint, by time and by distance.
		if a.FuelStops > 0 && segmentDistance > domain.FuelStopIntervalMi/2 {
			fuelClock := clock + minutes(segment/2)
			fuelDistance := covered + segmentDistance/2
			fuelLoc := "Fuel Stop - " + interpolateLocation(fuelDistance, a.DistanceMiles, locs.Pickup, locs.Dropoff)

			events = append(events, domain.DutyEvent{
				Status:        domain.StatusOnDutyNotDriving,
				Time:          formatClock(fuelClock),
				Location:      fuelLoc,
				OdometerMiles: legOdometer + fuelDistance,
				Notes:         "Fueling - 30 minutes",
			})
			events = append(events, domain.DutyEvent{
				Status:        domain.StatusDriving,
				Time:          formatClock(fuelClock + fuelStopMinutes),
				Location:      fuelLoc,
				OdometerMiles: legOdometer + fuelDistance,
				Notes:         "Resume driving after fuel",
			})
		}

		clock += minutes(segment)
		covered += segmentDistance
		remaining -= segment

		if remaining > 1e-9 && segment >= domain.BreakAfterHours {
			events = append(events, domain.DutyEvent{
				Status:        domain.StatusOffDuty,
				Time:          formatClock(clock),
				Location:      restLoc,
				OdometerMiles: legOdometer + covered,
				Notes:         "Mandatory 30-minute break after 8 hours driving",
			})
			clock += breakMinutes
		}
	}

	endOdometer := legOdometer + a.DistanceMiles
	endLoc := restLoc
	if finalDay {
		endLoc = locs.Dropoff

		events = append(events, domain.DutyEvent{
			Status:        domain.StatusOnDutyNotDriving,
			Time:          formatClock(clock),
			Location:      locs.Dropoff,
			OdometerMiles: endOdometer,
			Notes:         "Arrived at delivery location",
		})

		clock += loadUnloadMinutes
		events = append(events, domain.DutyEvent{
			Status:        domain.StatusOnDutyNotDriving,
			Time:          formatClock(clock),
			Location:      locs.Dropoff,
			OdometerMiles: endOdometer,
			Notes:         "Completed delivery",
		})
	}

	clock += postTripMinutes
	events = append(events, domain.DutyEvent{
		Status:        domain.StatusOnDutyNotDriving,
		Time:          formatClock(clock),
		Location:      endLoc,
		OdometerMiles: endOdometer,
		Notes:         "Post-trip inspection",
	})

	clock += postTripMinutes
	events = append(events, domain.DutyEvent{
		Status:        domain.StatusOffDuty,
		Time:          formatClock(clock),
		Location:      endLoc,
		OdometerMiles: endOdometer,
		Notes:         "Begin 10-hour off-duty period",
	})

	return events, endOdometer
}

// dailyTotals accumulates hours per duty status from adjacent event pairs.
// A timestamp numerically earlier than its predecessor means the clock
// wrapped past midnight.
func dailyTotals(events []domain.DutyEvent) map[domain.DutyStatus]float64 {
	totals := map[domain.DutyStatus]float64{
		domain.StatusDriving:          0,
		domain.StatusOnDutyNotDriving: 0,
		domain.StatusSleeperBerth:     0,
		domain.StatusOffDuty:          0,
	}

	for i := 0; i+1 < len(events); i++ {
		cur := parseClock(events[i].Time)
		next := parseClock(events[i+1].Time)
		if next < cur {
			next += 24 * 60
		}
		totals[events[i].Status] += float64(next-cur) / 60.0
	}

	return totals
}

func checkCompliance(totals map[domain.DutyStatus]float64) bool {
	driving := totals[domain.StatusDriving]
	onDuty := driving + totals[domain.StatusOnDutyNotDriving]
	return driving <= domain.MaxDailyDrivingHours && onDuty <= domain.MaxDailyOnDutyHours
}

// checkViolations reports which daily caps were exceeded and by how much.
// Violations are data, never errors: they are always computed and returned
// so the caller can see why a plan is non-compliant.
func checkViolations(totals map[domain.DutyStatus]float64, events []domain.DutyEvent) []string {
	var violations []string

	driving := totals[domain.StatusDriving]
	if driving > domain.MaxDailyDrivingHours {
		violations = append(violations, fmt.Sprintf(
			"Exceeded maximum daily driving time: %.1fh > %.0fh",
			driving, domain.MaxDailyDrivingHours,
		))
	}

	onDuty := driving + totals[domain.StatusOnDutyNotDriving]
	if onDuty > domain.MaxDailyOnDutyHours {
		violations = append(violations, fmt.Sprintf(
			"Exceeded maximum daily on-duty time: %.1fh > %.0fh",
			onDuty, domain.MaxDailyOnDutyHours,
		))
	}

	consecutive := 0
	for _, e := range events {
		switch e.Status {
		case domain.StatusDriving:
			consecutive++
		case domain.StatusOffDuty, domain.StatusSleeperBerth:
			consecutive = 0
		}
		if consecutive > maxConsecutiveDriving {
			violations = append(violations, "Drove more than 8 hours without mandatory 30-minute break")
			break
		}
	}

	return violations
}

// projectGrid fills the 96-slot grid with the status of each interval's
// starting event. Intervals wrapping past midnight extend the end time by
// 24h before computing slot indices, clamped to the end of the day.
func projectGrid(events []domain.DutyEvent) domain.LogGrid {
	var grid domain.LogGrid
	for i := range grid {
		grid[i] = domain.StatusOffDuty
	}

	for i := 0; i+1 < len(events); i++ {
		start := parseClock(events[i].Time)
		end := parseClock(events[i+1].Time)
		if end < start {
			end += 24 * 60
		}

		startSlot := start / 15
		endSlot := end / 15
		if endSlot > domain.GridSlots {
			endSlot = domain.GridSlots
		}
		for slot := startSlot; slot < endSlot; slot++ {
			grid[slot] = events[i].Status
		}
	}

	return grid
}

// interpolateLocation labels an intermediate point along the main leg.
// Coarse display text only; adapters own real geocoding.
func interpolateLocation(covered, total float64, startLoc, endLoc string) string {
	if total == 0 {
		return startLoc
	}
	progress := covered / total
	switch {
	case progress < 0.3:
		return "En route from " + startLoc
	case progress < 0.7:
		return fmt.Sprintf("Highway - %d%% to destination", int(progress*100))
	default:
		return "Approaching " + endLoc
	}
}

func minutes(hours float64) int {
	return int(math.Round(hours * 60))
}

func formatClock(min int) string {
	min %= 24 * 60
	return fmt.Sprintf("%02d:%02d", min/60, min%60)
}

func parseClock(hhmm string) int {
	var h, m int
	fmt.Sscanf(hhmm, "%d:%d", &h, &m)
	return h*60 + m
}
