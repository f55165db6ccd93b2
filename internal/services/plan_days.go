package services

import (
	"errors"
	"fmt"
	"math"

	"hos-planner-service/internal/domain"
)

// ErrInvalidInput marks non-sensical planner inputs: negative values or
// an inconsistent distance/duration pair. It is raised immediately and
// never retried here; callers decide whether to substitute a fallback
// route estimate.
var ErrInvalidInput = errors.New("invalid planner input")

const (
	fuelStopHours      = 0.5
	breakHours         = 0.5
	pickupDropoffHours = 2.0
	fallbackSpeedMph   = 55.0
)

// PlanDays partitions a trip into per-day driving allotments that respect
// the daily HOS caps, and estimates whether the whole trip fits the
// driver's remaining 70-hour/8-day cycle.
//
// Pure function of its inputs: no clock, no I/O, no shared state.
// Independent invocations may run concurrently without coordination.
func PlanDays(distanceMiles, durationHours, cycleUsedHours float64) ([]domain.DailyAllotment, domain.TripSummary, error) {
	if distanceMiles < 0 || durationHours < 0 || cycleUsedHours < 0 {
		return nil, domain.TripSummary{}, fmt.Errorf(
			"plan days: negative input (distance=%.1f duration=%.1f cycle=%.1f): %w",
			distanceMiles, durationHours, cycleUsedHours, ErrInvalidInput,
		)
	}
	if durationHours > 0 && distanceMiles == 0 {
		return nil, domain.TripSummary{}, fmt.Errorf(
			"plan days: nonzero duration %.1fh with zero distance: %w", durationHours, ErrInvalidInput,
		)
	}
	// Zero driving time cannot cover a positive distance; without this
	// guard the day loop below would never shrink remaining distance.
	if distanceMiles > 0 && durationHours == 0 {
		return nil, domain.TripSummary{}, fmt.Errorf(
			"plan days: nonzero distance %.1fmi with zero duration: %w", distanceMiles, ErrInvalidInput,
		)
	}

	fuelStopsTotal := int(math.Ceil(distanceMiles/domain.FuelStopIntervalMi)) - 1
	if fuelStopsTotal < 0 {
		fuelStopsTotal = 0
	}
	fuelStopTime := float64(fuelStopsTotal) * fuelStopHours

	mandatoryBreaks := int(math.Floor(durationHours / domain.BreakAfterHours))
	mandatoryBreakTime := float64(mandatoryBreaks) * breakHours

	totalOnDutyNeeded := durationHours + fuelStopTime + pickupDropoffHours
	totalTimeWithBreaks := totalOnDutyNeeded + mandatoryBreakTime

	daysNeeded := int(math.Ceil(totalTimeWithBreaks / domain.MaxDailyOnDutyHours))
	remainingCycle := domain.MaxCycleHours - cycleUsedHours

	avgSpeed := fallbackSpeedMph
	if durationHours > 0 {
		avgSpeed = distanceMiles / durationHours
	}

	var allotments []domain.DailyAllotment
	remainingDistance := distanceMiles
	remainingDriving := durationHours

	for day := 1; remainingDistance > 1e-9 && day <= daysNeeded; day++ {
		drivingToday := math.Min(domain.MaxDailyDrivingHours, remainingDriving)
		distanceToday := drivingToday * avgSpeed

		fuelStopsToday := 0
		if distanceToday >= domain.FuelStopIntervalMi {
			fuelStopsToday = int(math.Floor(distanceToday / domain.FuelStopIntervalMi))
		}
		breaksToday := int(math.Floor(drivingToday / domain.BreakAfterHours))

		onDutyToday := drivingToday + float64(fuelStopsToday)*fuelStopHours
		includesPickup := day == 1
		includesDropoff := remainingDistance-distanceToday <= 1e-9
		if includesPickup {
			onDutyToday += 1.0
		}
		if includesDropoff {
			onDutyToday += 1.0
		}

		allotments = append(allotments, domain.DailyAllotment{
			DayIndex:        day,
			DrivingHours:    drivingToday,
			DistanceMiles:   distanceToday,
			FuelStops:       fuelStopsToday,
			MandatoryBreaks: breaksToday,
			TotalOnDuty:     onDutyToday,
			IncludesPickup:  includesPickup,
			IncludesDropoff: includesDropoff,
		})

		remainingDistance -= distanceToday
		remainingDriving -= drivingToday
	}

	summary := domain.TripSummary{
		TotalDays:           daysNeeded,
		TotalFuelStops:      fuelStopsTotal,
		CycleCompliant:      totalTimeWithBreaks <= remainingCycle,
		RemainingCycleHours: remainingCycle,
		TotalOnDutyHours:    totalOnDutyNeeded,
		MandatoryBreakHours: mandatoryBreakTime,
		FuelStopHours:       fuelStopTime,
		PickupDropoffHours:  pickupDropoffHours,
	}

	return allotments, summary, nil
}
