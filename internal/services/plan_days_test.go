package services

import (
	"errors"
	"math"
	"testing"

	"hos-planner-service/internal/domain"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestPlanDaysSingleDayTrip(t *testing.T) {
	allotments, summary, err := PlanDays(500, 9, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(allotments) != 1 {
		t.Fatalf("expected 1 allotment, got %d", len(allotments))
	}

	day := allotments[0]
	if day.DayIndex != 1 {
		t.Fatalf("day index = %d, want 1", day.DayIndex)
	}
	if !almostEqual(day.DrivingHours, 9) {
		t.Fatalf("driving hours = %.4f, want 9", day.DrivingHours)
	}
	if !almostEqual(day.DistanceMiles, 500) {
		t.Fatalf("distance = %.4f, want 500", day.DistanceMiles)
	}
	if day.FuelStops != 0 {
		t.Fatalf("fuel stops = %d, want 0", day.FuelStops)
	}
	if day.MandatoryBreaks != 1 {
		t.Fatalf("breaks = %d, want 1", day.MandatoryBreaks)
	}
	if !day.IncludesPickup || !day.IncludesDropoff {
		t.Fatalf("single day must include pickup and dropoff, got pickup=%v dropoff=%v",
			day.IncludesPickup, day.IncludesDropoff)
	}
	if !almostEqual(day.TotalOnDuty, 11) {
		t.Fatalf("on duty = %.4f, want 11", day.TotalOnDuty)
	}

	if summary.TotalDays != 1 {
		t.Fatalf("total days = %d, want 1", summary.TotalDays)
	}
	if summary.TotalFuelStops != 0 {
		t.Fatalf("total fuel stops = %d, want 0", summary.TotalFuelStops)
	}
	if !summary.CycleCompliant {
		t.Fatal("fresh cycle must be compliant")
	}
	if !almostEqual(summary.RemainingCycleHours, 70) {
		t.Fatalf("remaining cycle = %.4f, want 70", summary.RemainingCycleHours)
	}
	if !almostEqual(summary.TotalOnDutyHours, 11) {
		t.Fatalf("total on duty = %.4f, want 11", summary.TotalOnDutyHours)
	}
	if !almostEqual(summary.MandatoryBreakHours, 0.5) {
		t.Fatalf("break hours = %.4f, want 0.5", summary.MandatoryBreakHours)
	}
	if !almostEqual(summary.PickupDropoffHours, 2.0) {
		t.Fatalf("pickup/dropoff hours = %.4f, want 2.0", summary.PickupDropoffHours)
	}
}

func TestPlanDaysLongTripOverCycle(t *testing.T) {
	allotments, summary, err := PlanDays(2500, 45, 60)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.TotalFuelStops != 2 {
		t.Fatalf("total fuel stops = %d, want 2", summary.TotalFuelStops)
	}
	if !almostEqual(summary.FuelStopHours, 1.0) {
		t.Fatalf("fuel stop hours = %.4f, want 1.0", summary.FuelStopHours)
	}
	if !almostEqual(summary.MandatoryBreakHours, 2.5) {
		t.Fatalf("break hours = %.4f, want 2.5", summary.MandatoryBreakHours)
	}
	if !almostEqual(summary.TotalOnDutyHours, 48) {
		t.Fatalf("total on duty = %.4f, want 48", summary.TotalOnDutyHours)
	}
	if summary.TotalDays != 4 {
		t.Fatalf("total days = %d, want 4", summary.TotalDays)
	}
	if !almostEqual(summary.RemainingCycleHours, 10) {
		t.Fatalf("remaining cycle = %.4f, want 10", summary.RemainingCycleHours)
	}
	if summary.CycleCompliant {
		t.Fatal("50.5 hours against a 10-hour cycle remainder must not be compliant")
	}

	if len(allotments) != 4 {
		t.Fatalf("expected 4 allotments, got %d", len(allotments))
	}
	if !allotments[0].IncludesPickup {
		t.Fatal("day 1 must include pickup")
	}
	for i, a := range allotments {
		if a.DayIndex != i+1 {
			t.Fatalf("allotment %d has day index %d", i, a.DayIndex)
		}
		if a.DrivingHours > domain.MaxDailyDrivingHours+1e-9 {
			t.Fatalf("day %d driving %.4f exceeds daily cap", a.DayIndex, a.DrivingHours)
		}
		if !almostEqual(a.DrivingHours, 11) {
			t.Fatalf("day %d driving = %.4f, want 11", a.DayIndex, a.DrivingHours)
		}
	}
}

func TestPlanDaysDistanceAndDrivingSums(t *testing.T) {
	cases := []struct {
		name     string
		distance float64
		duration float64
	}{
		{"short", 500, 9},
		{"exact speed", 600, 10},
		{"two days", 1100, 20},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			allotments, _, err := PlanDays(tc.distance, tc.duration, 0)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			var distance, driving float64
			for _, a := range allotments {
				distance += a.DistanceMiles
				driving += a.DrivingHours
			}
			if !almostEqual(distance, tc.distance) {
				t.Fatalf("distance sum = %.6f, want %.1f", distance, tc.distance)
			}
			if !almostEqual(driving, tc.duration) {
				t.Fatalf("driving sum = %.6f, want %.1f", driving, tc.duration)
			}

			last := allotments[len(allotments)-1]
			if !last.IncludesDropoff {
				t.Fatal("final day must include dropoff")
			}
			for _, a := range allotments[:len(allotments)-1] {
				if a.IncludesDropoff {
					t.Fatalf("day %d wrongly includes dropoff", a.DayIndex)
				}
			}
		})
	}
}

func TestPlanDaysZeroTrip(t *testing.T) {
	allotments, _, err := PlanDays(0, 0, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(allotments) != 0 {
		t.Fatalf("expected no allotments for a zero trip, got %d", len(allotments))
	}
}

func TestPlanDaysInvalidInput(t *testing.T) {
	cases := []struct {
		name     string
		distance float64
		duration float64
		cycle    float64
	}{
		{"negative distance", -1, 5, 0},
		{"negative duration", 100, -5, 0},
		{"negative cycle", 100, 2, -1},
		{"duration without distance", 0, 5, 0},
		{"distance without duration", 100, 0, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := PlanDays(tc.distance, tc.duration, tc.cycle)
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}
