package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"hos-planner-service/internal/domain"
	"hos-planner-service/internal/ports"

	"golang.org/x/sync/errgroup"
)

// Odometer assumed when the caller does not supply one.
const DefaultBaseOdometer = 250000.0

type PlanTripRequest struct {
	CurrentLocation string
	PickupLocation  string
	DropoffLocation string
	CycleUsedHours  float64
	StartDate       time.Time
	BaseOdometer    float64
}

// TripPlan is the full planning result: the routed legs, the per-day
// allotments with their trip summary, and the expanded daily logs.
type TripPlan struct {
	Locations     domain.TripLocations
	RouteToPickup domain.RouteSummary
	MainRoute     domain.RouteSummary
	CombinedRoute domain.RouteSummary
	Allotments    []domain.DailyAllotment
	Summary       domain.TripSummary
	Logs          []domain.DailyLogRecord
}

// PlanTrip routes current->pickup and pickup->dropoff, plans the combined
// route into daily allotments, and expands them into duty logs.
//
// The two route legs are the only I/O; they are fetched concurrently and
// the provider owns its own timeout/retry policy. Everything after the
// routing calls is pure computation.
func PlanTrip(ctx context.Context, req PlanTripRequest, provider ports.RouteProvider) (*TripPlan, error) {
	locs := domain.TripLocations{
		Current: strings.TrimSpace(req.CurrentLocation),
		Pickup:  strings.TrimSpace(req.PickupLocation),
		Dropoff: strings.TrimSpace(req.DropoffLocation),
	}
	if locs.Current == "" || locs.Pickup == "" || locs.Dropoff == "" {
		return nil, fmt.Errorf("plan trip: all three locations are required: %w", ErrInvalidInput)
	}
	if req.CycleUsedHours < 0 {
		return nil, fmt.Errorf("plan trip: negative cycle hours %.1f: %w", req.CycleUsedHours, ErrInvalidInput)
	}
	if req.StartDate.IsZero() {
		return nil, fmt.Errorf("plan trip: start date is required: %w", ErrInvalidInput)
	}

	baseOdometer := req.BaseOdometer
	if baseOdometer == 0 {
		baseOdometer = DefaultBaseOdometer
	}

	var toPickup, mainRoute domain.RouteSummary

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r, err := provider.GetRoute(gctx, locs.Current, locs.Pickup)
		if err != nil {
			return fmt.Errorf("route %q -> %q: %w", locs.Current, locs.Pickup, err)
		}
		toPickup = r
		return nil
	})
	g.Go(func() error {
		r, err := provider.GetRoute(gctx, locs.Pickup, locs.Dropoff)
		if err != nil {
			return fmt.Errorf("route %q -> %q: %w", locs.Pickup, locs.Dropoff, err)
		}
		mainRoute = r
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("plan trip: %w", err)
	}

	combined := toPickup.Add(mainRoute)

	allotments, summary, err := PlanDays(combined.DistanceMiles, combined.DurationHours, req.CycleUsedHours)
	if err != nil {
		return nil, fmt.Errorf("plan trip: %w", err)
	}

	logs, err := ExpandSchedule(allotments, req.StartDate, locs, baseOdometer)
	if err != nil {
		return nil, fmt.Errorf("plan trip: %w", err)
	}

	return &TripPlan{
		Locations:     locs,
		RouteToPickup: toPickup,
		MainRoute:     mainRoute,
		CombinedRoute: combined,
		Allotments:    allotments,
		Summary:       summary,
		Logs:          logs,
	}, nil
}
