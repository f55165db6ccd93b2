package routing

import (
	"context"
	"fmt"
	"math"

	"hos-planner-service/internal/domain"
)

const (
	earthRadiusMiles = 3956.0
	assumedSpeedMph  = 55.0
)

// HaversineRouteProvider estimates routes from great-circle distance and
// an assumed average speed. It resolves locations against the builtin
// city table only, so it works with no network and no credentials.
//
// Selected by configuration when live routing is unavailable or
// undesired; it is never swapped in silently on a live-routing error.
type HaversineRouteProvider struct{}

func NewHaversineRouteProvider() *HaversineRouteProvider {
	return &HaversineRouteProvider{}
}

func (h *HaversineRouteProvider) GetRoute(ctx context.Context, origin, destination string) (domain.RouteSummary, error) {
	from, ok := lookupKnownCity(origin)
	if !ok {
		return domain.RouteSummary{}, fmt.Errorf(
			"haversine route: origin %q not in the builtin city table", origin,
		)
	}
	to, ok := lookupKnownCity(destination)
	if !ok {
		return domain.RouteSummary{}, fmt.Errorf(
			"haversine route: destination %q not in the builtin city table", destination,
		)
	}

	distance := haversineMiles(from, to)
	return domain.RouteSummary{
		DistanceMiles: distance,
		DurationHours: distance / assumedSpeedMph,
	}, nil
}

func haversineMiles(a, b domain.Coordinates) float64 {
	lat1 := a.Lat * math.Pi / 180
	lon1 := a.Lon * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	lon2 := b.Lon * math.Pi / 180

	dlat := lat2 - lat1
	dlon := lon2 - lon1

	s := math.Pow(math.Sin(dlat/2), 2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Pow(math.Sin(dlon/2), 2)

	return 2 * math.Asin(math.Sqrt(s)) * earthRadiusMiles
}
