package ports

import (
	"context"

	"hos-planner-service/internal/domain"
)

// Persistent cache of location label -> coordinates, consulted by the
// live routing adapter before issuing external geocode calls.
type GeocodeCache interface {
	// Fetch cached coordinates for the given labels; misses are absent from the map.
	GetMany(ctx context.Context, locations []string) (map[string]domain.Coordinates, error)
	// Store resolved coordinates.
	PutMany(ctx context.Context, coords map[string]domain.Coordinates) error
}
