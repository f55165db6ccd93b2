package ports

import (
	"context"

	"hos-planner-service/internal/domain"
)

// Persistent cache of origin/destination -> route summary, consulted by
// the live routing adapter before issuing external directions calls.
type RouteCache interface {
	// Get returns the cached summary and whether it was present.
	Get(ctx context.Context, origin, destination string) (domain.RouteSummary, bool, error)
	Put(ctx context.Context, origin, destination string, route domain.RouteSummary) error
}
