package ports

import (
	"context"

	"hos-planner-service/internal/domain"
)

// Contract for retrieving driving distance and duration between two
// location labels. Implementations are selected by configuration
// (live routing vs. great-circle estimation), never by runtime
// fallback-on-error; the planner core stays ignorant of either.
type RouteProvider interface {
	// Return total driving distance and estimated duration between two locations.
	GetRoute(ctx context.Context, origin string, destination string) (domain.RouteSummary, error)
}
