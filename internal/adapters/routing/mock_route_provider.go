package routing

import (
	"context"
	"fmt"

	"hos-planner-service/internal/domain"
)

type MockLeg struct {
	From, To string
	Miles    float64
	Hours    float64
}

type MockRouteProvider struct {
	m map[string]domain.RouteSummary
}

func NewMockRouteProvider(legs []MockLeg) *MockRouteProvider {
	m := make(map[string]domain.RouteSummary, len(legs))
	for _, l := range legs {
		m[l.From+"|"+l.To] = domain.RouteSummary{DistanceMiles: l.Miles, DurationHours: l.Hours}
	}
	return &MockRouteProvider{m: m}
}

func (p *MockRouteProvider) GetRoute(ctx context.Context, origin, destination string) (domain.RouteSummary, error) {
	r, ok := p.m[origin+"|"+destination]
	if !ok {
		return domain.RouteSummary{}, fmt.Errorf("missing leg %q -> %q", origin, destination)
	}

	return r, nil
}
