package route

import (
	"context"
	"errors"

	"hos-trip-service/internal/ports"
)

// MockRouteProvider returns a fixed result or error; used in tests.
type MockRouteProvider struct {
	Result ports.RouteResult
	Err    error

	Calls [][]string
}

func NewMockRouteProvider(totalMiles float64) *MockRouteProvider {
	return &MockRouteProvider{
		Result: ports.RouteResult{
			TotalMiles:         totalMiles,
			TotalDurationHours: totalMiles / 60,
			Method:             "mock",
		},
	}
}

func (p *MockRouteProvider) GetRoute(ctx context.Context, locations []string) (ports.RouteResult, error) {
	p.Calls = append(p.Calls, locations)

	if len(locations) < 2 {
		return ports.RouteResult{}, errors.New("mock route: at least 2 locations required")
	}
	if p.Err != nil {
		return ports.RouteResult{}, p.Err
	}
	return p.Result, nil
}
