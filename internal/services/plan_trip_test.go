package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hos-trip-service/internal/adapters/route"
)

func planRequest() PlanTripRequest {
	return PlanTripRequest{
		CurrentLocation:  "Chicago, IL",
		PickupLocation:   "Denver, CO",
		DropoffLocation:  "Los Angeles, CA",
		CurrentCycleUsed: 5,
		DepartAt:         testStart,
	}
}

func TestPlanTripUsesPrimaryProvider(t *testing.T) {
	primary := route.NewMockRouteProvider(900)

	trip, res, err := PlanTrip(context.Background(), planRequest(), DefaultHOSRules(), primary, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 900.0, trip.TotalMiles)
	assert.Equal(t, "mock", trip.RouteMethod)
	assert.Equal(t, 900.0, res.TotalMiles)
	require.Len(t, primary.Calls, 1)
	assert.Equal(t, []string{"Chicago, IL", "Denver, CO", "Los Angeles, CA"}, primary.Calls[0])

	require.NotNil(t, trip.Plan)
	assert.Equal(t, trip.Plan.ActualDays, trip.TotalDays)
	assert.Zero(t, trip.TripID, "no repository: trip stays unpersisted")
}

func TestPlanTripFallsBackOnProviderError(t *testing.T) {
	primary := route.NewMockRouteProvider(0)
	primary.Err = errors.New("upstream unreachable")
	fallback := route.NewMockRouteProvider(450)

	trip, res, err := PlanTrip(context.Background(), planRequest(), DefaultHOSRules(), primary, fallback, nil)
	require.NoError(t, err)

	assert.Equal(t, 450.0, trip.TotalMiles)
	assert.Equal(t, "mock", res.Method)
	assert.Len(t, primary.Calls, 1)
	assert.Len(t, fallback.Calls, 1)
}

func TestPlanTripErrorsWithoutFallback(t *testing.T) {
	primary := route.NewMockRouteProvider(0)
	primary.Err = errors.New("upstream unreachable")

	_, _, err := PlanTrip(context.Background(), planRequest(), DefaultHOSRules(), primary, nil, nil)
	assert.Error(t, err)
}

func TestPlanTripRejectsBlankLocations(t *testing.T) {
	req := planRequest()
	req.PickupLocation = "   "

	primary := route.NewMockRouteProvider(100)
	_, _, err := PlanTrip(context.Background(), req, DefaultHOSRules(), primary, nil, nil)
	require.Error(t, err)
	assert.Empty(t, primary.Calls, "validation failures must not hit the provider")
}
