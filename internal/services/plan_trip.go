package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"hos-trip-service/internal/domain"
	"hos-trip-service/internal/ports"
)

type PlanTripRequest struct {
	CurrentLocation  string
	PickupLocation   string
	DropoffLocation  string
	CurrentCycleUsed float64
	DepartAt         time.Time
}

// PlanTrip resolves the route, runs the HOS schedule engine, and persists the
// result. The engine never observes provider failures: when the primary route
// provider errors, the fallback supplies a geometric estimate and the engine
// receives a plain mileage number either way.
func PlanTrip(
	ctx context.Context,
	req PlanTripRequest,
	rules HOSRules,
	provider ports.RouteProvider,
	fallback ports.RouteProvider,
	repo ports.TripRepository,
) (*domain.Trip, ports.RouteResult, error) {
	locations := []string{
		strings.TrimSpace(req.CurrentLocation),
		strings.TrimSpace(req.PickupLocation),
		strings.TrimSpace(req.DropoffLocation),
	}
	for _, l := range locations {
		if l == "" {
			return nil, ports.RouteResult{}, fmt.Errorf("plan trip: all locations must be non-empty")
		}
	}

	route, err := provider.GetRoute(ctx, locations)
	if err != nil {
		if fallback == nil {
			return nil, ports.RouteResult{}, fmt.Errorf("plan trip: resolve route: %w", err)
		}
		log.Printf("route provider failed, using fallback estimate: %v", err)

		route, err = fallback.GetRoute(ctx, locations)
		if err != nil {
			return nil, ports.RouteResult{}, fmt.Errorf("plan trip: fallback route: %w", err)
		}
	}

	plan, err := ComputeTrip(rules, route.TotalMiles, req.CurrentCycleUsed, req.DepartAt)
	if err != nil {
		return nil, ports.RouteResult{}, fmt.Errorf("plan trip: %w", err)
	}

	trip := &domain.Trip{
		CreatedAt:        time.Now().UTC(),
		CurrentLocation:  locations[0],
		PickupLocation:   locations[1],
		DropoffLocation:  locations[2],
		CurrentCycleUsed: req.CurrentCycleUsed,

		TotalMiles:        route.TotalMiles,
		TotalDrivingHours: plan.TotalDrivingHours,
		TotalDays:         plan.ActualDays,
		RouteMethod:       route.Method,

		Plan: plan,
	}

	if repo != nil {
		id, err := repo.SaveTrip(ctx, trip)
		if err != nil {
			return nil, ports.RouteResult{}, fmt.Errorf("plan trip: save trip: %w", err)
		}
		trip.TripID = id
	}

	return trip, route, nil
}
