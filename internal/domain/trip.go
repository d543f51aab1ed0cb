package domain

import (
	"errors"
	"time"
)

// ErrTripNotFound is returned by repositories when no trip has the given id.
var ErrTripNotFound = errors.New("trip not found")

// A stored trip-planning request together with its computed plan.
type Trip struct {
	TripID           int64
	CreatedAt        time.Time
	CurrentLocation  string
	PickupLocation   string
	DropoffLocation  string
	CurrentCycleUsed float64

	TotalMiles        float64
	TotalDrivingHours float64
	TotalDays         int
	RouteMethod       string

	Plan *TripPlan
}
