package dto

import (
	"time"

	"hos-trip-service/internal/eld"
)

type CalculateTripRequest struct {
	CurrentLocation  string     `json:"current_location"`
	PickupLocation   string     `json:"pickup_location"`
	DropoffLocation  string     `json:"dropoff_location"`
	CurrentCycleUsed float64    `json:"current_cycle_used"`
	DepartAt         *time.Time `json:"depart_at"`
}

type SegmentResponse struct {
	Status        string    `json:"status"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	DurationHours float64   `json:"duration_hours"`
	Notes         string    `json:"notes"`
}

type DayLogResponse struct {
	DayNumber           int               `json:"day_number"`
	Date                string            `json:"date"`
	IsRestart           bool              `json:"is_restart"`
	Segments            []SegmentResponse `json:"log_entries"`
	TotalDrivingHours   float64           `json:"total_driving_hours"`
	TotalOnDutyHours    float64           `json:"total_on_duty_hours"`
	TotalOffDutyHours   float64           `json:"total_off_duty_hours"`
	RemainingDriveTime  float64           `json:"remaining_drive_time"`
	RemainingOnDutyTime float64           `json:"remaining_on_duty_time"`
	CycleHoursRemaining float64           `json:"cycle_hours_remaining"`
	ELDGrid             eld.DayGrid       `json:"eld_grid"`
}

type TripPlanResponse struct {
	TotalMiles        float64          `json:"total_miles"`
	TotalDrivingHours float64          `json:"total_driving_hours"`
	EstimatedDays     int              `json:"estimated_days"`
	ActualDays        int              `json:"actual_days"`
	NumFuelStops      int              `json:"num_fuel_stops"`
	DailyLogs         []DayLogResponse `json:"daily_logs"`
	CycleUsedBefore   float64          `json:"cycle_used_before"`
	CycleUsedAfter    float64          `json:"cycle_used_after"`
	RestartNeeded     bool             `json:"restart_needed"`
}

type RouteResponse struct {
	TotalMiles         float64     `json:"total_miles"`
	TotalDurationHours float64     `json:"total_duration_hours"`
	Method             string      `json:"method"`
	Waypoints          [][]float64 `json:"waypoints"`
}

type TripSummaryResponse struct {
	TotalMiles        float64 `json:"total_miles"`
	TotalDrivingHours float64 `json:"total_driving_hours"`
	TotalDays         int     `json:"total_days"`
	CycleBefore       float64 `json:"cycle_before"`
	CycleAfter        float64 `json:"cycle_after"`
	RestartNeeded     bool    `json:"restart_needed"`
}

type CalculateTripResponse struct {
	TripID   int64               `json:"trip_id"`
	Route    RouteResponse       `json:"route"`
	TripPlan TripPlanResponse    `json:"trip_plan"`
	Summary  TripSummaryResponse `json:"summary"`
}

type TripResponse struct {
	TripID            int64            `json:"trip_id"`
	CreatedAt         time.Time        `json:"created_at"`
	CurrentLocation   string           `json:"current_location"`
	PickupLocation    string           `json:"pickup_location"`
	DropoffLocation   string           `json:"dropoff_location"`
	CurrentCycleUsed  float64          `json:"current_cycle_used"`
	TotalMiles        float64          `json:"total_miles"`
	TotalDrivingHours float64          `json:"total_driving_hours"`
	TotalDays         int              `json:"total_days"`
	RouteMethod       string           `json:"route_method"`
	TripPlan          *TripPlanResponse `json:"trip_plan,omitempty"`
}

type ListTripsResponse struct {
	Trips []TripResponse `json:"trips"`
}

type TripLogsResponse struct {
	TripID int64         `json:"trip_id"`
	Logs   []eld.DayGrid `json:"logs"`
}
