package domain

// The complete HOS-compliant schedule for one trip.
//
// A TripPlan is the output of the schedule simulator. It is immutable planning
// data constructed once per planning request and never mutated afterwards;
// persistence and rendering consume a read-only copy.
type TripPlan struct {
	TotalMiles        float64
	TotalDrivingHours float64
	EstimatedDays     int
	ActualDays        int
	NumFuelStops      int
	DailyLogs         []DayLog
	CycleUsedBefore   float64
	CycleUsedAfter    float64
	RestartNeeded     bool
}
