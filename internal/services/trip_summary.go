package services

import (
	"math"

	"hos-trip-service/internal/domain"
)

// summarizeTrip aggregates the produced day logs into the overall plan.
//
// Final cycle usage is re-derived from the log sequence alone (restart days
// reset the running total, work days add their on-duty minutes) so the
// simulator can cross-check it against the tracker's internal state.
func summarizeTrip(
	rules HOSRules,
	totalMiles float64,
	driveMinutes int,
	cycleUsedBefore float64,
	logs []domain.DayLog,
) *domain.TripPlan {
	estimatedDays := 1
	if driveMinutes > 0 {
		estimatedDays = (driveMinutes + rules.MaxDrivingMinutes - 1) / rules.MaxDrivingMinutes
	}

	runningMinutes := int(math.Round(cycleUsedBefore * 60))
	restartNeeded := false
	for _, l := range logs {
		if l.IsRestart {
			runningMinutes = 0
			restartNeeded = true
			continue
		}
		runningMinutes += l.OnDutyMinutes
	}

	return &domain.TripPlan{
		TotalMiles:        totalMiles,
		TotalDrivingHours: domain.RoundHours(driveMinutes),
		EstimatedDays:     estimatedDays,
		ActualDays:        len(logs),
		NumFuelStops:      int(totalMiles / rules.FuelStopMiles),
		DailyLogs:         logs,
		CycleUsedBefore:   math.Round(cycleUsedBefore*100) / 100,
		CycleUsedAfter:    domain.RoundHours(runningMinutes),
		RestartNeeded:     restartNeeded,
	}
}
