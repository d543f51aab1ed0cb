package services

import (
	"errors"
	"fmt"
	"math"
	"time"

	"hos-trip-service/internal/domain"
)

// ErrNoProgress marks an internal invariant violation: a work day that could
// not advance the trip at all. It signals inconsistent rule constants, never
// bad input, and must abort the computation rather than emit a partial plan.
var ErrNoProgress = errors.New("schedule simulator: day made no progress")

// ComputeTrip runs the day-by-day HOS simulation and returns the complete
// plan. It is a pure function of its arguments: identical inputs (including
// startAt) produce identical plans.
//
// Inputs are assumed pre-validated by the caller; the bounds checks here are
// defensive.
func ComputeTrip(
	rules HOSRules,
	totalMiles float64,
	currentCycleUsed float64,
	startAt time.Time,
) (*domain.TripPlan, error) {
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("compute trip: %w", err)
	}
	if totalMiles < 0 {
		return nil, fmt.Errorf("compute trip: total miles must be non-negative, got %v", totalMiles)
	}
	if currentCycleUsed < 0 || currentCycleUsed > float64(rules.MaxCycleMinutes)/60 {
		return nil, fmt.Errorf("compute trip: cycle used %v outside [0, %d] hours",
			currentCycleUsed, rules.MaxCycleMinutes/60)
	}

	driveMinutes := rules.DrivingMinutes(totalMiles)

	tracker := NewCycleTracker(rules, currentCycleUsed)
	st := tripState{
		remainingDriveMinutes: driveMinutes,
		remainingMiles:        totalMiles,
	}

	var logs []domain.DayLog
	now := startAt
	dayNumber := 1

	for !st.tripComplete() {
		if tracker.NeedsRestart(minimumDayDemand(rules, st)) {
			restart := buildRestartDay(rules, dayNumber, now)
			tracker.ApplyRestart()
			logs = append(logs, restart)
			now = restart.EndAt
			dayNumber++
			continue
		}

		day, next, err := buildWorkDay(rules, dayNumber, now, tracker.AvailableMinutes(), st)
		if err != nil {
			return nil, fmt.Errorf("compute trip: %w", err)
		}

		tracker.Accumulate(day.OnDutyMinutes)
		day.CycleMinutesRemaining = tracker.AvailableMinutes()

		logs = append(logs, day)
		now = day.EndAt
		dayNumber++
		st = next
	}

	plan := summarizeTrip(rules, totalMiles, driveMinutes, currentCycleUsed, logs)

	// The summary recomputes final cycle usage from the log sequence; it must
	// agree minute-exactly with the tracker or the plan is corrupted.
	if recomputed := int(math.Round(plan.CycleUsedAfter * 60)); recomputed != tracker.UsedMinutes() {
		return nil, fmt.Errorf(
			"compute trip: cycle usage mismatch: summary=%dm tracker=%dm",
			recomputed, tracker.UsedMinutes(),
		)
	}

	return plan, nil
}

// buildRestartDay emits the fixed-length off-duty block that resets the cycle.
// A restart day has exactly one segment and full remaining allotments.
func buildRestartDay(rules HOSRules, dayNumber int, startAt time.Time) domain.DayLog {
	seg := domain.NewSegment(
		domain.StatusOffDuty,
		startAt,
		rules.RestartMinutes,
		"34-hour restart (cycle reset)",
	)
	return domain.DayLog{
		DayNumber: dayNumber,
		Date:      midnightOf(startAt),
		StartAt:   startAt,
		EndAt:     seg.End,
		Segments:  []domain.Segment{seg},

		OffDutyMinutes: rules.RestartMinutes,

		RemainingDriveMinutes:  rules.MaxDrivingMinutes,
		RemainingOnDutyMinutes: rules.MaxOnDutyMinutes,
		CycleMinutesRemaining:  rules.MaxCycleMinutes,

		IsRestart: true,
	}
}
