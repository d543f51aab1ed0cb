package services

import (
	"errors"
	"math"
)

// HOSRules holds the rule constants the schedule engine enforces.
//
// Durations are whole minutes so per-segment arithmetic stays exact across
// arbitrarily long trips. The defaults implement the FMCSA property-carrying
// limits: 11h driving, 14h duty window, 30m break after 8h cumulative driving,
// 70h/8-day cycle, 10h daily reset, 34h restart.
//
// The struct is immutable configuration: it is passed by value into the
// engine and never carries per-trip state.
type HOSRules struct {
	MaxDrivingMinutes int
	MaxOnDutyMinutes  int
	BreakAfterMinutes int
	BreakMinutes      int
	MaxCycleMinutes   int
	CycleDays         int
	DailyResetMinutes int
	RestartMinutes    int

	AvgSpeedMPH     float64
	FuelStopMiles   float64
	FuelStopMinutes int
	PickupMinutes   int
	DropoffMinutes  int

	// MaxDriveSegmentMinutes bounds a single driving segment for log
	// granularity; it has no compliance meaning.
	MaxDriveSegmentMinutes int

	// MinDriveSegmentMinutes is the progress epsilon: a computed driving
	// segment shorter than this ends the day. Guards against looping on
	// rounding noise, not a legal rule.
	MinDriveSegmentMinutes int

	// MinUsableCycleMinutes is the threshold under which remaining cycle
	// hours are too small to start a work day.
	MinUsableCycleMinutes int
}

func DefaultHOSRules() HOSRules {
	return HOSRules{
		MaxDrivingMinutes: 11 * 60,
		MaxOnDutyMinutes:  14 * 60,
		BreakAfterMinutes: 8 * 60,
		BreakMinutes:      30,
		MaxCycleMinutes:   70 * 60,
		CycleDays:         8,
		DailyResetMinutes: 10 * 60,
		RestartMinutes:    34 * 60,

		AvgSpeedMPH:     60,
		FuelStopMiles:   1000,
		FuelStopMinutes: 30,
		PickupMinutes:   60,
		DropoffMinutes:  60,

		MaxDriveSegmentMinutes: 2 * 60,
		MinDriveSegmentMinutes: 6,
		MinUsableCycleMinutes:  60,
	}
}

// Validate rejects constant combinations the day loop cannot make progress
// under. A violation here is a configuration bug, not a data problem.
func (r HOSRules) Validate() error {
	if r.AvgSpeedMPH <= 0 {
		return errors.New("hos rules: AvgSpeedMPH must be positive")
	}
	if r.MaxDrivingMinutes <= 0 || r.MaxOnDutyMinutes <= 0 || r.MaxCycleMinutes <= 0 {
		return errors.New("hos rules: daily and cycle caps must be positive")
	}
	if r.MinDriveSegmentMinutes <= 0 || r.MinDriveSegmentMinutes > r.MaxDriveSegmentMinutes {
		return errors.New("hos rules: progress epsilon must be positive and below the segment cap")
	}
	if r.MinUsableCycleMinutes <= 0 || r.MinUsableCycleMinutes > r.MaxCycleMinutes {
		return errors.New("hos rules: minimum usable cycle threshold out of range")
	}
	if r.BreakAfterMinutes <= 0 || r.FuelStopMiles <= 0 {
		return errors.New("hos rules: break and fuel triggers must be positive")
	}
	return nil
}

// DrivingMinutes converts trip miles to driving time at the average speed.
func (r HOSRules) DrivingMinutes(miles float64) int {
	return int(math.Round(miles / r.AvgSpeedMPH * 60))
}

// MilesForMinutes converts driving minutes back to miles covered.
func (r HOSRules) MilesForMinutes(minutes int) float64 {
	return float64(minutes) * r.AvgSpeedMPH / 60
}
