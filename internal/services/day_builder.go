package services

import (
	"fmt"
	"time"

	"hos-trip-service/internal/domain"
)

// tripState is the carry-over threaded through the day loop. It is owned by a
// single ComputeTrip invocation and passed by value between days.
type tripState struct {
	remainingDriveMinutes int
	remainingMiles        float64
	milesSinceFuel        float64
	pickupDone            bool
	dropoffDone           bool
}

func (st tripState) tripComplete() bool {
	return st.dropoffDone && st.remainingDriveMinutes <= 0
}

// minimumDayDemand is the least on-duty time the coming work day must fit for
// the trip to make progress. When the whole remaining trip fits inside one
// duty window the demand is the full tail (pending pickup, all remaining
// driving, any fuel stops the remaining mileage will trigger, pending
// dropoff); otherwise it is the pending pickup plus one minimum driving
// increment.
func minimumDayDemand(rules HOSRules, st tripState) int {
	pending := 0
	if !st.pickupDone {
		pending += rules.PickupMinutes
	}

	tail := pending + st.remainingDriveMinutes
	if !st.dropoffDone {
		tail += rules.DropoffMinutes
	}
	if st.remainingMiles > 0 {
		fuelStops := int((st.milesSinceFuel + st.remainingMiles) / rules.FuelStopMiles)
		tail += fuelStops * rules.FuelStopMinutes
	}
	if tail <= rules.MaxOnDutyMinutes {
		return tail
	}

	if st.remainingDriveMinutes > 0 {
		pending += rules.MinDriveSegmentMinutes
	}
	return pending
}

// buildWorkDay produces one work day's segments and the updated carry-over
// state. availableCycleMinutes caps both today's driving and duty window.
//
// The decision loop is evaluated in fixed priority order: mandatory break,
// fuel stop, driving segment. Dropoff is appended the instant remaining
// driving reaches zero and is never interleaved with the break/fuel checks.
func buildWorkDay(
	rules HOSRules,
	dayNumber int,
	startAt time.Time,
	availableCycleMinutes int,
	st tripState,
) (domain.DayLog, tripState, error) {
	maxDriveMinutes := min(rules.MaxDrivingMinutes, st.remainingDriveMinutes, availableCycleMinutes)
	maxDutyMinutes := min(rules.MaxOnDutyMinutes, availableCycleMinutes)

	var (
		segments     []domain.Segment
		drivenToday  int
		onDutyToday  int
		sinceBreak   int
		madeProgress bool
		now          = startAt
	)

	appendSegment := func(status domain.DutyStatus, minutes int, note string) {
		seg := domain.NewSegment(status, now, minutes, note)
		segments = append(segments, seg)
		now = seg.End
	}

	// Pickup happens once, before any driving.
	if !st.pickupDone {
		appendSegment(domain.StatusOnDuty, rules.PickupMinutes, "Pickup - loading")
		onDutyToday += rules.PickupMinutes
		st.pickupDone = true
		madeProgress = true
	}

	for drivenToday < maxDriveMinutes && onDutyToday < maxDutyMinutes && st.remainingDriveMinutes > 0 {
		// Mandatory break has priority over fuel and driving.
		if sinceBreak >= rules.BreakAfterMinutes {
			appendSegment(domain.StatusOffDuty, rules.BreakMinutes, "30-minute break (8-hour driving rule)")
			sinceBreak = 0
			continue
		}

		if st.milesSinceFuel >= rules.FuelStopMiles && st.remainingMiles > 0 {
			if onDutyToday+rules.FuelStopMinutes > maxDutyMinutes {
				break
			}
			appendSegment(domain.StatusOnDuty, rules.FuelStopMinutes, "Fuel stop")
			onDutyToday += rules.FuelStopMinutes
			st.milesSinceFuel = 0
			continue
		}

		driveMinutes := min(
			rules.BreakAfterMinutes-sinceBreak,
			maxDriveMinutes-drivenToday,
			maxDutyMinutes-onDutyToday,
			st.remainingDriveMinutes,
			rules.MaxDriveSegmentMinutes,
		)
		if driveMinutes < rules.MinDriveSegmentMinutes {
			break
		}

		miles := rules.MilesForMinutes(driveMinutes)
		appendSegment(domain.StatusDriving, driveMinutes, fmt.Sprintf("Driving - %.0f miles", miles))

		drivenToday += driveMinutes
		onDutyToday += driveMinutes
		sinceBreak += driveMinutes
		st.remainingDriveMinutes -= driveMinutes
		st.remainingMiles -= miles
		st.milesSinceFuel += miles
		madeProgress = true

		if st.remainingDriveMinutes <= 0 && !st.dropoffDone {
			break
		}
	}

	// Dropoff is atomic with trip completion: it also covers zero-mile trips
	// where the driving loop never runs.
	if st.remainingDriveMinutes <= 0 && !st.dropoffDone {
		appendSegment(domain.StatusOnDuty, rules.DropoffMinutes, "Dropoff - unloading")
		onDutyToday += rules.DropoffMinutes
		st.dropoffDone = true
		madeProgress = true
	}

	if !madeProgress {
		return domain.DayLog{}, st, fmt.Errorf(
			"build work day %d: no progress possible (cycle=%dm duty=%dm drive=%dm remaining): %w",
			dayNumber, availableCycleMinutes, maxDutyMinutes, st.remainingDriveMinutes, ErrNoProgress,
		)
	}

	// Daily reset before the next day; the final day of a completed trip ends
	// without a trailing rest segment.
	if !st.tripComplete() {
		appendSegment(domain.StatusSleeperBerth, rules.DailyResetMinutes, "10-hour rest period (daily reset)")
	}

	log := domain.DayLog{
		DayNumber: dayNumber,
		Date:      midnightOf(startAt),
		StartAt:   startAt,
		EndAt:     now,
		Segments:  segments,
	}
	for _, seg := range segments {
		switch {
		case seg.Status == domain.StatusDriving:
			log.DrivingMinutes += seg.Minutes
			log.OnDutyMinutes += seg.Minutes
		case seg.Status.IsOnDuty():
			log.OnDutyMinutes += seg.Minutes
		default:
			log.OffDutyMinutes += seg.Minutes
		}
	}
	log.RemainingDriveMinutes = rules.MaxDrivingMinutes - log.DrivingMinutes
	log.RemainingOnDutyMinutes = rules.MaxOnDutyMinutes - log.OnDutyMinutes

	return log, st, nil
}

func midnightOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
