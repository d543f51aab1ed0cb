package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hos-trip-service/internal/domain"
)

func TestMinimumDayDemand(t *testing.T) {
	rules := DefaultHOSRules()

	for _, tc := range []struct {
		name string
		st   tripState
		want int
	}{
		{
			"whole trip fits one duty window",
			tripState{remainingDriveMinutes: 100},
			60 + 100 + 60,
		},
		{
			"tail crossing the fuel interval budgets the stop",
			tripState{remainingDriveMinutes: 370, remainingMiles: 370, milesSinceFuel: 660, pickupDone: true},
			370 + rules.FuelStopMinutes + 60,
		},
		{
			"long tail needs only one driving increment",
			tripState{remainingDriveMinutes: 2000, remainingMiles: 2000},
			60 + rules.MinDriveSegmentMinutes,
		},
		{
			"pickup already done",
			tripState{remainingDriveMinutes: 2000, pickupDone: true},
			rules.MinDriveSegmentMinutes,
		},
		{
			"only dropoff left",
			tripState{pickupDone: true},
			60,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, minimumDayDemand(rules, tc.st))
		})
	}
}

func TestBuildWorkDayInsertsBreakAfterEightHours(t *testing.T) {
	rules := DefaultHOSRules()
	st := tripState{
		remainingDriveMinutes: 600,
		remainingMiles:        600,
		pickupDone:            true,
	}

	day, next, err := buildWorkDay(rules, 1, testStart, rules.MaxCycleMinutes, st)
	require.NoError(t, err)

	var breakIdx = -1
	var drivenBefore int
	for i, seg := range day.Segments {
		if seg.Status == domain.StatusOffDuty && seg.Minutes == rules.BreakMinutes {
			breakIdx = i
			break
		}
		if seg.Status == domain.StatusDriving {
			drivenBefore += seg.Minutes
		}
	}
	require.NotEqual(t, -1, breakIdx, "expected a mandatory break")
	assert.Equal(t, rules.BreakAfterMinutes, drivenBefore, "break must follow exactly 8 cumulative driving hours")

	assert.Equal(t, 600, day.DrivingMinutes)
	assert.Equal(t, 0, next.remainingDriveMinutes)
	assert.True(t, next.dropoffDone)
}

func TestBuildWorkDayFuelStopResetsCounter(t *testing.T) {
	rules := DefaultHOSRules()
	st := tripState{
		remainingDriveMinutes: 300,
		remainingMiles:        300,
		milesSinceFuel:        1200,
		pickupDone:            true,
	}

	day, next, err := buildWorkDay(rules, 2, testStart, rules.MaxCycleMinutes, st)
	require.NoError(t, err)

	require.NotEmpty(t, day.Segments)
	first := day.Segments[0]
	assert.Equal(t, domain.StatusOnDuty, first.Status)
	assert.Equal(t, "Fuel stop", first.Note)
	assert.Equal(t, 300.0, next.milesSinceFuel, "counter restarts from zero after the stop")
}

func TestBuildWorkDayEndsWithRestWhenTripContinues(t *testing.T) {
	rules := DefaultHOSRules()
	st := tripState{
		remainingDriveMinutes: 2000,
		remainingMiles:        2000,
		pickupDone:            true,
	}

	day, next, err := buildWorkDay(rules, 1, testStart, rules.MaxCycleMinutes, st)
	require.NoError(t, err)
	require.False(t, next.tripComplete())

	last := day.Segments[len(day.Segments)-1]
	assert.Equal(t, domain.StatusSleeperBerth, last.Status)
	assert.Equal(t, rules.DailyResetMinutes, last.Minutes)
	assert.Equal(t, last.End, day.EndAt)
}

func TestBuildWorkDayNoProgress(t *testing.T) {
	st := tripState{
		remainingDriveMinutes: 100,
		remainingMiles:        100,
		pickupDone:            true,
	}

	_, _, err := buildWorkDay(DefaultHOSRules(), 3, testStart, 0, st)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoProgress))
}

func TestMidnightOf(t *testing.T) {
	at := time.Date(2026, 3, 2, 17, 45, 12, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), midnightOf(at))
}
