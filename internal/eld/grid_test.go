package eld

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hos-trip-service/internal/domain"
)

func TestProjectDayPositionsSegments(t *testing.T) {
	start := time.Date(2026, 3, 2, 6, 0, 0, 0, time.UTC)
	segments := []domain.Segment{
		domain.NewSegment(domain.StatusOnDuty, start, 60, "Pickup - loading"),
		domain.NewSegment(domain.StatusDriving, start.Add(time.Hour), 120, "Driving - 120 miles"),
	}

	log := domain.DayLog{
		DayNumber:      1,
		Date:           time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		StartAt:        start,
		EndAt:          segments[1].End,
		Segments:       segments,
		DrivingMinutes: 120,
		OnDutyMinutes:  180,
	}

	grid := ProjectDay(log)
	assert.Equal(t, "2026-03-02", grid.Date)
	require.Len(t, grid.Entries, 2)

	pickup := grid.Entries[0]
	assert.Equal(t, 3, pickup.Lane)
	assert.Equal(t, 6.0, pickup.StartHours)
	assert.Equal(t, 7.0, pickup.EndHours)
	assert.Equal(t, "06:00", pickup.StartTime)
	assert.Equal(t, "On Duty (Not Driving)", pickup.StatusLabel)

	driving := grid.Entries[1]
	assert.Equal(t, 2, driving.Lane)
	assert.Equal(t, 7.0, driving.StartHours)
	assert.Equal(t, 9.0, driving.EndHours)
	assert.Equal(t, 2.0, driving.Duration)

	assert.Equal(t, 2.0, grid.Summary.TotalDrivingHours)
	assert.Equal(t, 3.0, grid.Summary.TotalOnDutyHours)
}

func TestProjectDayClipsAtMidnight(t *testing.T) {
	// A rest period starting 22:00 runs past midnight; the sheet clips it at 24.
	start := time.Date(2026, 3, 2, 22, 0, 0, 0, time.UTC)
	rest := domain.NewSegment(domain.StatusSleeperBerth, start, 10*60, "10-hour rest period (daily reset)")

	log := domain.DayLog{
		DayNumber:      2,
		Date:           time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		StartAt:        start,
		EndAt:          rest.End,
		Segments:       []domain.Segment{rest},
		OffDutyMinutes: 600,
	}

	grid := ProjectDay(log)
	require.Len(t, grid.Entries, 1)
	assert.Equal(t, 1, grid.Entries[0].Lane)
	assert.Equal(t, 22.0, grid.Entries[0].StartHours)
	assert.Equal(t, 24.0, grid.Entries[0].EndHours)
	// Duration reports the real segment length, not the clipped span.
	assert.Equal(t, 10.0, grid.Entries[0].Duration)
}

func TestProjectPlanKeepsDayOrder(t *testing.T) {
	day := func(n int) domain.DayLog {
		return domain.DayLog{
			DayNumber: n,
			Date:      time.Date(2026, 3, 1+n, 0, 0, 0, 0, time.UTC),
		}
	}
	plan := &domain.TripPlan{DailyLogs: []domain.DayLog{day(1), day(2), day(3)}}

	grids := ProjectPlan(plan)
	require.Len(t, grids, 3)
	for i, g := range grids {
		assert.Equal(t, i+1, g.DayNumber)
	}
}
