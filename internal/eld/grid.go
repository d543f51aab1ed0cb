// Package eld projects daily logs onto the 24-hour duty-status grid used by
// log renderers. The projection is a deterministic, stateless transform: it
// never changes the underlying schedule.
package eld

import (
	"math"

	"hos-trip-service/internal/domain"
)

// Fixed vertical lane order on a log sheet, top to bottom.
var statusLanes = map[domain.DutyStatus]int{
	domain.StatusOffDuty:      0,
	domain.StatusSleeperBerth: 1,
	domain.StatusDriving:      2,
	domain.StatusOnDuty:       3,
}

// GridEntry is one segment positioned on the day's grid: hours from midnight,
// clipped to the [0, 24] window, with its display lane.
type GridEntry struct {
	Status      domain.DutyStatus `json:"status"`
	StatusLabel string            `json:"status_label"`
	Lane        int               `json:"status_y"`
	StartHours  float64           `json:"start_hours"`
	EndHours    float64           `json:"end_hours"`
	Duration    float64           `json:"duration"`
	Note        string            `json:"notes"`
	StartTime   string            `json:"start_time"`
	EndTime     string            `json:"end_time"`
}

type GridSummary struct {
	TotalDrivingHours   float64 `json:"total_driving_hours"`
	TotalOnDutyHours    float64 `json:"total_on_duty_hours"`
	TotalOffDutyHours   float64 `json:"total_off_duty_hours"`
	RemainingDriveTime  float64 `json:"remaining_drive_time"`
	RemainingOnDutyTime float64 `json:"remaining_on_duty_time"`
	CycleHoursRemaining float64 `json:"cycle_hours_remaining"`
}

// DayGrid is one day's renderable log sheet.
type DayGrid struct {
	DayNumber int         `json:"day_number"`
	Date      string      `json:"date"`
	IsRestart bool        `json:"is_restart"`
	Entries   []GridEntry `json:"entries"`
	Summary   GridSummary `json:"summary"`
}

// ProjectDay maps each segment onto the day's midnight-to-midnight window.
// Segments that span midnight are clipped at the window edge, not split onto
// the next sheet; this matches the established log format.
func ProjectDay(log domain.DayLog) DayGrid {
	midnight := log.Date

	entries := make([]GridEntry, 0, len(log.Segments))
	for _, seg := range log.Segments {
		startHours := clip(seg.Start.Sub(midnight).Hours())
		endHours := clip(seg.End.Sub(midnight).Hours())

		entries = append(entries, GridEntry{
			Status:      seg.Status,
			StatusLabel: domain.StatusLabels[seg.Status],
			Lane:        statusLanes[seg.Status],
			StartHours:  round2(startHours),
			EndHours:    round2(endHours),
			Duration:    seg.DurationHours(),
			Note:        seg.Note,
			StartTime:   seg.Start.Format("15:04"),
			EndTime:     seg.End.Format("15:04"),
		})
	}

	return DayGrid{
		DayNumber: log.DayNumber,
		Date:      log.Date.Format("2006-01-02"),
		IsRestart: log.IsRestart,
		Entries:   entries,
		Summary: GridSummary{
			TotalDrivingHours:   log.TotalDrivingHours(),
			TotalOnDutyHours:    log.TotalOnDutyHours(),
			TotalOffDutyHours:   log.TotalOffDutyHours(),
			RemainingDriveTime:  log.RemainingDriveTime(),
			RemainingOnDutyTime: log.RemainingOnDutyTime(),
			CycleHoursRemaining: log.CycleHoursRemaining(),
		},
	}
}

// ProjectPlan renders every day of a plan in order.
func ProjectPlan(plan *domain.TripPlan) []DayGrid {
	grids := make([]DayGrid, 0, len(plan.DailyLogs))
	for _, l := range plan.DailyLogs {
		grids = append(grids, ProjectDay(l))
	}
	return grids
}

func clip(hours float64) float64 {
	return math.Max(0, math.Min(24, hours))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
