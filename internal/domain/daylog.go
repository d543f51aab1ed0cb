package domain

import "time"

// One calendar day of the generated schedule.
//
// Totals are held as whole minutes (summed from segment durations grouped by
// status category); the *Hours accessors round to two decimals for reporting.
// Remaining* fields are the unused portion of the daily caps after this day,
// and CycleMinutesRemaining is the multi-day cap minus cumulative on-duty
// usage once this day has been applied.
type DayLog struct {
	DayNumber int
	Date      time.Time
	StartAt   time.Time
	EndAt     time.Time
	Segments  []Segment

	DrivingMinutes int
	OnDutyMinutes  int
	OffDutyMinutes int

	RemainingDriveMinutes  int
	RemainingOnDutyMinutes int
	CycleMinutesRemaining  int

	IsRestart bool
}

func (d DayLog) TotalDrivingHours() float64 { return RoundHours(d.DrivingMinutes) }
func (d DayLog) TotalOnDutyHours() float64  { return RoundHours(d.OnDutyMinutes) }
func (d DayLog) TotalOffDutyHours() float64 { return RoundHours(d.OffDutyMinutes) }

func (d DayLog) RemainingDriveTime() float64  { return RoundHours(d.RemainingDriveMinutes) }
func (d DayLog) RemainingOnDutyTime() float64 { return RoundHours(d.RemainingOnDutyMinutes) }
func (d DayLog) CycleHoursRemaining() float64 { return RoundHours(d.CycleMinutesRemaining) }
