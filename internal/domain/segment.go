package domain

import (
	"math"
	"time"
)

// A single timed duty-status interval on a daily log.
// Segments are immutable once created; within a day they are strictly
// time-ordered and contiguous (each segment starts where the previous ended).
//
// Durations are carried as whole minutes. Fractional hours are a reporting
// concern only; keeping minutes as integers guarantees exact accumulation
// across many days (no floating-point drift between the simulator and the
// cycle tracker).
type Segment struct {
	Status  DutyStatus
	Start   time.Time
	End     time.Time
	Minutes int
	Note    string
}

// NewSegment derives End from Start plus the duration in minutes.
func NewSegment(status DutyStatus, start time.Time, minutes int, note string) Segment {
	return Segment{
		Status:  status,
		Start:   start,
		End:     start.Add(time.Duration(minutes) * time.Minute),
		Minutes: minutes,
		Note:    note,
	}
}

// DurationHours reports the segment length in hours, rounded to two decimals.
func (s Segment) DurationHours() float64 {
	return RoundHours(s.Minutes)
}

// RoundHours converts whole minutes to hours rounded to two decimals.
func RoundHours(minutes int) float64 {
	return math.Round(float64(minutes)/60*100) / 100
}
