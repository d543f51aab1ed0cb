package services

import (
	"hos-trip-service/internal/domain"
	"math"
)

// CycleTracker accumulates on-duty minutes against the rolling multi-day
// cycle cap and decides when a restart must be inserted.
//
// One tracker belongs to exactly one trip computation; it is never shared
// across trips or requests.
type CycleTracker struct {
	rules       HOSRules
	usedMinutes int
}

func NewCycleTracker(rules HOSRules, currentCycleUsedHours float64) *CycleTracker {
	return &CycleTracker{
		rules:       rules,
		usedMinutes: int(math.Round(currentCycleUsedHours * 60)),
	}
}

// AvailableMinutes is the cycle cap minus cumulative usage. May be negative
// only transiently, before the next restart check runs.
func (c *CycleTracker) AvailableMinutes() int {
	return c.rules.MaxCycleMinutes - c.usedMinutes
}

func (c *CycleTracker) AvailableHours() float64 {
	return domain.RoundHours(c.AvailableMinutes())
}

func (c *CycleTracker) UsedMinutes() int { return c.usedMinutes }

func (c *CycleTracker) UsedHours() float64 { return domain.RoundHours(c.usedMinutes) }

// NeedsRestart reports whether a restart day must be inserted before the next
// work day. It is checked before starting a day, never mid-day.
//
// nextDayDemandMinutes is the minimum on-duty time the coming day must fit to
// make progress (pending pickup/dropoff plus at least one driving increment).
// Without it a day could start with just enough cycle hours to perform part of
// the work and strand the trip against the cap mid-day.
func (c *CycleTracker) NeedsRestart(nextDayDemandMinutes int) bool {
	if c.usedMinutes >= c.rules.MaxCycleMinutes {
		return true
	}
	avail := c.AvailableMinutes()
	if avail < c.rules.MinUsableCycleMinutes {
		return true
	}
	return avail < nextDayDemandMinutes
}

// ApplyRestart resets cumulative usage to zero. Called exactly when a restart
// day is emitted.
func (c *CycleTracker) ApplyRestart() { c.usedMinutes = 0 }

// Accumulate adds a finished day's on-duty total. Called exactly once per
// non-restart day, after that day's segments are finalized.
func (c *CycleTracker) Accumulate(onDutyMinutes int) { c.usedMinutes += onDutyMinutes }
