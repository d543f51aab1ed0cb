package domain

// Duty status codes as recorded on a driver's daily log.
type DutyStatus string

const (
	StatusOffDuty      DutyStatus = "OFF"
	StatusSleeperBerth DutyStatus = "SB"
	StatusDriving      DutyStatus = "D"
	StatusOnDuty       DutyStatus = "ON"
)

// Human-readable labels used by log renderers.
var StatusLabels = map[DutyStatus]string{
	StatusOffDuty:      "Off Duty",
	StatusSleeperBerth: "Sleeper Berth",
	StatusDriving:      "Driving",
	StatusOnDuty:       "On Duty (Not Driving)",
}

// Counts toward the on-duty window and the rolling cycle.
func (s DutyStatus) IsOnDuty() bool {
	return s == StatusDriving || s == StatusOnDuty
}

// Off-duty-equivalent statuses (off duty and sleeper berth).
func (s DutyStatus) IsOffDuty() bool {
	return s == StatusOffDuty || s == StatusSleeperBerth
}

func (s DutyStatus) Valid() bool {
	switch s {
	case StatusOffDuty, StatusSleeperBerth, StatusDriving, StatusOnDuty:
		return true
	}
	return false
}
