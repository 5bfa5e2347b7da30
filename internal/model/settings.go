package model

import (
	"fmt"
	"time"
)

// Interval is the service cadence in years. 0.5 is the half-year value; the
// other valid values are whole years.
type Interval float64

const (
	IntervalHalfYear Interval = 0.5
	IntervalYear     Interval = 1
	IntervalTwoYears Interval = 2
)

// Intervals lists the selectable cadences in picker order.
var Intervals = []Interval{IntervalHalfYear, IntervalYear, IntervalTwoYears}

func (i Interval) Valid() bool {
	if i == IntervalHalfYear {
		return true
	}
	return i >= 1 && i == Interval(int(i))
}

// IsHalfYear reports whether the cadence is the six-month one.
func (i Interval) IsHalfYear() bool { return i == IntervalHalfYear }

// Years returns the whole-year cadence. Only meaningful when !IsHalfYear().
func (i Interval) Years() int { return int(i) }

func (i Interval) Label() string {
	if i.IsHalfYear() {
		return "every 6 months"
	}
	if i.Years() == 1 {
		return "every year"
	}
	return fmt.Sprintf("every %d years", i.Years())
}

// Settings is the single process-wide reminder configuration, replaced
// wholesale on every save. ReminderTime carries a full instant (that is what
// the time picker produced); only its clock part is applied to notifications.
type Settings struct {
	LeadDays     int       `json:"reminderDay"`
	ReminderTime time.Time `json:"reminderTime"`
	Interval     Interval  `json:"serviceInterval"`
}

// MinLeadDays and MaxLeadDays bound the reminder lead, matching the 1-3 day
// choices the settings screen offers.
const (
	MinLeadDays = 1
	MaxLeadDays = 3
)

// Hour returns the notification hour of day.
func (s Settings) Hour() int { return s.ReminderTime.Hour() }

// Minute returns the notification minute.
func (s Settings) Minute() int { return s.ReminderTime.Minute() }

// ClockLabel renders the notification time as HH:MM.
func (s Settings) ClockLabel() string {
	return fmt.Sprintf("%02d:%02d", s.Hour(), s.Minute())
}

func (s Settings) Validate() error {
	if s.LeadDays < MinLeadDays || s.LeadDays > MaxLeadDays {
		return fmt.Errorf("reminder lead must be %d-%d days, got %d", MinLeadDays, MaxLeadDays, s.LeadDays)
	}
	if s.ReminderTime.IsZero() {
		return fmt.Errorf("reminder time is required")
	}
	if !s.Interval.Valid() {
		return fmt.Errorf("invalid service interval %v", float64(s.Interval))
	}
	return nil
}
