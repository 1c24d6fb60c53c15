package schedule

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// WorkSchedule is an employee's active working pattern. StartTime and EndTime
// carry wall-clock times only; their date parts are meaningless.
type WorkSchedule struct {
	ID                string
	EmployeeID        string
	StartTime         time.Time
	EndTime           time.Time
	MinimumDailyHours decimal.Decimal
	WorkingDays       []time.Weekday
	IsActive          bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsWorkingDay reports whether the given weekday is part of the schedule.
func (s WorkSchedule) IsWorkingDay(d time.Weekday) bool {
	for _, wd := range s.WorkingDays {
		if wd == d {
			return true
		}
	}
	return false
}

// Validate checks the schedule is usable for classification. An empty
// working-day set is a configuration error, never interpreted as "all days".
func (s WorkSchedule) Validate() error {
	if len(s.WorkingDays) == 0 {
		return ErrEmptyWorkingDays
	}
	if !s.EndTime.After(s.StartTime) {
		return ErrInvalidScheduleTimes
	}
	return nil
}

// At anchors a wall-clock time onto a calendar day in the given location.
func At(wall time.Time, day time.Time, loc *time.Location) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(),
		wall.Hour(), wall.Minute(), wall.Second(), 0, loc)
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ParseWeekday converts a stored weekday name into time.Weekday.
func ParseWeekday(name string) (time.Weekday, error) {
	d, ok := weekdayNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("unknown weekday name %q", name)
	}
	return d, nil
}

// ParseWeekdays converts a stored list of weekday names.
func ParseWeekdays(names []string) ([]time.Weekday, error) {
	days := make([]time.Weekday, 0, len(names))
	for _, name := range names {
		d, err := ParseWeekday(name)
		if err != nil {
			return nil, err
		}
		days = append(days, d)
	}
	return days, nil
}
