package schedule

import "errors"

// Schedule configuration errors. These are fatal to classification for the
// employee and are surfaced to the caller rather than guessed around.
var (
	ErrScheduleNotFound     = errors.New("work schedule not found")
	ErrNoActiveSchedule     = errors.New("no active work schedule for employee")
	ErrEmptyWorkingDays     = errors.New("work schedule has no working days configured")
	ErrInvalidScheduleTimes = errors.New("work schedule end time must be after start time")
)
