package attendance

import "errors"

// Attendance domain errors
var (
	// Clock-in / clock-out errors
	ErrAlreadyClockedIn  = errors.New("you have already clocked in today")
	ErrNotClockedIn      = errors.New("you have not clocked in yet")
	ErrAlreadyClockedOut = errors.New("you have already clocked out")

	// General errors
	ErrAttendanceNotFound       = errors.New("attendance record not found")
	ErrExceptionNotFound        = errors.New("attendance exception not found")
	ErrExceptionAlreadyResolved = errors.New("attendance exception has already been approved or rejected")
	ErrExceptionDateInFuture    = errors.New("attendance exception target date cannot be in the future")
)
