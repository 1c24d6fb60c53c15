package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
type AttendanceRepository interface {
	// Create creates a new attendance record
	Create(ctx context.Context, attendance Attendance) (Attendance, error)

	// Update updates an existing attendance record
	Update(ctx context.Context, attendance Attendance) error

	// GetByEmployeeAndDate retrieves attendance for a specific employee on a
	// specific date. Used to prevent double clock-in.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)

	// ListByEmployeeRange retrieves attendance records for a date range,
	// ordered by date
	ListByEmployeeRange(ctx context.Context, employeeID string, from, to time.Time) ([]Attendance, error)

	// GetOpenSession retrieves the latest record with a clock-in but no
	// clock-out
	GetOpenSession(ctx context.Context, employeeID string) (Attendance, error)
}

// ExceptionRepository defines data access methods for attendance exceptions.
type ExceptionRepository interface {
	Create(ctx context.Context, exception Exception) (Exception, error)

	GetByID(ctx context.Context, id string) (Exception, error)

	// UpdateStatus transitions an exception to approved or rejected
	UpdateStatus(ctx context.Context, id string, status ExceptionStatus) error

	// ListByEmployeeRange retrieves exceptions whose target date falls in the
	// range, any status
	ListByEmployeeRange(ctx context.Context, employeeID string, from, to time.Time) ([]Exception, error)
}
