package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

// Attendance is one employee-day attendance record. TotalHours is derived by a
// database trigger whenever both clock timestamps are present.
type Attendance struct {
	ID         string
	EmployeeID string
	Date       time.Time
	ClockIn    *time.Time
	ClockOut   *time.Time
	TotalHours *decimal.Decimal
	IsWFH      bool
	Notes      *string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// DTO
	EmployeeName *string
}

type ExceptionStatus string

const (
	ExceptionStatusPending  ExceptionStatus = "pending"
	ExceptionStatusApproved ExceptionStatus = "approved"
	ExceptionStatusRejected ExceptionStatus = "rejected"
)

type ExceptionType string

const (
	ExceptionLateArrival     ExceptionType = "late_arrival"
	ExceptionEarlyDeparture  ExceptionType = "early_departure"
	ExceptionMissedClockIn   ExceptionType = "missed_clock_in"
	ExceptionMissedClockOut  ExceptionType = "missed_clock_out"
	ExceptionWrongTime       ExceptionType = "wrong_time"
	ExceptionShortPermission ExceptionType = "short_permission"
	ExceptionWFH             ExceptionType = "wfh"
)

var ExceptionTypeValues = []string{
	string(ExceptionLateArrival),
	string(ExceptionEarlyDeparture),
	string(ExceptionMissedClockIn),
	string(ExceptionMissedClockOut),
	string(ExceptionWrongTime),
	string(ExceptionShortPermission),
	string(ExceptionWFH),
}

// Exception is an employee-submitted request to excuse or correct an
// attendance anomaly on a specific date.
type Exception struct {
	ID               string
	EmployeeID       string
	TargetDate       time.Time
	Type             ExceptionType
	Status           ExceptionStatus
	ProposedClockIn  *time.Time
	ProposedClockOut *time.Time
	Reason           string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
