package response

import (
	"errors"
	"net/http"

	"github.com/workline-hr/hrops-backend/internal/domain/attendance"
	"github.com/workline-hr/hrops-backend/internal/domain/employee"
	"github.com/workline-hr/hrops-backend/internal/domain/leave"
	"github.com/workline-hr/hrops-backend/internal/domain/notification"
	"github.com/workline-hr/hrops-backend/internal/domain/payroll"
	"github.com/workline-hr/hrops-backend/internal/domain/schedule"
	"github.com/workline-hr/hrops-backend/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// A policy violation is a well-formed request the leave rules refuse
	var policyErr *leave.PolicyError
	if errors.As(err, &policyErr) {
		PolicyViolation(w, policyErr.Error())
		return
	}

	switch {
	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Schedule domain errors
	case errors.Is(err, schedule.ErrNoActiveSchedule):
		NotFound(w, "No active work schedule for employee")
	case errors.Is(err, schedule.ErrEmptyWorkingDays):
		Conflict(w, "Work schedule has no working days configured")
	case errors.Is(err, schedule.ErrInvalidScheduleTimes):
		Conflict(w, "Work schedule times are misconfigured")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyClockedIn):
		Conflict(w, "Already clocked in today")
	case errors.Is(err, attendance.ErrNotClockedIn):
		Conflict(w, "No open attendance session to clock out of")
	case errors.Is(err, attendance.ErrAlreadyClockedOut):
		Conflict(w, "Attendance session already closed")
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrExceptionNotFound):
		NotFound(w, "Attendance exception not found")
	case errors.Is(err, attendance.ErrExceptionAlreadyResolved):
		Conflict(w, "Attendance exception already resolved")
	case errors.Is(err, attendance.ErrExceptionDateInFuture):
		BadRequest(w, "Exception target date cannot be in the future", nil)

	// Leave domain errors
	case errors.Is(err, leave.ErrRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrRequestAlreadyProcessed):
		Conflict(w, "Leave request already processed")
	case errors.Is(err, leave.ErrBalanceNotFound):
		NotFound(w, "Leave balance not found")
	case errors.Is(err, leave.ErrOverlappingLeave):
		Conflict(w, "Leave interval overlaps an existing request")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrPayslipNotFound):
		NotFound(w, "Payslip not found")

	// Notification domain errors
	case errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, "Notification not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
