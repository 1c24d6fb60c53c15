package attendance

import (
	"github.com/workline-hr/hrops-backend/internal/pkg/validator"
)

type ClockInRequest struct {
	IsWFH bool    `json:"is_wfh"`
	Notes *string `json:"notes,omitempty"`
}

type ClockOutRequest struct {
	Notes *string `json:"notes,omitempty"`
}

type CreateExceptionRequest struct {
	TargetDate       string  `json:"target_date"`
	Type             string  `json:"exception_type"`
	Reason           string  `json:"reason"`
	ProposedClockIn  *string `json:"proposed_clock_in,omitempty"`
	ProposedClockOut *string `json:"proposed_clock_out,omitempty"`
}

func (r *CreateExceptionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.TargetDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "target_date",
			Message: "target_date is required",
		})
	} else if _, ok := validator.IsValidDate(r.TargetDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "target_date",
			Message: "target_date must be in YYYY-MM-DD format",
		})
	}

	if !validator.IsInSlice(r.Type, ExceptionTypeValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "exception_type",
			Message: "exception_type is not a recognized type",
		})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if r.ProposedClockIn != nil {
		if _, ok := validator.IsValidDateTime(*r.ProposedClockIn); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "proposed_clock_in",
				Message: "proposed_clock_in must be an ISO8601 timestamp",
			})
		}
	}
	if r.ProposedClockOut != nil {
		if _, ok := validator.IsValidDateTime(*r.ProposedClockOut); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "proposed_clock_out",
				Message: "proposed_clock_out must be an ISO8601 timestamp",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ResolveExceptionRequest struct {
	Status string `json:"status"`
}

func (r *ResolveExceptionRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Status != string(ExceptionStatusApproved) && r.Status != string(ExceptionStatusRejected) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be approved or rejected",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ReportQuery struct {
	EmployeeID string
	From       string
	To         string
}

func (q *ReportQuery) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(q.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if _, ok := validator.IsValidDate(q.From); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "from",
			Message: "from must be in YYYY-MM-DD format",
		})
	}
	if _, ok := validator.IsValidDate(q.To); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "to",
			Message: "to must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// DayStatusResponse is the wire shape of one classified day.
type DayStatusResponse struct {
	Date           string   `json:"date"`
	Status         string   `json:"status"`
	Issues         []string `json:"issues,omitempty"`
	LeaveType      string   `json:"leave_type,omitempty"`
	ClockIn        *string  `json:"clock_in,omitempty"`
	ClockOut       *string  `json:"clock_out,omitempty"`
	ExceptionCount int      `json:"exception_count,omitempty"`
}

type BreachResponse struct {
	Type    string   `json:"type"`
	Count   int      `json:"count"`
	Dates   []string `json:"dates"`
	Message string   `json:"message"`
}
