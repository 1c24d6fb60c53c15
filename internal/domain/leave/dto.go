package leave

import (
	"github.com/workline-hr/hrops-backend/internal/pkg/validator"
)

type CreateLeaveRequest struct {
	Type                  string  `json:"leave_type"`
	StartDate             string  `json:"start_date"`
	EndDate               string  `json:"end_date"`
	Reason                string  `json:"reason"`
	MedicalCertificateURL *string `json:"medical_certificate_url,omitempty"`
	Relationship          *string `json:"relationship,omitempty"`
}

func (r *CreateLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Type) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: "leave_type is required",
		})
	}

	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}
	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}
	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateLeaveRequest carries the editable fields of a pending request. Edits
// re-trigger the same policy validation as inserts.
type UpdateLeaveRequest struct {
	ID                    string  `json:"leave_request_id"`
	StartDate             *string `json:"start_date,omitempty"`
	EndDate               *string `json:"end_date,omitempty"`
	Reason                *string `json:"reason,omitempty"`
	MedicalCertificateURL *string `json:"medical_certificate_url,omitempty"`
	Relationship          *string `json:"relationship,omitempty"`

	// Derived fields written by the service layer, never client-supplied
	TotalDays       *int         `json:"-"`
	PaymentType     *PaymentType `json:"-"`
	Status          *string      `json:"-"`
	ApprovedBy      *string      `json:"-"`
	RejectionReason *string      `json:"-"`
}

func (r *UpdateLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_request_id",
			Message: "leave_request_id is required",
		})
	}

	if r.StartDate != nil {
		if _, ok := validator.IsValidDate(*r.StartDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}
	if r.EndDate != nil {
		if _, ok := validator.IsValidDate(*r.EndDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RejectLeaveRequest struct {
	Reason string `json:"reason"`
}

func (r *RejectLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type BalanceResponse struct {
	LeaveType     string `json:"leave_type"`
	Year          int    `json:"year"`
	AllocatedDays int    `json:"allocated_days"`
	UsedDays      int    `json:"used_days"`
	ServiceMonths int    `json:"service_months"`
}
