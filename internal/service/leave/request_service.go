package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/workline-hr/hrops-backend/internal/domain/employee"
	"github.com/workline-hr/hrops-backend/internal/domain/leave"
	"github.com/workline-hr/hrops-backend/internal/domain/notification"
	"github.com/workline-hr/hrops-backend/internal/pkg/database"
	"github.com/workline-hr/hrops-backend/internal/repository/postgresql"
)

type RequestService struct {
	db *database.DB
	leave.RequestRepository
	leave.BalanceRepository
	employees       employee.EmployeeRepository
	notificationSvc notification.Service
	location        *time.Location
}

func NewRequestService(
	db *database.DB,
	requestRepository leave.RequestRepository,
	balanceRepository leave.BalanceRepository,
	employeeRepository employee.EmployeeRepository,
	notificationSvc notification.Service,
	location *time.Location,
) *RequestService {
	return &RequestService{
		db:                db,
		RequestRepository: requestRepository,
		BalanceRepository: balanceRepository,
		employees:         employeeRepository,
		notificationSvc:   notificationSvc,
		location:          location,
	}
}

// TotalCalendarDays counts the days in the inclusive interval [start, end].
// Leave intervals consume calendar days, not working days.
func TotalCalendarDays(start, end time.Time) int {
	return int(end.Sub(start).Hours()/24) + 1
}

// CreateRequest validates and persists a new pending leave request. The policy
// aggregates are read and the row written inside one transaction so concurrent
// submissions cannot tier against stale usage.
func (s *RequestService) CreateRequest(ctx context.Context, employeeID string, req leave.CreateLeaveRequest) (leave.Request, error) {
	if err := req.Validate(); err != nil {
		return leave.Request{}, err
	}

	emp, err := s.employees.GetByID(ctx, employeeID)
	if err != nil {
		return leave.Request{}, err
	}

	start, _ := time.ParseInLocation("2006-01-02", req.StartDate, s.location)
	end, _ := time.ParseInLocation("2006-01-02", req.EndDate, s.location)

	request := leave.Request{
		EmployeeID:            employeeID,
		Type:                  req.Type,
		StartDate:             start,
		EndDate:               end,
		TotalDays:             TotalCalendarDays(start, end),
		Status:                leave.RequestStatusPending,
		Reason:                req.Reason,
		MedicalCertificateURL: req.MedicalCertificateURL,
		Relationship:          req.Relationship,
	}

	var created leave.Request
	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		overlapping, err := s.RequestRepository.CheckOverlapping(txCtx, employeeID, start, end, "")
		if err != nil {
			return fmt.Errorf("failed to check overlapping leave: %w", err)
		}
		if overlapping {
			return leave.ErrOverlappingLeave
		}

		st, err := s.leaveState(txCtx, emp, start)
		if err != nil {
			return err
		}

		paymentType, err := ValidateRequest(request, st)
		if err != nil {
			return err
		}
		request.PaymentType = paymentType

		created, err = s.RequestRepository.Create(txCtx, request)
		if err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return leave.Request{}, err
	}

	return created, nil
}

// UpdateRequest edits a pending request. Edits re-run the full policy
// validation; an edit that widens the interval can change the payment tier.
func (s *RequestService) UpdateRequest(ctx context.Context, employeeID string, req leave.UpdateLeaveRequest) (leave.Request, error) {
	if err := req.Validate(); err != nil {
		return leave.Request{}, err
	}

	existing, err := s.RequestRepository.GetByID(ctx, req.ID)
	if err != nil {
		return leave.Request{}, err
	}
	if existing.EmployeeID != employeeID {
		return leave.Request{}, leave.ErrRequestNotFound
	}
	if existing.Status != leave.RequestStatusPending {
		return leave.Request{}, leave.ErrRequestAlreadyProcessed
	}

	emp, err := s.employees.GetByID(ctx, employeeID)
	if err != nil {
		return leave.Request{}, err
	}

	// Build the post-edit view of the request for revalidation
	candidate := existing
	if req.StartDate != nil {
		candidate.StartDate, _ = time.ParseInLocation("2006-01-02", *req.StartDate, s.location)
	}
	if req.EndDate != nil {
		candidate.EndDate, _ = time.ParseInLocation("2006-01-02", *req.EndDate, s.location)
	}
	if candidate.EndDate.Before(candidate.StartDate) {
		return leave.Request{}, leave.NewPolicyError(candidate.Type, "end date must not be before start date")
	}
	if req.Reason != nil {
		candidate.Reason = *req.Reason
	}
	if req.MedicalCertificateURL != nil {
		candidate.MedicalCertificateURL = req.MedicalCertificateURL
	}
	if req.Relationship != nil {
		candidate.Relationship = req.Relationship
	}
	candidate.TotalDays = TotalCalendarDays(candidate.StartDate, candidate.EndDate)

	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		overlapping, err := s.RequestRepository.CheckOverlapping(txCtx, employeeID,
			candidate.StartDate, candidate.EndDate, candidate.ID)
		if err != nil {
			return fmt.Errorf("failed to check overlapping leave: %w", err)
		}
		if overlapping {
			return leave.ErrOverlappingLeave
		}

		st, err := s.leaveState(txCtx, emp, candidate.StartDate)
		if err != nil {
			return err
		}

		paymentType, err := ValidateRequest(candidate, st)
		if err != nil {
			return err
		}

		req.TotalDays = &candidate.TotalDays
		req.PaymentType = &paymentType
		return s.RequestRepository.Update(txCtx, req)
	})
	if err != nil {
		return leave.Request{}, err
	}

	return s.RequestRepository.GetByID(ctx, req.ID)
}

// Approve transitions a pending request to approved and debits the balance.
// Consuming more days than allocated is allowed but logged; the excess is a
// payroll concern, not a blocker.
func (s *RequestService) Approve(ctx context.Context, id, approverID string) (leave.Request, error) {
	request, err := s.RequestRepository.GetByID(ctx, id)
	if err != nil {
		return leave.Request{}, err
	}
	if request.Status != leave.RequestStatusPending {
		return leave.Request{}, leave.ErrRequestAlreadyProcessed
	}

	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		year := request.StartDate.Year()
		balance, err := s.BalanceRepository.GetForUpdate(txCtx, request.EmployeeID, request.Type, year)
		if err == nil {
			if balance.UsedDays+request.TotalDays > balance.AllocatedDays {
				slog.Warn("leave approval exceeds allocated balance",
					"employee_id", request.EmployeeID,
					"leave_type", request.Type,
					"year", year,
					"allocated_days", balance.AllocatedDays,
					"used_days", balance.UsedDays,
					"request_days", request.TotalDays,
				)
			}
			if err := s.BalanceRepository.AddUsedDays(txCtx, balance.ID, request.TotalDays); err != nil {
				return err
			}
		} else if !errors.Is(err, leave.ErrBalanceNotFound) {
			return err
		}
		// No balance row means the type is never pre-allocated (or the batch
		// has not run); the approval itself still proceeds.

		status := string(leave.RequestStatusApproved)
		update := leave.UpdateLeaveRequest{ID: id, Status: &status, ApprovedBy: &approverID}
		if err := s.RequestRepository.Update(txCtx, update); err != nil {
			return err
		}

		// Re-read inside the transaction: approved_at is stamped by the
		// store, and the returned row must match what was persisted.
		approved, err := s.RequestRepository.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		request = approved
		return nil
	})
	if err != nil {
		return leave.Request{}, err
	}

	if s.notificationSvc != nil {
		s.notificationSvc.Queue(ctx, notification.Notification{
			RecipientID: request.EmployeeID,
			Type:        notification.TypeLeaveApproved,
			Title:       "Leave Request Approved",
			Message: fmt.Sprintf("Your %s from %s to %s was approved",
				request.Type, request.StartDate.Format("2006-01-02"), request.EndDate.Format("2006-01-02")),
			Data: map[string]interface{}{"leave_request_id": request.ID},
		})
	}

	return request, nil
}

// Reject transitions a pending request to rejected with a reason. No balance
// movement happens on rejection.
func (s *RequestService) Reject(ctx context.Context, id string, req leave.RejectLeaveRequest) (leave.Request, error) {
	if err := req.Validate(); err != nil {
		return leave.Request{}, err
	}

	request, err := s.RequestRepository.GetByID(ctx, id)
	if err != nil {
		return leave.Request{}, err
	}
	if request.Status != leave.RequestStatusPending {
		return leave.Request{}, leave.ErrRequestAlreadyProcessed
	}

	status := string(leave.RequestStatusRejected)
	update := leave.UpdateLeaveRequest{ID: id, Status: &status, RejectionReason: &req.Reason}
	if err := s.RequestRepository.Update(ctx, update); err != nil {
		return leave.Request{}, err
	}
	request.Status = leave.RequestStatusRejected
	request.RejectionReason = &req.Reason

	if s.notificationSvc != nil {
		s.notificationSvc.Queue(ctx, notification.Notification{
			RecipientID: request.EmployeeID,
			Type:        notification.TypeLeaveRejected,
			Title:       "Leave Request Rejected",
			Message: fmt.Sprintf("Your %s from %s to %s was rejected: %s",
				request.Type, request.StartDate.Format("2006-01-02"),
				request.EndDate.Format("2006-01-02"), req.Reason),
			Data: map[string]interface{}{"leave_request_id": request.ID},
		})
	}

	return request, nil
}

// Balances lists the employee's balances for a year as wire DTOs.
func (s *RequestService) Balances(ctx context.Context, employeeID string, year int) ([]leave.BalanceResponse, error) {
	balances, err := s.BalanceRepository.ListByEmployeeYear(ctx, employeeID, year)
	if err != nil {
		return nil, err
	}

	responses := make([]leave.BalanceResponse, 0, len(balances))
	for _, b := range balances {
		responses = append(responses, leave.BalanceResponse{
			LeaveType:     b.LeaveType,
			Year:          b.Year,
			AllocatedDays: b.AllocatedDays,
			UsedDays:      b.UsedDays,
			ServiceMonths: b.ServiceMonths,
		})
	}

	return responses, nil
}

// leaveState assembles the per-employee aggregates the type policies read.
// Must run inside the same transaction as the write that depends on it.
func (s *RequestService) leaveState(ctx context.Context, emp employee.Employee, asOf time.Time) (EmployeeLeaveState, error) {
	sickDays, err := s.RequestRepository.ApprovedDaysInYear(ctx, emp.ID, leave.TypeSick, asOf.Year())
	if err != nil {
		return EmployeeLeaveState{}, err
	}

	hasHajj, err := s.RequestRepository.HasApprovedOfType(ctx, emp.ID, leave.TypeHajj)
	if err != nil {
		return EmployeeLeaveState{}, err
	}

	return EmployeeLeaveState{
		HireDate:             emp.HireDate,
		AsOf:                 asOf,
		SickDaysUsedThisYear: sickDays,
		HasApprovedHajj:      hasHajj,
	}, nil
}
