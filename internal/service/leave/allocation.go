package leave

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/workline-hr/hrops-backend/internal/domain/employee"
	"github.com/workline-hr/hrops-backend/internal/domain/leave"
	"github.com/workline-hr/hrops-backend/internal/domain/notification"
)

// AllocationService computes and persists yearly leave entitlements for all
// active employees. Running it again for the same year overwrites allocations
// with freshly computed values and leaves consumption untouched.
type AllocationService struct {
	balances        leave.BalanceRepository
	employees       employee.EmployeeRepository
	notificationSvc notification.Service
	location        *time.Location
}

func NewAllocationService(
	balanceRepository leave.BalanceRepository,
	employeeRepository employee.EmployeeRepository,
	notificationSvc notification.Service,
	location *time.Location,
) *AllocationService {
	return &AllocationService{
		balances:        balanceRepository,
		employees:       employeeRepository,
		notificationSvc: notificationSvc,
		location:        location,
	}
}

type AllocationFailure struct {
	EmployeeID string `json:"employee_id"`
	LeaveType  string `json:"leave_type"`
	Error      string `json:"error"`
}

// AllocationSummary reports one batch run. RunID ties the summary to the
// structured log lines emitted during the run.
type AllocationSummary struct {
	RunID     string              `json:"run_id"`
	Year      int                 `json:"year"`
	Employees int                 `json:"employees"`
	Allocated int                 `json:"allocated"`
	Failures  []AllocationFailure `json:"failures,omitempty"`
}

// AllocateYear upserts a balance row per active employee and auto-allocated
// leave type. A failure for one employee is recorded and the batch moves on.
func (s *AllocationService) AllocateYear(ctx context.Context, year int) (AllocationSummary, error) {
	employees, err := s.employees.GetActive(ctx)
	if err != nil {
		return AllocationSummary{}, fmt.Errorf("failed to list active employees: %w", err)
	}

	summary := AllocationSummary{RunID: uuid.NewString(), Year: year, Employees: len(employees)}
	yearEnd := time.Date(year, time.December, 31, 0, 0, 0, 0, s.location)

	for _, emp := range employees {
		months := ServiceMonths(emp.HireDate, yearEnd)

		for _, leaveType := range leave.AutoAllocatedTypes {
			balance := leave.Balance{
				EmployeeID:    emp.ID,
				LeaveType:     leaveType,
				Year:          year,
				AllocatedDays: Entitlement(emp.HireDate, leaveType, year),
				ServiceMonths: months,
			}

			if _, err := s.balances.Upsert(ctx, balance); err != nil {
				slog.Error("leave allocation failed",
					"run_id", summary.RunID,
					"employee_id", emp.ID,
					"leave_type", leaveType,
					"year", year,
					"error", err,
				)
				summary.Failures = append(summary.Failures, AllocationFailure{
					EmployeeID: emp.ID,
					LeaveType:  leaveType,
					Error:      err.Error(),
				})
				continue
			}
			summary.Allocated++
		}

		if s.notificationSvc != nil {
			s.notificationSvc.Queue(ctx, notification.Notification{
				RecipientID: emp.ID,
				Type:        notification.TypeBalanceAllocated,
				Title:       "Leave Balances Allocated",
				Message:     fmt.Sprintf("Your leave balances for %d have been allocated", year),
				Data:        map[string]interface{}{"year": year},
			})
		}
	}

	slog.Info("leave allocation completed",
		"run_id", summary.RunID,
		"year", year,
		"employees", summary.Employees,
		"allocated", summary.Allocated,
		"failures", len(summary.Failures),
	)

	return summary, nil
}
