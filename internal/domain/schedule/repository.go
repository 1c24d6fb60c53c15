package schedule

import "context"

type WorkScheduleRepository interface {
	// GetActiveByEmployee retrieves the single active schedule for an employee.
	// Exactly one active schedule per employee is enforced by the store.
	GetActiveByEmployee(ctx context.Context, employeeID string) (WorkSchedule, error)
}
