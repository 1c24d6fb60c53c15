package leave

import (
	"context"
	"time"
)

type RequestRepository interface {
	Create(ctx context.Context, request Request) (Request, error)

	GetByID(ctx context.Context, id string) (Request, error)

	Update(ctx context.Context, request UpdateLeaveRequest) error

	ListByEmployee(ctx context.Context, employeeID string, year int) ([]Request, error)

	// ApprovedInRange retrieves approved requests whose interval overlaps
	// [from, to], for the classifier
	ApprovedInRange(ctx context.Context, employeeID string, from, to time.Time) ([]Request, error)

	// ApprovedDaysInYear sums total_days of approved requests of one type in a
	// calendar year, for cumulative payment tiering
	ApprovedDaysInYear(ctx context.Context, employeeID, leaveType string, year int) (int, error)

	// HasApprovedOfType reports whether any approved request of the type
	// exists, for one-time-only rules
	HasApprovedOfType(ctx context.Context, employeeID, leaveType string) (bool, error)

	// CheckOverlapping reports whether a pending or approved request overlaps
	// the interval
	CheckOverlapping(ctx context.Context, employeeID string, start, end time.Time, excludeID string) (bool, error)
}

type BalanceRepository interface {
	// Upsert inserts or overwrites the balance row keyed by
	// (employee, leave type, year)
	Upsert(ctx context.Context, balance Balance) (Balance, error)

	GetByEmployeeTypeYear(ctx context.Context, employeeID, leaveType string, year int) (Balance, error)

	// GetForUpdate is GetByEmployeeTypeYear with a row lock; must run inside a
	// transaction
	GetForUpdate(ctx context.Context, employeeID, leaveType string, year int) (Balance, error)

	ListByEmployeeYear(ctx context.Context, employeeID string, year int) ([]Balance, error)

	AddUsedDays(ctx context.Context, id string, days int) error
}
