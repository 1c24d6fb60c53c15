package employee

import "context"

type EmployeeRepository interface {
	// GetByID retrieves an employee by ID
	GetByID(ctx context.Context, id string) (Employee, error)

	// GetActive retrieves all employees with active employment status
	GetActive(ctx context.Context) ([]Employee, error)
}
