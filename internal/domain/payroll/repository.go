package payroll

import "context"

type PayslipRepository interface {
	GetByID(ctx context.Context, id string) (Payslip, error)

	// ListByEmployeeYear retrieves payslips for one employee and year, newest
	// first
	ListByEmployeeYear(ctx context.Context, employeeID string, year int) ([]Payslip, error)
}
