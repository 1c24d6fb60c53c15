package payroll

import (
	"context"

	"github.com/workline-hr/hrops-backend/internal/domain/payroll"
)

// Service exposes read-only payslip access. Payroll figures are produced by an
// external processor; this surface only serves them.
type Service struct {
	payroll.PayslipRepository
}

func NewService(payslipRepository payroll.PayslipRepository) *Service {
	return &Service{PayslipRepository: payslipRepository}
}

// Payslip returns one payslip, restricted to its owner.
func (s *Service) Payslip(ctx context.Context, id, employeeID string) (payroll.Payslip, error) {
	slip, err := s.PayslipRepository.GetByID(ctx, id)
	if err != nil {
		return payroll.Payslip{}, err
	}
	if slip.EmployeeID != employeeID {
		return payroll.Payslip{}, payroll.ErrPayslipNotFound
	}
	return slip, nil
}

// Payslips lists an employee's payslips for a year, newest first.
func (s *Service) Payslips(ctx context.Context, employeeID string, year int) ([]payroll.Payslip, error) {
	return s.PayslipRepository.ListByEmployeeYear(ctx, employeeID, year)
}
