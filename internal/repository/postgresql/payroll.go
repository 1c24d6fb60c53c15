package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/workline-hr/hrops-backend/internal/domain/payroll"
	"github.com/workline-hr/hrops-backend/internal/pkg/database"
)

type payslipRepositoryImpl struct {
	db *database.DB
}

func NewPayslipRepository(db *database.DB) payroll.PayslipRepository {
	return &payslipRepositoryImpl{db: db}
}

// GetByID implements payroll.PayslipRepository.
func (p *payslipRepositoryImpl) GetByID(ctx context.Context, id string) (payroll.Payslip, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT id, employee_id, period_year, period_month, gross_pay, deductions,
			net_pay, currency, issued_at, created_at
		FROM payslips
		WHERE id = $1
	`

	var slip payroll.Payslip
	err := q.QueryRow(ctx, query, id).Scan(
		&slip.ID, &slip.EmployeeID, &slip.PeriodYear, &slip.PeriodMonth,
		&slip.GrossPay, &slip.Deductions, &slip.NetPay, &slip.Currency,
		&slip.IssuedAt, &slip.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Payslip{}, payroll.ErrPayslipNotFound
		}
		return payroll.Payslip{}, fmt.Errorf("failed to get payslip with id %s: %w", id, err)
	}

	return slip, nil
}

// ListByEmployeeYear implements payroll.PayslipRepository.
func (p *payslipRepositoryImpl) ListByEmployeeYear(ctx context.Context, employeeID string, year int) ([]payroll.Payslip, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT id, employee_id, period_year, period_month, gross_pay, deductions,
			net_pay, currency, issued_at, created_at
		FROM payslips
		WHERE employee_id = $1 AND period_year = $2
		ORDER BY period_month DESC
	`

	rows, err := q.Query(ctx, query, employeeID, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slips []payroll.Payslip
	for rows.Next() {
		var slip payroll.Payslip
		err := rows.Scan(
			&slip.ID, &slip.EmployeeID, &slip.PeriodYear, &slip.PeriodMonth,
			&slip.GrossPay, &slip.Deductions, &slip.NetPay, &slip.Currency,
			&slip.IssuedAt, &slip.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		slips = append(slips, slip)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return slips, nil
}
