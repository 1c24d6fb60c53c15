package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/workline-hr/hrops-backend/internal/domain/leave"
	"github.com/workline-hr/hrops-backend/internal/pkg/database"
)

type leaveBalanceRepositoryImpl struct {
	db *database.DB
}

func NewLeaveBalanceRepository(db *database.DB) leave.BalanceRepository {
	return &leaveBalanceRepositoryImpl{db: db}
}

// Upsert implements leave.BalanceRepository. Re-running the allocation for a
// year overwrites allocated_days and the service-months snapshot but never
// touches used_days.
func (l *leaveBalanceRepositoryImpl) Upsert(ctx context.Context, balance leave.Balance) (leave.Balance, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		INSERT INTO leave_balances (
			id, employee_id, leave_type, year, allocated_days, used_days, service_months
		)
		VALUES (uuidv7(), $1, $2, $3, $4, 0, $5)
		ON CONFLICT (employee_id, leave_type, year)
		DO UPDATE SET
			allocated_days = EXCLUDED.allocated_days,
			service_months = EXCLUDED.service_months,
			updated_at = NOW()
		RETURNING id, employee_id, leave_type, year, allocated_days, used_days,
			service_months, created_at, updated_at
	`

	var upserted leave.Balance
	err := q.QueryRow(ctx, query,
		balance.EmployeeID, balance.LeaveType, balance.Year,
		balance.AllocatedDays, balance.ServiceMonths,
	).Scan(
		&upserted.ID, &upserted.EmployeeID, &upserted.LeaveType, &upserted.Year,
		&upserted.AllocatedDays, &upserted.UsedDays, &upserted.ServiceMonths,
		&upserted.CreatedAt, &upserted.UpdatedAt,
	)
	if err != nil {
		return leave.Balance{}, fmt.Errorf("failed to upsert leave balance: %w", err)
	}

	return upserted, nil
}

// GetByEmployeeTypeYear implements leave.BalanceRepository.
func (l *leaveBalanceRepositoryImpl) GetByEmployeeTypeYear(ctx context.Context, employeeID, leaveType string, year int) (leave.Balance, error) {
	return l.get(ctx, employeeID, leaveType, year, false)
}

// GetForUpdate implements leave.BalanceRepository.
func (l *leaveBalanceRepositoryImpl) GetForUpdate(ctx context.Context, employeeID, leaveType string, year int) (leave.Balance, error) {
	return l.get(ctx, employeeID, leaveType, year, true)
}

func (l *leaveBalanceRepositoryImpl) get(ctx context.Context, employeeID, leaveType string, year int, forUpdate bool) (leave.Balance, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT id, employee_id, leave_type, year, allocated_days, used_days,
			service_months, created_at, updated_at
		FROM leave_balances
		WHERE employee_id = $1 AND leave_type = $2 AND year = $3
	`
	if forUpdate {
		query += " FOR UPDATE"
	}

	var balance leave.Balance
	err := q.QueryRow(ctx, query, employeeID, leaveType, year).Scan(
		&balance.ID, &balance.EmployeeID, &balance.LeaveType, &balance.Year,
		&balance.AllocatedDays, &balance.UsedDays, &balance.ServiceMonths,
		&balance.CreatedAt, &balance.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Balance{}, leave.ErrBalanceNotFound
		}
		return leave.Balance{}, fmt.Errorf("failed to get %s balance for employee %s in %d: %w",
			leaveType, employeeID, year, err)
	}

	return balance, nil
}

// ListByEmployeeYear implements leave.BalanceRepository.
func (l *leaveBalanceRepositoryImpl) ListByEmployeeYear(ctx context.Context, employeeID string, year int) ([]leave.Balance, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT id, employee_id, leave_type, year, allocated_days, used_days,
			service_months, created_at, updated_at
		FROM leave_balances
		WHERE employee_id = $1 AND year = $2
		ORDER BY leave_type
	`

	rows, err := q.Query(ctx, query, employeeID, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var balances []leave.Balance
	for rows.Next() {
		var balance leave.Balance
		err := rows.Scan(
			&balance.ID, &balance.EmployeeID, &balance.LeaveType, &balance.Year,
			&balance.AllocatedDays, &balance.UsedDays, &balance.ServiceMonths,
			&balance.CreatedAt, &balance.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		balances = append(balances, balance)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return balances, nil
}

// AddUsedDays implements leave.BalanceRepository.
func (l *leaveBalanceRepositoryImpl) AddUsedDays(ctx context.Context, id string, days int) error {
	q := GetQuerier(ctx, l.db)

	query := `
		UPDATE leave_balances
		SET used_days = used_days + $1, updated_at = NOW()
		WHERE id = $2
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query, days, id).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.ErrBalanceNotFound
		}
		return fmt.Errorf("failed to add used days to balance %s: %w", id, err)
	}

	return nil
}
