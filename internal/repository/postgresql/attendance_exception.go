package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/workline-hr/hrops-backend/internal/domain/attendance"
	"github.com/workline-hr/hrops-backend/internal/pkg/database"
)

type exceptionRepositoryImpl struct {
	db *database.DB
}

func NewExceptionRepository(db *database.DB) attendance.ExceptionRepository {
	return &exceptionRepositoryImpl{db: db}
}

// Create implements attendance.ExceptionRepository.
func (e *exceptionRepositoryImpl) Create(ctx context.Context, exception attendance.Exception) (attendance.Exception, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		INSERT INTO attendance_exceptions (
			id, employee_id, target_date, exception_type, status,
			proposed_clock_in, proposed_clock_out, reason
		)
		VALUES (uuidv7(), $1, $2, $3, $4, $5, $6, $7)
		RETURNING id, employee_id, target_date, exception_type, status,
			proposed_clock_in, proposed_clock_out, reason, created_at, updated_at
	`

	var created attendance.Exception
	err := q.QueryRow(ctx, query,
		exception.EmployeeID, exception.TargetDate, exception.Type, exception.Status,
		exception.ProposedClockIn, exception.ProposedClockOut, exception.Reason,
	).Scan(
		&created.ID, &created.EmployeeID, &created.TargetDate, &created.Type,
		&created.Status, &created.ProposedClockIn, &created.ProposedClockOut,
		&created.Reason, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return attendance.Exception{}, fmt.Errorf("failed to create attendance exception: %w", err)
	}

	return created, nil
}

// GetByID implements attendance.ExceptionRepository.
func (e *exceptionRepositoryImpl) GetByID(ctx context.Context, id string) (attendance.Exception, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT id, employee_id, target_date, exception_type, status,
			proposed_clock_in, proposed_clock_out, reason, created_at, updated_at
		FROM attendance_exceptions
		WHERE id = $1
	`

	var exception attendance.Exception
	err := q.QueryRow(ctx, query, id).Scan(
		&exception.ID, &exception.EmployeeID, &exception.TargetDate, &exception.Type,
		&exception.Status, &exception.ProposedClockIn, &exception.ProposedClockOut,
		&exception.Reason, &exception.CreatedAt, &exception.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Exception{}, pgx.ErrNoRows
		}
		return attendance.Exception{}, fmt.Errorf("failed to get exception with id %s: %w", id, err)
	}

	return exception, nil
}

// UpdateStatus implements attendance.ExceptionRepository.
func (e *exceptionRepositoryImpl) UpdateStatus(ctx context.Context, id string, status attendance.ExceptionStatus) error {
	q := GetQuerier(ctx, e.db)

	query := `
		UPDATE attendance_exceptions
		SET status = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query, status, id).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.ErrExceptionNotFound
		}
		return fmt.Errorf("failed to update exception %s status: %w", id, err)
	}

	return nil
}

// ListByEmployeeRange implements attendance.ExceptionRepository.
func (e *exceptionRepositoryImpl) ListByEmployeeRange(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Exception, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT id, employee_id, target_date, exception_type, status,
			proposed_clock_in, proposed_clock_out, reason, created_at, updated_at
		FROM attendance_exceptions
		WHERE employee_id = $1 AND target_date BETWEEN $2 AND $3
		ORDER BY target_date
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exceptions []attendance.Exception
	for rows.Next() {
		var exception attendance.Exception
		err := rows.Scan(
			&exception.ID, &exception.EmployeeID, &exception.TargetDate, &exception.Type,
			&exception.Status, &exception.ProposedClockIn, &exception.ProposedClockOut,
			&exception.Reason, &exception.CreatedAt, &exception.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		exceptions = append(exceptions, exception)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return exceptions, nil
}
