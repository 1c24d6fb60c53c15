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

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepositoryImpl) Create(ctx context.Context, record attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendances (id, employee_id, date, clock_in, clock_out, is_wfh, notes)
		VALUES (uuidv7(), $1, $2, $3, $4, $5, $6)
		RETURNING id, employee_id, date, clock_in, clock_out, total_hours, is_wfh, notes, created_at, updated_at
	`

	var created attendance.Attendance
	err := q.QueryRow(ctx, query,
		record.EmployeeID, record.Date, record.ClockIn, record.ClockOut,
		record.IsWFH, record.Notes,
	).Scan(
		&created.ID, &created.EmployeeID, &created.Date, &created.ClockIn,
		&created.ClockOut, &created.TotalHours, &created.IsWFH, &created.Notes,
		&created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return created, nil
}

// Update implements attendance.AttendanceRepository.
func (a *attendanceRepositoryImpl) Update(ctx context.Context, record attendance.Attendance) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET clock_in = $1, clock_out = $2, is_wfh = $3, notes = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		record.ClockIn, record.ClockOut, record.IsWFH, record.Notes, record.ID,
	).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.ErrAttendanceNotFound
		}
		return fmt.Errorf("failed to update attendance record %s: %w", record.ID, err)
	}

	return nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepositoryImpl) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT id, employee_id, date, clock_in, clock_out, total_hours, is_wfh, notes, created_at, updated_at
		FROM attendances
		WHERE employee_id = $1 AND date = $2
	`

	var record attendance.Attendance
	err := q.QueryRow(ctx, query, employeeID, date).Scan(
		&record.ID, &record.EmployeeID, &record.Date, &record.ClockIn,
		&record.ClockOut, &record.TotalHours, &record.IsWFH, &record.Notes,
		&record.CreatedAt, &record.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, pgx.ErrNoRows
		}
		return nil, fmt.Errorf("failed to get attendance for employee %s on %s: %w",
			employeeID, date.Format("2006-01-02"), err)
	}

	return &record, nil
}

// ListByEmployeeRange implements attendance.AttendanceRepository.
func (a *attendanceRepositoryImpl) ListByEmployeeRange(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT id, employee_id, date, clock_in, clock_out, total_hours, is_wfh, notes, created_at, updated_at
		FROM attendances
		WHERE employee_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		var record attendance.Attendance
		err := rows.Scan(
			&record.ID, &record.EmployeeID, &record.Date, &record.ClockIn,
			&record.ClockOut, &record.TotalHours, &record.IsWFH, &record.Notes,
			&record.CreatedAt, &record.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// GetOpenSession implements attendance.AttendanceRepository.
func (a *attendanceRepositoryImpl) GetOpenSession(ctx context.Context, employeeID string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT id, employee_id, date, clock_in, clock_out, total_hours, is_wfh, notes, created_at, updated_at
		FROM attendances
		WHERE employee_id = $1 AND clock_in IS NOT NULL AND clock_out IS NULL
		ORDER BY date DESC
		LIMIT 1
	`

	var record attendance.Attendance
	err := q.QueryRow(ctx, query, employeeID).Scan(
		&record.ID, &record.EmployeeID, &record.Date, &record.ClockIn,
		&record.ClockOut, &record.TotalHours, &record.IsWFH, &record.Notes,
		&record.CreatedAt, &record.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, pgx.ErrNoRows
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get open session for employee %s: %w", employeeID, err)
	}

	return record, nil
}
