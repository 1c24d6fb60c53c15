package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/workline-hr/hrops-backend/internal/domain/leave"
	"github.com/workline-hr/hrops-backend/internal/pkg/database"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.RequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

const leaveRequestColumns = `
	lr.id, lr.employee_id, lr.leave_type, lr.start_date, lr.end_date, lr.total_days,
	lr.status, lr.payment_type, lr.reason, lr.medical_certificate_url, lr.relationship,
	lr.approved_by, lr.approved_at, lr.rejection_reason, lr.created_at, lr.updated_at
`

func scanLeaveRequest(row pgx.Row) (leave.Request, error) {
	var req leave.Request
	err := row.Scan(
		&req.ID, &req.EmployeeID, &req.Type, &req.StartDate, &req.EndDate,
		&req.TotalDays, &req.Status, &req.PaymentType, &req.Reason,
		&req.MedicalCertificateURL, &req.Relationship, &req.ApprovedBy,
		&req.ApprovedAt, &req.RejectionReason, &req.CreatedAt, &req.UpdatedAt,
	)
	return req, err
}

// Create implements leave.RequestRepository.
func (l *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.Request) (leave.Request, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		INSERT INTO leave_requests (
			id, employee_id, leave_type, start_date, end_date, total_days,
			status, payment_type, reason, medical_certificate_url, relationship
		)
		VALUES (uuidv7(), $1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + strings.ReplaceAll(leaveRequestColumns, "lr.", "")

	var created leave.Request
	err := q.QueryRow(ctx, query,
		request.EmployeeID, request.Type, request.StartDate, request.EndDate,
		request.TotalDays, request.Status, request.PaymentType, request.Reason,
		request.MedicalCertificateURL, request.Relationship,
	).Scan(
		&created.ID, &created.EmployeeID, &created.Type, &created.StartDate,
		&created.EndDate, &created.TotalDays, &created.Status, &created.PaymentType,
		&created.Reason, &created.MedicalCertificateURL, &created.Relationship,
		&created.ApprovedBy, &created.ApprovedAt, &created.RejectionReason,
		&created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return leave.Request{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return created, nil
}

// GetByID implements leave.RequestRepository.
func (l *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.Request, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests lr
		WHERE lr.id = $1
	`

	request, err := scanLeaveRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Request{}, leave.ErrRequestNotFound
		}
		return leave.Request{}, fmt.Errorf("failed to get leave request with id %s: %w", id, err)
	}

	return request, nil
}

// Update implements leave.RequestRepository.
func (l *leaveRequestRepositoryImpl) Update(ctx context.Context, request leave.UpdateLeaveRequest) error {
	q := GetQuerier(ctx, l.db)

	setClauses := []string{"updated_at = NOW()"}
	args := []interface{}{}
	argIdx := 1

	addSet := func(column string, value interface{}) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argIdx))
		args = append(args, value)
		argIdx++
	}

	if request.StartDate != nil {
		addSet("start_date", *request.StartDate)
	}
	if request.EndDate != nil {
		addSet("end_date", *request.EndDate)
	}
	if request.Reason != nil {
		addSet("reason", *request.Reason)
	}
	if request.MedicalCertificateURL != nil {
		addSet("medical_certificate_url", *request.MedicalCertificateURL)
	}
	if request.Relationship != nil {
		addSet("relationship", *request.Relationship)
	}
	if request.TotalDays != nil {
		addSet("total_days", *request.TotalDays)
	}
	if request.PaymentType != nil {
		addSet("payment_type", *request.PaymentType)
	}
	if request.Status != nil {
		addSet("status", *request.Status)
		if *request.Status == string(leave.RequestStatusApproved) {
			setClauses = append(setClauses, "approved_at = NOW()")
		}
	}
	if request.ApprovedBy != nil {
		addSet("approved_by", *request.ApprovedBy)
	}
	if request.RejectionReason != nil {
		addSet("rejection_reason", *request.RejectionReason)
	}

	query := fmt.Sprintf(`
		UPDATE leave_requests
		SET %s
		WHERE id = $%d
		RETURNING id
	`, strings.Join(setClauses, ", "), argIdx)
	args = append(args, request.ID)

	var updatedID string
	err := q.QueryRow(ctx, query, args...).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.ErrRequestNotFound
		}
		return fmt.Errorf("failed to update leave request %s: %w", request.ID, err)
	}

	return nil
}

// ListByEmployee implements leave.RequestRepository.
func (l *leaveRequestRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, year int) ([]leave.Request, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests lr
		WHERE lr.employee_id = $1
			AND EXTRACT(YEAR FROM lr.start_date) = $2
		ORDER BY lr.start_date DESC
	`

	rows, err := q.Query(ctx, query, employeeID, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectLeaveRequests(rows)
}

// ApprovedInRange implements leave.RequestRepository.
func (l *leaveRequestRepositoryImpl) ApprovedInRange(ctx context.Context, employeeID string, from, to time.Time) ([]leave.Request, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests lr
		WHERE lr.employee_id = $1
			AND lr.status = $2
			AND lr.start_date <= $3
			AND lr.end_date >= $4
		ORDER BY lr.start_date
	`

	rows, err := q.Query(ctx, query, employeeID, leave.RequestStatusApproved, to, from)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectLeaveRequests(rows)
}

// ApprovedDaysInYear implements leave.RequestRepository.
func (l *leaveRequestRepositoryImpl) ApprovedDaysInYear(ctx context.Context, employeeID, leaveType string, year int) (int, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT COALESCE(SUM(total_days), 0)
		FROM leave_requests
		WHERE employee_id = $1
			AND leave_type = $2
			AND status = $3
			AND EXTRACT(YEAR FROM start_date) = $4
	`

	var total int
	err := q.QueryRow(ctx, query, employeeID, leaveType, leave.RequestStatusApproved, year).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum approved %s days for employee %s: %w", leaveType, employeeID, err)
	}

	return total, nil
}

// HasApprovedOfType implements leave.RequestRepository.
func (l *leaveRequestRepositoryImpl) HasApprovedOfType(ctx context.Context, employeeID, leaveType string) (bool, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM leave_requests
			WHERE employee_id = $1 AND leave_type = $2 AND status = $3
		)
	`

	var exists bool
	err := q.QueryRow(ctx, query, employeeID, leaveType, leave.RequestStatusApproved).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check approved %s for employee %s: %w", leaveType, employeeID, err)
	}

	return exists, nil
}

// CheckOverlapping implements leave.RequestRepository.
func (l *leaveRequestRepositoryImpl) CheckOverlapping(ctx context.Context, employeeID string, start, end time.Time, excludeID string) (bool, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM leave_requests
			WHERE employee_id = $1
				AND status IN ($2, $3)
				AND start_date <= $4
				AND end_date >= $5
				AND (NULLIF($6, '') IS NULL OR id <> NULLIF($6, '')::uuid)
		)
	`

	var exists bool
	err := q.QueryRow(ctx, query,
		employeeID, leave.RequestStatusPending, leave.RequestStatusApproved,
		end, start, excludeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check overlapping leave for employee %s: %w", employeeID, err)
	}

	return exists, nil
}

func collectLeaveRequests(rows pgx.Rows) ([]leave.Request, error) {
	var requests []leave.Request
	for rows.Next() {
		request, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, request)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return requests, nil
}
